// Package report renders relation tables, comparisons and corpus tables.
package report

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

const (
	Tick   = "✓"
	NoTick = "✗"
)

// RelHeader is the column header of a relation table.
var RelHeader = []string{"CS", "Relation", "Nuc", "C1", "C2", "CN", "A1", "A2", "AN"}

// CompHeader is the column header of a comparison table.
var CompHeader = func() []string {
	h := []string{"ID", ""}
	for _, c := range RelHeader {
		h = append(h, c+"-A")
	}
	h = append(h, "")
	for _, c := range RelHeader {
		h = append(h, c+"-B")
	}
	return append(h, "", "Matching", "N", "R", "C", "A", "Agreement", "Disagreement")
}()

// ElementString renders an element as "3" or "3-5", optionally with N or S.
func ElementString(e reltable.Element, withNuclearity bool) string {
	s := strconv.Itoa(e.MinID)
	if e.MinID != e.MaxID {
		s += "-" + strconv.Itoa(e.MaxID)
	}
	if withNuclearity {
		s += nucLetter(e)
	}
	return s
}

// CSString renders a central subconstituent as "2-4|5".
func CSString(cs []reltable.Element) string {
	parts := make([]string, len(cs))
	for i, e := range cs {
		parts[i] = ElementString(e, false)
	}
	return strings.Join(parts, "|")
}

// Arrow renders the nuclearity direction of a relation.
func Arrow(r reltable.Relation) string {
	switch r.Direction() {
	case reltable.Forward:
		return "⟶"
	case reltable.Backward:
		return "⟵"
	default:
		return "⟷"
	}
}

func nucLetter(e reltable.Element) string {
	if e.IsNuclear {
		return "N"
	}
	return "S"
}

// RelRow renders one relation as a row under RelHeader.
func RelRow(r reltable.Relation) []string {
	return []string{
		CSString(r.CentralSubconstituent),
		r.Name,
		Arrow(r),
		strconv.Itoa(r.Constituent.MinID),
		strconv.Itoa(r.Constituent.MaxID),
		nucLetter(r.Constituent),
		strconv.Itoa(r.AttachmentPoint.MinID),
		strconv.Itoa(r.AttachmentPoint.MaxID),
		nucLetter(r.AttachmentPoint),
	}
}

// RelRows renders a relation table.
func RelRows(t *reltable.Table) [][]string {
	rows := make([][]string, 0, t.Len())
	for _, r := range t.Relations {
		rows = append(rows, RelRow(r))
	}
	return rows
}

// EquivalencyCells renders the N, R, C and A ticks followed by the agreement
// and disagreement summaries.
func EquivalencyCells(eq compare.Equivalency) []string {
	var agree, disagree []string
	tick := func(ok bool, letter string) string {
		if ok {
			agree = append(agree, letter)
			return Tick
		}
		return NoTick
	}

	n := tick(eq.Nuclearity.EqualDirection, "N")
	if !eq.Nuclearity.EqualDirection {
		if eq.Nuclearity.EqualMonoMulti {
			disagree = append(disagree, "N/S")
		} else {
			disagree = append(disagree, "N/N-N/S")
		}
	}
	r := tick(eq.Relation, "R")
	if !eq.Relation {
		disagree = append(disagree, "≠R")
	}
	c := tick(eq.Constituent, "C")
	a := tick(eq.AttachmentPoint, "A")

	return []string{n, r, c, a, strings.Join(agree, ""), strings.Join(disagree, ", ")}
}

// CompRows renders a comparison table. An unmatched pair takes two rows,
// one per side, and shifts the numbering of every following row. Relations
// without counterpart follow as one-sided rows.
func CompRows(t *compare.Table) [][]string {
	empty := make([]string, len(RelHeader))
	noEval := make([]string, 6)
	row := func(id int, a, b []string, match string, eval []string) []string {
		out := []string{strconv.Itoa(id), ""}
		out = append(out, a...)
		out = append(out, "")
		out = append(out, b...)
		out = append(out, "", match)
		return append(out, eval...)
	}

	rows := make([][]string, 0, t.Len())
	id := 1
	for _, c := range t.Comparisons {
		match := c.Distance.String()
		if c.Distance == compare.NoMatching {
			rows = append(rows, row(id, RelRow(c.RelationA), empty, match, noEval))
			rows = append(rows, row(id+1, empty, RelRow(c.RelationB), match, noEval))
			id += 2
			continue
		}
		rows = append(rows, row(id, RelRow(c.RelationA), RelRow(c.RelationB), match, EquivalencyCells(c.Equivalency)))
		id++
	}

	unmatched := compare.NoMatching.String()
	for _, r := range t.UnmatchedA {
		rows = append(rows, row(id, RelRow(r), empty, unmatched, noEval))
		id++
	}
	for _, r := range t.UnmatchedB {
		rows = append(rows, row(id, empty, RelRow(r), unmatched, noEval))
		id++
	}
	return rows
}

func dimensions() []compare.Dimension {
	return append(slices.Clone(compare.Dimensions), compare.Average)
}

// MetricsHeader is the column header of the statistics table.
func MetricsHeader() []string {
	h := []string{""}
	for _, d := range dimensions() {
		h = append(h, string(d))
	}
	return h
}

// MetricsRows renders the matching ratios and kappas of a comparison table.
func MetricsRows(t *compare.Table) [][]string {
	dims := dimensions()
	line := func(label string, s compare.Scores) []string {
		out := []string{label}
		for _, d := range dims {
			out = append(out, FormatFloat(s[d]))
		}
		return out
	}
	return [][]string{
		line("Matching Ratios", t.MatchingRatios),
		line("Inter Annotator Agreement", t.CohensKappas),
	}
}

// CorpusHeader is the column header of the corpus table.
func CorpusHeader() []string {
	h := []string{"Name"}
	for _, c := range agreement.Columns {
		h = append(h, c.Name())
	}
	return h
}

// CorpusRows renders one row per document pair.
func CorpusRows(t *agreement.CorpusTable) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{r.Name}
		for _, v := range r.Values {
			row = append(row, FormatFloat(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// CorpusStatsRows renders the mean, std, min and max rows of a corpus table.
func CorpusStatsRows(t *agreement.CorpusTable) [][]string {
	pick := []struct {
		name string
		get  func(agreement.Summary) float64
	}{
		{"mean", func(s agreement.Summary) float64 { return s.Mean }},
		{"std", func(s agreement.Summary) float64 { return s.Std }},
		{"min", func(s agreement.Summary) float64 { return s.Min }},
		{"max", func(s agreement.Summary) float64 { return s.Max }},
	}
	rows := make([][]string, 0, len(pick))
	for _, p := range pick {
		row := []string{p.name}
		for _, s := range t.Stats {
			row = append(row, FormatFloat(p.get(s)))
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatFloat renders a statistic with up to six decimals.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
