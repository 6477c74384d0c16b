package report

import (
	"reflect"
	"testing"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

func el(lo, hi int, nuclear bool) reltable.Element {
	return reltable.Element{MinID: lo, MaxID: hi, IsNuclear: nuclear, IsLeaf: lo == hi}
}

var (
	reason = reltable.Relation{
		Position: 1, Name: "reason",
		Constituent: el(1, 1, false), AttachmentPoint: el(2, 2, true),
		CentralSubconstituent: []reltable.Element{el(1, 1, false)},
	}
	sequence = reltable.Relation{
		Position: 2, Name: "sequence", IsMultiNuclear: true,
		Constituent: el(3, 3, true), AttachmentPoint: el(4, 6, true),
		CentralSubconstituent: []reltable.Element{el(3, 3, true), el(4, 5, true), el(6, 6, true)},
	}
)

func sampleComparison() *compare.Table {
	comp := &compare.Table{Name: "doc", Comparisons: []compare.Comparison{
		{RelationA: sequence, RelationB: sequence, Distance: compare.NoMatching},
		{RelationA: reason, RelationB: reason, Distance: compare.CompleteSameCS, Equivalency: compare.Equivalent(reason, reason)},
	}}
	agreement.Analyze(comp)
	return comp
}

func TestCSStringAndArrow(t *testing.T) {
	if got := CSString(sequence.CentralSubconstituent); got != "3|4-5|6" {
		t.Errorf("expected %q, got %q", "3|4-5|6", got)
	}
	if got := ElementString(el(2, 4, false), true); got != "2-4S" {
		t.Errorf("expected %q, got %q", "2-4S", got)
	}
	backward := reltable.Relation{Constituent: el(5, 5, false), AttachmentPoint: el(1, 4, true)}
	for rel, want := range map[*reltable.Relation]string{&reason: "⟶", &backward: "⟵", &sequence: "⟷"} {
		if got := Arrow(*rel); got != want {
			t.Errorf("%s: expected %s, got %s", rel.Name, want, got)
		}
	}
}

func TestRelRow(t *testing.T) {
	want := []string{"1", "reason", "⟶", "1", "1", "S", "2", "2", "N"}
	if got := RelRow(reason); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(RelRows(&reltable.Table{Relations: []reltable.Relation{reason, sequence}})) != 2 {
		t.Error("expected one row per relation")
	}
}

func TestEquivalencyCells(t *testing.T) {
	full := compare.Equivalent(reason, reason)
	if got := EquivalencyCells(full); !reflect.DeepEqual(got, []string{Tick, Tick, Tick, Tick, "NRCA", ""}) {
		t.Errorf("unexpected full agreement cells %v", got)
	}

	monoVsMulti := compare.Equivalency{Constituent: true}
	got := EquivalencyCells(monoVsMulti)
	want := []string{NoTick, NoTick, Tick, NoTick, "C", "N/N-N/S, ≠R"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	direction := compare.Equivalency{Relation: true, Nuclearity: compare.NuclearityEquivalency{EqualMonoMulti: true}}
	if got := EquivalencyCells(direction); got[5] != "N/S" || got[4] != "R" {
		t.Errorf("unexpected direction disagreement cells %v", got)
	}
}

func TestCompRows_SplitsUnmatchedPairs(t *testing.T) {
	rows := CompRows(sampleComparison())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(CompHeader) {
			t.Fatalf("row %d: expected %d cells, got %d", i, len(CompHeader), len(row))
		}
	}
	ids := []string{rows[0][0], rows[1][0], rows[2][0]}
	if !reflect.DeepEqual(ids, []string{"1", "2", "3"}) {
		t.Errorf("expected ids 1..3, got %v", ids)
	}
	if rows[0][3] != "sequence" || rows[0][13] != "" {
		t.Errorf("expected first side only in row 1, got %v", rows[0])
	}
	if rows[1][3] != "" || rows[1][13] != "sequence" {
		t.Errorf("expected second side only in row 2, got %v", rows[1])
	}
	if rows[0][22] != "No matching" || rows[2][22] != "Completely identical CS" {
		t.Errorf("unexpected matching labels %q and %q", rows[0][22], rows[2][22])
	}
	if rows[2][27] != "NRCA" {
		t.Errorf("expected agreement NRCA, got %q", rows[2][27])
	}
}

func TestCompRows_RelationsWithoutCounterpart(t *testing.T) {
	cause := reltable.Relation{Position: 3, Name: "cause", Constituent: el(7, 7, false), AttachmentPoint: el(8, 8, true)}
	comp := sampleComparison()
	comp.UnmatchedA = []reltable.Relation{cause}
	comp.UnmatchedB = []reltable.Relation{reason}

	rows := CompRows(comp)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	a, b := rows[3], rows[4]
	if a[0] != "4" || a[3] != "cause" || a[13] != "" || a[22] != "No matching" || a[27] != "" {
		t.Errorf("expected one-sided row for side A, got %v", a)
	}
	if b[0] != "5" || b[3] != "" || b[13] != "reason" || b[22] != "No matching" {
		t.Errorf("expected one-sided row for side B, got %v", b)
	}
}

func TestMetricsRows(t *testing.T) {
	rows := MetricsRows(sampleComparison())
	header := MetricsHeader()
	if !reflect.DeepEqual(header, []string{"", "Nuclearity", "Relation", "Constituent", "Attachment point", "Average"}) {
		t.Errorf("unexpected header %v", header)
	}
	if rows[0][0] != "Matching Ratios" || rows[1][0] != "Inter Annotator Agreement" {
		t.Errorf("unexpected row labels %q, %q", rows[0][0], rows[1][0])
	}
	// One matched observation out of three.
	if rows[0][2] != "0.333333" {
		t.Errorf("expected relation ratio 0.333333, got %q", rows[0][2])
	}
}

func TestCorpusRows(t *testing.T) {
	corpus := agreement.Aggregate([]*compare.Table{sampleComparison()})
	rows := CorpusRows(corpus)
	if len(rows) != 1 || rows[0][0] != "doc" || len(rows[0]) != len(CorpusHeader()) {
		t.Fatalf("unexpected corpus rows %v", rows)
	}
	stats := CorpusStatsRows(corpus)
	var names []string
	for _, r := range stats {
		names = append(names, r[0])
	}
	if !reflect.DeepEqual(names, []string{"mean", "std", "min", "max"}) {
		t.Errorf("unexpected stats rows %v", names)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{1: "1", 0.5: "0.5", 1.0 / 3.0: "0.333333", -0.25: "-0.25"}
	for v, want := range cases {
		if got := FormatFloat(v); got != want {
			t.Errorf("FormatFloat(%v): expected %q, got %q", v, want, got)
		}
	}
}
