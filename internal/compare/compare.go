package compare

import "github.com/tkutschbach/RST-Tace/internal/reltable"

// Dimension names one axis along which two relations may agree.
type Dimension string

const (
	Nuclearity      Dimension = "Nuclearity"
	Relation        Dimension = "Relation"
	Constituent     Dimension = "Constituent"
	AttachmentPoint Dimension = "Attachment point"
	Average         Dimension = "Average"
)

// Dimensions lists the compared dimensions in reporting order, without Average.
var Dimensions = []Dimension{Nuclearity, Relation, Constituent, AttachmentPoint}

// Scores maps each dimension, including Average, to a statistic.
type Scores map[Dimension]float64

// NuclearityEquivalency splits nuclearity agreement in two.
type NuclearityEquivalency struct {
	EqualDirection bool `json:"equal_direction"`
	EqualMonoMulti bool `json:"equal_mono_multi"`
}

// Equivalency records per-dimension agreement of a matched pair.
type Equivalency struct {
	Relation        bool                  `json:"relation"`
	Constituent     bool                  `json:"constituent"`
	AttachmentPoint bool                  `json:"attachment_point"`
	Nuclearity      NuclearityEquivalency `json:"nuclearity"`
}

// Comparison pairs one relation of each table.
type Comparison struct {
	RelationA   reltable.Relation `json:"relation_a"`
	RelationB   reltable.Relation `json:"relation_b"`
	Distance    Distance          `json:"distance"`
	Equivalency Equivalency       `json:"equivalency"`
}

// Table holds the matched pairs of two relation tables. The statistics are
// filled in by the agreement analysis.
type Table struct {
	Name           string       `json:"name"`
	Comparisons    []Comparison `json:"comparisons"`
	MatchingRatios Scores       `json:"matching_ratios,omitempty"`
	CohensKappas   Scores       `json:"cohens_kappas,omitempty"`

	// Relations left without a counterpart when the tables differ in size.
	UnmatchedA []reltable.Relation `json:"unmatched_a"`
	UnmatchedB []reltable.Relation `json:"unmatched_b"`
}

// Len returns the number of matched pairs.
func (t *Table) Len() int { return len(t.Comparisons) }

// Match pairs the relations of a and b with minimum total distance. The
// result holds min(a.Len(), b.Len()) comparisons ordered by their position
// in a; the remaining relations of the longer table are kept in UnmatchedA
// or UnmatchedB in table order.
func Match(name string, a, b *reltable.Table) *Table {
	table := &Table{
		Name:        name,
		Comparisons: []Comparison{},
		UnmatchedA:  []reltable.Relation{},
		UnmatchedB:  []reltable.Relation{},
	}
	if a.Len() == 0 || b.Len() == 0 {
		table.UnmatchedA = append(table.UnmatchedA, a.Relations...)
		table.UnmatchedB = append(table.UnmatchedB, b.Relations...)
		return table
	}

	dist := make([][]int, a.Len())
	for i, ra := range a.Relations {
		dist[i] = make([]int, b.Len())
		for j, rb := range b.Relations {
			dist[i][j] = int(CalcDistance(ra, rb))
		}
	}

	usedA := make([]bool, a.Len())
	usedB := make([]bool, b.Len())
	for _, pair := range assign(dist) {
		usedA[pair[0]], usedB[pair[1]] = true, true
		ra, rb := a.Relations[pair[0]], b.Relations[pair[1]]
		table.Comparisons = append(table.Comparisons, Comparison{
			RelationA:   ra,
			RelationB:   rb,
			Distance:    Distance(dist[pair[0]][pair[1]]),
			Equivalency: Equivalent(ra, rb),
		})
	}

	for i, used := range usedA {
		if !used {
			table.UnmatchedA = append(table.UnmatchedA, a.Relations[i])
		}
	}
	for j, used := range usedB {
		if !used {
			table.UnmatchedB = append(table.UnmatchedB, b.Relations[j])
		}
	}
	return table
}

// Equivalent compares two relations dimension by dimension.
func Equivalent(a, b reltable.Relation) Equivalency {
	return Equivalency{
		Relation:        a.Name == b.Name,
		Constituent:     sameElement(a.Constituent, b.Constituent),
		AttachmentPoint: sameElement(a.AttachmentPoint, b.AttachmentPoint),
		Nuclearity: NuclearityEquivalency{
			EqualDirection: a.Direction() == b.Direction(),
			EqualMonoMulti: a.IsMultiNuclear == b.IsMultiNuclear,
		},
	}
}

func sameElement(a, b reltable.Element) bool {
	return a.SameRange(b) && a.IsNuclear == b.IsNuclear
}
