package compare

import "github.com/tkutschbach/RST-Tace/internal/reltable"

// Distance classifies how well two relation records correspond; lower is better.
type Distance int

const (
	CompleteSameCS Distance = iota
	SameCSameA
	SwitchedCAndA
	PartiallySameCS
	NoMatching
)

func (d Distance) String() string {
	switch d {
	case CompleteSameCS:
		return "Completely identical CS"
	case SameCSameA:
		return "C1=C2 and A1=A2"
	case SwitchedCAndA:
		return "C1=A2 and A1=C2"
	case PartiallySameCS:
		return "Partially identical CS"
	default:
		return "No matching"
	}
}

// CalcDistance returns the best matching level that applies to a and b.
func CalcDistance(a, b reltable.Relation) Distance {
	allEqual, noneEqual := compareCS(a.CentralSubconstituent, b.CentralSubconstituent)
	switch {
	case allEqual:
		return CompleteSameCS
	case a.Constituent.SameRange(b.Constituent) && a.AttachmentPoint.SameRange(b.AttachmentPoint):
		return SameCSameA
	case a.Constituent.SameRange(b.AttachmentPoint) && a.AttachmentPoint.SameRange(b.Constituent):
		return SwitchedCAndA
	case !a.IsMultiNuclear && !b.IsMultiNuclear:
		return NoMatching
	case noneEqual:
		return NoMatching
	default:
		return PartiallySameCS
	}
}

// compareCS checks both central subconstituents as sets of ranges. allEqual
// holds when every element has a counterpart on the other side, noneEqual
// when no element has one.
func compareCS(a, b []reltable.Element) (allEqual, noneEqual bool) {
	allEqual, noneEqual = true, true
	check := func(from, in []reltable.Element) {
		for _, x := range from {
			found := false
			for _, y := range in {
				if x.SameRange(y) {
					found = true
					break
				}
			}
			allEqual = allEqual && found
			noneEqual = noneEqual && !found
		}
	}
	check(a, b)
	check(b, a)
	return allEqual, noneEqual
}
