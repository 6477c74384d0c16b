package reltable

import (
	"slices"

	"github.com/tkutschbach/RST-Tace/internal/rsttree"
)

// Generate flattens a discourse tree into its relation table. Binary records
// come first, then group records; the whole table is stable-sorted by the
// central subconstituent key and numbered from 1.
func Generate(name string, tree *rsttree.Tree) *Table {
	table := &Table{Name: name, Relations: []Relation{}}
	if tree == nil || tree.Root == nil {
		return table
	}

	for _, rel := range tree.Binary {
		table.Relations = append(table.Relations, Relation{
			Name:                  rel.Name,
			Constituent:           element(rel.Satellite, false),
			AttachmentPoint:       element(rel.Nucleus, true),
			CentralSubconstituent: []Element{anchor(rel.Satellite, false)},
		})
	}

	for _, group := range tree.Groups {
		table.Relations = append(table.Relations, groupRelations(group)...)
	}

	slices.SortStableFunc(table.Relations, func(a, b Relation) int {
		ka, kb := sortKey(a), sortKey(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	for i := range table.Relations {
		table.Relations[i].Position = i + 1
	}
	return table
}

// groupRelations decomposes a group of k nuclei into k-1 records, each joining
// the first remaining nucleus to the range of all nuclei after it.
func groupRelations(group *rsttree.GroupRelation) []Relation {
	nuclei := group.Nuclei
	if len(nuclei) < 2 {
		return nil
	}

	out := make([]Relation, 0, len(nuclei)-1)
	for i := 0; i < len(nuclei)-1; i++ {
		remaining := nuclei[i:]
		cs := make([]Element, len(remaining))
		for j, n := range remaining {
			cs[j] = anchor(n, true)
		}

		out = append(out, Relation{
			Name:                  group.Name,
			IsMultiNuclear:        true,
			Constituent:           element(remaining[0], true),
			AttachmentPoint:       rangeElement(remaining[1:]),
			CentralSubconstituent: cs,
		})
	}
	return out
}

func element(n *rsttree.Node, nuclear bool) Element {
	return Element{MinID: n.MinID, MaxID: n.MaxID, IsNuclear: nuclear, IsLeaf: n.IsLeaf()}
}

// rangeElement covers a run of sibling nuclei. A single node keeps its own
// leaf flag.
func rangeElement(nodes []*rsttree.Node) Element {
	if len(nodes) == 1 {
		return element(nodes[0], true)
	}
	e := Element{MinID: nodes[0].MinID, MaxID: nodes[0].MaxID, IsNuclear: true}
	for _, n := range nodes[1:] {
		e.MinID = min(e.MinID, n.MinID)
		e.MaxID = max(e.MaxID, n.MaxID)
	}
	return e
}

// anchor resolves the central subconstituent of a node. When the node wraps a
// span whose first child takes part in a binary relation, the anchor is that
// relation's nucleus.
func anchor(n *rsttree.Node, nuclear bool) Element {
	if n.Shape == rsttree.ShapeSpan && len(n.Children) > 0 {
		first := n.Children[0]
		switch {
		case first.Satellite != nil:
			return element(first.Satellite.Nucleus, true)
		case first.SatelliteOf != nil:
			return element(first.SatelliteOf.Nucleus, true)
		}
	}
	return element(n, nuclear)
}

func sortKey(r Relation) float64 {
	if len(r.CentralSubconstituent) == 0 {
		return 0.99999*float64(r.Constituent.MinID) + 0.00001*float64(r.Constituent.MaxID)
	}
	lo, hi := r.CentralSubconstituent[0].MinID, r.CentralSubconstituent[0].MaxID
	for _, e := range r.CentralSubconstituent[1:] {
		lo = min(lo, e.MinID)
		hi = max(hi, e.MaxID)
	}
	return 0.99999*float64(lo) + 0.00001*float64(hi)
}
