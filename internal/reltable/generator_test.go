package reltable

import (
	"reflect"
	"testing"

	"github.com/tkutschbach/RST-Tace/internal/rsttree"
)

var relations = map[string]rsttree.Kind{
	"reason":      rsttree.KindMonoNuclear,
	"elaboration": rsttree.KindMonoNuclear,
	"sequence":    rsttree.KindMultiNuclear,
}

func seg(id, parent, rel string, pos int) rsttree.Entry {
	return rsttree.Entry{ID: id, Parent: parent, RelName: rel, Text: "t" + id, Position: pos}
}

func grp(id, typ, parent, rel string) rsttree.Entry {
	return rsttree.Entry{ID: id, Parent: parent, RelName: rel, GroupType: typ}
}

func mustBuild(t *testing.T, entries ...rsttree.Entry) *rsttree.Tree {
	t.Helper()
	tree, err := rsttree.Build(entries, relations)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	return tree
}

func TestGenerate_NoRelations(t *testing.T) {
	table := Generate("single", mustBuild(t, seg("1", "", "", 1)))
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d relations", table.Len())
	}
	if Generate("nil", nil).Len() != 0 {
		t.Error("expected empty table for nil tree")
	}
}

func TestGenerate_SingleBinaryRelation(t *testing.T) {
	tree := mustBuild(t,
		seg("1", "2", "reason", 1),
		seg("2", "3", "span", 2),
		grp("3", rsttree.GroupSpan, "", ""),
	)
	table := Generate("reason", tree)
	if table.Len() != 1 {
		t.Fatalf("expected 1 relation, got %d", table.Len())
	}

	rel := table.Relations[0]
	want := Relation{
		Position:              1,
		Name:                  "reason",
		Constituent:           Element{MinID: 1, MaxID: 1, IsNuclear: false, IsLeaf: true},
		AttachmentPoint:       Element{MinID: 2, MaxID: 2, IsNuclear: true, IsLeaf: true},
		CentralSubconstituent: []Element{{MinID: 1, MaxID: 1, IsLeaf: true}},
	}
	if !reflect.DeepEqual(rel, want) {
		t.Errorf("expected %+v, got %+v", want, rel)
	}
	if rel.Direction() != Forward {
		t.Errorf("expected forward direction, got %s", rel.Direction())
	}
}

func TestGenerate_ThreeNucleusGroup(t *testing.T) {
	tree := mustBuild(t,
		seg("1", "4", "sequence", 1),
		seg("2", "4", "sequence", 2),
		seg("3", "4", "sequence", 3),
		grp("4", rsttree.GroupMultiNuc, "", ""),
	)
	table := Generate("sequence", tree)
	if table.Len() != 2 {
		t.Fatalf("expected 2 relations, got %d", table.Len())
	}

	first, second := table.Relations[0], table.Relations[1]
	if !first.IsMultiNuclear || !second.IsMultiNuclear {
		t.Error("expected multi-nuclear records")
	}
	if first.Constituent != (Element{MinID: 1, MaxID: 1, IsNuclear: true, IsLeaf: true}) {
		t.Errorf("record 1: unexpected constituent %+v", first.Constituent)
	}
	if first.AttachmentPoint != (Element{MinID: 2, MaxID: 3, IsNuclear: true, IsLeaf: false}) {
		t.Errorf("record 1: unexpected attachment point %+v", first.AttachmentPoint)
	}
	if second.Constituent != (Element{MinID: 2, MaxID: 2, IsNuclear: true, IsLeaf: true}) {
		t.Errorf("record 2: unexpected constituent %+v", second.Constituent)
	}
	if second.AttachmentPoint != (Element{MinID: 3, MaxID: 3, IsNuclear: true, IsLeaf: true}) {
		t.Errorf("record 2: unexpected attachment point %+v", second.AttachmentPoint)
	}
	if len(first.CentralSubconstituent) != 3 || len(second.CentralSubconstituent) != 2 {
		t.Errorf("expected CS sizes 3 and 2, got %d and %d",
			len(first.CentralSubconstituent), len(second.CentralSubconstituent))
	}
	if first.Direction() != Bidirectional {
		t.Errorf("expected bidirectional group relation, got %s", first.Direction())
	}

	// Constituents plus the final attachment point reconstruct the group range.
	covered := map[int]bool{}
	for _, rel := range table.Relations {
		for id := rel.Constituent.MinID; id <= rel.Constituent.MaxID; id++ {
			covered[id] = true
		}
	}
	last := table.Relations[table.Len()-1].AttachmentPoint
	for id := last.MinID; id <= last.MaxID; id++ {
		covered[id] = true
	}
	if len(covered) != 3 {
		t.Errorf("expected leaves 1-3 covered, got %v", covered)
	}
}

func TestGenerate_AnchorThroughSpan(t *testing.T) {
	// 5 (span over 3-4, itself a reason pair) elaborates 2.
	tree := mustBuild(t,
		seg("1", "6", "span", 1),
		seg("2", "6", "span", 2),
		seg("3", "4", "reason", 3),
		seg("4", "5", "span", 4),
		grp("5", rsttree.GroupSpan, "2", "elaboration"),
		grp("6", rsttree.GroupSpan, "", ""),
	)
	table := Generate("anchor", tree)
	if table.Len() != 2 {
		t.Fatalf("expected 2 relations, got %d", table.Len())
	}

	var elab Relation
	for _, rel := range table.Relations {
		if rel.Name == "elaboration" {
			elab = rel
		}
	}
	if elab.Constituent != (Element{MinID: 3, MaxID: 4, IsNuclear: false, IsLeaf: false}) {
		t.Errorf("unexpected constituent %+v", elab.Constituent)
	}
	want := []Element{{MinID: 4, MaxID: 4, IsNuclear: true, IsLeaf: true}}
	if !reflect.DeepEqual(elab.CentralSubconstituent, want) {
		t.Errorf("expected anchor at nucleus 4, got %+v", elab.CentralSubconstituent)
	}
}

func TestGenerate_AnchorAtNucleusWithSatellite(t *testing.T) {
	// 5 (span over 2-3, where 3 elaborates 2) is the reason for 1.
	tree := mustBuild(t,
		seg("1", "6", "span", 1),
		seg("2", "5", "span", 2),
		seg("3", "2", "elaboration", 3),
		grp("5", rsttree.GroupSpan, "1", "reason"),
		grp("6", rsttree.GroupSpan, "", ""),
	)
	table := Generate("anchor", tree)
	if table.Len() != 2 {
		t.Fatalf("expected 2 relations, got %d", table.Len())
	}

	byName := map[string]Relation{}
	for _, rel := range table.Relations {
		byName[rel.Name] = rel
	}
	reason := byName["reason"]
	if reason.Constituent != (Element{MinID: 2, MaxID: 3, IsNuclear: false, IsLeaf: false}) {
		t.Errorf("unexpected constituent %+v", reason.Constituent)
	}
	want := []Element{{MinID: 2, MaxID: 2, IsNuclear: true, IsLeaf: true}}
	if !reflect.DeepEqual(reason.CentralSubconstituent, want) {
		t.Errorf("expected anchor at nucleus 2, got %+v", reason.CentralSubconstituent)
	}
	wantElab := []Element{{MinID: 3, MaxID: 3, IsNuclear: false, IsLeaf: true}}
	if !reflect.DeepEqual(byName["elaboration"].CentralSubconstituent, wantElab) {
		t.Errorf("expected elaboration anchored at its satellite, got %+v", byName["elaboration"].CentralSubconstituent)
	}
}

func TestGenerate_GroupCentralSubconstituents(t *testing.T) {
	// Nucleus 5 of the sequence wraps a reason pair (2 satellite of 3).
	tree := mustBuild(t,
		seg("1", "4", "sequence", 1),
		seg("2", "3", "reason", 2),
		seg("3", "5", "span", 3),
		grp("5", rsttree.GroupSpan, "4", "sequence"),
		seg("6", "4", "sequence", 4),
		grp("4", rsttree.GroupMultiNuc, "", ""),
	)
	table := Generate("group", tree)
	if table.Len() != 3 {
		t.Fatalf("expected 3 relations, got %d", table.Len())
	}

	nuc := func(lo, hi int) Element { return Element{MinID: lo, MaxID: hi, IsNuclear: true, IsLeaf: lo == hi} }
	want := []Relation{
		{
			Position: 1, Name: "sequence", IsMultiNuclear: true,
			Constituent:           nuc(1, 1),
			AttachmentPoint:       nuc(2, 4),
			CentralSubconstituent: []Element{nuc(1, 1), nuc(3, 3), nuc(4, 4)},
		},
		{
			Position: 2, Name: "reason",
			Constituent:           Element{MinID: 2, MaxID: 2, IsLeaf: true},
			AttachmentPoint:       nuc(3, 3),
			CentralSubconstituent: []Element{{MinID: 2, MaxID: 2, IsLeaf: true}},
		},
		{
			Position: 3, Name: "sequence", IsMultiNuclear: true,
			Constituent:           nuc(2, 3),
			AttachmentPoint:       nuc(4, 4),
			CentralSubconstituent: []Element{nuc(3, 3), nuc(4, 4)},
		},
	}
	for i := range want {
		if !reflect.DeepEqual(table.Relations[i], want[i]) {
			t.Errorf("record %d: expected %+v, got %+v", i+1, want[i], table.Relations[i])
		}
	}
}

func TestGenerate_OrderingAndIdempotence(t *testing.T) {
	tree := mustBuild(t,
		seg("1", "2", "reason", 1),
		seg("2", "6", "span", 2),
		seg("3", "5", "sequence", 3),
		seg("4", "5", "sequence", 4),
		grp("5", rsttree.GroupMultiNuc, "6", "elaboration"),
		grp("6", rsttree.GroupSpan, "7", "span"),
		grp("7", rsttree.GroupSpan, "", ""),
	)

	first := Generate("doc", tree)
	names := make([]string, first.Len())
	for i, rel := range first.Relations {
		names[i] = rel.Name
		if rel.Position != i+1 {
			t.Errorf("relation %d: expected position %d, got %d", i, i+1, rel.Position)
		}
	}
	want := []string{"reason", "elaboration", "sequence"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected order %v, got %v", want, names)
	}

	second := Generate("doc", tree)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical tables from repeated generation")
	}
}

func TestRelationDirection(t *testing.T) {
	cases := []struct {
		c, a Element
		want Direction
	}{
		{Element{MinID: 1, MaxID: 1}, Element{MinID: 2, MaxID: 3}, Forward},
		{Element{MinID: 4, MaxID: 5}, Element{MinID: 1, MaxID: 3}, Backward},
		{Element{MinID: 1, MaxID: 3}, Element{MinID: 2, MaxID: 4}, Bidirectional},
	}
	for _, tc := range cases {
		rel := Relation{Constituent: tc.c, AttachmentPoint: tc.a}
		if got := rel.Direction(); got != tc.want {
			t.Errorf("%+v -> %+v: expected %s, got %s", tc.c, tc.a, tc.want, got)
		}
	}
}
