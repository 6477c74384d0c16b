package rsttree

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMalformed is wrapped by every validation failure reported by Build.
var ErrMalformed = errors.New("malformed rst input")

// Group type tags carried by group entries.
const (
	GroupSpan     = "span"
	GroupMultiNuc = "multinuc"
)

// Entry is one flat record of an annotation: a segment or a group.
type Entry struct {
	ID        string
	Parent    string // Empty for the document root
	RelName   string // Lower-cased relation name; empty for the root
	Text      string // Segment text
	Position  int    // 1-based leaf position in reading order (segments only)
	GroupType string // GroupSpan or GroupMultiNuc; empty for segments
}

// IsSegment reports whether the entry is a leaf.
func (e Entry) IsSegment() bool { return e.GroupType == "" }

// index holds the lookup structures built by the first pass.
type index struct {
	entries   map[string]*Entry
	children  map[string][]string // parent id -> span/group child ids, input order
	satellite map[string]string   // nucleus id -> satellite id
	root      string
}

// Build validates the entries and assembles the discourse tree. The build is
// atomic: on error no partial tree is returned.
func Build(entries []Entry, relations map[string]Kind) (*Tree, error) {
	kinds := make(map[string]Kind, len(relations)+1)
	for name, k := range relations {
		kinds[name] = k
	}
	kinds[GroupSpan] = KindSpan

	idx, err := buildIndex(entries, kinds)
	if err != nil {
		return nil, err
	}

	b := &builder{
		idx:     idx,
		kinds:   kinds,
		tree:    &Tree{Relations: kinds},
		visited: make(map[string]bool, len(entries)),
	}
	root := newNode(idx.entries[idx.root])
	if err := b.resolve(idx.root, root, nil); err != nil {
		return nil, err
	}

	// Every non-root entry has a known parent, so only a parent cycle can
	// hide an entry from the root.
	for _, e := range entries {
		if !b.visited[e.ID] {
			return nil, fmt.Errorf("%w: entry %q is not connected to root %q", ErrMalformed, e.ID, idx.root)
		}
	}
	b.tree.Root = root
	return b.tree, nil
}

// buildIndex is the first pass: it indexes entries by id and checks every
// constraint that does not depend on the resolved tree shape.
func buildIndex(entries []Entry, kinds map[string]Kind) (*index, error) {
	idx := &index{
		entries:   make(map[string]*Entry, len(entries)),
		children:  make(map[string][]string),
		satellite: make(map[string]string),
	}

	for i := range entries {
		e := &entries[i]
		if _, dup := idx.entries[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate entry id %q", ErrMalformed, e.ID)
		}
		idx.entries[e.ID] = e
	}

	for i := range entries {
		e := &entries[i]
		if e.Parent == "" {
			if idx.root != "" {
				return nil, fmt.Errorf("%w: multiple roots (%q and %q)", ErrMalformed, idx.root, e.ID)
			}
			idx.root = e.ID
			continue
		}
		if _, ok := idx.entries[e.Parent]; !ok {
			return nil, fmt.Errorf("%w: entry %q references unknown parent %q", ErrMalformed, e.ID, e.Parent)
		}
		kind, ok := kinds[e.RelName]
		if !ok {
			return nil, fmt.Errorf("%w: entry %q uses undeclared relation %q", ErrMalformed, e.ID, e.RelName)
		}
		if kind == KindMonoNuclear {
			if prev, taken := idx.satellite[e.Parent]; taken {
				return nil, fmt.Errorf("%w: ambiguous satellite for %q (%q and %q)", ErrMalformed, e.Parent, prev, e.ID)
			}
			idx.satellite[e.Parent] = e.ID
			continue
		}
		idx.children[e.Parent] = append(idx.children[e.Parent], e.ID)
	}

	if idx.root == "" {
		return nil, fmt.Errorf("%w: no root entry", ErrMalformed)
	}

	for parent, ids := range idx.children {
		name := idx.entries[ids[0]].RelName
		for _, id := range ids[1:] {
			if rel := idx.entries[id].RelName; rel != name {
				return nil, fmt.Errorf("%w: children of %q mix relations %q and %q", ErrMalformed, parent, name, rel)
			}
		}
	}
	return idx, nil
}

type builder struct {
	idx     *index
	kinds   map[string]Kind
	tree    *Tree
	visited map[string]bool
}

func newNode(e *Entry) *Node {
	n := &Node{ID: e.ID, Shape: ShapeLeaf}
	if e.IsSegment() {
		n.Text = e.Text
		n.MinID, n.MaxID = e.Position, e.Position
	}
	return n
}

// resolve is the second pass: it links satellites and children of the node
// with the given id, sorts children and derives the node's leaf range.
// span is the enclosing structural span, if any; satellites join it.
func (b *builder) resolve(id string, node *Node, span *Node) error {
	entry := b.idx.entries[id]
	b.visited[id] = true

	if satID, ok := b.idx.satellite[id]; ok {
		satEntry := b.idx.entries[satID]
		sat := newNode(satEntry)
		rel := &BinaryRelation{Name: satEntry.RelName, Satellite: sat, Nucleus: node}
		node.Satellite = rel
		sat.SatelliteOf = rel
		b.tree.Binary = append(b.tree.Binary, rel)
		if span != nil {
			span.Children = append(span.Children, sat)
		}
		if err := b.resolve(satID, sat, span); err != nil {
			return err
		}
	}

	if childIDs := b.idx.children[id]; len(childIDs) > 0 {
		name := b.idx.entries[childIDs[0]].RelName
		children := make([]*Node, len(childIDs))
		for i, cid := range childIDs {
			children[i] = newNode(b.idx.entries[cid])
		}
		node.Children = children

		var inner *Node
		switch b.kinds[name] {
		case KindSpan:
			node.Shape = ShapeSpan
			inner = node
		case KindMultiNuclear:
			node.Shape = ShapeGroup
			node.Group = &GroupRelation{Name: name, Parent: node}
			b.tree.Groups = append(b.tree.Groups, node.Group)
		default:
			return fmt.Errorf("%w: children of %q use relation %q of kind %s", ErrMalformed, id, name, b.kinds[name])
		}

		for i, cid := range childIDs {
			if err := b.resolve(cid, children[i], inner); err != nil {
				return err
			}
		}

		slices.SortStableFunc(node.Children, func(a, c *Node) int { return a.MinID - c.MinID })
		node.MinID = node.Children[0].MinID
		node.MaxID = node.Children[len(node.Children)-1].MaxID
		if node.Group != nil {
			node.Group.Nuclei = node.Children
		}
	}

	var ok bool
	switch node.Shape {
	case ShapeSpan:
		ok = entry.GroupType == GroupSpan
	case ShapeGroup:
		ok = entry.GroupType == GroupMultiNuc
	default:
		ok = entry.IsSegment()
	}
	if !ok {
		return fmt.Errorf("%w: entry %q has type %q but resolves to a %s node", ErrMalformed, id, entry.GroupType, shapeName(node.Shape))
	}
	return nil
}

func shapeName(s Shape) string {
	switch s {
	case ShapeSpan:
		return "span"
	case ShapeGroup:
		return "multi-nuclear"
	default:
		return "leaf"
	}
}
