package reltable

// Element is one side of a relation: a leaf or a contiguous range of leaves.
type Element struct {
	MinID     int  `json:"min_id"`
	MaxID     int  `json:"max_id"`
	IsNuclear bool `json:"is_nuclear"`
	IsLeaf    bool `json:"is_leaf"`
}

// SameRange reports whether both elements cover the same leaves.
func (e Element) SameRange(o Element) bool {
	return e.MinID == o.MinID && e.MaxID == o.MaxID
}

// Direction is the reading direction from constituent to attachment point.
type Direction int

const (
	Bidirectional Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "bidirectional"
	}
}

// Relation is one flattened, comparable relation record.
type Relation struct {
	Position              int       `json:"position"` // 1-based, after sorting
	Name                  string    `json:"name"`
	IsMultiNuclear        bool      `json:"is_multinuclear"`
	Constituent           Element   `json:"constituent"`
	AttachmentPoint       Element   `json:"attachment_point"`
	CentralSubconstituent []Element `json:"central_subconstituent"`
}

// Direction derives the nuclearity direction. Overlapping ranges fall back
// to Bidirectional.
func (r Relation) Direction() Direction {
	switch {
	case r.IsMultiNuclear:
		return Bidirectional
	case r.Constituent.MaxID < r.AttachmentPoint.MinID:
		return Forward
	case r.Constituent.MinID > r.AttachmentPoint.MaxID:
		return Backward
	default:
		return Bidirectional
	}
}

// Table is the ordered relation table of one document.
type Table struct {
	Name      string     `json:"name"`
	Relations []Relation `json:"relations"`
}

// Len returns the number of relations.
func (t *Table) Len() int { return len(t.Relations) }
