package rsttree

// Kind classifies a relation name declared in a document header.
type Kind int

const (
	KindMonoNuclear Kind = iota
	KindMultiNuclear
	KindSpan
)

func (k Kind) String() string {
	switch k {
	case KindMonoNuclear:
		return "rst"
	case KindMultiNuclear:
		return "multinuc"
	case KindSpan:
		return "span"
	default:
		return "unknown"
	}
}

// Shape is the structural role of a node inside the tree.
type Shape int

const (
	ShapeLeaf  Shape = iota // Elementary discourse unit
	ShapeSpan               // Parent of a structural span
	ShapeGroup              // Parent of a multi-nuclear group
)

// Tree is the root of a parsed discourse annotation.
type Tree struct {
	Relations map[string]Kind   // Relation name -> kind, from the document header
	Root      *Node             // nil for an empty document
	Binary    []*BinaryRelation // Mono-nuclear relations, in discovery order
	Groups    []*GroupRelation  // Multi-nuclear relations, in discovery order
}

// Node is a leaf or an internal node of the discourse tree.
type Node struct {
	ID       string  // Entry id from the source document
	Text     string  // Segment text (leaves only)
	Shape    Shape   // Structural role
	Children []*Node // Span or group children, sorted by MinID
	MinID    int     // First leaf position covered
	MaxID    int     // Last leaf position covered

	Satellite   *BinaryRelation // Relation in which this node is the nucleus
	SatelliteOf *BinaryRelation // Relation in which this node is the satellite
	Group       *GroupRelation  // Set when Shape == ShapeGroup
}

// IsLeaf reports whether the node is an elementary discourse unit.
func (n *Node) IsLeaf() bool { return n.Shape == ShapeLeaf }

// BinaryRelation is an asymmetric satellite/nucleus pair.
type BinaryRelation struct {
	Name      string
	Satellite *Node
	Nucleus   *Node
}

// GroupRelation joins two or more nuclei of equal rank.
type GroupRelation struct {
	Name   string
	Parent *Node
	Nuclei []*Node // Document order
}
