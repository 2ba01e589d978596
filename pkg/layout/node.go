package layout

import "fmt"

// Direction is the axis along which a container places its children.
type Direction int

const (
	// Row places children side by side, left to right.
	Row Direction = iota
	// Column stacks children top to bottom.
	Column
)

func (d Direction) String() string {
	if d == Column {
		return "column"
	}
	return "row"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "row":
		*d = Row
	case "column":
		*d = Column
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// Gaps is the empty space kept around a node, in logical pixels.
type Gaps struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// UniformGaps returns gaps of the same size on every side.
func UniformGaps(size float64) Gaps {
	return Gaps{Left: size, Right: size, Top: size, Bottom: size}
}

// Node is one element of a layout tree. A node is either a container with
// children or a slot that holds exactly one window.
type Node struct {
	Proportion float64   `json:"proportion"`
	Direction  Direction `json:"direction"`
	Gaps       Gaps      `json:"gaps"`
	Slot       bool      `json:"slot,omitempty"`
	Children   []*Node   `json:"children,omitempty"`
}

// NewRoot returns an empty root container. A root without children is the
// tree for zero windows.
func NewRoot(outerGaps float64) *Node {
	return &Node{Proportion: 1, Direction: Row, Gaps: UniformGaps(outerGaps)}
}

// NewSlot returns a leaf node for a single window.
func NewSlot(innerGaps float64) *Node {
	return &Node{Proportion: 1, Gaps: UniformGaps(innerGaps), Slot: true}
}

// NewContainer returns a container laying out children along dir.
func NewContainer(dir Direction, children ...*Node) *Node {
	return &Node{Proportion: 1, Direction: dir, Children: children}
}

// WithProportion sets the relative size of n among its siblings and
// returns n.
func (n *Node) WithProportion(p float64) *Node {
	n.Proportion = p
	return n
}

// Slots returns the number of window slots in the tree rooted at n.
func (n *Node) Slots() int {
	if n == nil {
		return 0
	}
	if n.Slot {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += c.Slots()
	}
	return count
}

// stack returns count slots laid out along dir.
func stack(dir Direction, count int, innerGaps float64) *Node {
	children := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, NewSlot(innerGaps))
	}
	return NewContainer(dir, children...)
}
