package layout

import "fmt"

// Side is the edge of the output the master area is placed against.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

var sideNames = map[Side]string{
	Left:   "left",
	Right:  "right",
	Top:    "top",
	Bottom: "bottom",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// ParseSide parses one of "left", "right", "top" or "bottom".
func ParseSide(str string) (Side, error) {
	for side, name := range sideNames {
		if name == str {
			return side, nil
		}
	}
	return Left, fmt.Errorf("unknown master side %q", str)
}

// MasterStack puts MasterCount windows into a master area against Side and
// stacks the rest in the remaining space.
type MasterStack struct {
	Side Side

	// Factor is the share of the output taken by the master area.
	Factor      float64
	// MasterCount below 1 is treated as 1.
	MasterCount int

	OuterGaps float64
	InnerGaps float64
}

// NewMasterStack returns a MasterStack with the default factor, master count
// and gaps.
func NewMasterStack(side Side) MasterStack {
	return MasterStack{
		Side:        side,
		Factor:      defaultFactor,
		MasterCount: 1,
		OuterGaps:   defaultGaps,
		InnerGaps:   defaultGaps,
	}
}

func (MasterStack) generator() {}

func (g MasterStack) layout(windows int) *Node {
	root := NewRoot(g.OuterGaps)
	if windows == 0 {
		return root
	}

	masterCount := g.MasterCount
	if masterCount < 1 {
		masterCount = 1
	}
	if masterCount > windows {
		masterCount = windows
	}
	stackCount := windows - masterCount

	// the split runs across the master side, the areas stack along it
	split, inner := Row, Column
	if g.Side == Top || g.Side == Bottom {
		split, inner = Column, Row
	}
	root.Direction = split

	factor := clampFactor(g.Factor)
	master := stack(inner, masterCount, g.InnerGaps)
	if stackCount == 0 {
		root.Children = []*Node{master}
		return root
	}

	master.WithProportion(factor)
	rest := stack(inner, stackCount, g.InnerGaps).WithProportion(1 - factor)

	if g.Side == Right || g.Side == Bottom {
		root.Children = []*Node{rest, master}
	} else {
		root.Children = []*Node{master, rest}
	}
	return root
}
