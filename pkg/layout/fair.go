package layout

import (
	"fmt"
	"math"
)

// Axis is the orientation of the lines Fair arranges windows in.
type Axis int

const (
	// Vertical lines are columns placed side by side.
	Vertical Axis = iota
	// Horizontal lines are rows stacked on top of each other.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis parses "vertical" or "horizontal".
func ParseAxis(str string) (Axis, error) {
	switch str {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown axis %q", str)
}

// Fair splits the output into roughly sqrt(n) lines of equal size and fills
// them as evenly as possible. Later lines take the extra windows.
type Fair struct {
	Axis      Axis
	OuterGaps float64
	InnerGaps float64
}

func NewFair(axis Axis) Fair {
	return Fair{Axis: axis, OuterGaps: defaultGaps, InnerGaps: defaultGaps}
}

func (Fair) generator() {}

func (g Fair) layout(windows int) *Node {
	root := NewRoot(g.OuterGaps)
	if windows == 0 {
		return root
	}

	outer, inner := Row, Column
	if g.Axis == Horizontal {
		outer, inner = Column, Row
	}
	root.Direction = outer

	lines := int(math.Round(math.Sqrt(float64(windows))))
	if windows == 2 {
		lines = 2
	}
	if lines < 1 {
		lines = 1
	}

	perLine := windows / lines
	extra := windows % lines
	for i := 0; i < lines; i++ {
		count := perLine
		if i >= lines-extra {
			count++
		}
		root.Children = append(root.Children, stack(inner, count, g.InnerGaps))
	}
	return root
}
