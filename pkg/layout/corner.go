package layout

import (
	"fmt"
	"strings"
)

// CornerLocation is the corner of the output holding the main window.
type CornerLocation int

const (
	TopLeft CornerLocation = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerNames = map[CornerLocation]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (c CornerLocation) String() string {
	if name, ok := cornerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("corner(%d)", int(c))
}

// ParseCornerLocation parses one of "top-left", "top-right", "bottom-left"
// or "bottom-right". Underscores are accepted in place of dashes.
func ParseCornerLocation(str string) (CornerLocation, error) {
	for loc, name := range cornerNames {
		if name == str || underscored(name) == str {
			return loc, nil
		}
	}
	return TopLeft, fmt.Errorf("unknown corner location %q", str)
}

func underscored(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func (c CornerLocation) left() bool { return c == TopLeft || c == BottomLeft }
func (c CornerLocation) top() bool  { return c == TopLeft || c == TopRight }

// Corner places the main window in a corner, with a vertical stack beside it
// and a horizontal stack below or above it. The remaining windows are dealt
// out to the two stacks, the vertical one first.
type Corner struct {
	Location     CornerLocation
	WidthFactor  float64
	HeightFactor float64
	OuterGaps    float64
	InnerGaps    float64
}

func NewCorner(loc CornerLocation) Corner {
	return Corner{
		Location:     loc,
		WidthFactor:  defaultFactor,
		HeightFactor: defaultFactor,
		OuterGaps:    defaultGaps,
		InnerGaps:    defaultGaps,
	}
}

func (Corner) generator() {}

func (g Corner) layout(windows int) *Node {
	root := NewRoot(g.OuterGaps)
	switch windows {
	case 0:
		return root
	case 1:
		root.Children = []*Node{NewSlot(g.InnerGaps)}
		return root
	}

	width := clampFactor(g.WidthFactor)
	height := clampFactor(g.HeightFactor)

	corner := NewSlot(g.InnerGaps)
	var mainColumn, side *Node

	if windows == 2 {
		mainColumn = corner
		side = NewSlot(g.InnerGaps)
	} else {
		rest := windows - 1
		vertical := (rest + 1) / 2
		horizontal := rest - vertical

		horizStack := stack(Row, horizontal, g.InnerGaps).WithProportion(1 - height)
		corner.WithProportion(height)
		if g.Location.top() {
			mainColumn = NewContainer(Column, corner, horizStack)
		} else {
			mainColumn = NewContainer(Column, horizStack, corner)
		}
		side = stack(Column, vertical, g.InnerGaps)
	}

	mainColumn.WithProportion(width)
	side.WithProportion(1 - width)
	if g.Location.left() {
		root.Children = []*Node{mainColumn, side}
	} else {
		root.Children = []*Node{side, mainColumn}
	}
	return root
}
