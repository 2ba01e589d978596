package layout

// Dwindle gives the first window Ratio of the space and recursively splits
// the remainder, alternating between rows and columns.
type Dwindle struct {
	Ratio     float64
	OuterGaps float64
	InnerGaps float64
}

func NewDwindle() Dwindle {
	return Dwindle{Ratio: defaultFactor, OuterGaps: defaultGaps, InnerGaps: defaultGaps}
}

func (Dwindle) generator() {}

func (g Dwindle) layout(windows int) *Node {
	root := NewRoot(g.OuterGaps)
	if windows == 0 {
		return root
	}
	root.Children = []*Node{split(windows, 0, clampFactor(g.Ratio), g.InnerGaps, false)}
	return root
}

// Spiral is Dwindle where the remaining area turns around the output, so
// consecutive windows wind inwards clockwise.
type Spiral struct {
	Ratio     float64
	OuterGaps float64
	InnerGaps float64
}

func NewSpiral() Spiral {
	return Spiral{Ratio: defaultFactor, OuterGaps: defaultGaps, InnerGaps: defaultGaps}
}

func (Spiral) generator() {}

func (g Spiral) layout(windows int) *Node {
	root := NewRoot(g.OuterGaps)
	if windows == 0 {
		return root
	}
	root.Children = []*Node{split(windows, 0, clampFactor(g.Ratio), g.InnerGaps, true)}
	return root
}

// split builds the binary subdivision shared by Dwindle and Spiral. With
// spiral set, every second pair of levels puts the window after the
// remainder instead of before it.
func split(windows, depth int, ratio, innerGaps float64, spiral bool) *Node {
	if windows == 1 {
		return NewSlot(innerGaps)
	}

	dir := Row
	if depth%2 == 1 {
		dir = Column
	}

	slot := NewSlot(innerGaps).WithProportion(ratio)
	rest := split(windows-1, depth+1, ratio, innerGaps, spiral).WithProportion(1 - ratio)

	if spiral && (depth/2)%2 == 1 {
		return NewContainer(dir, rest, slot)
	}
	return NewContainer(dir, slot, rest)
}
