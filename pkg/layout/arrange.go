package layout

// Rect is an area on an output in logical pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) shrink(g Gaps) Rect {
	out := Rect{
		X:      r.X + g.Left,
		Y:      r.Y + g.Top,
		Width:  r.Width - g.Left - g.Right,
		Height: r.Height - g.Top - g.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Arrange resolves the tree rooted at root into one rectangle per slot, in
// tree order, for an output of the given size.
func Arrange(root *Node, area Rect) []Rect {
	rects := make([]Rect, 0, root.Slots())
	return arrange(root, area, rects)
}

func arrange(n *Node, area Rect, rects []Rect) []Rect {
	if n == nil {
		return rects
	}

	area = area.shrink(n.Gaps)
	if n.Slot {
		return append(rects, area)
	}

	total := 0.0
	for _, c := range n.Children {
		total += weight(c)
	}
	if total == 0 {
		return rects
	}

	offset := 0.0
	for _, c := range n.Children {
		share := weight(c) / total
		child := area
		if n.Direction == Row {
			child.X = area.X + offset
			child.Width = area.Width * share
			offset += child.Width
		} else {
			child.Y = area.Y + offset
			child.Height = area.Height * share
			offset += child.Height
		}
		rects = arrange(c, child, rects)
	}
	return rects
}

func weight(n *Node) float64 {
	if n.Proportion <= 0 {
		return 0
	}
	return n.Proportion
}
