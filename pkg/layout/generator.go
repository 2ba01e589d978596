package layout

import "fmt"

// Generator is one of the layout algorithms a tag can be switched to. The
// set is closed: MasterStack, Dwindle, Spiral, Corner and Fair.
type Generator interface {
	generator()
}

const (
	defaultGaps   = 4
	defaultFactor = 0.5
)

// Generate computes the layout tree for windows windows using g.
func Generate(g Generator, windows int) *Node {
	if windows < 0 {
		windows = 0
	}

	switch g := g.(type) {
	case MasterStack:
		return g.layout(windows)
	case Dwindle:
		return g.layout(windows)
	case Spiral:
		return g.layout(windows)
	case Corner:
		return g.layout(windows)
	case Fair:
		return g.layout(windows)
	}

	return NewRoot(0)
}

// Describe returns a short human readable name for g.
func Describe(g Generator) string {
	switch g := g.(type) {
	case MasterStack:
		return fmt.Sprintf("master-stack (%s)", g.Side)
	case Dwindle:
		return "dwindle"
	case Spiral:
		return "spiral"
	case Corner:
		return fmt.Sprintf("corner (%s)", g.Location)
	case Fair:
		return fmt.Sprintf("fair (%s)", g.Axis)
	}
	return "unknown"
}

// clampFactor keeps split factors within [0.1, 0.9] so both sides of a split
// stay visible. Zero is an unset factor and gets the default.
func clampFactor(f float64) float64 {
	switch {
	case f == 0:
		return defaultFactor
	case f < 0.1:
		return 0.1
	case f > 0.9:
		return 0.9
	}
	return f
}
