package config

import (
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"fmt"
)

// GeneratorConfig is one [[generator]] table. Fields that do not apply to
// the generator type are ignored.
type GeneratorConfig struct {
	Type string `toml:"type"`

	// master_stack
	Side        string   `toml:"side,omitempty"`
	Factor      *float64 `toml:"factor,omitempty"`
	MasterCount *int     `toml:"master_count,omitempty"`

	// dwindle and spiral
	Ratio *float64 `toml:"ratio,omitempty"`

	// corner
	Location     string   `toml:"location,omitempty"`
	WidthFactor  *float64 `toml:"width_factor,omitempty"`
	HeightFactor *float64 `toml:"height_factor,omitempty"`

	// fair
	Axis string `toml:"axis,omitempty"`

	OuterGaps *float64 `toml:"outer_gaps,omitempty"`
	InnerGaps *float64 `toml:"inner_gaps,omitempty"`
}

// DefaultGenerators is the built-in cycling order.
func DefaultGenerators() []GeneratorConfig {
	return []GeneratorConfig{
		{Type: "master_stack", Side: "left"},
		{Type: "master_stack", Side: "right"},
		{Type: "master_stack", Side: "top"},
		{Type: "master_stack", Side: "bottom"},
		{Type: "dwindle"},
		{Type: "spiral"},
		{Type: "corner", Location: "top-left"},
		{Type: "corner", Location: "top-right"},
		{Type: "corner", Location: "bottom-left"},
		{Type: "corner", Location: "bottom-right"},
		{Type: "fair", Axis: "vertical"},
		{Type: "fair", Axis: "horizontal"},
	}
}

// BuildGenerators turns the configured tables into layout generators, in
// order.
func (c *Config) BuildGenerators() ([]layout.Generator, error) {
	out := make([]layout.Generator, 0, len(c.Generators))
	for i, gc := range c.Generators {
		g, err := gc.Build()
		if err != nil {
			return nil, fmt.Errorf("generator %d: %w", i+1, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func (gc GeneratorConfig) Build() (layout.Generator, error) {
	switch gc.Type {
	case "master_stack":
		side := layout.Left
		if gc.Side != "" {
			var err error
			if side, err = layout.ParseSide(gc.Side); err != nil {
				return nil, err
			}
		}
		g := layout.NewMasterStack(side)
		setFloat(&g.Factor, gc.Factor)
		if gc.MasterCount != nil {
			g.MasterCount = *gc.MasterCount
		}
		setFloat(&g.OuterGaps, gc.OuterGaps)
		setFloat(&g.InnerGaps, gc.InnerGaps)
		return g, nil

	case "dwindle":
		g := layout.NewDwindle()
		setFloat(&g.Ratio, gc.Ratio)
		setFloat(&g.OuterGaps, gc.OuterGaps)
		setFloat(&g.InnerGaps, gc.InnerGaps)
		return g, nil

	case "spiral":
		g := layout.NewSpiral()
		setFloat(&g.Ratio, gc.Ratio)
		setFloat(&g.OuterGaps, gc.OuterGaps)
		setFloat(&g.InnerGaps, gc.InnerGaps)
		return g, nil

	case "corner":
		loc := layout.TopLeft
		if gc.Location != "" {
			var err error
			if loc, err = layout.ParseCornerLocation(gc.Location); err != nil {
				return nil, err
			}
		}
		g := layout.NewCorner(loc)
		setFloat(&g.WidthFactor, gc.WidthFactor)
		setFloat(&g.HeightFactor, gc.HeightFactor)
		setFloat(&g.OuterGaps, gc.OuterGaps)
		setFloat(&g.InnerGaps, gc.InnerGaps)
		return g, nil

	case "fair":
		axis := layout.Vertical
		if gc.Axis != "" {
			var err error
			if axis, err = layout.ParseAxis(gc.Axis); err != nil {
				return nil, err
			}
		}
		g := layout.NewFair(axis)
		setFloat(&g.OuterGaps, gc.OuterGaps)
		setFloat(&g.InnerGaps, gc.InnerGaps)
		return g, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, gc.Type)
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
