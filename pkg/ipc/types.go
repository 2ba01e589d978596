package ipc

import (
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"codeberg.org/miketth/tagcycle/pkg/tagcycle"
)

type tag struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type output struct {
	Name string `json:"name"`
	Tags []tag  `json:"tags"`
}

func (o output) ToOutput() tagcycle.Output {
	out := tagcycle.Output{
		Name: o.Name,
		Tags: make([]tagcycle.Tag, 0, len(o.Tags)),
	}
	for _, t := range o.Tags {
		out.Tags = append(out.Tags, tagcycle.Tag{
			ID:     tagcycle.TagID(t.ID),
			Name:   t.Name,
			Active: t.Active,
		})
	}
	return out
}

type layoutResponse struct {
	Output string       `json:"output"`
	TreeID uint64       `json:"tree_id"`
	Root   *layout.Node `json:"root"`
}
