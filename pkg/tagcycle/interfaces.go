package tagcycle

import "codeberg.org/miketth/tagcycle/pkg/cycler"

type EventListener interface {
	ReadLine() (string, error)
}

type Compositor interface {
	// FocusedOutput returns false when no output has focus.
	FocusedOutput() (Output, bool, error)
	RequestLayout(output string) error
	ApplyLayout(output string, resp cycler.Response) error
}

// TagID is the compositor's handle for a tag. Handles are unique for the
// lifetime of the compositor, not across restarts.
type TagID uint32

type Tag struct {
	ID     TagID
	Name   string
	Active bool
}

type Output struct {
	Name string
	Tags []Tag
}

// FirstActiveTag returns the first active tag of the output.
func (o Output) FirstActiveTag() (Tag, bool) {
	for _, t := range o.Tags {
		if t.Active {
			return t, true
		}
	}
	return Tag{}, false
}

// CursorStore remembers layout selections by output and tag name, which
// stay stable across compositor restarts.
type CursorStore interface {
	GetCursor(output, tag string) (int, bool, error)
	SetCursor(output, tag string, cursor int) error
}
