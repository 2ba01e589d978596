// Package cycler keeps an independent layout selection per tag and
// dispatches layout requests to the selected generator.
package cycler

import (
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"errors"
	"fmt"
	"hash/maphash"
	"sync"
)

var (
	ErrNoGenerators     = errors.New("no layout generators configured")
	ErrCursorOutOfRange = errors.New("cursor out of range")
)

// Response is the answer to a single layout request.
type Response struct {
	Root   *layout.Node
	TreeID uint64
}

// Cycler holds a fixed list of generators and a cursor into it for every
// tag that has been cycled. Tags that were never cycled use the first
// generator. It is safe for concurrent use.
//
// Entries for tags that no longer exist on the host are never removed.
type Cycler[T comparable] struct {
	lock       sync.Mutex
	generators []layout.Generator
	cursors    map[T]int
	current    T
	seed       maphash.Seed
}

func New[T comparable](generators []layout.Generator) (*Cycler[T], error) {
	if len(generators) == 0 {
		return nil, ErrNoGenerators
	}

	return &Cycler[T]{
		generators: append([]layout.Generator(nil), generators...),
		cursors:    make(map[T]int),
		seed:       maphash.MakeSeed(),
	}, nil
}

// SetCurrentTag selects the tag that Layout and CurrentTreeID act on.
func (c *Cycler[T]) SetCurrentTag(tag T) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.current = tag
}

// Layout computes the tree for windows windows with the generator selected
// for the current tag.
func (c *Cycler[T]) Layout(windows int) *layout.Node {
	c.lock.Lock()
	defer c.lock.Unlock()

	return layout.Generate(c.generators[c.cursor(c.current)], windows)
}

// CurrentTreeID identifies the shape Layout currently produces for the
// current tag. It changes whenever the tag's cursor changes.
func (c *Cycler[T]) CurrentTreeID() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.treeID(c.current)
}

// Request sets the current tag and computes its layout in one step, so a
// concurrent cycle cannot land between the two.
func (c *Cycler[T]) Request(tag T, windows int) Response {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.current = tag
	return Response{
		Root:   layout.Generate(c.generators[c.cursor(tag)], windows),
		TreeID: c.treeID(tag),
	}
}

// CycleForward selects the next generator for tag, wrapping to the first,
// and returns the new cursor.
func (c *Cycler[T]) CycleForward(tag T) int {
	return c.step(tag, 1)
}

// CycleBackward selects the previous generator for tag, wrapping to the
// last, and returns the new cursor.
func (c *Cycler[T]) CycleBackward(tag T) int {
	return c.step(tag, -1)
}

func (c *Cycler[T]) step(tag T, delta int) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	n := len(c.generators)
	next := ((c.cursors[tag]+delta)%n + n) % n
	c.cursors[tag] = next
	return next
}

// Seed sets the cursor of tag directly, for restoring a remembered
// selection.
func (c *Cycler[T]) Seed(tag T, cursor int) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if cursor < 0 || cursor >= len(c.generators) {
		return fmt.Errorf("seed cursor %d of %d generators: %w", cursor, len(c.generators), ErrCursorOutOfRange)
	}
	c.cursors[tag] = cursor
	return nil
}

// Cursor returns the selected generator index for tag without recording
// the tag.
func (c *Cycler[T]) Cursor(tag T) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.cursor(tag)
}

// Known reports whether tag has a cursor entry.
func (c *Cycler[T]) Known(tag T) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, ok := c.cursors[tag]
	return ok
}

// Generators returns a copy of the configured generator list.
func (c *Cycler[T]) Generators() []layout.Generator {
	return append([]layout.Generator(nil), c.generators...)
}

// Len returns the number of configured generators.
func (c *Cycler[T]) Len() int {
	return len(c.generators)
}

func (c *Cycler[T]) cursor(tag T) int {
	if idx, ok := c.cursors[tag]; ok {
		return idx
	}
	return 0
}

func (c *Cycler[T]) treeID(tag T) uint64 {
	return maphash.Comparable(c.seed, tag) + uint64(c.cursor(tag))
}
