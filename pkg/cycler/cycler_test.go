package cycler

import (
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand"
	"sync"
	"testing"
)

type tag uint32

const (
	tagA tag = iota + 1
	tagB
)

func defaultGenerators() []layout.Generator {
	return []layout.Generator{
		layout.NewMasterStack(layout.Left),
		layout.NewMasterStack(layout.Right),
		layout.NewDwindle(),
		layout.NewSpiral(),
		layout.NewCorner(layout.TopLeft),
		layout.NewFair(layout.Vertical),
	}
}

func newCycler(t *testing.T, generators ...layout.Generator) *Cycler[tag] {
	t.Helper()
	if len(generators) == 0 {
		generators = defaultGenerators()
	}
	c, err := New[tag](generators)
	require.NoError(t, err)
	return c
}

func TestNewRejectsEmptyList(t *testing.T) {
	c, err := New[tag](nil)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrNoGenerators))

	_, err = New[string]([]layout.Generator{})
	assert.ErrorIs(t, err, ErrNoGenerators)
}

func TestNewCopiesGenerators(t *testing.T) {
	gens := []layout.Generator{layout.NewDwindle(), layout.NewSpiral()}
	c := newCycler(t, gens...)
	gens[0] = layout.NewFair(layout.Horizontal)

	assert.Equal(t, layout.NewDwindle(), c.Generators()[0])
	assert.Equal(t, 2, c.Len())
}

func TestMasterStackThenDwindle(t *testing.T) {
	master, dwindle := layout.NewMasterStack(layout.Left), layout.NewDwindle()
	c := newCycler(t, master, dwindle)

	c.SetCurrentTag(tagA)
	assert.Equal(t, layout.Generate(master, 3), c.Layout(3))

	assert.Equal(t, 1, c.CycleForward(tagA))
	assert.Equal(t, 1, c.Cursor(tagA))
	assert.Equal(t, layout.Generate(dwindle, 3), c.Layout(3))

	assert.Equal(t, 0, c.CycleForward(tagA))
	assert.Equal(t, layout.Generate(master, 3), c.Layout(3))
}

func TestCycleBackwardWrapsPerTag(t *testing.T) {
	c := newCycler(t)

	assert.Equal(t, c.Len()-1, c.CycleBackward(tagA))
	assert.Equal(t, c.Len()-1, c.Cursor(tagA))
	assert.Equal(t, 0, c.Cursor(tagB))
}

func TestFullCycleReturnsToStart(t *testing.T) {
	c := newCycler(t)
	c.CycleForward(tagA)
	c.CycleForward(tagA)
	start := c.Cursor(tagA)

	for i := 0; i < c.Len(); i++ {
		c.CycleForward(tagA)
	}
	assert.Equal(t, start, c.Cursor(tagA))

	for i := 0; i < c.Len(); i++ {
		c.CycleBackward(tagA)
	}
	assert.Equal(t, start, c.Cursor(tagA))
}

func TestCursorStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for size := 1; size <= 5; size++ {
		gens := defaultGenerators()[:size]
		c := newCycler(t, gens...)
		for i := 0; i < 500; i++ {
			var got int
			if rng.Intn(2) == 0 {
				got = c.CycleForward(tagA)
			} else {
				got = c.CycleBackward(tagA)
			}
			require.GreaterOrEqual(t, got, 0)
			require.Less(t, got, size)
		}
	}
}

func TestCyclingIsolatesTags(t *testing.T) {
	c := newCycler(t)
	c.CycleForward(tagB)
	c.CycleForward(tagB)

	for i := 0; i < 10; i++ {
		c.CycleForward(tagA)
		c.CycleBackward(tagA)
		c.CycleBackward(tagA)
	}
	assert.Equal(t, 2, c.Cursor(tagB))
}

func TestUntouchedTagUsesFirstGenerator(t *testing.T) {
	gens := defaultGenerators()
	c := newCycler(t, gens...)
	c.CycleForward(tagB)

	c.SetCurrentTag(tagA)
	for n := 0; n < 8; n++ {
		assert.Equal(t, layout.Generate(gens[0], n), c.Layout(n))
	}
}

func TestReadsDoNotRecordTags(t *testing.T) {
	c := newCycler(t)

	c.SetCurrentTag(tagA)
	c.Layout(4)
	c.CurrentTreeID()
	c.Cursor(tagA)
	c.Request(tagA, 2)
	assert.False(t, c.Known(tagA))

	c.CycleForward(tagA)
	assert.True(t, c.Known(tagA))
}

func TestCurrentTreeID(t *testing.T) {
	c := newCycler(t)
	c.SetCurrentTag(tagA)

	first := c.CurrentTreeID()
	assert.Equal(t, first, c.CurrentTreeID())

	c.CycleForward(tagA)
	second := c.CurrentTreeID()
	assert.NotEqual(t, first, second)

	// other tags' cycles leave this tag's id alone
	c.CycleForward(tagB)
	assert.Equal(t, second, c.CurrentTreeID())

	// every cursor position gives this tag a distinct id
	seen := map[uint64]bool{}
	for i := 0; i < c.Len(); i++ {
		seen[c.CurrentTreeID()] = true
		c.CycleForward(tagA)
	}
	assert.Len(t, seen, c.Len())
}

func TestRequestMatchesSeparateCalls(t *testing.T) {
	c := newCycler(t)
	c.CycleForward(tagA)
	c.CycleForward(tagA)

	resp := c.Request(tagA, 5)

	c.SetCurrentTag(tagA)
	assert.Equal(t, c.Layout(5), resp.Root)
	assert.Equal(t, c.CurrentTreeID(), resp.TreeID)
	assert.Equal(t, 5, resp.Root.Slots())
}

func TestSeed(t *testing.T) {
	c := newCycler(t)

	require.NoError(t, c.Seed(tagA, 3))
	assert.True(t, c.Known(tagA))
	assert.Equal(t, 3, c.Cursor(tagA))
	assert.Equal(t, 4, c.CycleForward(tagA))

	assert.ErrorIs(t, c.Seed(tagB, c.Len()), ErrCursorOutOfRange)
	assert.ErrorIs(t, c.Seed(tagB, -1), ErrCursorOutOfRange)
	assert.False(t, c.Known(tagB))
}

func TestCycleVisibleToNextLayout(t *testing.T) {
	gens := defaultGenerators()
	c := newCycler(t, gens...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(tg tag) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.CycleForward(tg)
				c.Request(tg, 3)
				c.CycleBackward(tg)
			}
		}(tag(i + 10))
	}

	for j := 0; j < 50; j++ {
		idx := c.CycleForward(tagA)
		resp := c.Request(tagA, 4)
		assert.Equal(t, layout.Generate(gens[idx], 4), resp.Root)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Equal(t, 0, c.Cursor(tag(i+10)))
	}
}
