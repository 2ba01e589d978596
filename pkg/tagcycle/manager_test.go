package tagcycle

import (
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/memory"
	"codeberg.org/miketth/tagcycle/pkg/cycler"
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"io"
	"sync"
	"testing"
	"time"
)

type fakeListener struct {
	lines chan string
}

func (l *fakeListener) ReadLine() (string, error) {
	line, ok := <-l.lines
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

type applied struct {
	output string
	resp   cycler.Response
}

type fakeCompositor struct {
	lock      sync.Mutex
	output    Output
	hasOutput bool
	applied   []applied
	requested []string
}

func (c *fakeCompositor) FocusedOutput() (Output, bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.output, c.hasOutput, nil
}

func (c *fakeCompositor) RequestLayout(output string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.requested = append(c.requested, output)
	return nil
}

func (c *fakeCompositor) ApplyLayout(output string, resp cycler.Response) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.applied = append(c.applied, applied{output: output, resp: resp})
	return nil
}

func (c *fakeCompositor) last() applied {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.applied[len(c.applied)-1]
}

var testGenerators = []layout.Generator{
	layout.NewMasterStack(layout.Left),
	layout.NewDwindle(),
	layout.NewFair(layout.Horizontal),
}

func newTestManager(t *testing.T, comp *fakeCompositor, store CursorStore) *Manager {
	t.Helper()
	c, err := cycler.New[TagID](testGenerators)
	require.NoError(t, err)
	if store == nil {
		store = memory.NewCursorStore()
	}
	return NewManager(c, &fakeListener{}, comp, store, zap.NewNop().Sugar())
}

func focusedOn(name string, tags ...Tag) *fakeCompositor {
	return &fakeCompositor{output: Output{Name: name, Tags: tags}, hasOutput: true}
}

func TestLayoutRequestUsesFirstTag(t *testing.T) {
	comp := focusedOn("DP-3")
	m := newTestManager(t, comp, nil)

	require.NoError(t, m.processLine("layout>>DP-3,3,7:1,8:2"))
	got := comp.last()
	assert.Equal(t, "DP-3", got.output)
	assert.Equal(t, layout.Generate(testGenerators[0], 3), got.resp.Root)
	assert.Equal(t, m.cycler.Request(7, 3).TreeID, got.resp.TreeID)
}

func TestLayoutRequestWithoutTag(t *testing.T) {
	comp := focusedOn("DP-3")
	m := newTestManager(t, comp, nil)

	require.NoError(t, m.processLine("layout>>DP-3,4"))
	got := comp.last()
	assert.Equal(t, 0, got.resp.Root.Slots())
	assert.Empty(t, got.resp.Root.Children)
	assert.Zero(t, got.resp.TreeID)
}

func TestCycleForwardThenLayout(t *testing.T) {
	comp := focusedOn("DP-3",
		Tag{ID: 1, Name: "1", Active: false},
		Tag{ID: 2, Name: "2", Active: true},
	)
	store := memory.NewCursorStore()
	m := newTestManager(t, comp, store)

	require.NoError(t, m.processLine("cycleforward>>"))
	assert.Equal(t, []string{"DP-3"}, comp.requested)
	assert.Equal(t, 1, m.cycler.Cursor(2))
	assert.Equal(t, 0, m.cycler.Cursor(1))

	cursor, found, err := store.GetCursor("DP-3", "2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, cursor)

	require.NoError(t, m.processLine("layout>>DP-3,2,2:2"))
	assert.Equal(t, layout.Generate(testGenerators[1], 2), comp.last().resp.Root)

	require.NoError(t, m.processLine("cyclebackward>>"))
	require.NoError(t, m.processLine("cyclebackward>>"))
	assert.Equal(t, len(testGenerators)-1, m.cycler.Cursor(2))
}

func TestCycleWithoutFocusIsNoop(t *testing.T) {
	comp := &fakeCompositor{}
	m := newTestManager(t, comp, nil)
	require.NoError(t, m.processLine("cycleforward>>"))
	assert.Empty(t, comp.requested)

	comp = focusedOn("DP-3", Tag{ID: 1, Name: "1"})
	m = newTestManager(t, comp, nil)
	require.NoError(t, m.processLine("cyclebackward>>"))
	assert.Empty(t, comp.requested)
	assert.False(t, m.cycler.Known(1))
}

func TestRememberedCursorIsRestored(t *testing.T) {
	store := memory.NewCursorStore()
	require.NoError(t, store.SetCursor("DP-3", "1", 2))
	require.NoError(t, store.SetCursor("DP-3", "2", 42))

	comp := focusedOn("DP-3")
	m := newTestManager(t, comp, store)

	require.NoError(t, m.processLine("layout>>DP-3,3,5:1"))
	assert.Equal(t, layout.Generate(testGenerators[2], 3), comp.last().resp.Root)

	// out of range selections from an older config are ignored
	require.NoError(t, m.processLine("layout>>DP-3,3,6:2"))
	assert.Equal(t, layout.Generate(testGenerators[0], 3), comp.last().resp.Root)
	assert.False(t, m.cycler.Known(6))
}

func TestInvalidLines(t *testing.T) {
	m := newTestManager(t, focusedOn("DP-3"), nil)

	for _, line := range []string{
		"garbage",
		"layout>>DP-3",
		"layout>>DP-3,many",
		"layout>>DP-3,-1",
		"layout>>DP-3,2,x:1",
	} {
		assert.ErrorIs(t, m.processLine(line), ErrInvalidEvent, line)
	}

	assert.NoError(t, m.processLine("tagremoved>>3"))
	assert.NoError(t, m.processLine("monitoradded>>DP-4"))
}

func TestProcessLines(t *testing.T) {
	comp := focusedOn("DP-3", Tag{ID: 1, Name: "1", Active: true})
	c, err := cycler.New[TagID](testGenerators)
	require.NoError(t, err)

	listener := &fakeListener{lines: make(chan string)}
	m := NewManager(c, listener, comp, memory.NewCursorStore(), zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.ProcessLines(ctx) }()

	listener.lines <- "cycleforward>>"
	listener.lines <- "layout>>DP-3,1,1:1"
	require.Eventually(t, func() bool {
		comp.lock.Lock()
		defer comp.lock.Unlock()
		return len(comp.applied) == 1
	}, time.Second, 5*time.Millisecond)

	close(listener.lines)
	err = <-done
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, 1, c.Cursor(1))
}

func TestProcessLinesStopsOnCancel(t *testing.T) {
	listener := &fakeListener{lines: make(chan string)}
	c, err := cycler.New[TagID](testGenerators)
	require.NoError(t, err)
	m := NewManager(c, listener, focusedOn("DP-3"), memory.NewCursorStore(), zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.ProcessLines(ctx), context.Canceled)
}
