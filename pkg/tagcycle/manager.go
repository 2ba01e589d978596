package tagcycle

import (
	"codeberg.org/miketth/tagcycle/pkg/cycler"
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strconv"
	"strings"
)

var ErrInvalidEvent = errors.New("invalid event")

type Manager struct {
	cycler *cycler.Cycler[TagID]

	listener   EventListener
	compositor Compositor
	store      CursorStore
	log        *zap.SugaredLogger
}

func NewManager(
	c *cycler.Cycler[TagID],
	listener EventListener,
	compositor Compositor,
	store CursorStore,
	log *zap.SugaredLogger,
) *Manager {
	return &Manager{
		cycler:     c,
		listener:   listener,
		compositor: compositor,
		store:      store,
		log:        log,
	}
}

// ProcessLines handles events until ctx is done or reading fails. The reader
// it starts stays blocked in ReadLine after ctx is done, until the caller
// closes the listener.
func (m *Manager) ProcessLines(ctx context.Context) error {
	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		for {
			line, err := m.listener.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-lines:
			if err := m.processLine(line); err != nil {
				return fmt.Errorf("process line: %w", err)
			}
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (m *Manager) processLine(line string) error {
	evType, evData, found := strings.Cut(line, ">>")
	if !found {
		return fmt.Errorf("%w: %q", ErrInvalidEvent, line)
	}

	switch evType {
	case "layout":
		return m.processLayoutRequest(evData)
	case "cycleforward":
		return m.cycle(true)
	case "cyclebackward":
		return m.cycle(false)
	case "tagremoved":
		m.log.Debugw("tag removed, keeping its layout selection", "tag", evData)
	}

	return nil
}

// layoutRequest is the payload of a layout event:
// OUTPUT,WINDOWS[,ID:NAME...] where the tags are the output's active ones.
type layoutRequest struct {
	output  string
	windows int
	tags    []Tag
}

func parseLayoutRequest(data string) (layoutRequest, error) {
	parts := strings.Split(data, ",")
	if len(parts) < 2 {
		return layoutRequest{}, fmt.Errorf("%w: layout request %q", ErrInvalidEvent, data)
	}

	windows, err := strconv.Atoi(parts[1])
	if err != nil || windows < 0 {
		return layoutRequest{}, fmt.Errorf("%w: window count %q", ErrInvalidEvent, parts[1])
	}

	req := layoutRequest{output: parts[0], windows: windows}
	for _, field := range parts[2:] {
		if field == "" {
			continue
		}
		idStr, name, _ := strings.Cut(field, ":")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return layoutRequest{}, fmt.Errorf("%w: tag %q", ErrInvalidEvent, field)
		}
		req.tags = append(req.tags, Tag{ID: TagID(id), Name: name, Active: true})
	}

	return req, nil
}

func (m *Manager) processLayoutRequest(data string) error {
	req, err := parseLayoutRequest(data)
	if err != nil {
		return err
	}

	if len(req.tags) == 0 {
		m.log.Debugw("no active tag, sending empty layout", "output", req.output)
		return m.compositor.ApplyLayout(req.output, cycler.Response{Root: layout.NewRoot(0)})
	}

	tag := req.tags[0]
	m.restoreCursor(req.output, tag)

	resp := m.cycler.Request(tag.ID, req.windows)
	m.log.Debugw("computed layout",
		"output", req.output,
		"tag", tag.Name,
		"windows", req.windows,
		"tree_id", resp.TreeID,
	)

	if err := m.compositor.ApplyLayout(req.output, resp); err != nil {
		return fmt.Errorf("apply layout: %w", err)
	}
	return nil
}

func (m *Manager) cycle(forward bool) error {
	output, found, err := m.compositor.FocusedOutput()
	if err != nil {
		return fmt.Errorf("get focused output: %w", err)
	}
	if !found {
		return nil
	}

	tag, found := output.FirstActiveTag()
	if !found {
		return nil
	}

	m.restoreCursor(output.Name, tag)

	var cursor int
	if forward {
		cursor = m.cycler.CycleForward(tag.ID)
	} else {
		cursor = m.cycler.CycleBackward(tag.ID)
	}
	m.log.Infow("switched layout",
		"output", output.Name,
		"tag", tag.Name,
		"layout", layout.Describe(m.cycler.Generators()[cursor]),
	)

	if tag.Name != "" {
		if err := m.store.SetCursor(output.Name, tag.Name, cursor); err != nil {
			m.log.Warnw("could not remember layout", "tag", tag.Name, "error", err)
		}
	}

	if err := m.compositor.RequestLayout(output.Name); err != nil {
		return fmt.Errorf("request layout: %w", err)
	}
	return nil
}

// restoreCursor seeds the cycler with the remembered selection of a tag the
// first time the tag shows up.
func (m *Manager) restoreCursor(output string, tag Tag) {
	if m.cycler.Known(tag.ID) || tag.Name == "" {
		return
	}

	cursor, found, err := m.store.GetCursor(output, tag.Name)
	if err != nil {
		m.log.Warnw("could not look up remembered layout", "tag", tag.Name, "error", err)
		return
	}
	if !found {
		return
	}

	if err := m.cycler.Seed(tag.ID, cursor); err != nil {
		m.log.Warnw("ignoring remembered layout", "tag", tag.Name, "error", err)
	}
}
