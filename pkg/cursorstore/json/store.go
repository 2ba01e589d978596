package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const DefaultSaveInterval = time.Minute

type CursorStore struct {
	cursors      map[string]map[string]int
	file         *os.File
	lock         sync.Mutex
	dirty        bool
	saveInterval time.Duration
}

func NewCursorStore(filename string, saveInterval time.Duration) (*CursorStore, error) {
	fileExists := true
	info, err := os.Stat(filename)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	if saveInterval <= 0 {
		saveInterval = DefaultSaveInterval
	}

	store := &CursorStore{
		cursors:      make(map[string]map[string]int),
		file:         file,
		dirty:        true,
		saveInterval: saveInterval,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *CursorStore) Close() error {
	return s.file.Close()
}

func (s *CursorStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.cursors)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if s.cursors == nil {
		s.cursors = make(map[string]map[string]int)
	}

	return nil
}

func (s *CursorStore) save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.cursors)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper writes pending changes every save interval and once more when
// ctx is done. It closes the file on return.
func (s *CursorStore) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	ticker := time.NewTicker(s.saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-ticker.C:
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *CursorStore) GetCursor(output, tag string) (int, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	cursor, ok := s.cursors[output][tag]
	return cursor, ok, nil
}

func (s *CursorStore) SetCursor(output, tag string, cursor int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	tags, ok := s.cursors[output]
	if !ok {
		tags = make(map[string]int)
		s.cursors[output] = tags
	}
	tags[tag] = cursor
	s.dirty = true
	return nil
}
