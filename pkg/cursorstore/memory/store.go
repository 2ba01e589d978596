package memory

import "sync"

type CursorStore struct {
	cursors map[string]map[string]int
	lock    sync.Mutex
}

func NewCursorStore() *CursorStore {
	return &CursorStore{
		cursors: make(map[string]map[string]int),
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
	return nil
}
