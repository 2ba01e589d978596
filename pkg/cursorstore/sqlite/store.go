package sqlite

import (
	"codeberg.org/miketth/tagcycle/pkg/cursorstore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type CursorStore struct {
	db      *sql.DB
	querier *Queries
}

func NewCursorStore(filename string, log *zap.SugaredLogger) (*CursorStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &CursorStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *CursorStore) Close() error {
	return s.db.Close()
}

func (s *CursorStore) GetCursor(output, tag string) (int, bool, error) {
	cursor, err := s.querier.GetCursor(context.Background(), output, tag)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("sqlite select: %w", err)
	}

	return int(cursor.Position), true, nil
}

func (s *CursorStore) SetCursor(output, tag string, cursor int) error {
	if err := s.querier.SetCursor(context.Background(), SetCursorParams{
		Output:   output,
		Tag:      tag,
		Position: int64(cursor),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
