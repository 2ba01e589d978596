package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type Cursor struct {
	Output   string
	Tag      string
	Position int64
	Updated  int64
}

const getCursor = `
select output, tag, position, updated from cursors
where output = ? and tag = ?
`

func (q *Queries) GetCursor(ctx context.Context, output, tag string) (Cursor, error) {
	row := q.db.QueryRowContext(ctx, getCursor, output, tag)
	var c Cursor
	err := row.Scan(&c.Output, &c.Tag, &c.Position, &c.Updated)
	return c, err
}

type SetCursorParams struct {
	Output   string
	Tag      string
	Position int64
}

const setCursor = `
insert into cursors (output, tag, position, updated)
values (?, ?, ?, strftime('%s', 'now'))
on conflict (output, tag) do update
set position = excluded.position, updated = excluded.updated
`

func (q *Queries) SetCursor(ctx context.Context, arg SetCursorParams) error {
	_, err := q.db.ExecContext(ctx, setCursor, arg.Output, arg.Tag, arg.Position)
	return err
}

const dumpTables = `
select sql from sqlite_master
where type = 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpTables)
}

const dumpRest = `
select sql from sqlite_master
where type != 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpRest)
}

func (q *Queries) dump(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var statement *string
		if err := rows.Scan(&statement); err != nil {
			return nil, err
		}
		items = append(items, statement)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
