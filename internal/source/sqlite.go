package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteSource reads one statement per row from a text column of a table in
// a SQLite database file. Rows whose column is NULL are skipped.
type SQLiteSource struct {
	path   string
	table  string
	column string
}

// NewSQLiteSource creates a source that reads column from every row of
// table, in rowid order.
func NewSQLiteSource(path, table, column string) *SQLiteSource {
	return &SQLiteSource{
		path:   path,
		table:  table,
		column: column,
	}
}

func (s *SQLiteSource) Name() string {
	return fmt.Sprintf("%s:%s.%s", s.path, s.table, s.column)
}

func (s *SQLiteSource) Statements(ctx context.Context) (<-chan Statement, <-chan error) {
	ch := make(chan Statement, 64)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(ch)
		if err := s.read(ctx, ch); err != nil {
			errc <- err
		}
	}()

	return ch, errc
}

func (s *SQLiteSource) Close() error {
	return nil
}

func (s *SQLiteSource) read(ctx context.Context, ch chan<- Statement) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.Wrapf(err, "open %s", s.path)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", quoteIdent(s.column), quoteIdent(s.table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrapf(err, "query %s", s.Name())
	}
	defer rows.Close()

	origin := fmt.Sprintf("%s:%s", s.path, s.table)
	index := 0
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return errors.Wrapf(err, "scan %s", s.Name())
		}
		index++
		if !text.Valid {
			continue
		}
		if !emit(ctx, ch, Statement{Origin: origin, Index: index, SQL: strings.TrimSpace(text.String)}) {
			return ctx.Err()
		}
	}
	return errors.Wrapf(rows.Err(), "read %s", s.Name())
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
