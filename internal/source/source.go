// Package source reads SQL statements from files, standard input and
// SQLite corpora.
package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Statement is one SQL statement read from a source.
type Statement struct {
	Origin string // file path, "stdin" or database and table
	Index  int    // 1-based position within the origin
	SQL    string
}

// Source reads statements from a data source.
type Source interface {
	// Name describes the source for logs.
	Name() string
	// Statements starts reading. The statement channel closes when the
	// source is exhausted, ctx is done or an error occurs. At most one
	// error is sent, after which the error channel closes too.
	Statements(ctx context.Context) (<-chan Statement, <-chan error)
	// Close cleans up resources.
	Close() error
}

// Config describes a source from a -source flag.
type Config struct {
	Scheme string
	Path   string
	Table  string // sqlite only
	Column string // sqlite only
}

// ParseURI parses a source URI such as "stdin", "file://queries.sql",
// "queries.sql" or "sqlite://corpus.db?table=queries&column=sql".
func ParseURI(uri string) (*Config, error) {
	switch {
	case uri == "" || uri == "stdin" || uri == "-":
		return &Config{Scheme: "stdin", Path: "stdin"}, nil
	case strings.HasPrefix(uri, "file://"):
		return &Config{Scheme: "file", Path: uri[len("file://"):]}, nil
	case strings.HasPrefix(uri, "sqlite://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "parse source %q", uri)
		}
		cfg := &Config{
			Scheme: "sqlite",
			Path:   u.Host + u.Path,
			Table:  u.Query().Get("table"),
			Column: u.Query().Get("column"),
		}
		if cfg.Path == "" {
			return nil, errors.Errorf("source %q has no database path", uri)
		}
		if cfg.Table == "" {
			cfg.Table = "queries"
		}
		if cfg.Column == "" {
			cfg.Column = "sql"
		}
		return cfg, nil
	case strings.Contains(uri, "://"):
		return nil, errors.Errorf("unsupported source scheme in %q", uri)
	}
	// Default: treat as file path
	return &Config{Scheme: "file", Path: uri}, nil
}

// New creates a source from a config.
func New(cfg *Config) (Source, error) {
	switch cfg.Scheme {
	case "stdin":
		return NewStdinSource(), nil
	case "file":
		return NewFileSource(cfg.Path), nil
	case "sqlite":
		return NewSQLiteSource(cfg.Path, cfg.Table, cfg.Column), nil
	default:
		return nil, errors.Errorf("unsupported source scheme: %s", cfg.Scheme)
	}
}

// Open parses uri and creates the source it names.
func Open(uri string) (Source, error) {
	cfg, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Collect drains src into a slice.
func Collect(ctx context.Context, src Source) ([]Statement, error) {
	stmts, errs := src.Statements(ctx)
	var out []Statement
	for stmt := range stmts {
		out = append(out, stmt)
	}
	if err := <-errs; err != nil {
		return out, err
	}
	return out, nil
}

// emit sends stmt unless ctx is done first.
func emit(ctx context.Context, ch chan<- Statement, stmt Statement) bool {
	select {
	case ch <- stmt:
		return true
	case <-ctx.Done():
		return false
	}
}
