package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/internal/format"
	"github.com/sqlc-dev/spacesql/internal/highlight"
)

// renderer writes parsed statements in one of the output formats.
type renderer struct {
	format      string
	merge       bool
	highlighter *highlight.Highlighter // nil disables colors
}

func newRenderer(outputFormat string, merge bool) (*renderer, error) {
	if err := checkFormat(outputFormat); err != nil {
		return nil, err
	}
	return &renderer{format: outputFormat, merge: merge}, nil
}

func checkFormat(outputFormat string) error {
	switch outputFormat {
	case "sql", "explain", "json":
		return nil
	}
	return errors.Errorf("unknown format %q (use sql, explain or json)", outputFormat)
}

func (r *renderer) render(w io.Writer, stmt *ast.Select) error {
	if r.merge {
		stmt = ast.MergeRowNumRanges(stmt)
	}

	var out string
	switch r.format {
	case "explain":
		out = ast.Explain(stmt)
	case "json":
		b, err := json.MarshalIndent(stmt, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode statement")
		}
		out = string(b) + "\n"
	default:
		out = format.Format([]*ast.Select{stmt})
		if r.highlighter != nil {
			out = r.highlighter.Highlight(out)
		}
		out += "\n"
	}

	_, err := fmt.Fprint(w, out)
	return err
}
