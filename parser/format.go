package parser

import (
	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/internal/format"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []*ast.Select) string {
	return format.Format(stmts)
}
