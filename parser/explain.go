package parser

import (
	"github.com/sqlc-dev/spacesql/ast"
)

// Explain returns the indented AST dump for a statement.
func Explain(stmt *ast.Select) string {
	return ast.Explain(stmt)
}
