// Package format renders an AST back to SQL text.
package format

import (
	"strings"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/token"
)

// Format returns the SQL string representation of the statements, one per
// line, each terminated by a semicolon.
func Format(stmts []*ast.Select) string {
	var sb strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString("\n")
		}
		Statement(&sb, stmt)
		sb.WriteString(";")
	}
	return sb.String()
}

// Identifier writes a possibly dotted name, backtick-quoting every part that
// is a keyword or not a plain identifier.
func Identifier(sb *strings.Builder, name string) {
	for i, part := range strings.Split(name, ".") {
		if i > 0 {
			sb.WriteString(".")
		}
		identPart(sb, part)
	}
}

func identPart(sb *strings.Builder, part string) {
	if isPlainIdent(part) && token.Lookup(strings.ToUpper(part)) == token.IDENT {
		sb.WriteString(part)
		return
	}
	sb.WriteString("`")
	sb.WriteString(part)
	sb.WriteString("`")
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '$' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
