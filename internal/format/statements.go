package format

import (
	"strings"

	"github.com/sqlc-dev/spacesql/ast"
)

// Statement formats a single statement.
func Statement(sb *strings.Builder, q *ast.Select) {
	if q == nil {
		return
	}

	sb.WriteString("SELECT ")

	if q.Quantifier != ast.QuantifierNone {
		sb.WriteString(q.Quantifier.String())
		sb.WriteString(" ")
	}

	// Format columns
	switch c := q.Columns.(type) {
	case *ast.AllColumns:
		sb.WriteString("*")
	case *ast.SomeColumns:
		formatColumnList(sb, c.Columns)
	}

	// Format FROM clause
	sb.WriteString(" FROM ")
	for i, t := range q.From {
		if i > 0 {
			sb.WriteString(", ")
		}
		Identifier(sb, t.Name)
		if t.Alias != "" {
			sb.WriteString(" ")
			identPart(sb, t.Alias)
		}
	}

	// Format WHERE clause
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}

	// Format GROUP BY clause
	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		formatColumnList(sb, q.GroupBy)
	}

	// Format ORDER BY clause
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, item := range q.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatOrderByColumn(sb, item)
		}
	}

	if q.ForUpdate {
		sb.WriteString(" FOR UPDATE")
	}
}

func formatColumnList(sb *strings.Builder, cols []ast.SelectColumn) {
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		Column(sb, col)
	}
}

// Column formats a select column with its alias.
func Column(sb *strings.Builder, col ast.SelectColumn) {
	var alias string

	switch c := col.(type) {
	case *ast.UIDColumn:
		sb.WriteString("*UID*")
		alias = c.Alias
	case *ast.Column:
		Identifier(sb, c.Name)
		alias = c.Alias
	case *ast.LiteralColumn:
		formatLiteral(sb, c.Literal)
		alias = c.Alias
	case *ast.FunctionColumn:
		identPart(sb, c.Name)
		sb.WriteString("(")
		Column(sb, c.Column)
		sb.WriteString(")")
		alias = c.Alias
	}

	if alias != "" {
		sb.WriteString(" AS ")
		identPart(sb, alias)
	}
}

func formatOrderByColumn(sb *strings.Builder, item *ast.OrderByColumn) {
	Column(sb, item.Column)
	if item.Direction == ast.DirectionDesc {
		sb.WriteString(" DESC")
	}
	if item.Nulls != ast.NullsUnspecified {
		sb.WriteString(" ")
		sb.WriteString(item.Nulls.String())
	}
}
