package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/spacesql/ast"
)

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case ast.Literal:
		formatLiteral(sb, e)
	case *ast.TableRef:
		// Already source text
		sb.WriteString(e.Name)
	case *ast.CollectionPath:
		formatCollectionPath(sb, e)
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
	case *ast.Select:
		sb.WriteString("(")
		Statement(sb, e)
		sb.WriteString(")")
	case *ast.And:
		for i, op := range e.Operands {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			if _, ok := op.(*ast.Or); ok {
				sb.WriteString("(")
				Expression(sb, op)
				sb.WriteString(")")
				continue
			}
			Expression(sb, op)
		}
	case *ast.Or:
		for i, op := range e.Operands {
			if i > 0 {
				sb.WriteString(" OR ")
			}
			Expression(sb, op)
		}
	case *ast.CondOp:
		operand(sb, e.Left)
		fmt.Fprintf(sb, " %s ", e.Op)
		operand(sb, e.Right)
	case *ast.CondRelation:
		operand(sb, e.Left)
		fmt.Fprintf(sb, " %s ?", e.Op)
	case *ast.CondRowNum:
		fmt.Fprintf(sb, "ROWNUM %s %d", e.Op, e.Value)
	case *ast.CondRowNumRange:
		fmt.Fprintf(sb, "ROWNUM >= %d AND ROWNUM <= %d", e.Lower, e.Upper)
	case *ast.CondIsNull:
		operand(sb, e.Expr)
		sb.WriteString(" IS ")
		writeNot(sb, e.Not)
		sb.WriteString("NULL")
	case *ast.CondBetween:
		operand(sb, e.Expr)
		sb.WriteString(" ")
		writeNot(sb, e.Not)
		sb.WriteString("BETWEEN ")
		operand(sb, e.Lower)
		sb.WriteString(" AND ")
		operand(sb, e.Upper)
	case *ast.CondInList:
		operand(sb, e.Expr)
		sb.WriteString(" ")
		writeNot(sb, e.Not)
		sb.WriteString("IN (")
		for i, item := range e.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			operand(sb, item)
		}
		sb.WriteString(")")
	case *ast.CondInSelect:
		operand(sb, e.Expr)
		sb.WriteString(" ")
		writeNot(sb, e.Not)
		sb.WriteString("IN (")
		Statement(sb, e.Select)
		sb.WriteString(")")
	default:
		// Fallback for unhandled expressions
		fmt.Fprintf(sb, "%v", expr)
	}
}

// operand formats an expression in a position that only takes a primary,
// parenthesizing predicates and connectives.
func operand(sb *strings.Builder, expr ast.Expression) {
	switch expr.(type) {
	case *ast.And, *ast.Or, *ast.CondOp, *ast.CondRelation, *ast.CondRowNum,
		*ast.CondRowNumRange, *ast.CondIsNull, *ast.CondBetween, *ast.CondInList,
		*ast.CondInSelect:
		sb.WriteString("(")
		Expression(sb, expr)
		sb.WriteString(")")
	default:
		Expression(sb, expr)
	}
}

func writeNot(sb *strings.Builder, not bool) {
	if not {
		sb.WriteString("NOT ")
	}
}

// formatLiteral formats a literal so that it lexes back to the same kind.
func formatLiteral(sb *strings.Builder, lit ast.Literal) {
	switch l := lit.(type) {
	case *ast.IntLit:
		sb.WriteString(strconv.FormatInt(int64(l.Value), 10))
	case *ast.LongLit:
		sb.WriteString(strconv.FormatInt(l.Value, 10))
		sb.WriteString("L")
	case *ast.FloatLit:
		s := strconv.FormatFloat(float64(l.Value), 'g', -1, 32)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	case *ast.DateLit:
		sb.WriteString("'")
		sb.WriteString(l.Text)
		sb.WriteString("'")
	case *ast.StringLit:
		sb.WriteString("'")
		// Escape single quotes in the string
		sb.WriteString(strings.ReplaceAll(l.Value, "'", "''"))
		sb.WriteString("'")
	case *ast.BooleanLit:
		if l.Value {
			sb.WriteString("TRUE")
		} else {
			sb.WriteString("FALSE")
		}
	case *ast.PreparedLit:
		sb.WriteString("?")
	case *ast.NullLit:
		sb.WriteString("NULL")
	}
}

func formatCollectionPath(sb *strings.Builder, path *ast.CollectionPath) {
	for i, el := range path.Elements {
		switch e := el.(type) {
		case *ast.Contains:
			sb.WriteString("[*]")
		case *ast.PathSegment:
			if i > 0 {
				sb.WriteString(".")
			}
			identPart(sb, e.Name)
		}
	}
}

func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	identPart(sb, fn.Name)
	sb.WriteString("(")
	for i, arg := range fn.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, arg)
	}
	sb.WriteString(")")
}
