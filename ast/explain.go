package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns an indented tree dump of node, one node per line with
// children indented by one space.
func Explain(node Node) string {
	var b strings.Builder
	explainNode(&b, node, 0)
	return b.String()
}

// explainNode recursively writes the AST node to the builder.
func explainNode(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n := node.(type) {
	case *Select:
		children := 2
		if n.Where != nil {
			children++
		}
		if len(n.GroupBy) > 0 {
			children++
		}
		if len(n.OrderBy) > 0 {
			children++
		}
		fmt.Fprintf(b, "%sSelect", indent)
		if n.Quantifier != QuantifierNone {
			fmt.Fprintf(b, " %s", n.Quantifier)
		}
		if n.ForUpdate {
			b.WriteString(" FOR UPDATE")
		}
		fmt.Fprintf(b, " (children %d)\n", children)
		explainNode(b, n.Columns, depth+1)
		fmt.Fprintf(b, "%s TableList (children %d)\n", indent, len(n.From))
		for _, t := range n.From {
			explainNode(b, t, depth+2)
		}
		if n.Where != nil {
			explainNode(b, n.Where, depth+1)
		}
		if len(n.GroupBy) > 0 {
			fmt.Fprintf(b, "%s GroupBy (children %d)\n", indent, len(n.GroupBy))
			for _, col := range n.GroupBy {
				explainNode(b, col, depth+2)
			}
		}
		if len(n.OrderBy) > 0 {
			fmt.Fprintf(b, "%s OrderBy (children %d)\n", indent, len(n.OrderBy))
			for _, item := range n.OrderBy {
				explainNode(b, item, depth+2)
			}
		}

	case *TableName:
		fmt.Fprintf(b, "%sTableName %s%s\n", indent, n.Name, aliasSuffix(n.Alias))

	case *OrderByColumn:
		fmt.Fprintf(b, "%sOrderByColumn %s", indent, n.Direction)
		if n.Nulls != NullsUnspecified {
			fmt.Fprintf(b, " %s", n.Nulls)
		}
		b.WriteString("\n")
		explainNode(b, n.Column, depth+1)

	// Column sets
	case *AllColumns:
		fmt.Fprintf(b, "%sAllColumns\n", indent)
	case *SomeColumns:
		fmt.Fprintf(b, "%sColumnList (children %d)\n", indent, len(n.Columns))
		for _, col := range n.Columns {
			explainNode(b, col, depth+1)
		}
	case *UIDColumn:
		fmt.Fprintf(b, "%sUIDColumn%s\n", indent, aliasSuffix(n.Alias))
	case *Column:
		fmt.Fprintf(b, "%sColumn %s%s\n", indent, n.Name, aliasSuffix(n.Alias))
	case *LiteralColumn:
		fmt.Fprintf(b, "%sLiteralColumn%s\n", indent, aliasSuffix(n.Alias))
		explainNode(b, n.Literal, depth+1)
	case *FunctionColumn:
		fmt.Fprintf(b, "%sFunctionColumn %s%s\n", indent, n.Name, aliasSuffix(n.Alias))
		explainNode(b, n.Column, depth+1)

	// Literals
	case *IntLit:
		fmt.Fprintf(b, "%sIntLit %d\n", indent, n.Value)
	case *LongLit:
		fmt.Fprintf(b, "%sLongLit %d\n", indent, n.Value)
	case *FloatLit:
		fmt.Fprintf(b, "%sFloatLit %s\n", indent, strconv.FormatFloat(float64(n.Value), 'g', -1, 32))
	case *DateLit:
		fmt.Fprintf(b, "%sDateLit %s\n", indent, n.Text)
	case *StringLit:
		fmt.Fprintf(b, "%sStringLit '%s'\n", indent, strings.ReplaceAll(n.Value, "'", "''"))
	case *BooleanLit:
		fmt.Fprintf(b, "%sBooleanLit %t\n", indent, n.Value)
	case *PreparedLit:
		fmt.Fprintf(b, "%sPreparedLit %d\n", indent, n.Index)
	case *NullLit:
		fmt.Fprintf(b, "%sNullLit\n", indent)

	// References
	case *TableRef:
		fmt.Fprintf(b, "%sTableRef %s\n", indent, n.Name)
	case *CollectionPath:
		fmt.Fprintf(b, "%sCollectionPath (children %d)\n", indent, len(n.Elements))
		for _, el := range n.Elements {
			explainNode(b, el, depth+1)
		}
	case *Contains:
		fmt.Fprintf(b, "%sContains\n", indent)
	case *PathSegment:
		fmt.Fprintf(b, "%sPathSegment %s\n", indent, n.Name)
	case *FunctionCall:
		fmt.Fprintf(b, "%sFunctionCall %s (children %d)\n", indent, n.Name, len(n.Args))
		for _, arg := range n.Args {
			explainNode(b, arg, depth+1)
		}

	// Conditions
	case *And:
		fmt.Fprintf(b, "%sAnd (children %d)\n", indent, len(n.Operands))
		for _, op := range n.Operands {
			explainNode(b, op, depth+1)
		}
	case *Or:
		fmt.Fprintf(b, "%sOr (children %d)\n", indent, len(n.Operands))
		for _, op := range n.Operands {
			explainNode(b, op, depth+1)
		}
	case *CondOp:
		fmt.Fprintf(b, "%sCondOp %s\n", indent, n.Op)
		explainNode(b, n.Left, depth+1)
		explainNode(b, n.Right, depth+1)
	case *CondRelation:
		fmt.Fprintf(b, "%sCondRelation %s\n", indent, n.Op)
		explainNode(b, n.Left, depth+1)
		explainNode(b, n.Right, depth+1)
	case *CondRowNum:
		fmt.Fprintf(b, "%sCondRowNum %s %d\n", indent, n.Op, n.Value)
	case *CondRowNumRange:
		fmt.Fprintf(b, "%sCondRowNumRange %d %d\n", indent, n.Lower, n.Upper)
	case *CondIsNull:
		fmt.Fprintf(b, "%sCondIsNull%s\n", indent, notSuffix(n.Not))
		explainNode(b, n.Expr, depth+1)
	case *CondBetween:
		fmt.Fprintf(b, "%sCondBetween%s\n", indent, notSuffix(n.Not))
		explainNode(b, n.Expr, depth+1)
		explainNode(b, n.Lower, depth+1)
		explainNode(b, n.Upper, depth+1)
	case *CondInList:
		fmt.Fprintf(b, "%sCondInList%s\n", indent, notSuffix(n.Not))
		explainNode(b, n.Expr, depth+1)
		fmt.Fprintf(b, "%s List (children %d)\n", indent, len(n.List))
		for _, item := range n.List {
			explainNode(b, item, depth+2)
		}
	case *CondInSelect:
		fmt.Fprintf(b, "%sCondInSelect%s\n", indent, notSuffix(n.Not))
		explainNode(b, n.Expr, depth+1)
		explainNode(b, n.Select, depth+1)

	default:
		fmt.Fprintf(b, "%s%T\n", indent, node)
	}
}

func aliasSuffix(alias string) string {
	if alias == "" {
		return ""
	}
	return " (alias " + alias + ")"
}

func notSuffix(not bool) string {
	if not {
		return " NOT"
	}
	return ""
}
