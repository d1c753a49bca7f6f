// Package ast defines the abstract syntax tree for the data grid SELECT
// dialect.
//
// Every abstract category is a sealed interface and every concrete case a
// struct, so consumers can switch exhaustively over the variants. Nodes are
// built once by the parser and compare structurally.
package ast

// Node is the interface implemented by all AST nodes.
type Node interface {
	astNode()
}

// Expression is the interface implemented by all expression nodes:
// literals, references, function calls, predicates and subqueries.
type Expression interface {
	Node
	expressionNode()
}

// Literal is the interface implemented by all literal expressions.
type Literal interface {
	Expression
	literalNode()
}

// SelectColumn is the interface implemented by the entries of a column
// list, a GROUP BY list and an ORDER BY item.
type SelectColumn interface {
	Node
	selectColumnNode()
}

// Columns is the selected column set of a Select: AllColumns or SomeColumns.
type Columns interface {
	Node
	columnsNode()
}

// PathElement is one step of a CollectionPath.
type PathElement interface {
	Node
	pathElementNode()
}

// -----------------------------------------------------------------------------
// Statements

// Quantifier is the DISTINCT/ALL modifier of a Select.
type Quantifier int

const (
	QuantifierNone Quantifier = iota
	QuantifierAll
	QuantifierDistinct
)

func (q Quantifier) String() string {
	switch q {
	case QuantifierAll:
		return "ALL"
	case QuantifierDistinct:
		return "DISTINCT"
	}
	return ""
}

// Select represents a SELECT statement. From is never empty. A Select is
// also an Expression when it appears as a parenthesized subquery operand.
type Select struct {
	Quantifier Quantifier       `json:"quantifier,omitempty"`
	Columns    Columns          `json:"columns"`
	From       []*TableName     `json:"from"`
	Where      Expression       `json:"where,omitempty"`
	GroupBy    []SelectColumn   `json:"group_by,omitempty"`
	OrderBy    []*OrderByColumn `json:"order_by,omitempty"`
	ForUpdate  bool             `json:"for_update,omitempty"`
}

func (s *Select) astNode()        {}
func (s *Select) expressionNode() {}

// TableName is an entry of the FROM list.
type TableName struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

func (t *TableName) astNode() {}

// Direction is the sort direction of an ORDER BY item. The zero value is
// ascending, so an item without ASC or DESC equals one written with ASC.
type Direction int

const (
	DirectionAsc Direction = iota
	DirectionDesc
)

func (d Direction) String() string {
	if d == DirectionDesc {
		return "DESC"
	}
	return "ASC"
}

// Nulls is the NULLS FIRST/LAST modifier of an ORDER BY item.
type Nulls int

const (
	NullsUnspecified Nulls = iota
	NullsFirst
	NullsLast
)

func (n Nulls) String() string {
	switch n {
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	}
	return ""
}

// OrderByColumn is an ORDER BY item.
type OrderByColumn struct {
	Column    SelectColumn `json:"column"`
	Direction Direction    `json:"direction"`
	Nulls     Nulls        `json:"nulls,omitempty"`
}

func (o *OrderByColumn) astNode() {}

// -----------------------------------------------------------------------------
// Column sets

// AllColumns is the * column set.
type AllColumns struct{}

func (c *AllColumns) astNode()     {}
func (c *AllColumns) columnsNode() {}

// SomeColumns is an explicit, non-empty column list.
type SomeColumns struct {
	Columns []SelectColumn `json:"columns"`
}

func (c *SomeColumns) astNode()     {}
func (c *SomeColumns) columnsNode() {}

// UIDColumn is the implicit row identity column, written *UID*.
type UIDColumn struct {
	Alias string `json:"alias,omitempty"`
}

// Column is a named column.
type Column struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// LiteralColumn selects a constant.
type LiteralColumn struct {
	Literal Literal `json:"literal"`
	Alias   string  `json:"alias,omitempty"`
}

// FunctionColumn applies a function, such as an aggregate, to a column.
type FunctionColumn struct {
	Name   string       `json:"name"`
	Column SelectColumn `json:"column"`
	Alias  string       `json:"alias,omitempty"`
}

func (c *UIDColumn) astNode()               {}
func (c *UIDColumn) selectColumnNode()      {}
func (c *Column) astNode()                  {}
func (c *Column) selectColumnNode()         {}
func (c *LiteralColumn) astNode()           {}
func (c *LiteralColumn) selectColumnNode()  {}
func (c *FunctionColumn) astNode()          {}
func (c *FunctionColumn) selectColumnNode() {}

// -----------------------------------------------------------------------------
// Literals

// IntLit is a 32-bit integer literal.
type IntLit struct {
	Value int32 `json:"value"`
}

// LongLit is a 64-bit integer literal, written with an L suffix.
type LongLit struct {
	Value int64 `json:"value"`
}

// FloatLit is a 32-bit floating point literal.
type FloatLit struct {
	Value float32 `json:"value"`
}

// DateLit is a DD/MM/YYYY string literal, kept as written.
type DateLit struct {
	Text string `json:"text"`
}

// StringLit is a string literal with its unescaped content.
type StringLit struct {
	Value string `json:"value"`
}

// BooleanLit is TRUE or FALSE.
type BooleanLit struct {
	Value bool `json:"value"`
}

// PreparedLit is a ? placeholder. Index is its 1-based ordinal within the
// statement.
type PreparedLit struct {
	Index int `json:"index"`
}

// NullLit is NULL.
type NullLit struct{}

func (l *IntLit) astNode()             {}
func (l *IntLit) expressionNode()      {}
func (l *IntLit) literalNode()         {}
func (l *LongLit) astNode()            {}
func (l *LongLit) expressionNode()     {}
func (l *LongLit) literalNode()        {}
func (l *FloatLit) astNode()           {}
func (l *FloatLit) expressionNode()    {}
func (l *FloatLit) literalNode()       {}
func (l *DateLit) astNode()            {}
func (l *DateLit) expressionNode()     {}
func (l *DateLit) literalNode()        {}
func (l *StringLit) astNode()          {}
func (l *StringLit) expressionNode()   {}
func (l *StringLit) literalNode()      {}
func (l *BooleanLit) astNode()         {}
func (l *BooleanLit) expressionNode()  {}
func (l *BooleanLit) literalNode()     {}
func (l *PreparedLit) astNode()        {}
func (l *PreparedLit) expressionNode() {}
func (l *PreparedLit) literalNode()    {}
func (l *NullLit) astNode()            {}
func (l *NullLit) expressionNode()     {}
func (l *NullLit) literalNode()        {}

// -----------------------------------------------------------------------------
// References

// TableRef is a plain, possibly dotted, column reference such as a or a.b.
type TableRef struct {
	Name string `json:"name"`
}

// CollectionPath is a dotted reference that walks into collections with [*].
type CollectionPath struct {
	Elements []PathElement `json:"elements"`
}

// Contains is the [*] step of a CollectionPath.
type Contains struct{}

// PathSegment is a named step of a CollectionPath.
type PathSegment struct {
	Name string `json:"name"`
}

// FunctionCall is name(args...) in an expression.
type FunctionCall struct {
	Name string       `json:"name"`
	Args []Expression `json:"args"`
}

func (r *TableRef) astNode()              {}
func (r *TableRef) expressionNode()       {}
func (p *CollectionPath) astNode()        {}
func (p *CollectionPath) expressionNode() {}
func (c *Contains) astNode()              {}
func (c *Contains) pathElementNode()      {}
func (s *PathSegment) astNode()           {}
func (s *PathSegment) pathElementNode()   {}
func (f *FunctionCall) astNode()          {}
func (f *FunctionCall) expressionNode()   {}

// -----------------------------------------------------------------------------
// Conditions

// And is a conjunction of two or more operands, none of which is an And.
type And struct {
	Operands []Expression `json:"operands"`
}

// Or is a disjunction of two or more operands, none of which is an Or.
type Or struct {
	Operands []Expression `json:"operands"`
}

// CondOp compares two operands with one of = <> != < > <= >=.
type CondOp struct {
	Left  Expression `json:"left"`
	Op    string     `json:"op"`
	Right Expression `json:"right"`
}

// CondRelation applies a colon-namespaced relation operator, such as
// text:search, to a placeholder.
type CondRelation struct {
	Left  Expression   `json:"left"`
	Op    string       `json:"op"`
	Right *PreparedLit `json:"right"`
}

// CondRowNum compares the row number pseudo-column to a constant.
type CondRowNum struct {
	Op    string `json:"op"`
	Value int32  `json:"value"`
}

// CondRowNumRange restricts the row number to [Lower, Upper], both inclusive.
type CondRowNumRange struct {
	Lower int32 `json:"lower"`
	Upper int32 `json:"upper"`
}

// CondIsNull is expr IS [NOT] NULL.
type CondIsNull struct {
	Expr Expression `json:"expr"`
	Not  bool       `json:"not,omitempty"`
}

// CondBetween is expr [NOT] BETWEEN lower AND upper.
type CondBetween struct {
	Expr  Expression `json:"expr"`
	Lower Expression `json:"lower"`
	Upper Expression `json:"upper"`
	Not   bool       `json:"not,omitempty"`
}

// CondInList is expr [NOT] IN (a, b, ...).
type CondInList struct {
	Expr Expression   `json:"expr"`
	Not  bool         `json:"not,omitempty"`
	List []Expression `json:"list"`
}

// CondInSelect is expr [NOT] IN (SELECT ...).
type CondInSelect struct {
	Expr   Expression `json:"expr"`
	Not    bool       `json:"not,omitempty"`
	Select *Select    `json:"select"`
}

func (c *And) astNode()                    {}
func (c *And) expressionNode()             {}
func (c *Or) astNode()                     {}
func (c *Or) expressionNode()              {}
func (c *CondOp) astNode()                 {}
func (c *CondOp) expressionNode()          {}
func (c *CondRelation) astNode()           {}
func (c *CondRelation) expressionNode()    {}
func (c *CondRowNum) astNode()             {}
func (c *CondRowNum) expressionNode()      {}
func (c *CondRowNumRange) astNode()        {}
func (c *CondRowNumRange) expressionNode() {}
func (c *CondIsNull) astNode()             {}
func (c *CondIsNull) expressionNode()      {}
func (c *CondBetween) astNode()            {}
func (c *CondBetween) expressionNode()     {}
func (c *CondInList) astNode()             {}
func (c *CondInList) expressionNode()      {}
func (c *CondInSelect) astNode()           {}
func (c *CondInSelect) expressionNode()    {}
