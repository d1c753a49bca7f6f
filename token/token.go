// Package token defines constants representing the lexical tokens of the
// data grid SELECT dialect.
package token

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	COMMENT

	// Literals
	IDENT  // identifiers, bare or backtick-quoted
	NUMBER // numeric literals, classified by the parser
	STRING // single-quoted string literals
	RELOP  // colon-namespaced relation operators like text:search
	UID    // *UID*

	// Operators
	ASTERISK // *
	EQ       // =
	NEQ      // != or <>
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	QUESTION  // ?

	// Keywords
	keyword_beg
	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	DESC
	DISTINCT
	FALSE
	FIRST
	FOR
	FROM
	GROUP
	IN
	IS
	LAST
	NOT
	NULL
	NULLS
	OR
	ORDER
	ROWNUM
	SELECT
	TRUE
	UPDATE
	WHERE
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	RELOP:  "RELOP",
	UID:    "*UID*",

	ASTERISK: "*",
	EQ:       "=",
	NEQ:      "!=",
	LT:       "<",
	GT:       ">",
	LTE:      "<=",
	GTE:      ">=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",
	QUESTION:  "?",

	ALL:      "ALL",
	AND:      "AND",
	AS:       "AS",
	ASC:      "ASC",
	BETWEEN:  "BETWEEN",
	BY:       "BY",
	DESC:     "DESC",
	DISTINCT: "DISTINCT",
	FALSE:    "FALSE",
	FIRST:    "FIRST",
	FOR:      "FOR",
	FROM:     "FROM",
	GROUP:    "GROUP",
	IN:       "IN",
	IS:       "IS",
	LAST:     "LAST",
	NOT:      "NOT",
	NULL:     "NULL",
	NULLS:    "NULLS",
	OR:       "OR",
	ORDER:    "ORDER",
	ROWNUM:   "ROWNUM",
	SELECT:   "SELECT",
	TRUE:     "TRUE",
	UPDATE:   "UPDATE",
	WHERE:    "WHERE",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps keyword strings to their token types.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup returns the token type for an upper-cased identifier string.
// If the string is a keyword, it returns the keyword token.
// Otherwise, it returns IDENT.
func Lookup(ident string) Token {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// IsComparison reports whether tok is one of = <> != < > <= >=.
func (tok Token) IsComparison() bool {
	switch tok {
	case EQ, NEQ, LT, GT, LTE, GTE:
		return true
	}
	return false
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}
