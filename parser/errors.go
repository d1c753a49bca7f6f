package parser

import (
	"fmt"

	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/token"
)

// SyntaxError reports a token sequence the grammar does not accept.
type SyntaxError struct {
	Pos      token.Position
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s at line %d, column %d",
		e.Expected, e.Found, e.Pos.Line, e.Pos.Column)
}

// describe renders a token for error messages.
func describe(item lexer.Item) string {
	switch item.Token {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return fmt.Sprintf("identifier %q", item.Value)
	case token.NUMBER:
		return fmt.Sprintf("number %s", item.Value)
	case token.STRING:
		return fmt.Sprintf("string '%s'", item.Value)
	case token.RELOP:
		return fmt.Sprintf("operator %s", item.Value)
	}
	if item.Token.IsKeyword() {
		return item.Token.String()
	}
	return fmt.Sprintf("'%s'", item.Value)
}
