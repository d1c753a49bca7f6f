package source

import (
	"strings"

	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/token"
)

// Split cuts a script into statements at semicolons that are outside string
// literals, quoted identifiers and comments. Each statement is trimmed of
// surrounding whitespace and pieces holding nothing but comments are
// dropped. Once the lexer gives up, the rest of the script is returned as a
// single final piece so that the parser can report the problem.
func Split(script string) []string {
	var (
		pieces   []string
		start    int
		hasToken bool
	)
	cut := func(end int) {
		if hasToken {
			pieces = append(pieces, strings.TrimSpace(script[start:end]))
		}
		hasToken = false
	}

	l := lexer.New(strings.NewReader(script))
	for {
		item := l.NextToken()
		switch item.Token {
		case token.EOF:
			cut(len(script))
			return pieces
		case token.ILLEGAL:
			hasToken = true
			cut(len(script))
			return pieces
		case token.SEMICOLON:
			cut(item.Pos.Offset)
			start = item.End.Offset
		case token.COMMENT:
		default:
			hasToken = true
		}
	}
}
