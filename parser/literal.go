package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/lexer"
)

var dateRegex = regexp.MustCompile(`^\d\d/\d\d/\d\d\d\d$`)

// classifyNumber turns the raw text of a NUMBER token into a literal:
// an L suffix gives a LongLit, a fraction, exponent or F suffix a FloatLit,
// anything else an IntLit. The sign, if any, is part of the text.
func classifyNumber(item lexer.Item) (ast.Literal, error) {
	text := item.Value
	outOfRange := func(kind string) error {
		return &SyntaxError{Pos: item.Pos, Expected: kind, Found: "number " + text}
	}

	switch last := text[len(text)-1]; {
	case last == 'L' || last == 'l':
		v, err := strconv.ParseInt(text[:len(text)-1], 10, 64)
		if err != nil {
			return nil, outOfRange("64-bit integer")
		}
		return &ast.LongLit{Value: v}, nil
	case last == 'F' || last == 'f':
		return parseFloat(text[:len(text)-1], outOfRange)
	case strings.ContainsAny(text, ".eE"):
		return parseFloat(text, outOfRange)
	}

	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, outOfRange("32-bit integer")
	}
	return &ast.IntLit{Value: int32(v)}, nil
}

func parseFloat(text string, outOfRange func(string) error) (ast.Literal, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return nil, outOfRange("32-bit float")
	}
	return &ast.FloatLit{Value: float32(v)}, nil
}

// classifyString turns the content of a STRING token into a DateLit when it
// looks like DD/MM/YYYY, and a StringLit otherwise.
func classifyString(text string) ast.Literal {
	if dateRegex.MatchString(text) {
		return &ast.DateLit{Text: text}
	}
	return &ast.StringLit{Value: text}
}
