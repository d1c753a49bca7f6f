package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/token"
)

type tok struct {
	Token token.Token
	Value string
}

func tokens(t *testing.T, input string) []tok {
	t.Helper()
	items, err := lexer.Tokenize(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	var out []tok
	for _, item := range items {
		if item.Token == token.EOF {
			break
		}
		out = append(out, tok{item.Token, item.Value})
	}
	return out
}

func TestNextToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "keywords are case insensitive",
			input: "select Distinct FROM wHeRe rownum",
			expected: []tok{
				{token.SELECT, "select"},
				{token.DISTINCT, "Distinct"},
				{token.FROM, "FROM"},
				{token.WHERE, "wHeRe"},
				{token.ROWNUM, "rownum"},
			},
		},
		{
			name:  "backtick identifier is never a keyword",
			input: "`select` `a b`",
			expected: []tok{
				{token.IDENT, "select"},
				{token.IDENT, "a b"},
			},
		},
		{
			name:  "comparison operators",
			input: "= <> != < > <= >=",
			expected: []tok{
				{token.EQ, "="},
				{token.NEQ, "<>"},
				{token.NEQ, "!="},
				{token.LT, "<"},
				{token.GT, ">"},
				{token.LTE, "<="},
				{token.GTE, ">="},
			},
		},
		{
			name:  "punctuation",
			input: "* , . ( ) [ ] ? ;",
			expected: []tok{
				{token.ASTERISK, "*"},
				{token.COMMA, ","},
				{token.DOT, "."},
				{token.LPAREN, "("},
				{token.RPAREN, ")"},
				{token.LBRACKET, "["},
				{token.RBRACKET, "]"},
				{token.QUESTION, "?"},
				{token.SEMICOLON, ";"},
			},
		},
		{
			name:  "numbers keep their raw text",
			input: "1 1L 2l -1.0 1.5f 3e10 2E-3 .5 -7",
			expected: []tok{
				{token.NUMBER, "1"},
				{token.NUMBER, "1L"},
				{token.NUMBER, "2l"},
				{token.NUMBER, "-1.0"},
				{token.NUMBER, "1.5f"},
				{token.NUMBER, "3e10"},
				{token.NUMBER, "2E-3"},
				{token.NUMBER, ".5"},
				{token.NUMBER, "-7"},
			},
		},
		{
			name:  "strings unescape doubled quotes",
			input: `'it''s' '' 'a\b'`,
			expected: []tok{
				{token.STRING, "it's"},
				{token.STRING, ""},
				{token.STRING, `a\b`},
			},
		},
		{
			name:  "relation operator",
			input: "b text:search ?",
			expected: []tok{
				{token.IDENT, "b"},
				{token.RELOP, "text:search"},
				{token.QUESTION, "?"},
			},
		},
		{
			name:  "row identity marker",
			input: "*UID*, *uid* as u, *",
			expected: []tok{
				{token.UID, "*UID*"},
				{token.COMMA, ","},
				{token.UID, "*UID*"},
				{token.AS, "as"},
				{token.IDENT, "u"},
				{token.COMMA, ","},
				{token.ASTERISK, "*"},
			},
		},
		{
			name:  "collection path",
			input: "[*].foo[*].bar",
			expected: []tok{
				{token.LBRACKET, "["},
				{token.ASTERISK, "*"},
				{token.RBRACKET, "]"},
				{token.DOT, "."},
				{token.IDENT, "foo"},
				{token.LBRACKET, "["},
				{token.ASTERISK, "*"},
				{token.RBRACKET, "]"},
				{token.DOT, "."},
				{token.IDENT, "bar"},
			},
		},
		{
			name:  "dotted name",
			input: "a.b",
			expected: []tok{
				{token.IDENT, "a"},
				{token.DOT, "."},
				{token.IDENT, "b"},
			},
		},
		{
			name:  "comments",
			input: "select -- trailing\n* /* block */ from",
			expected: []tok{
				{token.SELECT, "select"},
				{token.COMMENT, "-- trailing"},
				{token.ASTERISK, "*"},
				{token.COMMENT, "/* block */"},
				{token.FROM, "from"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokens(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v %q, want %v %q", i, got[i].Token, got[i].Value, tt.expected[i].Token, tt.expected[i].Value)
				}
			}
		})
	}
}

func TestPositions(t *testing.T) {
	items, err := lexer.Tokenize(strings.NewReader("select *\n  from `t`"))
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		pos, end token.Position
	}{
		{token.Position{Offset: 0, Line: 1, Column: 1}, token.Position{Offset: 6, Line: 1, Column: 7}},
		{token.Position{Offset: 7, Line: 1, Column: 8}, token.Position{Offset: 8, Line: 1, Column: 9}},
		{token.Position{Offset: 11, Line: 2, Column: 3}, token.Position{Offset: 15, Line: 2, Column: 7}},
		{token.Position{Offset: 16, Line: 2, Column: 8}, token.Position{Offset: 19, Line: 2, Column: 11}},
	}
	for i, w := range want {
		if items[i].Pos != w.pos || items[i].End != w.end {
			t.Errorf("item %d (%q): got %+v..%+v, want %+v..%+v", i, items[i].Value, items[i].Pos, items[i].End, w.pos, w.end)
		}
	}
	if !items[3].Quoted {
		t.Errorf("expected `t` to be quoted")
	}
}

func TestText(t *testing.T) {
	input := "select a . `b`, é from t"
	l := lexer.New(strings.NewReader(input))
	var items []lexer.Item
	for {
		item := l.NextToken()
		if item.Token == token.EOF {
			break
		}
		items = append(items, item)
	}

	// a . `b`
	if got := l.Text(items[1].Pos.Offset, items[3].End.Offset); got != "a . `b`" {
		t.Errorf("Text() = %q, want %q", got, "a . `b`")
	}
	if got := l.Text(items[5].Pos.Offset, items[5].End.Offset); got != "é" {
		t.Errorf("Text() = %q, want %q", got, "é")
	}
	if got := l.Text(0, len(input)+1); got != "" {
		t.Errorf("Text() past the input = %q, want empty", got)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		char   rune
		column int
	}{
		{"unterminated string", "select 'abc", '\'', 8},
		{"unterminated backtick", "select `abc", '`', 8},
		{"unterminated comment", "select /* x", '/', 8},
		{"unknown character", "select # from a", '#', 8},
		{"lone bang", "a ! b", '!', 3},
		{"minus without number", "a = - 1", '-', 5},
		{"double quote", `select "a"`, '"', 8},
		{"name glued to number", "select 1abc from t", 'a', 9},
		{"name glued to long", "select 1Lx from t", 'x', 10},
		{"dangling exponent", "select 1e from t", 'e', 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lexer.Tokenize(strings.NewReader(tt.input))
			var lexErr *lexer.LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexError, got %v", err)
			}
			if lexErr.Char != tt.char {
				t.Errorf("Char = %q, want %q", lexErr.Char, tt.char)
			}
			if lexErr.Pos.Line != 1 || lexErr.Pos.Column != tt.column {
				t.Errorf("Pos = %+v, want line 1 column %d", lexErr.Pos, tt.column)
			}
		})
	}
}

func TestEOFAfterError(t *testing.T) {
	l := lexer.New(strings.NewReader("# select"))
	if item := l.NextToken(); item.Token != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", item.Token)
	}
	for i := 0; i < 3; i++ {
		if item := l.NextToken(); item.Token != token.EOF {
			t.Fatalf("got %v after error, want EOF", item.Token)
		}
	}
	if l.Err() == nil {
		t.Fatal("expected Err to be set")
	}
}
