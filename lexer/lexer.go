// Package lexer implements a lexer for the data grid SELECT dialect.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlc-dev/spacesql/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	reader *bufio.Reader
	ch     rune // current character
	size   int  // byte width of ch
	pos    token.Position
	eof    bool
	err    *LexError
	src    []byte // every byte read so far, indexed by Position.Offset
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token  token.Token
	Value  string
	Pos    token.Position
	End    token.Position // position just past the token
	Quoted bool           // true if this identifier was backtick-quoted
}

// LexError reports input that cannot be tokenized. Char is the offending
// character, or the opening delimiter of an unterminated literal.
type LexError struct {
	Pos  token.Position
	Char rune
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Pos.Line, e.Pos.Column)
}

// New creates a new Lexer from an io.Reader.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		reader: bufio.NewReader(r),
		pos:    token.Position{Offset: 0, Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

// Err returns the error that stopped the lexer, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) readChar() {
	if l.eof {
		l.ch = 0
		return
	}

	l.pos.Offset += l.size
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	r, size, err := l.reader.ReadRune()
	if err != nil {
		l.ch = 0
		l.size = 0
		l.eof = true
		return
	}
	if r == utf8.RuneError && size == 1 {
		// Keep the undecodable byte itself so offsets stay byte exact
		_ = l.reader.UnreadRune()
		b, _ := l.reader.ReadByte()
		l.src = append(l.src, b)
	} else {
		l.src = utf8.AppendRune(l.src, r)
	}
	l.ch = r
	l.size = size
}

// Text returns the source text between two byte offsets already read, such
// as an item's Pos.Offset and a later item's End.Offset.
func (l *Lexer) Text(start, end int) string {
	if start < 0 || end > len(l.src) || start > end {
		return ""
	}
	return string(l.src[start:end])
}

func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}
	b, _ := l.reader.Peek(utf8.UTFMax)
	if len(b) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(b)
	return r
}

// peekFold reports whether the input following the current character
// matches s, ignoring ASCII case.
func (l *Lexer) peekFold(s string) bool {
	if l.eof {
		return false
	}
	b, _ := l.reader.Peek(len(s))
	return len(b) == len(s) && strings.EqualFold(string(b), s)
}

// peekDecimal reports whether the input following the current character
// is a dot followed by a digit.
func (l *Lexer) peekDecimal() bool {
	if l.eof {
		return false
	}
	b, _ := l.reader.Peek(2)
	return len(b) == 2 && b[0] == '.' && isDigit(rune(b[1]))
}

func (l *Lexer) skipWhitespace() {
	// Skip whitespace and BOM (byte order mark U+FEFF)
	for !l.eof && (unicode.IsSpace(l.ch) || l.ch == '\uFEFF') {
		l.readChar()
	}
}

func (l *Lexer) emit(tok token.Token, value string, pos token.Position) Item {
	return Item{Token: tok, Value: value, Pos: pos, End: l.pos}
}

func (l *Lexer) fail(pos token.Position, ch rune, msg string) Item {
	l.err = &LexError{Pos: pos, Char: ch, Msg: msg}
	return Item{Token: token.ILLEGAL, Value: string(ch), Pos: pos, End: l.pos}
}

// NextToken returns the next token from the input. Once an ILLEGAL item has
// been returned, every later call returns EOF.
func (l *Lexer) NextToken() Item {
	if l.err != nil {
		return Item{Token: token.EOF, Pos: l.pos, End: l.pos}
	}

	l.skipWhitespace()

	pos := l.pos

	if l.eof {
		return Item{Token: token.EOF, Value: "", Pos: pos, End: pos}
	}

	// Handle comments
	if l.ch == '-' && l.peekChar() == '-' {
		return l.readLineComment()
	}
	if l.ch == '/' && l.peekChar() == '*' {
		return l.readBlockComment()
	}

	switch l.ch {
	case '*':
		if l.peekFold("UID*") {
			for i := 0; i < 5; i++ {
				l.readChar()
			}
			return l.emit(token.UID, "*UID*", pos)
		}
		l.readChar()
		return l.emit(token.ASTERISK, "*", pos)
	case '=':
		l.readChar()
		return l.emit(token.EQ, "=", pos)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(token.NEQ, "!=", pos)
		}
		ch := l.ch
		l.readChar()
		return l.fail(pos, ch, fmt.Sprintf("unexpected character %q", ch))
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.emit(token.LTE, "<=", pos)
		}
		if l.ch == '>' {
			l.readChar()
			return l.emit(token.NEQ, "<>", pos)
		}
		return l.emit(token.LT, "<", pos)
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.emit(token.GTE, ">=", pos)
		}
		return l.emit(token.GT, ">", pos)
	case '(':
		l.readChar()
		return l.emit(token.LPAREN, "(", pos)
	case ')':
		l.readChar()
		return l.emit(token.RPAREN, ")", pos)
	case '[':
		l.readChar()
		return l.emit(token.LBRACKET, "[", pos)
	case ']':
		l.readChar()
		return l.emit(token.RBRACKET, "]", pos)
	case ',':
		l.readChar()
		return l.emit(token.COMMA, ",", pos)
	case ';':
		l.readChar()
		return l.emit(token.SEMICOLON, ";", pos)
	case '?':
		l.readChar()
		return l.emit(token.QUESTION, "?", pos)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		l.readChar()
		return l.emit(token.DOT, ".", pos)
	case '-':
		// A minus is only meaningful as the sign of a numeric literal.
		if isDigit(l.peekChar()) || l.peekDecimal() {
			return l.readNumber()
		}
		l.readChar()
		return l.fail(pos, '-', "unexpected character '-'")
	case '\'':
		return l.readString()
	case '`':
		return l.readBacktickIdentifier()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isIdentStart(l.ch) {
		return l.readIdentifier()
	}

	ch := l.ch
	l.readChar()
	return l.fail(pos, ch, fmt.Sprintf("unexpected character %q", ch))
}

func (l *Lexer) readLineComment() Item {
	pos := l.pos
	var sb strings.Builder
	for !l.eof && l.ch != '\n' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.COMMENT, sb.String(), pos)
}

func (l *Lexer) readBlockComment() Item {
	pos := l.pos
	var sb strings.Builder
	// Skip /*
	sb.WriteRune(l.ch)
	l.readChar()
	sb.WriteRune(l.ch)
	l.readChar()

	for {
		if l.eof {
			return l.fail(pos, '/', "unterminated comment")
		}
		if l.ch == '*' && l.peekChar() == '/' {
			sb.WriteString("*/")
			l.readChar()
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.COMMENT, sb.String(), pos)
}

func (l *Lexer) readString() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for {
		if l.eof {
			return l.fail(pos, '\'', "unterminated string literal")
		}
		if l.ch == '\'' {
			// '' is an escaped quote
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.STRING, sb.String(), pos)
}

func (l *Lexer) readBacktickIdentifier() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening backtick

	for {
		if l.eof {
			return l.fail(pos, '`', "unterminated quoted identifier")
		}
		if l.ch == '`' {
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	item := l.emit(token.IDENT, sb.String(), pos)
	item.Quoted = true
	return item
}

// readNumber reads the raw text of a numeric literal: an optional sign,
// digits, an optional fraction and exponent, and an optional L or F suffix.
func (l *Lexer) readNumber() Item {
	pos := l.pos
	var sb strings.Builder

	if l.ch == '-' {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	// Allow 1.5 and 1. but not 1.foo
	if l.ch == '.' {
		next := l.peekChar()
		if isDigit(next) || (!isIdentStart(next) && next != '.') {
			sb.WriteRune(l.ch)
			l.readChar()
			for isDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			for isDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}

	switch l.ch {
	case 'L', 'l', 'F', 'f':
		sb.WriteRune(l.ch)
		l.readChar()
	}

	// A number must be separated from a following name, so 1abc is not 1 abc
	if isIdentChar(l.ch) {
		return l.fail(l.pos, l.ch, "unexpected character after number")
	}

	return l.emit(token.NUMBER, sb.String(), pos)
}

// readIdentifier reads a bare identifier or keyword. An identifier joined to
// another by a colon, with no spacing, forms a relation operator.
func (l *Lexer) readIdentifier() Item {
	pos := l.pos
	var sb strings.Builder

	for isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	relop := false
	for l.ch == ':' && isIdentStart(l.peekChar()) {
		relop = true
		sb.WriteRune(l.ch)
		l.readChar()
		for isIdentChar(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	ident := sb.String()
	if relop {
		return l.emit(token.RELOP, ident, pos)
	}
	tok := token.Lookup(strings.ToUpper(ident))
	return l.emit(tok, ident, pos)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize returns all tokens from the reader, ending with EOF. On a lex
// error it returns the tokens read so far, without the ILLEGAL item, and the
// error.
func Tokenize(r io.Reader) ([]Item, error) {
	l := New(r)
	var items []Item
	for {
		item := l.NextToken()
		if item.Token == token.ILLEGAL {
			return items, l.Err()
		}
		items = append(items, item)
		if item.Token == token.EOF {
			break
		}
	}
	return items, nil
}
