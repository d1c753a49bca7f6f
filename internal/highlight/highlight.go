// Package highlight renders SQL text with terminal colors.
package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/token"
)

// Kind classifies a run of highlighted text.
type Kind int

const (
	Plain Kind = iota
	Keyword
	Identifier
	Number
	String
	Operator
	Placeholder
	Comment
	Error
)

// Segment is a run of the input text and how it is styled.
type Segment struct {
	Kind Kind
	Text string
}

// Segments splits sql into styled runs. Concatenating the Text of every
// segment gives back sql unchanged. When the lexer gives up, the rest of the
// input becomes a single Error segment.
func Segments(sql string) []Segment {
	var segments []Segment
	add := func(kind Kind, text string) {
		if text != "" {
			segments = append(segments, Segment{Kind: kind, Text: text})
		}
	}

	l := lexer.New(strings.NewReader(sql))
	prev := 0
	for {
		item := l.NextToken()
		if item.Token == token.EOF {
			break
		}
		add(Plain, sql[prev:item.Pos.Offset])
		if item.Token == token.ILLEGAL {
			add(Error, sql[item.Pos.Offset:])
			return segments
		}
		add(kindOf(item.Token), sql[item.Pos.Offset:item.End.Offset])
		prev = item.End.Offset
	}
	add(Plain, sql[prev:])
	return segments
}

func kindOf(tok token.Token) Kind {
	switch {
	case tok.IsKeyword(), tok == token.UID:
		return Keyword
	case tok == token.IDENT:
		return Identifier
	case tok == token.NUMBER:
		return Number
	case tok == token.STRING:
		return String
	case tok == token.QUESTION:
		return Placeholder
	case tok == token.COMMENT:
		return Comment
	case tok == token.RELOP, tok == token.ASTERISK, tok.IsComparison():
		return Operator
	}
	return Plain
}

// Highlighter provides syntax highlighting for SQL queries
type Highlighter struct {
	styles map[Kind]lipgloss.Style
}

// New returns a Highlighter whose styles render through r. A nil r uses the
// default renderer for standard output.
func New(r *lipgloss.Renderer) *Highlighter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Highlighter{
		styles: map[Kind]lipgloss.Style{
			Keyword: r.NewStyle().
				Foreground(lipgloss.Color("#FF79C6")).
				Bold(true),
			Identifier:  r.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
			Number:      r.NewStyle().Foreground(lipgloss.Color("#BD93F9")),
			String:      r.NewStyle().Foreground(lipgloss.Color("#F1FA8C")),
			Operator:    r.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
			Placeholder: r.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
			Comment: r.NewStyle().
				Foreground(lipgloss.Color("#6272A4")).
				Italic(true),
			Error: r.NewStyle().
				Foreground(lipgloss.Color("#FF5555")).
				Underline(true),
		},
	}
}

// Highlight returns sql with every token styled by its kind. Whitespace
// between tokens is kept as written.
func (h *Highlighter) Highlight(sql string) string {
	var sb strings.Builder
	for _, seg := range Segments(sql) {
		style, ok := h.styles[seg.Kind]
		if !ok {
			sb.WriteString(seg.Text)
			continue
		}
		sb.WriteString(style.Render(seg.Text))
	}
	return sb.String()
}
