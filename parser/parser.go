// Package parser implements a parser for the data grid SELECT dialect.
package parser

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/lexer"
	"github.com/sqlc-dev/spacesql/token"
)

// Parser parses SELECT statements. A Parser holds the state of a single
// parse and must not be shared between goroutines.
type Parser struct {
	lexer   *lexer.Lexer
	current lexer.Item
	peek    lexer.Item
	params  int // last placeholder ordinal handed out in this statement
}

// New creates a new Parser from an io.Reader.
func New(r io.Reader) *Parser {
	p := &Parser{
		lexer: lexer.New(r),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	for {
		p.peek = p.lexer.NextToken()
		if p.peek.Token != token.COMMENT {
			break
		}
	}
}

func (p *Parser) currentIs(t token.Token) bool {
	return p.current.Token == t
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek.Token == t
}

func (p *Parser) expect(t token.Token) error {
	if p.currentIs(t) {
		p.nextToken()
		return nil
	}
	return p.unexpected(t.String())
}

// unexpected reports the current token as not matching what the grammar
// expected. When the lexer gave up on the current token its LexError is
// returned instead.
func (p *Parser) unexpected(expected string) error {
	if p.currentIs(token.ILLEGAL) {
		if err := p.lexer.Err(); err != nil {
			return err
		}
	}
	return &SyntaxError{
		Pos:      p.current.Pos,
		Expected: expected,
		Found:    describe(p.current),
	}
}

// ParseString parses exactly one statement, optionally terminated by a
// semicolon.
func ParseString(sql string) (*ast.Select, error) {
	p := New(strings.NewReader(sql))
	sel, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if !p.currentIs(token.EOF) {
		return nil, p.unexpected("end of input")
	}
	return sel, nil
}

// Parse parses semicolon separated SQL statements from the input.
func Parse(ctx context.Context, r io.Reader) ([]*ast.Select, error) {
	p := New(r)
	return p.ParseStatements(ctx)
}

// ParseFile parses all statements in the named file.
func ParseFile(ctx context.Context, path string) ([]*ast.Select, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open query file")
	}
	defer f.Close()

	stmts, err := Parse(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return stmts, nil
}

// ParseStatements parses statements until the end of the input. The first
// error aborts the whole parse.
func (p *Parser) ParseStatements(ctx context.Context) ([]*ast.Select, error) {
	var statements []*ast.Select

	for {
		// Skip semicolons between statements
		for p.currentIs(token.SEMICOLON) {
			p.nextToken()
		}
		if p.currentIs(token.EOF) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		if !p.currentIs(token.EOF) && !p.currentIs(token.SEMICOLON) {
			return nil, p.unexpected("';' or end of input")
		}
	}

	return statements, nil
}

// ParseStatement parses one SELECT statement and an optional trailing
// semicolon. Placeholder numbering restarts at 1 for every statement.
func (p *Parser) ParseStatement() (*ast.Select, error) {
	sel, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.currentIs(token.SEMICOLON) {
		p.nextToken()
	}
	return sel, nil
}

func (p *Parser) parseStatement() (*ast.Select, error) {
	p.params = 0
	return p.parseSelect()
}

func (p *Parser) parseSelect() (*ast.Select, error) {
	if err := p.expect(token.SELECT); err != nil {
		return nil, err
	}

	sel := &ast.Select{}

	// Handle DISTINCT / ALL
	switch p.current.Token {
	case token.DISTINCT:
		sel.Quantifier = ast.QuantifierDistinct
		p.nextToken()
	case token.ALL:
		sel.Quantifier = ast.QuantifierAll
		p.nextToken()
	}

	// Parse column list
	if p.currentIs(token.ASTERISK) {
		p.nextToken()
		sel.Columns = &ast.AllColumns{}
	} else {
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		sel.Columns = &ast.SomeColumns{Columns: cols}
	}

	// Parse FROM clause
	if err := p.expect(token.FROM); err != nil {
		return nil, err
	}
	for {
		table, err := p.parseTableName()
		if err != nil {
			return nil, err
		}
		sel.From = append(sel.From, table)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	// Parse WHERE clause
	if p.currentIs(token.WHERE) {
		p.nextToken()
		where, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}

	// Parse GROUP BY clause
	if p.currentIs(token.GROUP) {
		p.nextToken()
		if err := p.expect(token.BY); err != nil {
			return nil, err
		}
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		sel.GroupBy = cols
	}

	// Parse ORDER BY clause
	if p.currentIs(token.ORDER) {
		p.nextToken()
		if err := p.expect(token.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		sel.OrderBy = items
	}

	// Parse FOR UPDATE
	if p.currentIs(token.FOR) {
		p.nextToken()
		if err := p.expect(token.UPDATE); err != nil {
			return nil, err
		}
		sel.ForUpdate = true
	}

	return sel, nil
}

func (p *Parser) parseColumnList() ([]ast.SelectColumn, error) {
	var cols []ast.SelectColumn
	for {
		col, err := p.parseSelectColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if !p.currentIs(token.COMMA) {
			return cols, nil
		}
		p.nextToken()
	}
}

// parseSelectColumn parses a column followed by an optional alias, written
// either as AS name or as a bare name.
func (p *Parser) parseSelectColumn() (ast.SelectColumn, error) {
	col, err := p.parseColumn()
	if err != nil {
		return nil, err
	}

	var alias string
	if p.currentIs(token.AS) {
		p.nextToken()
		if !p.currentIs(token.IDENT) {
			return nil, p.unexpected("alias")
		}
		alias = p.current.Value
		p.nextToken()
	} else if p.currentIs(token.IDENT) {
		alias = p.current.Value
		p.nextToken()
	}
	if alias == "" {
		return col, nil
	}

	switch c := col.(type) {
	case *ast.UIDColumn:
		c.Alias = alias
	case *ast.Column:
		c.Alias = alias
	case *ast.LiteralColumn:
		c.Alias = alias
	case *ast.FunctionColumn:
		c.Alias = alias
	}
	return col, nil
}

// parseColumn parses the unaliased part of a select column.
func (p *Parser) parseColumn() (ast.SelectColumn, error) {
	switch p.current.Token {
	case token.UID:
		p.nextToken()
		return &ast.UIDColumn{}, nil

	case token.IDENT:
		if p.peekIs(token.LPAREN) {
			name := p.current.Value
			p.nextToken() // skip name
			p.nextToken() // skip (
			inner, err := p.parseColumn()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return &ast.FunctionColumn{Name: name, Column: inner}, nil
		}
		name, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		return &ast.Column{Name: name}, nil

	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL, token.QUESTION:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ast.LiteralColumn{Literal: lit}, nil
	}

	return nil, p.unexpected("column")
}

// parseDottedName parses ident (. ident)* and joins the parts with dots.
func (p *Parser) parseDottedName() (string, error) {
	if !p.currentIs(token.IDENT) {
		return "", p.unexpected("identifier")
	}
	parts := []string{p.current.Value}
	p.nextToken()
	for p.currentIs(token.DOT) {
		p.nextToken()
		if !p.currentIs(token.IDENT) {
			return "", p.unexpected("identifier")
		}
		parts = append(parts, p.current.Value)
		p.nextToken()
	}
	return strings.Join(parts, "."), nil
}

// parseTableName parses a table reference and its optional bare alias.
func (p *Parser) parseTableName() (*ast.TableName, error) {
	if !p.currentIs(token.IDENT) {
		return nil, p.unexpected("table name")
	}
	name, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	table := &ast.TableName{Name: name}
	if p.currentIs(token.IDENT) {
		table.Alias = p.current.Value
		p.nextToken()
	}
	return table, nil
}

func (p *Parser) parseOrderByList() ([]*ast.OrderByColumn, error) {
	var items []*ast.OrderByColumn

	for {
		col, err := p.parseSelectColumn()
		if err != nil {
			return nil, err
		}
		item := &ast.OrderByColumn{Column: col}

		switch p.current.Token {
		case token.ASC:
			p.nextToken()
		case token.DESC:
			item.Direction = ast.DirectionDesc
			p.nextToken()
		}

		if p.currentIs(token.NULLS) {
			p.nextToken()
			switch p.current.Token {
			case token.FIRST:
				item.Nulls = ast.NullsFirst
			case token.LAST:
				item.Nulls = ast.NullsLast
			default:
				return nil, p.unexpected("FIRST or LAST")
			}
			p.nextToken()
		}

		items = append(items, item)

		if !p.currentIs(token.COMMA) {
			return items, nil
		}
		p.nextToken()
	}
}
