package parser

import (
	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/token"
)

// Operator precedence levels
const (
	LOWEST = iota
	OR_PREC
	AND_PREC
)

func (p *Parser) infixPrecedence() int {
	switch p.current.Token {
	case token.OR:
		return OR_PREC
	case token.AND:
		return AND_PREC
	}
	return LOWEST
}

// parseExpression parses predicates joined by connectives binding tighter
// than precedence.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	left, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}

	for {
		prec := p.infixPrecedence()
		if prec <= precedence {
			return left, nil
		}
		left, err = p.parseConnective(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// parseConnective collects a run of the current connective into one And or
// Or node. Operands of the same kind are spliced in, so an And never holds
// an And and an Or never holds an Or.
func (p *Parser) parseConnective(left ast.Expression, prec int) (ast.Expression, error) {
	tok := p.current.Token
	operands := flatten(tok, nil, left)

	for p.currentIs(tok) {
		p.nextToken()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		operands = flatten(tok, operands, right)
	}

	if tok == token.AND {
		return &ast.And{Operands: operands}, nil
	}
	return &ast.Or{Operands: operands}, nil
}

func flatten(tok token.Token, operands []ast.Expression, e ast.Expression) []ast.Expression {
	switch n := e.(type) {
	case *ast.And:
		if tok == token.AND {
			return append(operands, n.Operands...)
		}
	case *ast.Or:
		if tok == token.OR {
			return append(operands, n.Operands...)
		}
	}
	return append(operands, e)
}

// parsePredicate parses a primary expression and the comparison, BETWEEN,
// IS NULL or IN test that follows it, if any.
func (p *Parser) parsePredicate() (ast.Expression, error) {
	if p.currentIs(token.ROWNUM) {
		return p.parseRowNum()
	}

	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	switch p.current.Token {
	case token.NOT:
		p.nextToken()
		switch p.current.Token {
		case token.BETWEEN:
			return p.parseBetweenExpression(left, true)
		case token.IN:
			return p.parseInExpression(left, true)
		}
		return nil, p.unexpected("BETWEEN or IN")
	case token.BETWEEN:
		return p.parseBetweenExpression(left, false)
	case token.IN:
		return p.parseInExpression(left, false)
	case token.IS:
		return p.parseIsExpression(left)
	case token.RELOP:
		return p.parseRelation(left)
	}

	if p.current.Token.IsComparison() {
		op := p.current.Value
		p.nextToken()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.CondOp{Left: left, Op: op, Right: right}, nil
	}

	return left, nil
}

// parseRowNum parses ROWNUM op n.
func (p *Parser) parseRowNum() (ast.Expression, error) {
	p.nextToken() // skip ROWNUM

	if !p.current.Token.IsComparison() {
		return nil, p.unexpected("comparison operator after ROWNUM")
	}
	op := p.current.Value
	p.nextToken()

	if !p.currentIs(token.NUMBER) {
		return nil, p.unexpected("integer")
	}
	lit, err := classifyNumber(p.current)
	if err != nil {
		return nil, err
	}
	n, ok := lit.(*ast.IntLit)
	if !ok {
		return nil, p.unexpected("integer")
	}
	p.nextToken()
	return &ast.CondRowNum{Op: op, Value: n.Value}, nil
}

func (p *Parser) parseBetweenExpression(left ast.Expression, not bool) (ast.Expression, error) {
	p.nextToken() // skip BETWEEN

	lower, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.AND); err != nil {
		return nil, err
	}
	upper, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.CondBetween{Expr: left, Lower: lower, Upper: upper, Not: not}, nil
}

func (p *Parser) parseIsExpression(left ast.Expression) (ast.Expression, error) {
	p.nextToken() // skip IS

	not := false
	if p.currentIs(token.NOT) {
		not = true
		p.nextToken()
	}
	if err := p.expect(token.NULL); err != nil {
		return nil, err
	}
	return &ast.CondIsNull{Expr: left, Not: not}, nil
}

func (p *Parser) parseInExpression(left ast.Expression, not bool) (ast.Expression, error) {
	p.nextToken() // skip IN

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	// Check if it's a subquery
	if p.currentIs(token.SELECT) {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.CondInSelect{Expr: left, Not: not, Select: sel}, nil
	}

	var list []ast.Expression
	for {
		item, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		list = append(list, item)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CondInList{Expr: left, Not: not, List: list}, nil
}

// parseRelation parses left relop ?. Any operand other than a placeholder on
// the right is rejected.
func (p *Parser) parseRelation(left ast.Expression) (ast.Expression, error) {
	op := p.current.Value
	p.nextToken()

	if !p.currentIs(token.QUESTION) {
		return nil, p.unexpected("placeholder after " + op)
	}
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.CondRelation{Left: left, Op: op, Right: right.(*ast.PreparedLit)}, nil
}

// parsePrimary parses a literal, placeholder, subquery, grouped expression,
// function call or path.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.current.Token {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL, token.QUESTION:
		return p.parseLiteral()

	case token.LPAREN:
		return p.parseGroupedOrSubquery()

	case token.IDENT:
		if p.peekIs(token.LPAREN) {
			return p.parseFunctionCall()
		}
		return p.parsePath()

	case token.LBRACKET:
		return p.parsePath()
	}

	return nil, p.unexpected("expression")
}

// parseLiteral parses a literal token. A placeholder takes the next ordinal.
func (p *Parser) parseLiteral() (ast.Literal, error) {
	var lit ast.Literal

	switch p.current.Token {
	case token.NUMBER:
		var err error
		lit, err = classifyNumber(p.current)
		if err != nil {
			return nil, err
		}
	case token.STRING:
		lit = classifyString(p.current.Value)
	case token.TRUE:
		lit = &ast.BooleanLit{Value: true}
	case token.FALSE:
		lit = &ast.BooleanLit{Value: false}
	case token.NULL:
		lit = &ast.NullLit{}
	case token.QUESTION:
		p.params++
		lit = &ast.PreparedLit{Index: p.params}
	default:
		return nil, p.unexpected("literal")
	}

	p.nextToken()
	return lit, nil
}

// parseGroupedOrSubquery parses (SELECT ...) or (expr). A grouped
// expression is returned unwrapped.
func (p *Parser) parseGroupedOrSubquery() (ast.Expression, error) {
	p.nextToken() // skip (

	var (
		expr ast.Expression
		err  error
	)
	if p.currentIs(token.SELECT) {
		expr, err = p.parseSelect()
	} else {
		expr, err = p.parseExpression(LOWEST)
	}
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseFunctionCall() (ast.Expression, error) {
	fn := &ast.FunctionCall{Name: p.current.Value}
	p.nextToken() // skip name
	p.nextToken() // skip (

	if p.currentIs(token.RPAREN) {
		p.nextToken()
		return fn, nil
	}

	for {
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)
		if !p.currentIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return fn, nil
}
