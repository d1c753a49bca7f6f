package parser

import (
	"github.com/sqlc-dev/spacesql/ast"
	"github.com/sqlc-dev/spacesql/token"
)

// parsePath parses a dotted chain of names in which any step may be followed
// by [*], such as a.b, foo[*].bar or [*].tags[*].
//
// Without a [*] the chain is a plain TableRef holding the source text of the
// chain exactly as written, backticks and spacing included. With
// one or more it becomes a CollectionPath with a Contains element per [*]
// and a PathSegment per name, in source order.
func (p *Parser) parsePath() (ast.Expression, error) {
	var (
		elements []ast.PathElement
		wildcard bool
		end      int
	)
	start := p.current.Pos.Offset

	for {
		if p.currentIs(token.IDENT) {
			end = p.current.End.Offset
			elements = append(elements, &ast.PathSegment{Name: p.current.Value})
			p.nextToken()
		} else if !p.currentIs(token.LBRACKET) {
			return nil, p.unexpected("identifier or [*]")
		}

		for p.currentIs(token.LBRACKET) {
			if err := p.parseWildcard(); err != nil {
				return nil, err
			}
			wildcard = true
			elements = append(elements, &ast.Contains{})
		}

		if !p.currentIs(token.DOT) {
			break
		}
		p.nextToken()
	}

	if !wildcard {
		return &ast.TableRef{Name: p.lexer.Text(start, end)}, nil
	}
	return &ast.CollectionPath{Elements: elements}, nil
}

// parseWildcard parses [*].
func (p *Parser) parseWildcard() error {
	if err := p.expect(token.LBRACKET); err != nil {
		return err
	}
	if err := p.expect(token.ASTERISK); err != nil {
		return err
	}
	return p.expect(token.RBRACKET)
}
