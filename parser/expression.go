package parser

import (
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/token"
)

// expression parses the bounded range of c into a node owned by parent.
//
// Operators have no precedence. The range is split at its last top-level
// operator, so operands fold from left to right: 1 + 2 * 3 is (1 + 2) * 3.
// Parentheses outside a call are skipped and do not group.
func (p *Parser) expression(c *token.Cursor, parent ast.NodeID) (ast.NodeID, error) {
	k, ok := p.splitPoint(c)
	if !ok {
		return p.operand(c, parent)
	}

	opTok := c.At(k)
	bin := p.Tree.New(ast.BinOp, parent, opTok)
	left, err := p.expression(c.Slice(c.Begin(), k), bin)
	if err != nil {
		return ast.NoNode, err
	}
	right, err := p.expression(c.Slice(k+1, c.End()), bin)
	if err != nil {
		return ast.NoNode, err
	}

	b := p.Tree.Node(bin)
	b.Op = ast.BinOpFor(opTok.Type)
	b.Left = left
	b.Right = right
	return bin, nil
}

// splitPoint returns the index of the last operator of c that is not
// inside a call's argument list.
func (p *Parser) splitPoint(c *token.Cursor) (int, bool) {
	k, found := 0, false
	for i := c.Begin(); i < c.End(); i++ {
		tok := c.At(i)
		switch {
		case tok.Type == token.IDENT && c.At(i+1).Type == token.LPAREN && p.isFunction(tok.Literal):
			for i < c.End()-1 && c.At(i).Type != token.RPAREN {
				i++
			}
		case tok.IsOperator():
			k, found = i, true
		}
	}
	return k, found
}

// operand parses a range holding one literal, variable or call, possibly
// wrapped in parentheses.
func (p *Parser) operand(c *token.Cursor, parent ast.NodeID) (ast.NodeID, error) {
	i := skipParens(c, c.Begin())
	if i >= c.End() {
		// the token that ends the range: an operator or the ';'
		return ast.NoNode, p.expected(p.cur.At(c.End()), "identifier, literal or expression")
	}

	var id ast.NodeID
	tok := c.At(i)
	switch {
	case tok.IsLiteral():
		id = p.literal(tok, parent)
		i++
	case tok.Type == token.IDENT && p.isFunction(tok.Literal):
		sub := c.Slice(i, c.End())
		call, err := p.parseCall(sub, parent)
		if err != nil {
			return ast.NoNode, err
		}
		id = call
		i = sub.Pos()
	case tok.Type == token.IDENT && p.Syms.Variable(tok.Literal):
		id = p.identifier(tok, parent)
		i++
	case tok.Type == token.IDENT:
		return ast.NoNode, p.undeclared(tok)
	default:
		return ast.NoNode, p.expected(tok, "identifier, literal or expression")
	}

	if j := skipParens(c, i); j < c.End() {
		return ast.NoNode, p.expected(c.At(j), ";")
	}
	return id, nil
}

func skipParens(c *token.Cursor, i int) int {
	for i < c.End() {
		switch c.At(i).Type {
		case token.LPAREN, token.RPAREN:
			i++
		default:
			return i
		}
	}
	return i
}
