package parser

import (
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/symbols"
	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

// parseFunction parses
//
//	fn name = (type a, type b) -> type { ... }
//	fn name = (type a, type b) -> expression;
//
// The function is registered before its body is parsed so the body may
// call it.
func (p *Parser) parseFunction() error {
	fnTok := p.cur.Advance()
	nameTok := p.cur.Get()
	if nameTok.Type != token.IDENT {
		return p.expected(nameTok, "identifier")
	}
	if _, ok := p.Syms.Function(nameTok.Literal); ok {
		return p.fail(nameTok, token.StatusExpected, "function %s already exists", nameTok.Literal)
	}
	if p.Syms.Variable(nameTok.Literal) {
		return p.fail(nameTok, token.StatusExpected, "%s is already declared as a variable", nameTok.Literal)
	}
	p.cur.Advance()

	if _, err := p.expect(token.ASSIGN); err != nil {
		return err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}

	fn := &ast.Function{Name: nameTok.Literal}
	paramToks, err := p.parseParameters(fn)
	if err != nil {
		return err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return err
	}

	end := 0
	if ret := p.cur.Get(); ret.IsType() {
		fn.ReturnType, _ = types.Lookup(ret.Literal)
		p.cur.Advance()
		if _, err := p.expect(token.LBRACE); err != nil {
			return err
		}
	} else {
		fn.SingleExpression = true
		if end, err = p.singleExpressionEnd(); err != nil {
			return err
		}
	}

	decl := p.Tree.Append(p.node, ast.FunctionDeclaration, fnTok)
	d := p.Tree.Node(decl)
	d.Name = fn.Name
	d.Func = fn
	body := p.Tree.Append(decl, ast.FunctionBody, fnTok)
	p.Tree.Node(body).Func = fn
	p.Syms.Functions[fn.Name] = body

	p.Syms.PushLocals(symbols.FuncScope)
	for i, param := range fn.Parameters {
		cell := p.Tree.Append(decl, ast.Identifier, paramToks[i])
		c := p.Tree.Node(cell)
		c.Name = param.Name
		c.VarType = param.Type
		c.Value = value.Zero(param.Type)
		p.Syms.PutLocal(param.Name, cell)
	}

	if !fn.SingleExpression {
		p.node = body
		return nil
	}

	expr := p.Tree.Append(body, ast.Expression, p.cur.Get())
	child, err := p.expression(p.cur.Slice(p.cur.Pos(), end), expr)
	if err != nil {
		return err
	}
	p.adopt(expr, child)
	p.cur.Seek(end + 1)
	p.Syms.PopLocals()
	return nil
}

// parseParameters reads "type name, ..." up to and including the closing
// parenthesis.
func (p *Parser) parseParameters(fn *ast.Function) ([]token.Token, error) {
	var toks []token.Token
	for !p.cur.Expect(token.RPAREN) {
		switch tok := p.cur.Get(); tok.Type {
		case token.LBRACE, token.ARROW, token.EOF, token.NONE:
			return nil, p.expected(tok, ")")
		}
		if len(fn.Parameters) > 0 {
			if sep := p.cur.Get(); sep.Type != token.COMMA {
				return nil, p.expected(sep, "',' or ')'")
			}
			p.cur.Advance()
		}

		typTok := p.cur.Get()
		t, _ := types.Lookup(typTok.Literal)
		if !typTok.IsType() || !t.Declarable() {
			return nil, p.expected(typTok, "int, float or string")
		}
		p.cur.Advance()

		nameTok := p.cur.Get()
		if nameTok.Type != token.IDENT {
			return nil, p.expected(nameTok, "identifier")
		}
		for _, prev := range fn.Parameters {
			if prev.Name == nameTok.Literal {
				return nil, p.fail(nameTok, token.StatusExpected, "duplicate parameter %s in function %s", nameTok.Literal, fn.Name)
			}
		}
		p.cur.Advance()

		fn.Parameters = append(fn.Parameters, ast.Param{Name: nameTok.Literal, Type: t})
		toks = append(toks, nameTok)
	}
	p.cur.Advance()
	return toks, nil
}

// singleExpressionEnd checks the tokens of a single-expression body and
// returns the index of its ';'.
func (p *Parser) singleExpressionEnd() (int, error) {
	if tok := p.cur.Get(); tok.Type == token.SEMICOLON || tok.Type == token.EOF {
		return 0, p.expected(tok, "literal, operator or identifier")
	}
	end, err := p.findSemicolon()
	if err != nil {
		return 0, err
	}
	for i := p.cur.Pos(); i < end; i++ {
		switch tok := p.cur.At(i); {
		case tok.IsLiteral(), tok.IsOperator():
		case tok.Type == token.IDENT, tok.Type == token.LPAREN, tok.Type == token.RPAREN, tok.Type == token.COMMA:
		default:
			return 0, p.expected(tok, "literal, operator or identifier")
		}
	}
	return end, nil
}

// parseCall parses name(arg, ...) at the cursor of c. Arguments are
// literals or variables. The call is not added to parent's body.
func (p *Parser) parseCall(c *token.Cursor, parent ast.NodeID) (ast.NodeID, error) {
	nameTok := c.Advance()
	body, _ := p.Syms.Function(nameTok.Literal)
	if tok := c.Get(); tok.Type != token.LPAREN {
		return ast.NoNode, p.expected(tok, "(")
	}
	c.Advance()

	call := p.Tree.New(ast.FunctionCall, parent, nameTok)
	n := p.Tree.Node(call)
	n.Name = nameTok.Literal
	n.Func = p.Tree.Node(body).Func
	n.Callee = body

	if c.Expect(token.RPAREN) {
		c.Advance()
		return call, nil
	}
	for {
		arg := c.Get()
		param := p.Tree.Append(call, ast.FunctionCallParam, arg)
		switch {
		case arg.IsLiteral():
			p.adopt(param, p.literal(arg, param))
		case arg.Type == token.IDENT && p.Syms.Variable(arg.Literal):
			p.adopt(param, p.identifier(arg, param))
		case arg.Type == token.IDENT && !p.isFunction(arg.Literal):
			return ast.NoNode, p.undeclared(arg)
		default:
			return ast.NoNode, p.expected(arg, "literal or identifier")
		}
		c.Advance()

		switch sep := c.Get(); sep.Type {
		case token.COMMA:
			c.Advance()
		case token.RPAREN:
			c.Advance()
			return call, nil
		default:
			return ast.NoNode, p.expected(sep, "',' or ')'")
		}
	}
}

// parseCallStatement parses a call standing on its own, or an expression
// that starts with a call.
func (p *Parser) parseCallStatement() error {
	if rparen, ok := p.cur.FindNext(token.RPAREN); ok && p.cur.At(rparen+1).Type != token.SEMICOLON {
		return p.parseExpressionStatement()
	}
	call, err := p.parseCall(p.cur, p.node)
	if err != nil {
		return err
	}
	p.adopt(p.node, call)
	_, err = p.expect(token.SEMICOLON)
	return err
}
