package parser

import (
	"fmt"

	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/symbols"
	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

// Parser builds a Tree from a token sequence one statement at a time.
// Declarations take effect in Syms as soon as they are parsed, so a name
// must be declared before it is used.
type Parser struct {
	File string
	Tree *ast.Tree
	Syms *symbols.Table

	cur *token.Cursor
	// node is the Program, FunctionBody or LoopBody that new statements
	// are appended to.
	node ast.NodeID
}

func New(file string, toks []token.Token, tree *ast.Tree, syms *symbols.Table) *Parser {
	return &Parser{
		File: file,
		Tree: tree,
		Syms: syms,
		cur:  token.NewCursor(toks),
		node: tree.Root(),
	}
}

// Reset points the parser at a new token sequence. The tree, the symbols
// and the current body are kept.
func (p *Parser) Reset(toks []token.Token) {
	p.cur = token.NewCursor(toks)
}

// Parse runs Generate until the end of input. A body still open at the
// end is an error.
func (p *Parser) Parse() error {
	if err := p.statements(); err != nil {
		return err
	}
	if p.node != p.Tree.Root() {
		return p.expected(p.cur.Get(), "}")
	}
	return nil
}

func (p *Parser) statements() error {
	for !p.Done() {
		if err := p.Generate(); err != nil {
			return err
		}
	}
	return nil
}

// Done reports whether the cursor reached the end of input.
func (p *Parser) Done() bool {
	return p.cur.Done() || p.cur.Expect(token.EOF)
}

// Current is the body that the next statement is appended to.
func (p *Parser) Current() ast.NodeID {
	return p.node
}

// Generate parses the statement at the cursor and adds it to the current
// body.
func (p *Parser) Generate() error {
	tok := p.cur.Get()
	switch tok.Type {
	case token.FN:
		return p.parseFunction()
	case token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_STRING:
		return p.parseDeclaration()
	case token.TYPE_CHAR, token.TYPE_BOOL, token.TYPE_VOID:
		return p.expected(tok, "int, float or string")
	case token.IDENT:
		return p.parseIdentStatement()
	case token.INT, token.FLOAT, token.STRING, token.LPAREN:
		return p.parseExpressionStatement()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.LOOP:
		return p.parseLoop()
	case token.RBRACE:
		return p.closeBody()
	case token.SEMICOLON:
		p.cur.Advance()
		return nil
	}
	return p.expected(tok, "statement")
}

func (p *Parser) expected(tok token.Token, what string) error {
	return token.Expected(p.File, tok, what)
}

func (p *Parser) fail(tok token.Token, status int, format string, args ...any) error {
	return &token.CompileError{
		File:   p.File,
		Token:  tok,
		Msg:    fmt.Sprintf(format, args...),
		Status: status,
	}
}

func (p *Parser) undeclared(tok token.Token) error {
	return p.fail(tok, token.StatusRuntime, "undeclared variable %s", tok.Literal)
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	tok := p.cur.Get()
	if tok.Type != t {
		return tok, p.expected(tok, t.String())
	}
	return p.cur.Advance(), nil
}

// findSemicolon returns the index of the ';' ending the statement at the
// cursor.
func (p *Parser) findSemicolon() (int, error) {
	if p.cur.Expect(token.SEMICOLON) {
		return p.cur.Pos(), nil
	}
	end, ok := p.cur.FindNext(token.SEMICOLON)
	if !ok {
		return 0, p.expected(p.cur.At(p.cur.End()-1), ";")
	}
	return end, nil
}

func (p *Parser) adopt(parent, child ast.NodeID) {
	n := p.Tree.Node(parent)
	n.Body = append(n.Body, child)
}

func (p *Parser) isFunction(name string) bool {
	if p.Syms.Variable(name) {
		return false
	}
	_, ok := p.Syms.Function(name)
	return ok
}

func (p *Parser) parseDeclaration() error {
	typTok := p.cur.Advance()
	vt, _ := types.Lookup(typTok.Literal)

	nameTok := p.cur.Get()
	if nameTok.Type != token.IDENT {
		return p.expected(nameTok, "identifier")
	}
	if p.Syms.Declared(nameTok.Literal) {
		return p.fail(nameTok, token.StatusRuntime, "variable %s is already declared", nameTok.Literal)
	}
	p.cur.Advance()

	decl := p.Tree.Append(p.node, ast.VariableDeclaration, typTok)
	cell := p.Tree.New(ast.Identifier, decl, nameTok)
	c := p.Tree.Node(cell)
	c.Name = nameTok.Literal
	c.VarType = vt
	c.Value = value.Zero(vt)
	d := p.Tree.Node(decl)
	d.Name = nameTok.Literal
	d.VarType = vt
	d.Left = cell
	p.Syms.Globals[nameTok.Literal] = cell

	switch tok := p.cur.Get(); tok.Type {
	case token.SEMICOLON:
		p.cur.Advance()
		return nil
	case token.ASSIGN:
		p.cur.Advance()
		return p.parseAssignment(decl, tok, cell)
	default:
		return p.expected(tok, ";")
	}
}

// parseAssignment adds target = <expression up to ';'> to parent. The
// cursor is just past the '='.
func (p *Parser) parseAssignment(parent ast.NodeID, assignTok token.Token, target ast.NodeID) error {
	if p.cur.Expect(token.SEMICOLON) {
		return p.expected(p.cur.Get(), "identifier, literal or expression")
	}
	end, err := p.findSemicolon()
	if err != nil {
		return err
	}

	bin := p.Tree.Append(parent, ast.BinOp, assignTok)
	b := p.Tree.Node(bin)
	b.Op = ast.Assignment
	b.Left = target
	b.Right, err = p.expression(p.cur.Slice(p.cur.Pos(), end), bin)
	if err != nil {
		return err
	}
	p.cur.Seek(end + 1)
	return nil
}

func (p *Parser) parseIdentStatement() error {
	tok := p.cur.Get()
	if p.isFunction(tok.Literal) {
		return p.parseCallStatement()
	}
	if !p.Syms.Variable(tok.Literal) {
		return p.undeclared(tok)
	}

	switch next := p.cur.LookAhead(1); next.Type {
	case token.SEMICOLON:
		id := p.Tree.Append(p.node, ast.Identifier, tok)
		p.Tree.Node(id).Name = tok.Literal
		p.cur.Seek(p.cur.Pos() + 2)
		return nil
	case token.ASSIGN:
		expr := p.Tree.Append(p.node, ast.Expression, tok)
		target := p.Tree.New(ast.Identifier, expr, tok)
		p.Tree.Node(target).Name = tok.Literal
		p.cur.Advance()
		p.cur.Advance()
		return p.parseAssignment(expr, next, target)
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() error {
	tok := p.cur.Get()
	end, err := p.findSemicolon()
	if err != nil {
		return err
	}
	expr := p.Tree.Append(p.node, ast.Expression, tok)
	child, err := p.expression(p.cur.Slice(p.cur.Pos(), end), expr)
	if err != nil {
		return err
	}
	p.adopt(expr, child)
	p.cur.Seek(end + 1)
	return nil
}

func (p *Parser) parseReturn() error {
	retTok := p.cur.Advance()
	if p.cur.Expect(token.SEMICOLON) {
		return p.expected(p.cur.Get(), "value, identifier or expression")
	}
	end, err := p.findSemicolon()
	if err != nil {
		return err
	}

	ret := p.Tree.Append(p.node, ast.Return, retTok)
	expr := p.Tree.Append(ret, ast.Expression, retTok)
	child, err := p.expression(p.cur.Slice(p.cur.Pos(), end), expr)
	if err != nil {
		return err
	}
	p.adopt(expr, child)
	p.cur.Seek(end + 1)
	return nil
}

func (p *Parser) parsePrint() error {
	printTok := p.cur.Advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return err
	}

	pr := p.Tree.Append(p.node, ast.Print, printTok)
	switch arg := p.cur.Get(); {
	case arg.Type == token.STRING:
		p.adopt(pr, p.literal(arg, pr))
		p.cur.Advance()
	case arg.Type == token.IDENT && p.Syms.Variable(arg.Literal):
		p.adopt(pr, p.identifier(arg, pr))
		p.cur.Advance()
	case arg.Type == token.IDENT && !p.isFunction(arg.Literal):
		return p.undeclared(arg)
	case arg.Type == token.RPAREN:
	default:
		return p.expected(arg, "string literal or identifier")
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return err
	}
	_, err := p.expect(token.SEMICOLON)
	return err
}

func (p *Parser) parseLoop() error {
	loopTok := p.cur.Advance()
	cond := p.cur.Get()
	switch {
	case cond.Type == token.INT:
	case cond.Type == token.IDENT && p.Syms.Variable(cond.Literal):
	case cond.Type == token.IDENT && !p.isFunction(cond.Literal):
		return p.undeclared(cond)
	default:
		return p.expected(cond, "int literal or identifier")
	}
	p.cur.Advance()
	if _, err := p.expect(token.LBRACE); err != nil {
		return err
	}

	decl := p.Tree.Append(p.node, ast.LoopDeclaration, loopTok)
	condExpr := p.Tree.New(ast.Expression, decl, cond)
	if cond.Type == token.INT {
		p.adopt(condExpr, p.literal(cond, condExpr))
	} else {
		p.adopt(condExpr, p.identifier(cond, condExpr))
	}
	p.Tree.Node(decl).Condition = condExpr

	body := p.Tree.Append(decl, ast.LoopBody, loopTok)
	p.Syms.PushLocals(symbols.BlockScope)
	p.Syms.PutLocal(symbols.IndexName, decl)
	p.node = body
	return nil
}

// closeBody leaves the current body for the body enclosing its
// declaration.
func (p *Parser) closeBody() error {
	tok := p.cur.Get()
	if p.node == p.Tree.Root() {
		return p.expected(tok, "statement")
	}
	p.cur.Advance()
	p.node = p.Tree.Parent(p.Tree.Parent(p.node))
	p.Syms.PopLocals()
	return nil
}

func (p *Parser) literal(tok token.Token, parent ast.NodeID) ast.NodeID {
	id := p.Tree.New(ast.Literal, parent, tok)
	p.Tree.Node(id).Value = tok.Value
	return id
}

func (p *Parser) identifier(tok token.Token, parent ast.NodeID) ast.NodeID {
	id := p.Tree.New(ast.Identifier, parent, tok)
	p.Tree.Node(id).Name = tok.Literal
	return id
}
