package evaluator

import (
	"io"
	"strings"

	"github.com/oarkflow/log"
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/symbols"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

const DefaultMaxDepth = 10000

// Evaluator walks a parsed Tree. Globals live in the declaration cells of
// the tree; parameters and loop indexes live in a stack of frames, one
// function scope per active call.
type Evaluator struct {
	File     string
	Tree     *ast.Tree
	Syms     *symbols.Table
	Out      io.Writer
	MaxDepth int
	Logger   *log.Logger

	frames []symbols.Scope[value.Value]
	depth  int
}

func New(file string, tree *ast.Tree, syms *symbols.Table, out io.Writer) *Evaluator {
	return &Evaluator{
		File:     file,
		Tree:     tree,
		Syms:     syms,
		Out:      out,
		MaxDepth: DefaultMaxDepth,
		Logger:   &log.DefaultLogger,
		frames:   []symbols.Scope[value.Value]{symbols.NewScope[value.Value](symbols.FuncScope)},
	}
}

// Run evaluates the whole program.
func (e *Evaluator) Run() error {
	_, err := e.Eval(e.Tree.Root())
	return err
}

// Statements evaluates top-level statements one after the other, the way
// Run does for the whole program.
func (e *Evaluator) Statements(ids []ast.NodeID) error {
	for _, id := range ids {
		if _, err := e.statement(id); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates the subtree at id. Nodes without a result yield nil.
func (e *Evaluator) Eval(id ast.NodeID) (value.Value, error) {
	n := e.Tree.Node(id)
	switch n.Type {
	case ast.Program:
		return nil, e.Statements(n.Body)
	case ast.FunctionDeclaration:
		// functions are bound while parsing
		return nil, nil
	case ast.FunctionBody:
		return e.functionBody(n)
	case ast.LoopBody:
		return e.loopBody(n)
	case ast.FunctionCall:
		return e.call(n)
	case ast.FunctionCallParam, ast.Expression:
		if len(n.Body) == 0 {
			return nil, nil
		}
		return e.Eval(n.Body[0])
	case ast.VariableDeclaration:
		return e.declaration(n)
	case ast.Identifier:
		v, ok := e.resolve(n.Name)
		if !ok {
			return nil, e.errorf(n.Token, "undeclared variable %s", n.Name)
		}
		return v, nil
	case ast.Literal:
		return n.Value, nil
	case ast.BinOp:
		if n.Op == ast.Assignment {
			return e.assign(n)
		}
		return e.binOp(n)
	case ast.Return:
		v, err := e.Eval(n.Body[0])
		if err != nil {
			return nil, err
		}
		n.Value = v
		return v, nil
	case ast.Print:
		return nil, e.print(n)
	case ast.LoopDeclaration:
		return e.loop(n)
	}
	return nil, e.errorf(n.Token, "cannot evaluate %s", n.Type)
}

// statement evaluates a statement of a body. A call standing on its own
// prints the value it returns.
func (e *Evaluator) statement(id ast.NodeID) (value.Value, error) {
	v, err := e.Eval(id)
	if err != nil {
		return nil, err
	}
	if n := e.Tree.Node(id); n.Type == ast.FunctionCall && v != nil {
		if _, err := io.WriteString(e.Out, value.Render(v)+"\n"); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// resolve looks name up in the active frame, then in the globals.
func (e *Evaluator) resolve(name string) (value.Value, bool) {
	if v, ok := symbols.Get(e.frames, name); ok {
		return v, true
	}
	if cell, ok := e.Syms.Global(name); ok {
		return e.Tree.Node(cell).Value, true
	}
	return nil, false
}

func (e *Evaluator) functionBody(n *ast.Node) (value.Value, error) {
	var result value.Value
	if n.Func.SingleExpression {
		v, err := e.Eval(n.Body[0])
		if err != nil {
			return nil, err
		}
		result = v
	} else {
		for _, id := range n.Body {
			v, err := e.statement(id)
			if err != nil {
				return nil, err
			}
			if e.Tree.Node(id).Type == ast.Return {
				result = v
				break
			}
		}
	}
	if n.Func.ReturnType == types.Void {
		return nil, nil
	}
	return result, nil
}

// loopBody runs every statement of one iteration, returns included.
func (e *Evaluator) loopBody(n *ast.Node) (value.Value, error) {
	var result value.Value
	for _, id := range n.Body {
		v, err := e.statement(id)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// call binds the arguments in a fresh frame, in declaration order, and
// evaluates the callee. Arguments see the parameters bound before them
// and the globals, never the caller's frame.
func (e *Evaluator) call(n *ast.Node) (value.Value, error) {
	fn := n.Func
	if len(n.Body) != fn.Arity() {
		return nil, e.errorf(n.Token, "wrong number of arguments for %s: want %d, got %d", fn.Name, fn.Arity(), len(n.Body))
	}
	if e.depth >= e.MaxDepth {
		return nil, e.errorf(n.Token, "call depth limit %d exceeded calling %s", e.MaxDepth, fn.Name)
	}

	symbols.PushScope(&e.frames, symbols.FuncScope)
	e.depth++
	defer func() {
		symbols.PopScope(&e.frames)
		e.depth--
	}()

	for i, param := range fn.Parameters {
		v, err := e.Eval(n.Body[i])
		if err != nil {
			return nil, err
		}
		symbols.Put(e.frames, param.Name, v)
	}
	e.Logger.Debug().Str("function", fn.Name).Int("depth", e.depth).Msg("call")
	return e.Eval(n.Callee)
}

func (e *Evaluator) declaration(n *ast.Node) (value.Value, error) {
	cell := e.Tree.Node(n.Left)
	if len(n.Body) == 0 {
		cell.Value = value.Zero(n.VarType)
	}
	for _, id := range n.Body {
		v, err := e.Eval(id)
		if err != nil {
			return nil, err
		}
		cell.Value = v
	}
	n.Value = cell.Value
	return n.Value, nil
}

// assign stores the right side into the variable on the left and yields
// the stored value.
func (e *Evaluator) assign(n *ast.Node) (value.Value, error) {
	v, err := e.operand(n.Right)
	if err != nil {
		return nil, err
	}

	target := e.Tree.Node(n.Left)
	cell, global := e.Syms.Global(target.Name)
	switch {
	case global && cell == n.Left:
		target.Value = v
	case hasName(e.frames, target.Name):
		symbols.Set(e.frames, target.Name, v)
	case global:
		e.Tree.Node(cell).Value = v
	default:
		return nil, e.errorf(target.Token, "undeclared variable %s", target.Name)
	}
	return v, nil
}

func hasName(frames []symbols.Scope[value.Value], name string) bool {
	_, ok := symbols.Get(frames, name)
	return ok
}

func (e *Evaluator) binOp(n *ast.Node) (value.Value, error) {
	left, err := e.operand(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.operand(n.Right)
	if err != nil {
		return nil, err
	}

	v, err := Apply(n.Op, left, right)
	if err != nil {
		return nil, e.errorf(n.Token, "%s", err)
	}
	return v, nil
}

// operand evaluates a subexpression that must produce a value.
func (e *Evaluator) operand(id ast.NodeID) (value.Value, error) {
	v, err := e.Eval(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		n := e.Tree.Node(id)
		return nil, e.errorf(n.Token, "%s has no value", n.Token.Literal)
	}
	return v, nil
}

// print writes its argument and a newline. Strings are interpolated.
func (e *Evaluator) print(n *ast.Node) error {
	var out strings.Builder
	for _, id := range n.Body {
		v, err := e.Eval(id)
		if err != nil {
			return err
		}
		if s, ok := v.(value.Str); ok {
			out.WriteString(e.interpolate(string(s)))
		} else {
			out.WriteString(value.Render(v))
		}
	}
	out.WriteByte('\n')
	_, err := io.WriteString(e.Out, out.String())
	return err
}

// loop runs the body count times with _index set to the iteration number
// in a block scope of the current frame. A negative count runs nothing.
func (e *Evaluator) loop(n *ast.Node) (value.Value, error) {
	cond, err := e.operand(n.Condition)
	if err != nil {
		return nil, err
	}
	count, ok := cond.(value.Int)
	if !ok {
		return nil, e.errorf(n.Token, "loop count must be int, got %s", cond.Kind())
	}

	symbols.PushScope(&e.frames, symbols.BlockScope)
	defer symbols.PopScope(&e.frames)

	var result value.Value
	for i := value.Int(0); i < count; i++ {
		symbols.Put(e.frames, symbols.IndexName, value.Value(i))
		v, err := e.Eval(n.Body[0])
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
