package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

func lit(t *Tree, parent NodeID, v value.Value) NodeID {
	id := t.New(Literal, parent, token.Token{})
	t.Node(id).Value = v
	return id
}

func TestTreeParents(t *testing.T) {
	tree := NewTree()
	root := tree.Root()
	require.Equal(t, Program, tree.Node(root).Type)
	require.Equal(t, NoNode, tree.Parent(root))

	decl := tree.Append(root, FunctionDeclaration, token.Token{})
	body := tree.Append(decl, FunctionBody, token.Token{})
	stmt := tree.Append(body, Return, token.Token{})

	require.Equal(t, []NodeID{decl}, tree.Node(root).Body)
	require.Equal(t, body, tree.Parent(stmt))
	require.Equal(t, root, tree.Parent(tree.Parent(body)), "a body pops to its grandparent")

	detached := tree.New(Identifier, decl, token.Token{})
	require.Equal(t, decl, tree.Parent(detached))
	require.Len(t, tree.Node(decl).Body, 1, "New does not append")
	require.Equal(t, 5, tree.Len())

	require.Nil(t, tree.Node(NoNode))
	require.Nil(t, tree.Node(99))
	require.Equal(t, NoNode, tree.Parent(99))
}

func TestNodePointersSurviveGrowth(t *testing.T) {
	tree := NewTree()
	n := tree.Node(tree.Root())
	for i := 0; i < 1000; i++ {
		tree.Append(tree.Root(), Literal, token.Token{})
	}
	require.Len(t, n.Body, 1000)
	require.Same(t, n, tree.Node(tree.Root()))
}

func TestString(t *testing.T) {
	tree := NewTree()
	root := tree.Root()

	decl := tree.Append(root, VariableDeclaration, token.Token{})
	d := tree.Node(decl)
	d.Name = "x"
	d.VarType = types.Int
	cell := tree.New(Identifier, decl, token.Token{})
	tree.Node(cell).Name = "x"
	d.Left = cell

	assign := tree.Append(decl, BinOp, token.Token{})
	add := tree.New(BinOp, assign, token.Token{})
	mul := tree.New(BinOp, add, token.Token{})
	tree.Node(mul).Op = Mul
	tree.Node(mul).Left = lit(tree, mul, value.Int(1))
	tree.Node(mul).Right = lit(tree, mul, value.Int(2))
	tree.Node(add).Op = Plus
	tree.Node(add).Left = mul
	tree.Node(add).Right = lit(tree, add, value.Float(3.5))
	a := tree.Node(assign)
	a.Op = Assignment
	a.Left = cell
	a.Right = add

	pr := tree.Append(root, Print, token.Token{})
	s := tree.Append(pr, Literal, token.Token{})
	tree.Node(s).Value = value.Str("x is $x")

	require.Equal(t, "((1 * 2) + 3.5)", tree.String(add))
	require.Equal(t, "int x = ((1 * 2) + 3.5);\nprint(\"x is $x\");", tree.String(root))
}

func TestStringFunctions(t *testing.T) {
	tree := NewTree()
	root := tree.Root()

	fn := &Function{Name: "f", ReturnType: types.Int, Parameters: []Param{{"n", types.Int}}}
	decl := tree.Append(root, FunctionDeclaration, token.Token{})
	tree.Node(decl).Name = "f"
	tree.Node(decl).Func = fn
	body := tree.Append(decl, FunctionBody, token.Token{})
	tree.Node(body).Func = fn
	ret := tree.Append(body, Return, token.Token{})
	expr := tree.Append(ret, Expression, token.Token{})
	id := tree.Append(expr, Identifier, token.Token{})
	tree.Node(id).Name = "n"

	call := tree.Append(root, FunctionCall, token.Token{})
	tree.Node(call).Name = "f"
	param := tree.Append(call, FunctionCallParam, token.Token{})
	arg := tree.Append(param, Literal, token.Token{})
	tree.Node(arg).Value = value.Int(21)

	want := "fn f(int n) -> int {\n    return n;\n}\nf(21);"
	require.Equal(t, want, tree.String(root))
	require.Equal(t, 1, fn.Arity())
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "LoopBody", LoopBody.String())
	require.Equal(t, "NodeType(99)", NodeType(99).String())
	require.Equal(t, "*", Mul.String())
	require.Equal(t, "BinOp(99)", BinOpType(99).String())
	require.Equal(t, Div, BinOpFor(token.QUO))
	require.Equal(t, Assignment, BinOpFor(token.ASSIGN))
	require.Equal(t, NoOp, BinOpFor(token.COMMA))
}
