package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/lexer"
	"github.com/thiremani/lang/symbols"
	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

const testFile = "test.lang"

func parse(t *testing.T, input string) (*ast.Tree, *symbols.Table) {
	t.Helper()
	tree, syms := ast.NewTree(), symbols.NewTable()
	p := New(testFile, lexer.Tokenize(input), tree, syms)
	require.NoError(t, p.Parse(), "input %q", input)
	return tree, syms
}

func parseErr(t *testing.T, input string) *token.CompileError {
	t.Helper()
	p := New(testFile, lexer.Tokenize(input), ast.NewTree(), symbols.NewTable())
	err := p.Parse()
	require.Error(t, err, "input %q", input)
	ce, ok := err.(*token.CompileError)
	require.Truef(t, ok, "expected *token.CompileError, got %T", err)
	return ce
}

func TestExpressionSplit(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expStr string
	}{
		{"single literal", "int x = 5;", "int x = 5;"},
		{"no precedence", "int x = 1 + 2 * 3;", "int x = ((1 + 2) * 3);"},
		{"left to right fold", "int x = 8 / 2 - 1 + 3;", "int x = (((8 / 2) - 1) + 3);"},
		{"parens do not group", "int x = 2 * (1 + 3);", "int x = ((2 * 1) + 3);"},
		{"leading parens", "int x = (1 + 2) * 3;", "int x = ((1 + 2) * 3);"},
		{"float operand", "float f = 2 + 1.5;", "float f = (2 + 1.5);"},
		{"string", `string s = "a" + "b";`, `string s = ("a" + "b");`},
		{"no initializer", "float f;", "float f;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parse(t, tt.input)
			require.Equal(t, tt.expStr, tree.String(tree.Root()))
		})
	}
}

func TestDeclarationRegistersCell(t *testing.T) {
	tree, syms := parse(t, "int x = 5; float f; string s;")
	root := tree.Node(tree.Root())
	require.Len(t, root.Body, 3)

	cell, ok := syms.Global("x")
	require.True(t, ok)
	require.Equal(t, ast.Identifier, tree.Node(cell).Type)
	require.Equal(t, root.Body[0], tree.Parent(cell))
	require.Equal(t, cell, tree.Node(root.Body[0]).Left)

	decl := tree.Node(root.Body[0])
	require.Len(t, decl.Body, 1)
	init := tree.Node(decl.Body[0])
	require.Equal(t, ast.Assignment, init.Op)
	require.Equal(t, cell, init.Left)
	require.Equal(t, value.Int(5), tree.Node(init.Right).Value)

	f, _ := syms.Global("f")
	require.Equal(t, value.Float(0), tree.Node(f).Value)
	require.Equal(t, types.Float, tree.Node(f).VarType)
	s, _ := syms.Global("s")
	require.Equal(t, value.Str(""), tree.Node(s).Value)
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expStr string
	}{
		{"assignment", "int x = 5; x = x + 1; x;", "int x = 5;\nx = (x + 1);\nx;"},
		{"expression statement", "1 + 2 * 3;", "((1 + 2) * 3);"},
		{"empty statements", "int x;;;", "int x;"},
		{"print string", `print("hi $x");`, `print("hi $x");`},
		{"print variable", "int x; print(x);", "int x;\nprint(x);"},
		{"print nothing", "print();", "print();"},
		{"loop", "loop 3 { print(_index); }", "loop 3 {\n    print(_index);\n}"},
		{"loop over variable", "int n = 2; loop n { n; }", "int n = 2;\nloop n {\n    n;\n}"},
		{"return at top level", "return 5;", "return 5;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parse(t, tt.input)
			require.Equal(t, tt.expStr, tree.String(tree.Root()))
		})
	}
}

func TestFunctions(t *testing.T) {
	input := `
fn f = (int n) -> int {
    return n * 2;
}
fn sq = (float x) -> x * x;
fn none = () -> void {
    print("none");
}
f(21);
int y = sq(2) + f(1);
none();
`
	tree, syms := parse(t, input)
	want := "fn f(int n) -> int {\n    return (n * 2);\n}\n" +
		"fn sq(float x) -> (x * x);\n" +
		"fn none() -> void {\n    print(\"none\");\n}\n" +
		"f(21);\n" +
		"int y = (sq(2) + f(1));\n" +
		"none();"
	require.Equal(t, want, tree.String(tree.Root()))

	body, ok := syms.Function("f")
	require.True(t, ok)
	require.Equal(t, ast.FunctionBody, tree.Node(body).Type)
	decl := tree.Node(tree.Parent(body))
	require.Equal(t, ast.FunctionDeclaration, decl.Type)
	require.Equal(t, types.Int, decl.Func.ReturnType)
	require.Equal(t, []ast.Param{{Name: "n", Type: types.Int}}, decl.Func.Parameters)
	require.False(t, decl.Func.SingleExpression)

	sq, _ := syms.Function("sq")
	require.True(t, tree.Node(sq).Func.SingleExpression)

	call := tree.Node(tree.Node(tree.Root()).Body[3])
	require.Equal(t, ast.FunctionCall, call.Type)
	require.Equal(t, body, call.Callee)
	require.Same(t, decl.Func, call.Func)
	require.Len(t, call.Body, 1)
	param := tree.Node(call.Body[0])
	require.Equal(t, ast.FunctionCallParam, param.Type)
	require.Equal(t, value.Int(21), tree.Node(param.Body[0]).Value)

	require.Len(t, syms.Locals, 1, "every body scope is closed")
}

func TestRecursiveCallParses(t *testing.T) {
	tree, _ := parse(t, "fn down = (int n) -> int { return down(n); }")
	require.Equal(t, "fn down(int n) -> int {\n    return down(n);\n}", tree.String(tree.Root()))
}

func TestArityIsCheckedAtRuntime(t *testing.T) {
	tree, _ := parse(t, "fn f = (int n) -> n; f(1, 2);")
	call := tree.Node(tree.Node(tree.Root()).Body[1])
	require.Len(t, call.Body, 2)
	require.Equal(t, 1, call.Func.Arity())
}

func TestScopes(t *testing.T) {
	t.Run("loop sees parameters", func(t *testing.T) {
		parse(t, "fn g = (int n) -> void { loop n { print(n); print(_index); } }")
	})
	t.Run("parameters end with the body", func(t *testing.T) {
		ce := parseErr(t, "fn f = (int n) -> int { return n; } print(n);")
		require.Equal(t, token.StatusRuntime, ce.ExitCode())
		require.Equal(t, "undeclared variable n", ce.Msg)
	})
	t.Run("index ends with the loop", func(t *testing.T) {
		ce := parseErr(t, "loop 2 { } print(_index);")
		require.Equal(t, "undeclared variable _index", ce.Msg)
	})
	t.Run("nested loops", func(t *testing.T) {
		tree, syms := parse(t, "loop 2 { loop 3 { print(_index); } }")
		require.Len(t, syms.Locals, 1)
		require.Equal(t, "loop 2 {\n    loop 3 {\n        print(_index);\n    }\n}", tree.String(tree.Root()))
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		status int
		expErr string
	}{
		{"duplicate variable", "int x = 1; int x = 2;", token.StatusRuntime,
			"[ERROR] test.lang:1:16: variable x is already declared"},
		{"duplicate function", "fn f = (int n) -> n; fn f = (int m) -> m;", token.StatusExpected,
			"[ERROR] test.lang:1:25: function f already exists"},
		{"variable named like a function", "fn f = () -> 1; int f;", token.StatusRuntime,
			"[ERROR] test.lang:1:21: variable f is already declared"},
		{"missing initializer", "int x = ;", token.StatusExpected,
			"[ERROR] test.lang:1:9: expected 'identifier, literal or expression', got ';'"},
		{"missing semicolon", "int x = 5", token.StatusExpected,
			"[ERROR] test.lang:1:10: expected ';', got 'EOF'"},
		{"missing right operand", "int x = 1 +;", token.StatusExpected,
			"[ERROR] test.lang:1:12: expected 'identifier, literal or expression', got ';'"},
		{"missing left operand", "int x = * 2;", token.StatusExpected,
			"[ERROR] test.lang:1:9: expected 'identifier, literal or expression', got '*'"},
		{"trailing operand", "int x = 1 2;", token.StatusExpected,
			"[ERROR] test.lang:1:11: expected ';', got '2'"},
		{"undeclared operand", "int x = y;", token.StatusRuntime,
			"[ERROR] test.lang:1:9: undeclared variable y"},
		{"undeclared statement", "y = 1;", token.StatusRuntime,
			"[ERROR] test.lang:1:1: undeclared variable y"},
		{"illegal literal", "int x = 99999999999;", token.StatusExpected,
			"[ERROR] test.lang:1:9: expected 'identifier, literal or expression', got '99999999999'"},
		{"unclosed body", "loop 3 { print(_index);", token.StatusExpected,
			"[ERROR] test.lang:1:24: expected '}', got 'EOF'"},
		{"stray brace", "}", token.StatusExpected,
			"[ERROR] test.lang:1:1: expected 'statement', got '}'"},
		{"undeclarable type", "char c;", token.StatusExpected,
			"[ERROR] test.lang:1:1: expected 'int, float or string', got 'char'"},
		{"bad statement", "-> x;", token.StatusExpected,
			"[ERROR] test.lang:1:1: expected 'statement', got '->'"},
		{"print literal", "print(5);", token.StatusExpected,
			"[ERROR] test.lang:1:7: expected 'string literal or identifier', got '5'"},
		{"print unclosed", `print("a";`, token.StatusExpected,
			"[ERROR] test.lang:1:10: expected ')', got ';'"},
		{"return nothing", "return;", token.StatusExpected,
			"[ERROR] test.lang:1:7: expected 'value, identifier or expression', got ';'"},
		{"loop on string", `loop "a" { }`, token.StatusExpected,
			"[ERROR] test.lang:1:6: expected 'int literal or identifier', got '\"a\"'"},
		{"loop without brace", "loop 3 print(_index);", token.StatusExpected,
			"[ERROR] test.lang:1:8: expected '{', got 'print'"},
		{"function without name", "fn = () -> 1;", token.StatusExpected,
			"[ERROR] test.lang:1:4: expected 'identifier', got '='"},
		{"function without assign", "fn f () -> 1;", token.StatusExpected,
			"[ERROR] test.lang:1:6: expected '=', got '('"},
		{"unclosed parameters", "fn f = (int a -> int { }", token.StatusExpected,
			"[ERROR] test.lang:1:15: expected ')', got '->'"},
		{"parameter separator", "fn f = (int a int b) -> a;", token.StatusExpected,
			"[ERROR] test.lang:1:15: expected '',' or ')'', got 'int'"},
		{"duplicate parameter", "fn f = (int a, int a) -> a;", token.StatusExpected,
			"[ERROR] test.lang:1:20: duplicate parameter a in function f"},
		{"missing arrow", "fn f = (int a) int { }", token.StatusExpected,
			"[ERROR] test.lang:1:16: expected '->', got 'int'"},
		{"empty single expression", "fn f = (int a) -> ;", token.StatusExpected,
			"[ERROR] test.lang:1:19: expected 'literal, operator or identifier', got ';'"},
		{"bad single expression", "fn f = (int a) -> print(a);", token.StatusExpected,
			"[ERROR] test.lang:1:19: expected 'literal, operator or identifier', got 'print'"},
		{"call argument separator", "fn f = (int a) -> a; f(1 2);", token.StatusExpected,
			"[ERROR] test.lang:1:26: expected '',' or ')'', got '2'"},
		{"call argument expression", "fn f = (int a) -> a; f(+);", token.StatusExpected,
			"[ERROR] test.lang:1:24: expected 'literal or identifier', got '+'"},
		{"call without semicolon", "fn f = (int a) -> a; f(1)", token.StatusExpected,
			"[ERROR] test.lang:1:26: expected ';', got 'EOF'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := parseErr(t, tt.input)
			assert.Equal(t, tt.status, ce.ExitCode())
			assert.Equal(t, tt.expErr, ce.Error())
		})
	}
}

func TestGenerateOneStatementAtATime(t *testing.T) {
	tree, syms := ast.NewTree(), symbols.NewTable()
	p := New(testFile, lexer.Tokenize("int x = 1; fn f = () -> int { return x; }"), tree, syms)

	require.NoError(t, p.Generate())
	require.Len(t, tree.Node(tree.Root()).Body, 1)
	require.False(t, p.Done())

	require.NoError(t, p.Generate())
	require.Equal(t, ast.FunctionBody, tree.Node(p.Current()).Type)

	require.NoError(t, p.Generate())
	require.NoError(t, p.Generate())
	require.Equal(t, tree.Root(), p.Current())
	require.True(t, p.Done())
}
