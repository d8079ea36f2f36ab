package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/thiremani/lang/value"
)

// String renders the subtree rooted at id back into source-like text.
// Binary operations are fully parenthesized so the split order is visible.
func (t *Tree) String(id NodeID) string {
	var out bytes.Buffer
	t.write(&out, id, 0)
	return out.String()
}

func (t *Tree) write(out *bytes.Buffer, id NodeID, depth int) {
	n := t.Node(id)
	if n == nil {
		return
	}

	switch n.Type {
	case Program, FunctionBody, LoopBody:
		t.writeBlock(out, n.Body, depth)
	case FunctionDeclaration:
		out.WriteString("fn " + n.Name + "(" + params(n.Func) + ") -> ")
		body := t.Node(n.Body[0])
		if n.Func.SingleExpression {
			t.write(out, body.Body[0], depth)
			return
		}
		out.WriteString(n.Func.ReturnType.String() + " {\n")
		t.writeBlock(out, body.Body, depth+1)
		out.WriteString("\n" + indent(depth) + "}")
	case FunctionCall:
		out.WriteString(n.Name + "(")
		for i, arg := range n.Body {
			if i > 0 {
				out.WriteString(", ")
			}
			t.write(out, arg, depth)
		}
		out.WriteString(")")
	case FunctionCallParam, Expression:
		if len(n.Body) > 0 {
			t.write(out, n.Body[0], depth)
		}
	case VariableDeclaration:
		out.WriteString(n.VarType.String() + " " + n.Name)
		for _, child := range n.Body {
			if c := t.Node(child); c.Type == BinOp && c.Op == Assignment {
				out.WriteString(" = ")
				t.write(out, c.Right, depth)
			}
		}
	case Identifier:
		out.WriteString(n.Name)
	case Literal:
		out.WriteString(literal(n.Value))
	case BinOp:
		if n.Op == Assignment {
			t.write(out, n.Left, depth)
			out.WriteString(" = ")
			t.write(out, n.Right, depth)
			return
		}
		out.WriteString("(")
		t.write(out, n.Left, depth)
		out.WriteString(" " + n.Op.String() + " ")
		t.write(out, n.Right, depth)
		out.WriteString(")")
	case Return:
		out.WriteString("return ")
		if len(n.Body) > 0 {
			t.write(out, n.Body[0], depth)
		}
	case Print:
		out.WriteString("print(")
		if len(n.Body) > 0 {
			t.write(out, n.Body[0], depth)
		}
		out.WriteString(")")
	case LoopDeclaration:
		out.WriteString("loop ")
		t.write(out, n.Condition, depth)
		out.WriteString(" {\n")
		t.writeBlock(out, t.Node(n.Body[0]).Body, depth+1)
		out.WriteString("\n" + indent(depth) + "}")
	default:
		out.WriteString("<" + n.Type.String() + ">")
	}
}

func (t *Tree) writeBlock(out *bytes.Buffer, body []NodeID, depth int) {
	for i, stmt := range body {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(indent(depth))
		t.write(out, stmt, depth)
		switch t.Node(stmt).Type {
		case FunctionDeclaration, LoopDeclaration:
			if n := t.Node(stmt); n.Func == nil || !n.Func.SingleExpression {
				continue
			}
		}
		out.WriteString(";")
	}
}

func params(f *Function) string {
	ps := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		ps[i] = p.Type.String() + " " + p.Name
	}
	return strings.Join(ps, ", ")
}

func literal(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return strconv.Quote(string(s))
	}
	return value.Render(v)
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}
