package ast

import (
	"strconv"

	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/types"
	"github.com/thiremani/lang/value"
)

type NodeType int

const (
	None NodeType = iota
	Program
	FunctionDeclaration
	FunctionBody
	FunctionCall
	FunctionCallParam
	VariableDeclaration
	Identifier
	BinOp
	Literal
	Return
	Expression
	Print
	LoopDeclaration
	LoopBody
)

var nodeTypes = [...]string{
	None:                "None",
	Program:             "Program",
	FunctionDeclaration: "FunctionDeclaration",
	FunctionBody:        "FunctionBody",
	FunctionCall:        "FunctionCall",
	FunctionCallParam:   "FunctionCallParam",
	VariableDeclaration: "VariableDeclaration",
	Identifier:          "Identifier",
	BinOp:               "BinOp",
	Literal:             "Literal",
	Return:              "Return",
	Expression:          "Expression",
	Print:               "Print",
	LoopDeclaration:     "LoopDeclaration",
	LoopBody:            "LoopBody",
}

func (t NodeType) String() string {
	if 0 <= t && int(t) < len(nodeTypes) {
		return nodeTypes[t]
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

type BinOpType int

const (
	NoOp BinOpType = iota
	Plus
	Minus
	Mul
	Div
	Assignment
	Equals
	NotEquals
	LessThan
	MoreThan
	LessEqual
	MoreEqual
	And
	Or
	Xor
	Nand
)

var binOps = [...]string{
	NoOp:       "?",
	Plus:       "+",
	Minus:      "-",
	Mul:        "*",
	Div:        "/",
	Assignment: "=",
	Equals:     "==",
	NotEquals:  "!=",
	LessThan:   "<",
	MoreThan:   ">",
	LessEqual:  "<=",
	MoreEqual:  ">=",
	And:        "and",
	Or:         "or",
	Xor:        "xor",
	Nand:       "nand",
}

func (op BinOpType) String() string {
	if 0 <= op && int(op) < len(binOps) {
		return binOps[op]
	}
	return "BinOp(" + strconv.Itoa(int(op)) + ")"
}

// BinOpFor maps an operator token to its BinOpType.
func BinOpFor(t token.TokenType) BinOpType {
	switch t {
	case token.ADD:
		return Plus
	case token.SUB:
		return Minus
	case token.MUL:
		return Mul
	case token.QUO:
		return Div
	case token.ASSIGN:
		return Assignment
	}
	return NoOp
}

type Param struct {
	Name string
	Type types.Type
}

// Function describes a declared function. Parameters keep declaration order.
type Function struct {
	Name             string
	ReturnType       types.Type
	Parameters       []Param
	SingleExpression bool
}

func (f *Function) Arity() int { return len(f.Parameters) }

// NodeID addresses a node in a Tree.
type NodeID int32

const NoNode NodeID = -1

type Node struct {
	Type NodeType
	Body []NodeID

	// Left and Right are the operands of a BinOp; the Left of a
	// VariableDeclaration is its cell. Condition is the iteration count of
	// a LoopDeclaration.
	Left      NodeID
	Right     NodeID
	Condition NodeID

	// Parent is a back-reference used to leave a body. It never owns.
	Parent NodeID

	Name string
	// Value is a literal's value, or the current contents of an
	// Identifier acting as a variable cell.
	Value   value.Value
	VarType types.Type
	Op      BinOpType

	// Func is set on FunctionDeclaration, FunctionBody and FunctionCall
	// nodes. Callee is the FunctionBody a FunctionCall invokes.
	Func   *Function
	Callee NodeID

	Token token.Token
}

// Tree is an arena of nodes. Node 0 is the Program root.
type Tree struct {
	nodes []*Node
}

func NewTree() *Tree {
	t := &Tree{}
	t.New(Program, NoNode, token.Token{})
	return t
}

func (t *Tree) Root() NodeID { return 0 }

// New allocates a node whose parent is parent without adding it to the
// parent's body.
func (t *Tree) New(typ NodeType, parent NodeID, tok token.Token) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		Type:      typ,
		Left:      NoNode,
		Right:     NoNode,
		Condition: NoNode,
		Parent:    parent,
		Callee:    NoNode,
		Token:     tok,
	})
	return id
}

// Append allocates a node and adds it to the end of parent's body.
func (t *Tree) Append(parent NodeID, typ NodeType, tok token.Token) NodeID {
	id := t.New(typ, parent, tok)
	p := t.nodes[parent]
	p.Body = append(p.Body, id)
	return id
}

// Node returns the node for id. The pointer stays valid as the tree grows.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

func (t *Tree) Len() int { return len(t.nodes) }

// Truncate drops every node allocated at or after n. The caller must make
// sure no remaining node refers to them.
func (t *Tree) Truncate(n int) {
	if n < 1 || n >= len(t.nodes) {
		return
	}
	clear(t.nodes[n:])
	t.nodes = t.nodes[:n]
}
