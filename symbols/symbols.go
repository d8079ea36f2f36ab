package symbols

import (
	"github.com/thiremani/lang/ast"
)

// IndexName is the variable a loop body reads its iteration number from.
const IndexName = "_index"

// Table is the interpreter context shared by the parser and the evaluator
// of one program. Independent tables never see each other's names.
type Table struct {
	// Globals maps a declared variable to its cell, an Identifier node
	// holding the variable's current value.
	Globals map[string]ast.NodeID
	// Functions maps a function name to its FunctionBody node.
	Functions map[string]ast.NodeID
	// Locals is the parse-time stack of parameter and loop-index names.
	Locals []Scope[ast.NodeID]
}

func NewTable() *Table {
	t := &Table{
		Globals:   make(map[string]ast.NodeID),
		Functions: make(map[string]ast.NodeID),
	}
	t.Reset()
	return t
}

// Reset drops every local scope and leaves the outermost one empty.
// Globals and functions are kept.
func (t *Table) Reset() {
	t.Locals = []Scope[ast.NodeID]{NewScope[ast.NodeID](FuncScope)}
}

func (t *Table) PushLocals(sk ScopeKind) {
	PushScope(&t.Locals, sk)
}

func (t *Table) PopLocals() bool {
	return PopScope(&t.Locals)
}

func (t *Table) PutLocal(name string, cell ast.NodeID) {
	Put(t.Locals, name, cell)
}

func (t *Table) Local(name string) (ast.NodeID, bool) {
	return Get(t.Locals, name)
}

func (t *Table) Global(name string) (ast.NodeID, bool) {
	id, ok := t.Globals[name]
	return id, ok
}

func (t *Table) Function(name string) (ast.NodeID, bool) {
	id, ok := t.Functions[name]
	return id, ok
}

// Variable reports whether name is a local in scope or a declared global.
func (t *Table) Variable(name string) bool {
	if _, ok := t.Local(name); ok {
		return true
	}
	_, ok := t.Globals[name]
	return ok
}

// Declared reports whether name is taken by a variable or a function.
func (t *Table) Declared(name string) bool {
	if t.Variable(name) {
		return true
	}
	_, ok := t.Functions[name]
	return ok
}
