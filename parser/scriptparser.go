package parser

import (
	"slices"

	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/token"
)

// ScriptParser parses a program fed in chunks, such as the lines typed
// into a REPL. Statements are handed out once the parser is back at the
// top level.
type ScriptParser struct {
	p *Parser
	// done is the number of top-level statements already handed out and
	// mark the tree size when they were.
	done int
	mark int
}

func NewScriptParser(p *Parser) *ScriptParser {
	return &ScriptParser{
		p:    p,
		done: len(p.Tree.Node(p.Tree.Root()).Body),
		mark: p.Tree.Len(),
	}
}

func (sp *ScriptParser) Parser() *Parser {
	return sp.p
}

// Open reports whether a function or loop body is still waiting for its
// closing brace.
func (sp *ScriptParser) Open() bool {
	return sp.p.Current() != sp.p.Tree.Root()
}

// Feed parses toks and returns the top-level statements completed by them.
// While a body is open it returns nothing. On error everything parsed
// since the last completed statement is discarded.
func (sp *ScriptParser) Feed(toks []token.Token) ([]ast.NodeID, error) {
	sp.p.Reset(toks)
	if err := sp.p.statements(); err != nil {
		sp.rollback()
		return nil, err
	}
	if sp.Open() {
		return nil, nil
	}

	root := sp.p.Tree.Node(sp.p.Tree.Root())
	stmts := slices.Clone(root.Body[sp.done:])
	sp.done = len(root.Body)
	sp.mark = sp.p.Tree.Len()
	return stmts, nil
}

func (sp *ScriptParser) rollback() {
	p := sp.p
	root := p.Tree.Node(p.Tree.Root())
	root.Body = root.Body[:sp.done]
	for name, id := range p.Syms.Globals {
		if int(id) >= sp.mark {
			delete(p.Syms.Globals, name)
		}
	}
	for name, id := range p.Syms.Functions {
		if int(id) >= sp.mark {
			delete(p.Syms.Functions, name)
		}
	}
	p.Tree.Truncate(sp.mark)
	p.Syms.Reset()
	p.node = p.Tree.Root()
}
