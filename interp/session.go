package interp

import (
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/evaluator"
	"github.com/thiremani/lang/parser"
	"github.com/thiremani/lang/symbols"
)

// Session runs a program that arrives in pieces. Globals and functions
// persist between pieces and a failed piece leaves them as they were.
type Session struct {
	in   *Interpreter
	file string
	sp   *parser.ScriptParser
	ev   *evaluator.Evaluator
}

func (in *Interpreter) NewSession(file string) *Session {
	tree, syms := ast.NewTree(), symbols.NewTable()
	return &Session{
		in:   in,
		file: file,
		sp:   parser.NewScriptParser(parser.New(file, nil, tree, syms)),
		ev:   in.evaluator(file, tree, syms),
	}
}

// Eval parses source and evaluates the top-level statements it completes.
func (s *Session) Eval(source string) error {
	stmts, err := s.sp.Feed(s.in.tokenize(s.file, source))
	if err != nil {
		return err
	}
	return s.ev.Statements(stmts)
}

// Open reports whether a body is still waiting for its closing brace.
func (s *Session) Open() bool {
	return s.sp.Open()
}
