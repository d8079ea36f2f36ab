package interp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oarkflow/log"
	"github.com/thiremani/lang/ast"
	"github.com/thiremani/lang/config"
	"github.com/thiremani/lang/evaluator"
	"github.com/thiremani/lang/lexer"
	"github.com/thiremani/lang/parser"
	"github.com/thiremani/lang/symbols"
	"github.com/thiremani/lang/token"
)

// Interpreter runs programs: tokenize, parse the whole program, then
// evaluate it once. Program output goes to Out, diagnostics to Logger.
type Interpreter struct {
	Config config.Config
	Out    io.Writer
	Logger *log.Logger
}

func New(cfg config.Config, out io.Writer, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Interpreter{
		Config: cfg,
		Out:    out,
		Logger: logger,
	}
}

// RunFile runs the program in path.
func (in *Interpreter) RunFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return in.Run(path, string(source))
}

// Run runs source. file names the source in error messages.
func (in *Interpreter) Run(file, source string) error {
	toks := in.tokenize(file, source)

	start := time.Now()
	tree, syms := ast.NewTree(), symbols.NewTable()
	if err := parser.New(file, toks, tree, syms).Parse(); err != nil {
		return err
	}
	in.Logger.Debug().Str("file", file).Int("nodes", tree.Len()).Dur("duration", time.Since(start)).Msg("parsing done")
	if in.Config.TraceAST {
		in.Logger.Debug().Str("file", file).Msgf("ast:\n%s", tree.String(tree.Root()))
	}

	start = time.Now()
	err := in.evaluator(file, tree, syms).Run()
	in.Logger.Debug().Str("file", file).Dur("duration", time.Since(start)).Err(err).Msg("evaluation done")
	return err
}

func (in *Interpreter) tokenize(file, source string) []token.Token {
	start := time.Now()
	toks := lexer.Tokenize(source)
	in.Logger.Debug().Str("file", file).Int("tokens", len(toks)).Dur("duration", time.Since(start)).Msg("lexing done")
	if in.Config.TraceTokens {
		for _, tok := range toks {
			in.Logger.Debug().Msgf("%s -> %s %s:%d:%d", tok.Literal, tok.Type, file, tok.Line, tok.Column)
		}
	}
	return toks
}

func (in *Interpreter) evaluator(file string, tree *ast.Tree, syms *symbols.Table) *evaluator.Evaluator {
	e := evaluator.New(file, tree, syms, in.Out)
	e.MaxDepth = in.Config.MaxCallDepth
	e.Logger = in.Logger
	return e
}

// ExitCode is the process status for an error returned by Run.
func ExitCode(err error) int {
	if err == nil {
		return token.StatusOK
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return token.StatusRuntime
}
