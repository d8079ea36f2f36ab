package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/thiremani/lang/interp"
	"github.com/thiremani/lang/token"
)

const (
	promptMain = "lang> "
	promptCont = "....> "
	replFile   = "repl"
)

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func repl(in *interp.Interpreter) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := newHistory(in.Config.CacheDir, in.Config.HistorySize)
	saved, err := hist.load()
	if err != nil {
		in.Logger.Warn().Err(err).Msg("could not load history")
	}
	for _, line := range saved {
		ln.AppendHistory(line)
	}

	entered := readEvalLoop(ln, in.NewSession(replFile), in.Out)
	if err := hist.save(entered); err != nil {
		in.Logger.Warn().Err(err).Msg("could not save history")
	}
	return token.StatusOK
}

// readEvalLoop feeds lines to s until the input ends and returns the
// non-blank lines it read. Errors are printed and the session goes on.
func readEvalLoop(p prompter, s *interp.Session, out io.Writer) []string {
	var entered []string
	for {
		prompt := promptMain
		if s.Open() {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(out)
			return entered
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.AppendHistory(line)
		entered = append(entered, line)
		if err := s.Eval(line); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
