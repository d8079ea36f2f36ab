package evaluator

import (
	"errors"
	"fmt"

	"github.com/thiremani/lang/token"
)

var errDivisionByZero = errors.New("integer division by zero")

// RuntimeError is a fatal error raised while evaluating a program.
type RuntimeError struct {
	File  string
	Token token.Token
	Msg   string
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("[ERROR] %s:%d:%d: %s", re.File, re.Token.Line, re.Token.Column, re.Msg)
}

func (re *RuntimeError) ExitCode() int {
	return token.StatusRuntime
}

func (e *Evaluator) errorf(tok token.Token, format string, args ...any) error {
	return &RuntimeError{
		File:  e.File,
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	}
}
