package token

import "fmt"

// Exit statuses of the interpreter process.
const (
	StatusOK       = 0
	StatusRuntime  = 1
	StatusExpected = 255
)

// CompileError is a fatal error raised while parsing.
type CompileError struct {
	File  string
	Token Token
	// Expected, when set, describes what the grammar required at Token.
	Expected string
	Msg      string
	Status   int
}

// Expected builds the "expected X, got Y" error for tok.
func Expected(file string, tok Token, expected string) *CompileError {
	return &CompileError{
		File:     file,
		Token:    tok,
		Expected: expected,
		Status:   StatusExpected,
	}
}

func (ce *CompileError) Error() string {
	pos := fmt.Sprintf("%s:%d:%d", ce.File, ce.Token.Line, ce.Token.Column)
	if ce.Expected != "" {
		return fmt.Sprintf("[ERROR] %s: expected '%s', got '%s'", pos, ce.Expected, got(ce.Token))
	}
	return fmt.Sprintf("[ERROR] %s: %s", pos, ce.Msg)
}

// ExitCode is the process status this error terminates with.
func (ce *CompileError) ExitCode() int {
	if ce.Status == 0 {
		return StatusExpected
	}
	return ce.Status
}

func got(tok Token) string {
	switch tok.Type {
	case EOF:
		return "EOF"
	case NONE:
		if tok.Literal == "" {
			return "nothing"
		}
	}
	return tok.Literal
}
