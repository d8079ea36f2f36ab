package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := map[string]TokenType{
		"fn":      FN,
		"return":  RETURN,
		"print":   PRINT,
		"loop":    LOOP,
		"int":     TYPE_INT,
		"float":   TYPE_FLOAT,
		"string":  TYPE_STRING,
		"char":    TYPE_CHAR,
		"bool":    TYPE_BOOL,
		"void":    TYPE_VOID,
		"integer": IDENT,
		"x":       IDENT,
		"Print":   IDENT,
	}
	for ident, want := range tests {
		assert.Equal(t, want, LookupIdent(ident), ident)
	}
}

func TestKeywordsCoverTypeKeywords(t *testing.T) {
	// every entry of the table between the keyword sentinels is a keyword
	for tt := keyword_beg + 1; tt < keyword_end; tt++ {
		if tt == type_beg || tt == type_end {
			continue
		}
		require.Equal(t, tt, LookupIdent(tt.String()), tt.String())
	}
	require.Len(t, keywords, 10)
}

func TestTokenClasses(t *testing.T) {
	assert.True(t, Token{Type: INT}.IsLiteral())
	assert.True(t, Token{Type: STRING}.IsLiteral())
	assert.False(t, Token{Type: IDENT}.IsLiteral())

	assert.True(t, Token{Type: ADD}.IsOperator())
	assert.True(t, Token{Type: QUO}.IsOperator())
	assert.False(t, Token{Type: ASSIGN}.IsOperator())
	assert.False(t, Token{Type: ARROW}.IsOperator())

	assert.True(t, Token{Type: TYPE_VOID}.IsType())
	assert.False(t, Token{Type: LOOP}.IsType())
}

func TestStartsToken(t *testing.T) {
	for _, ch := range []byte("=+-/*(){};,\"") {
		assert.True(t, StartsToken(ch), string(ch))
	}
	for _, ch := range []byte("a1_.$>< ") {
		assert.False(t, StartsToken(ch), string(ch))
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "->", ARROW.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "token(999)", TokenType(999).String())
}

func TestCompileError(t *testing.T) {
	tok := Token{Type: IDENT, Literal: "foo", Line: 2, Column: 5}
	err := Expected("main.lang", tok, ";")
	require.Equal(t, "[ERROR] main.lang:2:5: expected ';', got 'foo'", err.Error())
	require.Equal(t, StatusExpected, err.ExitCode())

	eof := Expected("main.lang", Token{Type: EOF, Line: 9, Column: 1}, "}")
	require.Equal(t, "[ERROR] main.lang:9:1: expected '}', got 'EOF'", eof.Error())

	dup := &CompileError{File: "a.lang", Token: tok, Msg: "variable foo is already declared", Status: StatusRuntime}
	require.Equal(t, "[ERROR] a.lang:2:5: variable foo is already declared", dup.Error())
	require.Equal(t, StatusRuntime, dup.ExitCode())

	var zero CompileError
	require.Equal(t, StatusExpected, zero.ExitCode())
}
