package token

import (
	"strconv"

	"github.com/thiremani/lang/value"
)

type TokenType int

const (
	NONE TokenType = iota
	ILLEGAL
	EOF

	literal_beg
	// Identifiers + literals
	IDENT  // add, foobar, x, y, ...
	INT    // 1343456
	FLOAT  // 123.45
	STRING // "abc"
	literal_end

	operator_beg
	ASSIGN // =
	ADD    // +
	SUB    // -
	QUO    // /
	MUL    // *
	operator_end

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,
	ARROW     // ->

	keyword_beg
	FN
	RETURN
	PRINT
	LOOP

	type_beg
	TYPE_INT
	TYPE_FLOAT
	TYPE_STRING
	TYPE_CHAR
	TYPE_BOOL
	TYPE_VOID
	type_end
	keyword_end
)

var tokens = [...]string{
	NONE:    "NONE",
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",

	ASSIGN: "=",
	ADD:    "+",
	SUB:    "-",
	QUO:    "/",
	MUL:    "*",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",
	COMMA:     ",",
	ARROW:     "->",

	FN:     "fn",
	RETURN: "return",
	PRINT:  "print",
	LOOP:   "loop",

	TYPE_INT:    "int",
	TYPE_FLOAT:  "float",
	TYPE_STRING: "string",
	TYPE_CHAR:   "char",
	TYPE_BOOL:   "bool",
	TYPE_VOID:   "void",
}

var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType)
	for i, s := range tokens {
		if t := TokenType(i); keyword_beg < t && t < keyword_end && s != "" {
			m[s] = t
		}
	}
	return m
}()

// Punct maps every character that starts a punctuation token to its type.
// '-' is also the first character of ARROW.
var Punct = map[byte]TokenType{
	'=': ASSIGN,
	'+': ADD,
	'-': SUB,
	'/': QUO,
	'*': MUL,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	';': SEMICOLON,
	',': COMMA,
}

// StartsToken reports whether ch on its own begins a recognized token.
func StartsToken(ch byte) bool {
	_, ok := Punct[ch]
	return ok || ch == '"'
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	Type    TokenType
	Literal string
	// Value holds the parsed value of INT, FLOAT and STRING tokens.
	Value  value.Value
	Line   int
	Column int
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && t.Type < literal_end && t.Type != IDENT
}

func (t Token) IsOperator() bool {
	return operator_beg < t.Type && t.Type < operator_end && t.Type != ASSIGN
}

func (t Token) IsType() bool {
	return type_beg < t.Type && t.Type < type_end
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
