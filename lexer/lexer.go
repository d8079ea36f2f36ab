package lexer

import (
	"strconv"
	"strings"

	"github.com/thiremani/lang/token"
	"github.com/thiremani/lang/value"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	curr         byte // current char under examination
	line         int  // line of curr, 1-based
	column       int  // column of curr, 1-based
}

func New(input string) *Lexer {
	l := &Lexer{input: StripComments(input), line: 1}
	l.readChar()
	return l
}

// Tokenize splits input into tokens. The result always ends with exactly
// one EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// StripComments removes every // comment up to the end of its line. Text
// inside string literals is left alone and newlines are kept, so token
// positions are unchanged.
func StripComments(input string) string {
	if !strings.Contains(input, "//") {
		return input
	}

	var out strings.Builder
	out.Grow(len(input))
	inString := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case inString && ch == '\\' && i+1 < len(input):
			out.WriteByte(ch)
			i++
			out.WriteByte(input[i])
			continue
		case ch == '"':
			inString = !inString
		case !inString && ch == '/' && i+1 < len(input) && input[i+1] == '/':
			end := strings.IndexByte(input[i:], '\n')
			if end < 0 {
				return out.String()
			}
			i += end - 1
			continue
		}
		out.WriteByte(ch)
	}
	return out.String()
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	line, column := l.line, l.column
	if l.atEnd() {
		return token.Token{Type: token.EOF, Line: line, Column: column}
	}

	var tok token.Token
	switch {
	case l.curr == '"':
		tok = l.readString()
	case l.curr == '-' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		tok = token.Token{Type: token.ARROW, Literal: "->"}
	case token.StartsToken(l.curr):
		tok = token.Token{Type: token.Punct[l.curr], Literal: string(l.curr)}
		l.readChar()
	default:
		tok = classify(l.readLexeme())
	}

	tok.Line = line
	tok.Column = column
	return tok
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isSpace(l.curr) {
		l.readChar()
	}
}

func (l *Lexer) readChar() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readLexeme reads a maximal run of characters that are neither whitespace
// nor the start of another token.
func (l *Lexer) readLexeme() string {
	position := l.position
	for !l.atEnd() && !isSpace(l.curr) && !token.StartsToken(l.curr) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a "..." literal. An unterminated literal is ILLEGAL.
func (l *Lexer) readString() token.Token {
	position := l.position
	var sb strings.Builder
	l.readChar() // opening quote
	for !l.atEnd() {
		switch l.curr {
		case '"':
			l.readChar()
			return token.Token{
				Type:    token.STRING,
				Literal: l.input[position:l.position],
				Value:   value.Str(sb.String()),
			}
		case '\\':
			l.readChar()
			if l.atEnd() {
				break
			}
			sb.WriteString(unescape(l.curr))
		default:
			sb.WriteByte(l.curr)
		}
		l.readChar()
	}
	return token.Token{Type: token.ILLEGAL, Literal: l.input[position:]}
}

func unescape(ch byte) string {
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case '"':
		return `"`
	case '\\':
		return `\`
	}
	return `\` + string(ch)
}

// classify maps a lexeme to a keyword, a number literal or an identifier.
// Digits only is an INT, digits with exactly one '.' a FLOAT, anything
// else an IDENT.
func classify(lit string) token.Token {
	tok := token.Token{Type: token.LookupIdent(lit), Literal: lit}
	if tok.Type != token.IDENT {
		return tok
	}

	digits, dots := 0, 0
	for i := 0; i < len(lit); i++ {
		switch {
		case isDigit(lit[i]):
			digits++
		case lit[i] == '.':
			dots++
		}
	}
	if digits+dots != len(lit) {
		return tok
	}

	switch {
	case digits == 0:
		tok.Type = token.ILLEGAL
	case dots == 0:
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			tok.Type = token.ILLEGAL
			return tok
		}
		tok.Type = token.INT
		tok.Value = value.Int(n)
	case dots == 1:
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			tok.Type = token.ILLEGAL
			return tok
		}
		tok.Type = token.FLOAT
		tok.Value = value.Float(f)
	}
	return tok
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
