package token

// Cursor is a view over the half-open range [begin, end) of a token
// sequence. Slices share the underlying array; nothing is copied.
type Cursor struct {
	toks  []Token
	begin int
	end   int
	pos   int
}

func NewCursor(toks []Token) *Cursor {
	return &Cursor{toks: toks, end: len(toks)}
}

// Done reports whether the cursor has moved past its last token.
func (c *Cursor) Done() bool {
	return c.pos >= c.end
}

// Expect reports whether the current token has type t without consuming it.
func (c *Cursor) Expect(t TokenType) bool {
	if c.Done() {
		return false
	}
	return c.toks[c.pos].Type == t
}

// Get returns the current token. Past the end it returns a NONE token.
func (c *Cursor) Get() Token {
	if c.Done() {
		return c.none()
	}
	return c.toks[c.pos]
}

// Advance consumes and returns the current token. Past the end it
// returns an EOF token.
func (c *Cursor) Advance() Token {
	if c.Done() {
		tok := c.none()
		tok.Type = EOF
		return tok
	}
	tok := c.toks[c.pos]
	c.pos++
	return tok
}

// LookAhead peeks n tokens ahead of the current one. n may be negative.
// Out of range yields a NONE token.
func (c *Cursor) LookAhead(n int) Token {
	i := c.pos + n
	if i < c.begin || i >= c.end {
		return c.none()
	}
	return c.toks[i]
}

// FindNext returns the index of the first token of type t strictly after
// the current position.
func (c *Cursor) FindNext(t TokenType) (int, bool) {
	for i := c.pos + 1; i < c.end; i++ {
		if c.toks[i].Type == t {
			return i, true
		}
	}
	return 0, false
}

// Slice returns an independent cursor over [begin, end) of the same
// underlying sequence, positioned at begin. Bounds are clamped to the
// sequence.
func (c *Cursor) Slice(begin, end int) *Cursor {
	begin = max(0, min(begin, len(c.toks)))
	end = max(begin, min(end, len(c.toks)))
	return &Cursor{toks: c.toks, begin: begin, end: end, pos: begin}
}

// Seek moves to index i, clamped to the last valid index of the view.
func (c *Cursor) Seek(i int) {
	c.pos = max(c.begin, min(i, c.end-1))
}

// Pos returns the absolute index of the current token.
func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) Begin() int { return c.begin }

func (c *Cursor) End() int { return c.end }

// Len returns the number of tokens in the view.
func (c *Cursor) Len() int { return c.end - c.begin }

// At returns the token at absolute index i, or NONE outside the view.
func (c *Cursor) At(i int) Token {
	if i < c.begin || i >= c.end {
		return c.none()
	}
	return c.toks[i]
}

// none is a NONE token positioned at the last token of the view so errors
// reported against it still carry a source location.
func (c *Cursor) none() Token {
	var tok Token
	if last := min(c.end, len(c.toks)) - 1; last >= 0 {
		tok.Line = c.toks[last].Line
		tok.Column = c.toks[last].Column
	}
	return tok
}
