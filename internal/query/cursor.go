package query

import "github.com/Nelyah/bee/internal/lexer"

// cursor is a bidirectional index into a fully tokenized input. The
// original implementation pulled tokens lazily from the lexer through a
// small ring buffer so it could back up across already-consumed tokens;
// query strings are short enough that we tokenize eagerly instead and keep
// only a plain index, which gives the same back/backN behaviour with a lot
// less bookkeeping.
type cursor struct {
	toks []lexer.Token
	pos  int
}

func newCursor(toks []lexer.Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) current() lexer.Token {
	if c.pos >= len(c.toks) {
		return lexer.Token{Type: lexer.Eof}
	}
	return c.toks[c.pos]
}

func (c *cursor) advance() {
	if c.pos < len(c.toks) {
		c.pos++
	}
}

func (c *cursor) back() {
	if c.pos > 0 {
		c.pos--
	}
}

func (c *cursor) backN(n int) {
	for i := 0; i < n; i++ {
		c.back()
	}
}

func (c *cursor) skipBlank() {
	for c.current().Type == lexer.Blank {
		c.advance()
	}
}
