package parser

import "github.com/metaphox/rots-lang/ast"

// Cursor is a forward-only view over a fixed token slice with bounded
// lookahead. The cursor starts before the first token; Advance moves onto it.
// The index never decreases and the slice is never modified.
type Cursor struct {
	tokens []ast.Token
	index  int
	path   string
}

// NewCursor creates a cursor positioned before tokens[0].
func NewCursor(tokens []ast.Token) *Cursor {
	c := &Cursor{tokens: tokens, index: -1}
	if len(tokens) > 0 {
		c.path = tokens[0].Path
	}
	return c
}

// Index returns the position of the current token, -1 before the first Advance.
func (c *Cursor) Index() int { return c.index }

// HasNext reports whether a token follows the current one.
func (c *Cursor) HasNext() bool { return c.index+1 < len(c.tokens) }

// PeekAt returns the token k positions ahead (k=1 is the next token) without
// moving the cursor.
func (c *Cursor) PeekAt(k int) (ast.Token, bool) {
	i := c.index + k
	if k < 0 || i < 0 || i >= len(c.tokens) {
		return ast.Token{}, false
	}
	return c.tokens[i], true
}

// Peek is PeekAt(1).
func (c *Cursor) Peek() (ast.Token, bool) { return c.PeekAt(1) }

// PeekIs reports whether the next token is the reserved word r.
func (c *Cursor) PeekIs(r ast.ReservedWord) bool {
	tok, ok := c.PeekAt(1)
	return ok && tok.Is(r)
}

// PeekKind reports whether the next token has kind k.
func (c *Cursor) PeekKind(k ast.Kind) bool {
	tok, ok := c.PeekAt(1)
	return ok && tok.Kind == k
}

// Advance moves onto the next token and returns it. At the end of input the
// cursor stays put and ok is false.
func (c *Cursor) Advance() (ast.Token, bool) {
	if !c.HasNext() {
		return ast.Token{}, false
	}
	c.index++
	return c.tokens[c.index], true
}

// Current returns the token under the cursor.
func (c *Cursor) Current() (ast.Token, bool) {
	if c.index < 0 || c.index >= len(c.tokens) {
		return ast.Token{}, false
	}
	return c.tokens[c.index], true
}

// Expect checks, without consuming, that the next token is r. It returns the
// diagnostic describing the mismatch, or nil.
func (c *Cursor) Expect(r ast.ReservedWord) *Diagnostic {
	return c.ExpectOneOf(Word(r))
}

// ExpectOneOf is Expect for a set of acceptable tokens.
func (c *Cursor) ExpectOneOf(exp ...Expectation) *Diagnostic {
	tok, ok := c.PeekAt(1)
	if !ok {
		return c.EOF()
	}
	for _, e := range exp {
		if e.Matches(tok) {
			return nil
		}
	}
	return &Diagnostic{Kind: ExpectedNext, Expected: exp, Found: tok, Pos: tok.Pos()}
}

// Consume is Expect followed by Advance. On a mismatch it still steps past
// the offending token so that callers always make progress.
func (c *Cursor) Consume(r ast.ReservedWord) *Diagnostic {
	d := c.Expect(r)
	c.Advance()
	return d
}

// EOF builds an UnexpectedEOF diagnostic positioned just past the last token.
func (c *Cursor) EOF() *Diagnostic {
	pos := ast.Position{Path: c.path, Line: 1, Col: 1}
	if n := len(c.tokens); n > 0 {
		last := c.tokens[n-1]
		pos = last.Pos()
		pos.Col += last.Length
		pos.Offset += last.Length
	}
	return &Diagnostic{Kind: UnexpectedEOF, Pos: pos}
}
