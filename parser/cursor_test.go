package parser_test

import (
	"testing"

	"github.com/metaphox/rots-lang/ast"
	"github.com/metaphox/rots-lang/lexer"
	"github.com/metaphox/rots-lang/parser"
)

func newCursor(t *testing.T, input string) *parser.Cursor {
	t.Helper()
	tokens, _ := lexer.Tokenize(input, "cursor.rots")
	return parser.NewCursor(tokens)
}

func TestCursor_Lookahead(t *testing.T) {
	c := newCursor(t, "a = 1")
	if c.Index() != -1 {
		t.Fatalf("start index: got %d, want -1", c.Index())
	}
	if _, ok := c.Current(); ok {
		t.Error("Current before the first Advance should fail")
	}

	tok, ok := c.PeekAt(2)
	if !ok || !tok.Is(ast.Assign) {
		t.Errorf("PeekAt(2): got %s", tok)
	}
	if _, ok := c.PeekAt(4); ok {
		t.Error("PeekAt past the end should fail")
	}
	if c.Index() != -1 {
		t.Error("peeking must not move the cursor")
	}

	tok, _ = c.Advance()
	if tok.Value != "a" || c.Index() != 0 {
		t.Errorf("Advance: got %s at %d", tok, c.Index())
	}
	if cur, _ := c.Current(); cur.Value != "a" {
		t.Errorf("Current: got %s", cur)
	}
	if !c.PeekIs(ast.Assign) || !c.PeekKind(ast.Reserved) {
		t.Error("next token should be '='")
	}
}

func TestCursor_AdvanceAtEnd(t *testing.T) {
	c := newCursor(t, "x")
	c.Advance()
	if c.HasNext() {
		t.Fatal("HasNext at end")
	}
	if _, ok := c.Advance(); ok {
		t.Error("Advance at end should fail")
	}
	if c.Index() != 0 {
		t.Errorf("index moved past the end: %d", c.Index())
	}
}

func TestCursor_Expect(t *testing.T) {
	c := newCursor(t, "x ;")
	if d := c.Expect(ast.SemiColon); d == nil || d.Kind != parser.ExpectedNext {
		t.Fatalf("Expect on identifier: got %v", d)
	}
	if c.Index() != -1 {
		t.Error("Expect must not consume")
	}

	// Consume advances even on mismatch.
	if d := c.Consume(ast.SemiColon); d == nil {
		t.Error("Consume should report the mismatch")
	}
	if d := c.Consume(ast.SemiColon); d != nil {
		t.Errorf("Consume ';': %v", d)
	}

	d := c.Expect(ast.SemiColon)
	if d == nil || d.Kind != parser.UnexpectedEOF {
		t.Fatalf("Expect at end: got %v", d)
	}
	if got := d.Pos.String(); got != "cursor.rots:1:4" {
		t.Errorf("EOF position: got %s", got)
	}
}

func TestCursor_ExpectOneOf(t *testing.T) {
	c := newCursor(t, `"s"`)
	if d := c.ExpectOneOf(parser.Class(ast.Number), parser.Class(ast.String)); d != nil {
		t.Errorf("string should match: %v", d)
	}
	d := c.ExpectOneOf(parser.Class(ast.Identifier), parser.Word(ast.Const))
	if d == nil {
		t.Fatal("expected a diagnostic")
	}
	if got, want := d.Message(), "expected identifier, `const`, found '\"s\"'"; got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestDiagnostics_Format(t *testing.T) {
	tok := ast.Token{Kind: ast.Reserved, Reserved: ast.Comma, Text: ",", Path: "f.rots", Line: 2, Col: 5}
	d := &parser.Diagnostic{
		Kind: parser.ExpectedNext,
		Expected: []parser.Expectation{
			parser.Class(ast.String), parser.Class(ast.Number), parser.Class(ast.Identifier),
			parser.Word(ast.LeftCurly),
		},
		Found: tok,
		Pos:   tok.Pos(),
	}
	want := "error: expected literal, identifier, `{`, found ','\n\t--> f.rots:2:5"
	if got := d.Error(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestDiagnostics_Compact(t *testing.T) {
	eof := &parser.Diagnostic{Kind: parser.UnexpectedEOF}
	other := &parser.Diagnostic{Kind: parser.ExpectedNext}
	ds := parser.Diagnostics{other, eof, eof, eof}
	if got := len(ds.Compact()); got != 2 {
		t.Errorf("Compact: got %d, want 2", got)
	}
	if parser.Diagnostics(nil).Err() != nil {
		t.Error("empty diagnostics should not be an error")
	}
	if ds.Err() == nil {
		t.Error("non-empty diagnostics should be an error")
	}
}
