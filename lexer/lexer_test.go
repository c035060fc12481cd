// Package lexer_test contains integration-style tests for the RottenScript lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords: every keyword, and the keyword/identifier boundary
//   - TestLexer_Symbols: every symbol, including the longest-match rule
//   - TestLexer_Numbers: the decimal number forms
//   - TestLexer_Strings: both quote styles and escape sequences
//   - TestLexer_Comments: line comments are skipped
//   - TestLexer_Position: line, column and offset tracking
//   - TestLexer_Invalid: invalid lexemes are reported without aborting
//   - TestLexer_Program: a complete snippet
package lexer_test

import (
	"strings"
	"testing"

	"github.com/metaphox/rots-lang/ast"
	"github.com/metaphox/rots-lang/lexer"
)

// tokenCase is a single (kind, text) expectation used in table-driven tests.
type tokenCase struct {
	kind ast.Kind
	text string
}

// runCases lexes input and compares every token against want.
func runCases(t *testing.T, input string, want []tokenCase) []ast.Token {
	t.Helper()
	tokens, _ := lexer.Tokenize(input, "test.rots")
	if len(tokens) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, tc := range want {
		tok := tokens[i]
		if tok.Kind != tc.kind {
			t.Errorf("case %d: kind mismatch, got %s, want %s (text %q)", i, tok.Kind, tc.kind, tok.Text)
		}
		if tok.Text != tc.text {
			t.Errorf("case %d: text mismatch, got %q, want %q", i, tok.Text, tc.text)
		}
	}
	return tokens
}

// reservedSeq checks that input lexes to exactly the reserved words in want.
func reservedSeq(t *testing.T, input string, want ...ast.ReservedWord) {
	t.Helper()
	tokens, invalid := lexer.Tokenize(input, "test.rots")
	if len(invalid) != 0 {
		t.Fatalf("unexpected invalid tokens: %v", invalid)
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, r := range want {
		if !tokens[i].Is(r) {
			t.Errorf("case %d: got %s, want %s", i, tokens[i], r.Name())
		}
	}
}

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestLexer_Keywords(t *testing.T) {
	reservedSeq(t, `const let import export from default true false`,
		ast.Const, ast.Let, ast.Import, ast.Export,
		ast.From, ast.Default, ast.True, ast.False)
}

// TestLexer_KeywordBoundary checks that keyword prefixes used as identifiers are
// not mis-classified. E.g. "constant" must not be split into const + "ant".
func TestLexer_KeywordBoundary(t *testing.T) {
	runCases(t, `constant letter imports exported trueish _from`, []tokenCase{
		{ast.Identifier, "constant"},
		{ast.Identifier, "letter"},
		{ast.Identifier, "imports"},
		{ast.Identifier, "exported"},
		{ast.Identifier, "trueish"},
		{ast.Identifier, "_from"},
	})
}

// ── Symbols ───────────────────────────────────────────────────────────────────

func TestLexer_Symbols(t *testing.T) {
	reservedSeq(t, `= ( ) { } [ ] . , ; : => + - * / % ** < > <= >= == !=`,
		ast.Assign, ast.LeftParenthesis, ast.RightParenthesis,
		ast.LeftCurly, ast.RightCurly, ast.LeftSquareBracket, ast.RightSquareBracket,
		ast.Dot, ast.Comma, ast.SemiColon, ast.Colon, ast.Arrow,
		ast.Add, ast.Sub, ast.Mult, ast.Div, ast.Mod, ast.Exponential,
		ast.Less, ast.Greater, ast.LessOrEq, ast.GreaterOrEq, ast.Equal, ast.NotEqual)

	reservedSeq(t, `<< >> >>> & | ^ ~ ! && ||`,
		ast.LeftShift, ast.RightShift, ast.UnsignedRightShift,
		ast.And, ast.Or, ast.Xor, ast.Not, ast.LogicalNot, ast.LogicalAnd, ast.LogicalOr)

	reservedSeq(t, `+= -= *= /= %= **= <<= >>= >>>= &= ^= |=`,
		ast.AdditiveAssign, ast.SubtractiveAssign, ast.MultiplicativeAssign,
		ast.DivisiveAssign, ast.ModuloAssign, ast.ExponentialAssign,
		ast.LeftShiftAssign, ast.RightShiftAssign, ast.UnsignedRightShiftAssign,
		ast.AndAssign, ast.XorAssign, ast.OrAssign)
}

// TestLexer_LongestMatch verifies that adjacent symbols are split greedily.
func TestLexer_LongestMatch(t *testing.T) {
	reservedSeq(t, `>>>=`, ast.UnsignedRightShiftAssign)
	reservedSeq(t, `>>>>`, ast.UnsignedRightShift, ast.Greater)
	reservedSeq(t, `***`, ast.Exponential, ast.Mult)
	reservedSeq(t, `=>=`, ast.Arrow, ast.Assign)
	reservedSeq(t, `!==`, ast.NotEqual, ast.Assign)
	reservedSeq(t, `()=>{}`,
		ast.LeftParenthesis, ast.RightParenthesis, ast.Arrow, ast.LeftCurly, ast.RightCurly)
}

// ── Numbers ───────────────────────────────────────────────────────────────────

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  []tokenCase
	}{
		{`0`, []tokenCase{{ast.Number, "0"}}},
		{`42`, []tokenCase{{ast.Number, "42"}}},
		{`3.14`, []tokenCase{{ast.Number, "3.14"}}},
		{`.5`, []tokenCase{{ast.Number, ".5"}}},
		{`0.`, []tokenCase{{ast.Number, "0."}}},
		{`0.25`, []tokenCase{{ast.Number, "0.25"}}},
		// A leading zero ends the number.
		{`007`, []tokenCase{{ast.Number, "0"}, {ast.Number, "0"}, {ast.Number, "7"}}},
		// "1." is not a number form: the dot is member access.
		{`1.x`, []tokenCase{{ast.Number, "1"}, {ast.Reserved, "."}, {ast.Identifier, "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := runCases(t, tt.input, tt.want)
			for _, tok := range tokens {
				if tok.Kind == ast.Number && tok.Value != tok.Text {
					t.Errorf("number value: got %q, want %q", tok.Value, tok.Text)
				}
			}
		})
	}
}

// ── Strings ───────────────────────────────────────────────────────────────────

func TestLexer_Strings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, `hello`},
		{`'hello'`, `hello`},
		{`""`, ``},
		{`"it's"`, `it's`},
		{`'say "hi"'`, `say "hi"`},
		{`"a\"b"`, `a\"b`},
		{`"tab\tnew\n"`, `tab\tnew\n`},
		{`'\\'`, `\\`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, invalid := lexer.Tokenize(tt.input, "test.rots")
			if len(invalid) != 0 || len(tokens) != 1 {
				t.Fatalf("got %v (invalid %v), want one string", tokens, invalid)
			}
			tok := tokens[0]
			if tok.Kind != ast.String {
				t.Fatalf("kind: got %s, want string", tok.Kind)
			}
			if tok.Value != tt.value {
				t.Errorf("value: got %q, want %q", tok.Value, tt.value)
			}
			if tok.Text != tt.input {
				t.Errorf("text: got %q, want %q", tok.Text, tt.input)
			}
		})
	}
}

// TestLexer_StringNoNewline checks that a string cannot span lines.
func TestLexer_StringNoNewline(t *testing.T) {
	_, invalid := lexer.Tokenize("\"abc\ndef\"", "test.rots")
	if len(invalid) != 2 {
		t.Fatalf("invalid count: got %d, want 2 (%v)", len(invalid), invalid)
	}
	if invalid[0].Text != `"abc` {
		t.Errorf("first invalid: got %q, want %q", invalid[0].Text, `"abc`)
	}
}

// ── Comments ──────────────────────────────────────────────────────────────────

func TestLexer_Comments(t *testing.T) {
	input := "// heading\nconst x = 1; // trailing\n// last line without newline"
	runCases(t, input, []tokenCase{
		{ast.Reserved, "const"},
		{ast.Identifier, "x"},
		{ast.Reserved, "="},
		{ast.Number, "1"},
		{ast.Reserved, ";"},
	})
}

// ── Position ──────────────────────────────────────────────────────────────────

func TestLexer_Position(t *testing.T) {
	input := "const a = 1;\n  let bb = 'x';\r\n\tb"
	tokens, _ := lexer.Tokenize(input, "pos.rots")

	cases := []struct {
		text      string
		line, col int
	}{
		{"const", 1, 1},
		{"a", 1, 7},
		{"=", 1, 9},
		{"1", 1, 11},
		{";", 1, 12},
		{"let", 2, 3},
		{"bb", 2, 7},
		{"=", 2, 10},
		{"'x'", 2, 12},
		{";", 2, 15},
		{"b", 3, 2},
	}
	if len(tokens) != len(cases) {
		t.Fatalf("token count: got %d, want %d", len(tokens), len(cases))
	}
	for i, c := range cases {
		tok := tokens[i]
		if tok.Text != c.text {
			t.Errorf("case %d: text, got %q, want %q", i, tok.Text, c.text)
		}
		if tok.Line != c.line || tok.Col != c.col {
			t.Errorf("case %d (%q): got %d:%d, want %d:%d", i, c.text, tok.Line, tok.Col, c.line, c.col)
		}
		if got := input[tok.Offset : tok.Offset+tok.Length]; got != tok.Text {
			t.Errorf("case %d: offset/length slice %q, want %q", i, got, tok.Text)
		}
		if tok.Path != "pos.rots" {
			t.Errorf("case %d: path %q", i, tok.Path)
		}
	}
}

// ── Invalid tokens ────────────────────────────────────────────────────────────

// TestLexer_Invalid verifies that an invalid lexeme is recorded and scanning
// continues with the next whitespace-separated run.
func TestLexer_Invalid(t *testing.T) {
	l := lexer.New("const @@x = 1; # y", "bad.rots")
	err := l.Lex()
	if err == nil {
		t.Fatal("expected an error")
	}

	invalid := l.Invalid()
	if len(invalid) != 2 {
		t.Fatalf("invalid count: got %d, want 2 (%v)", len(invalid), invalid)
	}
	if invalid[0].Text != "@@x" || invalid[1].Text != "#" {
		t.Errorf("invalid texts: got %q, %q", invalid[0].Text, invalid[1].Text)
	}

	// Valid tokens after each invalid run are still produced, in order.
	var texts []string
	for _, tok := range l.Tokens() {
		texts = append(texts, tok.Text)
	}
	if got, want := strings.Join(texts, " "), "const @@x = 1 ; # y"; got != want {
		t.Errorf("tokens: got %q, want %q", got, want)
	}

	want := "error: invalid token `@@x`\n\t--> bad.rots:1:7\n" +
		"error: invalid token `#`\n\t--> bad.rots:1:16"
	if err.Error() != want {
		t.Errorf("error text:\ngot  %q\nwant %q", err.Error(), want)
	}
}

func TestLexer_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment"} {
		l := lexer.New(input, "empty.rots")
		if err := l.Lex(); err != nil {
			t.Errorf("%q: unexpected error %v", input, err)
		}
		if n := len(l.Tokens()); n != 0 {
			t.Errorf("%q: got %d tokens, want 0", input, n)
		}
	}
}

// ── Program ───────────────────────────────────────────────────────────────────

func TestLexer_Program(t *testing.T) {
	input := `import { log } from "console";

[EntryPoint]
export default const main = () => {
    let n = .5 ** 2;
    log(n >>> 1);
};`
	runCases(t, input, []tokenCase{
		{ast.Reserved, "import"},
		{ast.Reserved, "{"},
		{ast.Identifier, "log"},
		{ast.Reserved, "}"},
		{ast.Reserved, "from"},
		{ast.String, `"console"`},
		{ast.Reserved, ";"},
		{ast.Reserved, "["},
		{ast.Identifier, "EntryPoint"},
		{ast.Reserved, "]"},
		{ast.Reserved, "export"},
		{ast.Reserved, "default"},
		{ast.Reserved, "const"},
		{ast.Identifier, "main"},
		{ast.Reserved, "="},
		{ast.Reserved, "("},
		{ast.Reserved, ")"},
		{ast.Reserved, "=>"},
		{ast.Reserved, "{"},
		{ast.Reserved, "let"},
		{ast.Identifier, "n"},
		{ast.Reserved, "="},
		{ast.Number, ".5"},
		{ast.Reserved, "**"},
		{ast.Number, "2"},
		{ast.Reserved, ";"},
		{ast.Identifier, "log"},
		{ast.Reserved, "("},
		{ast.Identifier, "n"},
		{ast.Reserved, ">>>"},
		{ast.Number, "1"},
		{ast.Reserved, ")"},
		{ast.Reserved, ";"},
		{ast.Reserved, "}"},
		{ast.Reserved, ";"},
	})
}
