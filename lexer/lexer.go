// Package lexer implements the RottenScript tokeniser.
//
// The lexer converts a source string into a flat slice of [ast.Token] values.
// Call [New] to create a lexer and then [Lexer.Lex] once; or use [Tokenize].
//
// Design notes:
//   - At every position the lexical classes are tried in a fixed order:
//     line comment, whitespace, number, reserved word, identifier, string.
//   - Reserved punctuation is matched greedily: the longest symbol in
//     [ast.Symbols] that prefixes the input wins, so ">>>=" is one token.
//   - Keywords only match on a word boundary; "constant" is an identifier.
//   - Anything else up to the next whitespace is an invalid token. It is
//     recorded and scanning continues, so every bad lexeme is reported in one pass.
//   - Line and column numbers are 1-based and counted in bytes.
package lexer

import (
	"regexp"
	"strings"

	"github.com/metaphox/rots-lang/ast"
)

var (
	numberPattern     = regexp.MustCompile(`^(\.\d+|[1-9]\d*\.\d+|[1-9]\d*|0\.\d*|0)`)
	identifierPattern = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*`)
	dqStringPattern   = regexp.MustCompile(`^"((?:[^"\\\r\n]|\\[^\r\n])*)"`)
	sqStringPattern   = regexp.MustCompile(`^'((?:[^'\\\r\n]|\\[^\r\n])*)'`)
)

// Lexer holds all state required to tokenise a single source file.
// Create one with [New]; a Lexer is single use.
type Lexer struct {
	source string
	path   string

	offset int // byte offset of the unconsumed input
	line   int
	col    int

	tokens  []ast.Token
	invalid []ast.Token
}

// New creates a [Lexer] for source. path is only used for positions and
// diagnostics.
func New(source, path string) *Lexer {
	return &Lexer{
		source: source,
		path:   path,
		line:   1,
		col:    1,
	}
}

// Tokenize lexes source and returns every token in source order, invalid ones
// included, together with the invalid tokens alone.
func Tokenize(source, path string) (tokens, invalid []ast.Token) {
	l := New(source, path)
	_ = l.Lex()
	return l.Tokens(), l.Invalid()
}

// Tokens returns the tokens scanned by Lex, invalid ones included.
func (l *Lexer) Tokens() []ast.Token { return l.tokens }

// Invalid returns the invalid tokens scanned by Lex.
func (l *Lexer) Invalid() []ast.Token { return l.invalid }

// Lex scans the whole input. It returns an [*Error] listing every invalid
// lexeme when at least one was found; the valid tokens are available through
// [Lexer.Tokens] either way.
func (l *Lexer) Lex() error {
	for l.offset < len(l.source) {
		rest := l.source[l.offset:]

		switch {
		case strings.HasPrefix(rest, "//"):
			l.skipComment(rest)
		case isSpace(rest[0]):
			l.skipSpace(rest[0])
		default:
			l.scanToken(rest)
		}
	}
	if len(l.invalid) > 0 {
		return &Error{Tokens: l.invalid}
	}
	return nil
}

// scanToken classifies the token at the head of rest and appends it.
func (l *Lexer) scanToken(rest string) {
	if m := numberPattern.FindString(rest); m != "" {
		l.emit(ast.Token{Kind: ast.Number, Value: m}, m)
		return
	}
	if r, text, ok := matchReserved(rest); ok {
		l.emit(ast.Token{Kind: ast.Reserved, Reserved: r}, text)
		return
	}
	if m := identifierPattern.FindString(rest); m != "" {
		l.emit(ast.Token{Kind: ast.Identifier, Value: m}, m)
		return
	}
	for _, re := range []*regexp.Regexp{dqStringPattern, sqStringPattern} {
		if m := re.FindStringSubmatch(rest); m != nil {
			l.emit(ast.Token{Kind: ast.String, Value: m[1]}, m[0])
			return
		}
	}

	end := strings.IndexAny(rest, " \t\r\n\x00")
	if end < 0 {
		end = len(rest)
	} else if end == 0 {
		end = 1
	}
	tok := l.emit(ast.Token{Kind: ast.Invalid}, rest[:end])
	l.invalid = append(l.invalid, tok)
}

// matchReserved returns the longest reserved word prefixing rest. Keywords
// must not be followed by an identifier character.
func matchReserved(rest string) (ast.ReservedWord, string, bool) {
	if word := identifierPattern.FindString(rest); word != "" {
		r, ok := ast.LookupKeyword(word)
		return r, word, ok
	}
	for _, r := range ast.Symbols {
		if text := r.String(); strings.HasPrefix(rest, text) {
			return r, text, true
		}
	}
	return 0, "", false
}

// emit records a token spanning text at the current position and advances.
func (l *Lexer) emit(tok ast.Token, text string) ast.Token {
	tok.Text = text
	tok.Line = l.line
	tok.Col = l.col
	tok.Offset = l.offset
	tok.Length = len(text)
	tok.Path = l.path
	l.tokens = append(l.tokens, tok)
	l.offset += len(text)
	l.col += len(text)
	return tok
}

// skipComment advances to the line terminator ending a // comment; the
// terminator itself is left for skipSpace.
func (l *Lexer) skipComment(rest string) {
	end := strings.IndexAny(rest, "\r\n\x00")
	if end < 0 {
		end = len(rest)
	}
	l.offset += end
	l.col += end
}

func (l *Lexer) skipSpace(ch byte) {
	l.offset++
	if ch == '\n' {
		l.line++
		l.col = 1
		return
	}
	l.col++
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == 0
}
