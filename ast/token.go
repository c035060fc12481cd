// Package ast defines the tokens and the syntax tree shared by the RottenScript
// lexer, parser and builder.
//
// Tokens are the smallest meaningful units of a source file. Every token carries
// its payload kind, the exact text it was scanned from, and its source position.
// Position is 1-based: the first character of a file is Line 1, Col 1.
package ast

import "fmt"

// Kind classifies the payload of a token.
type Kind int

const (
	// Invalid marks a lexeme the lexer could not recognise. It still carries a
	// position and its raw text, but no payload.
	Invalid Kind = iota
	// String is a single- or double-quoted string literal. Value holds the
	// content without the quotes; escape sequences are kept verbatim.
	String
	// Number is a decimal literal: 0, 42, 3.14, .5
	Number
	// Identifier is [_a-zA-Z][_a-zA-Z0-9]*
	Identifier
	// Reserved is punctuation, an operator or a keyword; see ReservedWord.
	Reserved
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case String:
		return "string"
	case Number:
		return "number"
	case Identifier:
		return "identifier"
	case Reserved:
		return "reserved"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position locates a token in its source file.
type Position struct {
	Path   string
	Line   int
	Col    int
	Offset int // byte offset from the start of the file
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Col)
}

// Token is a single lexical unit produced by the lexer.
//
// Fields:
//   - Kind    : the payload class
//   - Reserved: the reserved word when Kind == Reserved
//   - Value   : the payload text for String, Number and Identifier tokens
//   - Text    : the exact source text that was scanned (quotes included)
//   - Line/Col/Offset/Length: where Text sits in the file (bytes)
//   - Path    : the originating file
type Token struct {
	Kind     Kind
	Reserved ReservedWord
	Value    string
	Text     string

	Line   int
	Col    int
	Offset int
	Length int
	Path   string
}

// Pos returns the position of the first character of the token.
func (t Token) Pos() Position {
	return Position{Path: t.Path, Line: t.Line, Col: t.Col, Offset: t.Offset}
}

// Is reports whether t is the reserved word r.
func (t Token) Is(r ReservedWord) bool {
	return t.Kind == Reserved && t.Reserved == r
}

// IsLiteral reports whether t is a string or number literal.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Number
}

// Canonical returns the text the builder emits for the token.
func (t Token) Canonical() string {
	switch t.Kind {
	case Reserved:
		return t.Reserved.String()
	case String:
		if containsUnescaped(t.Value, '"') {
			return "'" + t.Value + "'"
		}
		return `"` + t.Value + `"`
	case Number, Identifier:
		return t.Value
	default:
		return t.Text
	}
}

// String returns a debugging representation: string(x), number(1),
// identifier(x), the reserved word name, or invalid(x).
func (t Token) String() string {
	switch t.Kind {
	case String:
		return "string(" + t.Value + ")"
	case Number:
		return "number(" + t.Value + ")"
	case Identifier:
		return "identifier(" + t.Value + ")"
	case Reserved:
		return t.Reserved.Name()
	default:
		return "invalid(" + t.Text + ")"
	}
}

func containsUnescaped(s string, q byte) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return true
		}
	}
	return false
}
