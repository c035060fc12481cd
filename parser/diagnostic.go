package parser

import (
	"fmt"
	"strings"

	"github.com/metaphox/rots-lang/ast"
)

// DiagnosticKind classifies a syntax error.
type DiagnosticKind int

const (
	// ExpectedNext: one of Expected was required, Found was seen instead.
	ExpectedNext DiagnosticKind = iota
	// UnexpectedEOF: input ended while a production still needed tokens.
	UnexpectedEOF
	// ExponentialError: `**` directly follows a unary-prefixed operand, e.g.
	// `-1 ** 2`. The operand must be parenthesized.
	ExponentialError
)

func (k DiagnosticKind) String() string {
	switch k {
	case ExpectedNext:
		return "ExpectedNext"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case ExponentialError:
		return "ExponentialError"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Expectation is one member of an expected-token set: either a token class
// (string, number, identifier) or an exact reserved word.
type Expectation struct {
	Kind     ast.Kind
	Reserved ast.ReservedWord
}

// Class builds an expectation for any token of kind k.
func Class(k ast.Kind) Expectation { return Expectation{Kind: k} }

// Word builds an expectation for the reserved word r.
func Word(r ast.ReservedWord) Expectation { return Expectation{Kind: ast.Reserved, Reserved: r} }

var (
	expectLiteral    = []Expectation{Class(ast.String), Class(ast.Number)}
	expectIdentifier = Class(ast.Identifier)
)

// Matches reports whether tok satisfies e.
func (e Expectation) Matches(tok ast.Token) bool {
	if e.Kind == ast.Reserved {
		return tok.Is(e.Reserved)
	}
	return tok.Kind == e.Kind
}

// String renders literal classes as "literal", identifiers as "identifier"
// and reserved words as the backticked symbol.
func (e Expectation) String() string {
	switch e.Kind {
	case ast.String, ast.Number:
		return "literal"
	case ast.Identifier:
		return "identifier"
	case ast.Reserved:
		return "`" + e.Reserved.String() + "`"
	default:
		return e.Kind.String()
	}
}

// Diagnostic is a structured, non-fatal syntax error.
type Diagnostic struct {
	Kind     DiagnosticKind
	Expected []Expectation
	Found    ast.Token // zero for UnexpectedEOF
	Pos      ast.Position
}

// Message describes the problem without severity or location.
func (d *Diagnostic) Message() string {
	switch d.Kind {
	case UnexpectedEOF:
		return "unexpected EOF"
	case ExponentialError:
		return fmt.Sprintf("unary operand of `**` must be parenthesized, found '%s'", d.Found.Text)
	default:
		return fmt.Sprintf("expected %s, found '%s'", expectedSet(d.Expected), d.Found.Text)
	}
}

// Error renders "error: {message}\n\t--> {path}:{line}:{col}".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("error: %s\n\t--> %s", d.Message(), d.Pos)
}

func expectedSet(exp []Expectation) string {
	seen := make(map[string]bool, len(exp))
	parts := make([]string, 0, len(exp))
	for _, e := range exp {
		s := e.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// Diagnostics is the ordered list of syntax errors from one parse.
type Diagnostics []*Diagnostic

// Compact drops repeated UnexpectedEOF diagnostics at the tail of the list,
// keeping the first.
func (ds Diagnostics) Compact() Diagnostics {
	end := len(ds)
	for end >= 2 && ds[end-1].Kind == UnexpectedEOF && ds[end-2].Kind == UnexpectedEOF {
		end--
	}
	return ds[:end]
}

// Error joins the compacted diagnostics, one per block.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no errors"
	}
	compact := ds.Compact()
	lines := make([]string, 0, len(compact))
	for _, d := range compact {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}

// Err returns ds as an error, or nil when empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}
