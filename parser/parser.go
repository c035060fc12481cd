// Package parser implements the RottenScript recursive-descent parser.
//
// The parser reads the token slice produced by the lexer through a [Cursor]
// and builds an [ast.Node] tree rooted at a TranslationUnit. Binary operators
// are parsed by precedence climbing: a chain of same-shaped levels, each
// delegating to the next tighter one.
//
// Usage:
//
//	tokens, _ := lexer.Tokenize(source, path)
//	p := parser.New(tokens)
//	tree := p.Parse()
//	if errs := p.Errors(); len(errs) != 0 { ... }
//
// Error recovery: the parser never stops at the first error. On a mismatch it
// records a [Diagnostic], inserts a placeholder node, and steps past the
// offending token, so one pass reports every problem and always terminates.
//
// Grammar:
//
//	TranslationUnit     = {ImportDeclaration} , {{Attribute} , ExportableConstDecl} ;
//	ImportDeclaration   = (NamedImport | DefaultImport) , ";" ;
//	NamedImport         = "import" "{" Identifier {"," Identifier} "}" "from" String ;
//	DefaultImport       = "import" Identifier "from" String ;
//	Attribute           = "[" Identifier "]" ;
//	ExportableConstDecl = ["export" ["default"]] , ConstDecl ;
//	ConstDecl           = "const" DeclarationBody ;
//	LetDecl             = "let" DeclarationBody ;
//	DeclarationBody     = Identifier "=" Expression ";" ;
package parser

import (
	"github.com/metaphox/rots-lang/ast"
)

// Parser holds all state needed to parse one file.
// Create one with [New] and call [Parser.Parse] once.
type Parser struct {
	cur    *Cursor
	errors Diagnostics
	eof    bool // an UnexpectedEOF has been reported
}

// Option configures a Parser.
type Option func(*Parser)

// WithPath sets the file path used in diagnostics when the token slice is
// empty and carries no path of its own.
func WithPath(path string) Option {
	return func(p *Parser) {
		if p.cur.path == "" {
			p.cur.path = path
		}
	}
}

// New creates a Parser over tokens.
func New(tokens []ast.Token, opts ...Option) *Parser {
	p := &Parser{cur: NewCursor(tokens)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience wrapper around New and Parser.Parse.
func Parse(tokens []ast.Token, opts ...Option) (*ast.Node, Diagnostics) {
	p := New(tokens, opts...)
	tree := p.Parse()
	return tree, p.Errors()
}

// Errors returns the diagnostics collected by Parse, in source order.
func (p *Parser) Errors() Diagnostics {
	return p.errors
}

// Parse builds the tree for the whole token slice. A tree is always
// returned; it is flagged invalid when any diagnostic was recorded.
func (p *Parser) Parse() *ast.Node {
	unit := ast.New(ast.TranslationUnit)

	for p.cur.PeekIs(ast.Import) {
		unit.Append(p.parseImportDeclaration())
	}

	for p.cur.HasNext() {
		tok, _ := p.cur.Peek()
		switch {
		case tok.Is(ast.LeftSquareBracket):
			for p.cur.PeekIs(ast.LeftSquareBracket) {
				unit.Append(p.parseAttribute())
			}
			if !p.cur.PeekIs(ast.Const) && !p.cur.PeekIs(ast.Export) {
				unit.Append(p.unexpected(Word(ast.Const), Word(ast.Export)))
			}
		case tok.Is(ast.Const), tok.Is(ast.Export):
			unit.Append(p.parseExportableConstDeclaration())
		default:
			unit.Append(p.unexpected(
				Word(ast.LeftSquareBracket), Word(ast.Const), Word(ast.Export)))
		}
	}
	return unit
}

// ── Recovery helpers ──────────────────────────────────────────────────────────

// report records d and reports whether it was an error. Only the first
// UnexpectedEOF is kept: once input has ended every later production fails
// for the same reason.
func (p *Parser) report(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if d.Kind == UnexpectedEOF {
		if p.eof {
			return true
		}
		p.eof = true
	}
	p.errors = append(p.errors, d)
	return true
}

// consume steps over the reserved word r, recording a diagnostic on mismatch.
// It advances either way and reports whether r was found.
func (p *Parser) consume(r ast.ReservedWord) bool {
	return !p.report(p.cur.Consume(r))
}

// consumeInto is consume that flags n on failure.
func (p *Parser) consumeInto(n *ast.Node, r ast.ReservedWord) {
	if !p.consume(r) {
		n.MarkInvalid()
	}
}

// terminate consumes the ';' ending n. When it is missing and the next token
// opens a new declaration or closes a block, the cursor is left there so the
// enclosing production resumes cleanly.
func (p *Parser) terminate(n *ast.Node) {
	d := p.cur.Expect(ast.SemiColon)
	if d == nil {
		p.cur.Advance()
		return
	}
	p.report(d)
	n.MarkInvalid()
	if tok, ok := p.cur.Peek(); ok && !startsDeclaration(tok) {
		p.cur.Advance()
	}
}

func startsDeclaration(tok ast.Token) bool {
	if tok.Kind != ast.Reserved {
		return false
	}
	switch tok.Reserved {
	case ast.Const, ast.Let, ast.Export, ast.Import, ast.LeftSquareBracket, ast.RightCurly:
		return true
	}
	return false
}

// unexpected records that the next token matched none of exp, steps past it,
// and returns a placeholder for the production that could not be parsed.
func (p *Parser) unexpected(exp ...Expectation) *ast.Node {
	tok, ok := p.cur.Peek()
	if !ok {
		p.report(p.cur.EOF())
		return ast.NewPlaceholder(ast.Token{})
	}
	p.report(&Diagnostic{Kind: ExpectedNext, Expected: exp, Found: tok, Pos: tok.Pos()})
	p.cur.Advance()
	return ast.NewPlaceholder(tok)
}

// expectLeaf returns a terminal for the next token when it matches exp, and a
// placeholder otherwise. It always advances when a token is available.
func (p *Parser) expectLeaf(exp ...Expectation) *ast.Node {
	if tok, ok := p.cur.Peek(); ok {
		for _, e := range exp {
			if e.Matches(tok) {
				p.cur.Advance()
				return ast.Leaf(tok)
			}
		}
	}
	return p.unexpected(exp...)
}

// atEOF reports, and flags n, when no tokens remain.
func (p *Parser) atEOF(n *ast.Node) bool {
	if p.cur.HasNext() {
		return false
	}
	p.report(p.cur.EOF())
	n.MarkInvalid()
	return true
}

// ── Imports ───────────────────────────────────────────────────────────────────

// parseImportDeclaration parses a named or default import and its ';'. The
// token after 'import' decides the form.
func (p *Parser) parseImportDeclaration() *ast.Node {
	var inner *ast.Node
	second, ok := p.cur.PeekAt(2)
	switch {
	case ok && second.Is(ast.LeftCurly):
		inner = p.parseNamedImport()
	case ok && second.Kind == ast.Identifier:
		inner = p.parseDefaultImport()
	default:
		p.cur.Advance() // 'import'
		inner = p.unexpected(Word(ast.LeftCurly), expectIdentifier)
	}
	n := ast.New(ast.ImportDeclaration, inner)
	if !p.atEOF(n) {
		p.terminate(n)
	}
	return n
}

// parseNamedImport parses `import { a, b } from "path"`.
// Children: one identifier per imported name, then the path string.
func (p *Parser) parseNamedImport() *ast.Node {
	n := ast.New(ast.NamedImportDeclaration)
	p.cur.Advance() // 'import'
	p.cur.Advance() // '{'

	for {
		n.Append(p.expectLeaf(expectIdentifier))
		if p.atEOF(n) {
			return n
		}
		if p.cur.PeekIs(ast.Comma) {
			p.cur.Advance()
			continue
		}
		if p.cur.PeekIs(ast.RightCurly) {
			p.cur.Advance()
			break
		}
		p.report(p.cur.ExpectOneOf(Word(ast.Comma), Word(ast.RightCurly)))
		n.MarkInvalid()
		if p.cur.PeekIs(ast.From) {
			break // missing '}': resume at the path
		}
		p.cur.Advance()
	}
	return p.parseImportSource(n)
}

// parseDefaultImport parses `import Name from "path"`.
func (p *Parser) parseDefaultImport() *ast.Node {
	n := ast.New(ast.DefaultImportDeclaration)
	p.cur.Advance() // 'import'
	n.Append(p.expectLeaf(expectIdentifier))
	return p.parseImportSource(n)
}

// parseImportSource parses `from "path"` and appends the path to n.
func (p *Parser) parseImportSource(n *ast.Node) *ast.Node {
	if p.atEOF(n) {
		return n
	}
	p.consumeInto(n, ast.From)
	n.Append(p.expectLeaf(Class(ast.String)))
	return n
}

// ── Declarations ──────────────────────────────────────────────────────────────

// parseAttribute parses `[Name]`.
func (p *Parser) parseAttribute() *ast.Node {
	n := ast.New(ast.Attribute)
	p.cur.Advance() // '['
	n.Append(p.expectLeaf(expectIdentifier))
	if !p.atEOF(n) {
		p.consumeInto(n, ast.RightSquareBracket)
	}
	return n
}

// parseExportableConstDeclaration parses `[export [default]] const ...`.
// The export and default keywords are kept as leading terminal children, so
// the child count encodes the form: 1 plain, 2 export, 3 export default.
func (p *Parser) parseExportableConstDeclaration() *ast.Node {
	n := ast.New(ast.ExportableConstDeclaration)
	expected := []Expectation{Word(ast.Const)}

	if tok, ok := p.cur.Peek(); ok && tok.Is(ast.Export) {
		p.cur.Advance()
		n.Append(ast.Leaf(tok))
		expected = []Expectation{Word(ast.Default), Word(ast.Const)}
		if tok, ok := p.cur.Peek(); ok && tok.Is(ast.Default) {
			p.cur.Advance()
			n.Append(ast.Leaf(tok))
			expected = []Expectation{Word(ast.Const)}
		}
	}

	if p.cur.PeekIs(ast.Const) {
		n.Append(p.parseConstDeclaration())
	} else {
		n.Append(p.unexpected(expected...))
	}
	return n
}

// parseConstDeclaration parses `const DeclarationBody`.
func (p *Parser) parseConstDeclaration() *ast.Node {
	p.cur.Advance() // 'const'
	return ast.New(ast.ConstDeclaration, p.parseDeclarationBody())
}

// parseLetDeclaration parses `let DeclarationBody`.
func (p *Parser) parseLetDeclaration() *ast.Node {
	p.cur.Advance() // 'let'
	return ast.New(ast.LetDeclaration, p.parseDeclarationBody())
}

// parseDeclarationBody parses `name = expression ;`.
// Children: the identifier and the Expression.
func (p *Parser) parseDeclarationBody() *ast.Node {
	n := ast.New(ast.DeclarationBody, p.expectLeaf(expectIdentifier))
	if p.atEOF(n) {
		return n
	}
	p.consumeInto(n, ast.Assign)
	if p.atEOF(n) {
		return n
	}
	n.Append(p.parseExpression())
	if p.atEOF(n) {
		return n
	}
	p.terminate(n)
	return n
}
