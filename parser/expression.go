package parser

import "github.com/metaphox/rots-lang/ast"

// Expression grammar, loosest binding first:
//
//	Expression     = LogicalOr ;
//	LogicalOr      = LogicalAnd {"||" LogicalAnd} ;
//	LogicalAnd     = BitwiseOr {"&&" BitwiseOr} ;
//	BitwiseOr      = BitwiseXor {"|" BitwiseXor} ;
//	BitwiseXor     = BitwiseAnd {"^" BitwiseAnd} ;
//	BitwiseAnd     = Equality {"&" Equality} ;
//	Equality       = Relational {("==" | "!=") Relational} ;
//	Relational     = Shift {("<" | ">" | "<=" | ">=") Shift} ;
//	Shift          = Additive {("<<" | ">>" | ">>>") Additive} ;
//	Additive       = Multiplicative {("+" | "-") Multiplicative} ;
//	Multiplicative = Exponential {("*" | "/" | "%") Exponential} ;
//	Exponential    = Unary ["**" Exponential] ;
//	Unary          = ("!" | "~" | "+" | "-") Unary | Primary ;
//	Primary        = (Literal | Identifier | "true" | "false"
//	                 | Parenthesized | Function | Compound) {Postfix} ;
//	Parenthesized  = "(" Expression ")" ;
//	Function       = "(" [Identifier {"," Identifier}] ")" "=>" Compound ;
//	Compound       = "{" {Const | Let | Expression ";"} [Expression] "}" ;
//	Postfix        = "." Identifier | "(" [Expression {"," Expression}] ")" ;

// binaryLevel is one left-associative precedence level.
type binaryLevel struct {
	kind ast.NodeKind
	ops  []ast.ReservedWord
}

// binaryLevels is ordered loosest first; level i delegates to level i+1 and
// the last one delegates to parseExponential.
var binaryLevels = []binaryLevel{
	{ast.LogicalOrExpression, []ast.ReservedWord{ast.LogicalOr}},
	{ast.LogicalAndExpression, []ast.ReservedWord{ast.LogicalAnd}},
	{ast.BitwiseOrExpression, []ast.ReservedWord{ast.Or}},
	{ast.BitwiseXorExpression, []ast.ReservedWord{ast.Xor}},
	{ast.BitwiseAndExpression, []ast.ReservedWord{ast.And}},
	{ast.EqualityExpression, []ast.ReservedWord{ast.Equal, ast.NotEqual}},
	{ast.RelationalExpression, []ast.ReservedWord{ast.Less, ast.Greater, ast.LessOrEq, ast.GreaterOrEq}},
	{ast.ShiftExpression, []ast.ReservedWord{ast.LeftShift, ast.RightShift, ast.UnsignedRightShift}},
	{ast.AdditiveExpression, []ast.ReservedWord{ast.Add, ast.Sub}},
	{ast.MultiplicativeExpression, []ast.ReservedWord{ast.Mult, ast.Div, ast.Mod}},
}

var unaryOperators = []ast.ReservedWord{ast.LogicalNot, ast.Not, ast.Add, ast.Sub}

// primaryFirst is the expected set reported when no expression can start.
var primaryFirst = append(append([]Expectation{}, expectLiteral...),
	expectIdentifier,
	Word(ast.True),
	Word(ast.False),
	Word(ast.LeftParenthesis),
	Word(ast.LeftCurly),
)

// parseExpression wraps the top of the precedence chain in an Expression node.
func (p *Parser) parseExpression() *ast.Node {
	return ast.New(ast.Expression, p.parseBinary(0))
}

// parseBinary parses precedence level i. A binary node is only created when
// an operator is actually present, so `x` stays a bare leaf.
func (p *Parser) parseBinary(i int) *ast.Node {
	if i == len(binaryLevels) {
		return p.parseExponential()
	}
	level := binaryLevels[i]
	left := p.parseBinary(i + 1)
	for {
		op, ok := p.peekOneOf(level.ops)
		if !ok {
			return left
		}
		p.cur.Advance()
		right := p.parseBinary(i + 1)
		left = ast.New(level.kind, left, ast.Leaf(op), right)
	}
}

// parseExponential parses the right-associative `**`. A unary-prefixed base
// is ambiguous (`-1 ** 2`) and is rejected; `(-1) ** 2` is fine.
func (p *Parser) parseExponential() *ast.Node {
	base := p.parseUnary()
	op, ok := p.peekOneOf([]ast.ReservedWord{ast.Exponential})
	if !ok {
		return base
	}
	p.cur.Advance()
	if base.Kind == ast.UnaryExpression {
		p.report(&Diagnostic{Kind: ExponentialError, Found: op, Pos: op.Pos()})
	}
	n := ast.New(ast.ExponentialExpression, base, ast.Leaf(op), p.parseExponential())
	if base.Kind == ast.UnaryExpression {
		n.MarkInvalid()
	}
	return n
}

func (p *Parser) parseUnary() *ast.Node {
	if op, ok := p.peekOneOf(unaryOperators); ok {
		p.cur.Advance()
		return ast.New(ast.UnaryExpression, ast.Leaf(op), p.parseUnary())
	}
	return p.parsePrimary()
}

// parsePrimary parses an atom followed by any member accesses and calls.
func (p *Parser) parsePrimary() *ast.Node {
	tok, ok := p.cur.Peek()
	if !ok {
		p.report(p.cur.EOF())
		return ast.NewPlaceholder(ast.Token{})
	}

	var base *ast.Node
	switch {
	case tok.IsLiteral(), tok.Kind == ast.Identifier, tok.Is(ast.True), tok.Is(ast.False):
		p.cur.Advance()
		base = ast.Leaf(tok)
	case tok.Is(ast.LeftParenthesis):
		arrow, d := p.scanArrow()
		if d != nil {
			// Unbalanced parentheses: nothing after this point can be parsed.
			p.report(d)
			for p.cur.HasNext() {
				p.cur.Advance()
			}
			return ast.NewPlaceholder(tok)
		}
		if arrow {
			base = p.parseFunctionExpression()
		} else {
			base = p.parseParenthesized()
		}
	case tok.Is(ast.LeftCurly):
		base = p.parseCompound()
	default:
		return p.unexpected(primaryFirst...)
	}
	return p.parsePostfix(base)
}

// scanArrow looks ahead from the '(' under the next position to its matching
// ')' and reports whether '=>' follows it. Input ending before the group
// closes yields an UnexpectedEOF diagnostic.
func (p *Parser) scanArrow() (bool, *Diagnostic) {
	depth := 0
	for k := 1; ; k++ {
		tok, ok := p.cur.PeekAt(k)
		if !ok {
			return false, p.cur.EOF()
		}
		switch {
		case tok.Is(ast.LeftParenthesis):
			depth++
		case tok.Is(ast.RightParenthesis):
			depth--
		}
		if depth == 0 {
			next, ok := p.cur.PeekAt(k + 1)
			return ok && next.Is(ast.Arrow), nil
		}
	}
}

// parseParenthesized parses `( Expression )`.
func (p *Parser) parseParenthesized() *ast.Node {
	p.cur.Advance() // '('
	n := ast.New(ast.ParenthesizedExpression, p.parseExpression())
	p.consumeInto(n, ast.RightParenthesis)
	return n
}

// parseFunctionExpression parses `( params ) => { ... }`.
// Children: Parameters, CompoundExpression.
func (p *Parser) parseFunctionExpression() *ast.Node {
	p.cur.Advance() // '('
	params := ast.New(ast.Parameters)
	for !p.cur.PeekIs(ast.RightParenthesis) && p.cur.HasNext() {
		params.Append(p.expectLeaf(expectIdentifier))
		if !p.cur.PeekIs(ast.Comma) {
			break
		}
		p.cur.Advance()
	}

	n := ast.New(ast.FunctionExpression, params)
	p.consumeInto(n, ast.RightParenthesis)
	p.consumeInto(n, ast.Arrow)
	if p.cur.PeekIs(ast.LeftCurly) {
		n.Append(p.parseCompound())
	} else {
		n.Append(p.unexpected(Word(ast.LeftCurly)))
	}
	return n
}

// parseCompound parses a block. Declarations and `expr;` statements come in
// any order; an expression directly followed by '}' is the block's value.
func (p *Parser) parseCompound() *ast.Node {
	n := ast.New(ast.CompoundExpression)
	p.cur.Advance() // '{'

	for {
		tok, ok := p.cur.Peek()
		if !ok {
			p.report(p.cur.EOF())
			n.MarkInvalid()
			return n
		}

		switch {
		case tok.Is(ast.RightCurly):
			p.cur.Advance()
			return n
		case tok.Is(ast.Const):
			n.Append(p.parseConstDeclaration())
		case tok.Is(ast.Let):
			n.Append(p.parseLetDeclaration())
		case startsExpression(tok):
			e := p.parseExpression()
			if p.cur.PeekIs(ast.SemiColon) {
				p.cur.Advance()
				n.Append(ast.New(ast.ExpressionStatement, e))
				continue
			}
			n.Append(e)
			if p.cur.HasNext() && !p.cur.PeekIs(ast.RightCurly) {
				p.report(p.cur.ExpectOneOf(Word(ast.SemiColon), Word(ast.RightCurly)))
				n.MarkInvalid()
			}
		default:
			exp := append([]Expectation{Word(ast.Const), Word(ast.Let), Word(ast.RightCurly)}, primaryFirst...)
			n.Append(p.unexpected(exp...))
		}
	}
}

// parsePostfix folds a chain of `.name` and `(args)` suffixes onto base.
// Children: base, then one Identifier or Args node per suffix.
func (p *Parser) parsePostfix(base *ast.Node) *ast.Node {
	if !p.cur.PeekIs(ast.Dot) && !p.cur.PeekIs(ast.LeftParenthesis) {
		return base
	}
	n := ast.New(ast.CallExpression, base)
	for {
		switch {
		case p.cur.PeekIs(ast.Dot):
			p.cur.Advance()
			n.Append(p.expectLeaf(expectIdentifier))
		case p.cur.PeekIs(ast.LeftParenthesis):
			n.Append(p.parseArgs())
		default:
			return n
		}
	}
}

// parseArgs parses `( [Expression {, Expression}] )`. On a malformed list it
// skips to the matching ')'.
func (p *Parser) parseArgs() *ast.Node {
	n := ast.New(ast.Args)
	p.cur.Advance() // '('
	if p.cur.PeekIs(ast.RightParenthesis) {
		p.cur.Advance()
		return n
	}
	for {
		n.Append(p.parseExpression())
		switch {
		case p.cur.PeekIs(ast.Comma):
			p.cur.Advance()
		case p.cur.PeekIs(ast.RightParenthesis):
			p.cur.Advance()
			return n
		default:
			p.report(p.cur.ExpectOneOf(Word(ast.Comma), Word(ast.RightParenthesis)))
			n.MarkInvalid()
			p.skipGroup()
			return n
		}
	}
}

// skipGroup advances past the ')' closing the group the cursor is inside.
func (p *Parser) skipGroup() {
	depth := 1
	for depth > 0 {
		tok, ok := p.cur.Advance()
		if !ok {
			return
		}
		switch {
		case tok.Is(ast.LeftParenthesis):
			depth++
		case tok.Is(ast.RightParenthesis):
			depth--
		}
	}
}

func (p *Parser) peekOneOf(ops []ast.ReservedWord) (ast.Token, bool) {
	tok, ok := p.cur.Peek()
	if !ok || tok.Kind != ast.Reserved {
		return ast.Token{}, false
	}
	for _, r := range ops {
		if tok.Reserved == r {
			return tok, true
		}
	}
	return ast.Token{}, false
}

// startsExpression reports whether tok can begin an expression.
func startsExpression(tok ast.Token) bool {
	if tok.IsLiteral() || tok.Kind == ast.Identifier {
		return true
	}
	if tok.Kind != ast.Reserved {
		return false
	}
	switch tok.Reserved {
	case ast.True, ast.False, ast.LeftParenthesis, ast.LeftCurly,
		ast.LogicalNot, ast.Not, ast.Add, ast.Sub:
		return true
	}
	return false
}
