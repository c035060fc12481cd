// Package ast defines the syntax tree produced by the parser.
//
// A tree is made of a single node type tagged with a NodeKind. A node is either
//
//	Terminal      wraps exactly one Token, has no children
//	Non-terminal  a grammar production with an ordered list of children
//
// The productions are:
//
//	TranslationUnit
//	  ImportDeclaration → NamedImportDeclaration | DefaultImportDeclaration
//	  Attribute
//	  ExportableConstDeclaration → [export] [default] ConstDeclaration
//	ConstDeclaration, LetDeclaration → DeclarationBody → Identifier, Expression
//	Expression
//	  LogicalOr … Multiplicative, Exponential, Unary  (binary: lhs, op, rhs)
//	  ParenthesizedExpression, FunctionExpression, CompoundExpression,
//	  ExpressionStatement, CallExpression, Args, Parameters
//
// Every node also carries an invalid flag, set when the parse of the node or
// of any of its descendants failed.
package ast

import (
	"fmt"
	"strings"
)

// NodeKind tags a node with its grammar production.
type NodeKind int

const (
	// Terminal is a leaf wrapping one token.
	Terminal NodeKind = iota
	// Placeholder is synthesized by error recovery where a production could
	// not be parsed. It is always invalid.
	Placeholder

	TranslationUnit
	ImportDeclaration
	NamedImportDeclaration
	DefaultImportDeclaration
	Attribute
	ExportableConstDeclaration
	ConstDeclaration
	LetDeclaration
	DeclarationBody
	Expression

	LogicalOrExpression
	LogicalAndExpression
	BitwiseOrExpression
	BitwiseXorExpression
	BitwiseAndExpression
	EqualityExpression
	RelationalExpression
	ShiftExpression
	AdditiveExpression
	MultiplicativeExpression
	ExponentialExpression
	UnaryExpression

	ParenthesizedExpression
	FunctionExpression
	Parameters
	CompoundExpression
	ExpressionStatement
	CallExpression
	Args

	nodeKindEnd
)

var nodeKindNames = [...]string{
	Terminal:                   "Terminal",
	Placeholder:                "Placeholder",
	TranslationUnit:            "TranslationUnit",
	ImportDeclaration:          "ImportDeclaration",
	NamedImportDeclaration:     "NamedImportDeclaration",
	DefaultImportDeclaration:   "DefaultImportDeclaration",
	Attribute:                  "Attribute",
	ExportableConstDeclaration: "ExportableConstDeclaration",
	ConstDeclaration:           "ConstDeclaration",
	LetDeclaration:             "LetDeclaration",
	DeclarationBody:            "DeclarationBody",
	Expression:                 "Expression",
	LogicalOrExpression:        "LogicalOrExpression",
	LogicalAndExpression:       "LogicalAndExpression",
	BitwiseOrExpression:        "BitwiseOrExpression",
	BitwiseXorExpression:       "BitwiseXorExpression",
	BitwiseAndExpression:       "BitwiseAndExpression",
	EqualityExpression:         "EqualityExpression",
	RelationalExpression:       "RelationalExpression",
	ShiftExpression:            "ShiftExpression",
	AdditiveExpression:         "AdditiveExpression",
	MultiplicativeExpression:   "MultiplicativeExpression",
	ExponentialExpression:      "ExponentialExpression",
	UnaryExpression:            "UnaryExpression",
	ParenthesizedExpression:    "ParenthesizedExpression",
	FunctionExpression:         "FunctionExpression",
	Parameters:                 "Parameters",
	CompoundExpression:         "CompoundExpression",
	ExpressionStatement:        "ExpressionStatement",
	CallExpression:             "CallExpression",
	Args:                       "Args",
}

func (k NodeKind) String() string {
	if k < 0 || k >= nodeKindEnd {
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
	return nodeKindNames[k]
}

// IsBinary reports whether nodes of kind k have the [lhs, op, rhs] shape.
func (k NodeKind) IsBinary() bool {
	return k >= LogicalOrExpression && k <= ExponentialExpression
}

// Node is one element of the syntax tree. A node owns its children; trees
// never share nodes.
type Node struct {
	Kind     NodeKind
	Token    Token // set for Terminal, and for Placeholder when a token was found
	Children []*Node

	invalid bool
}

// Leaf creates a terminal node for tok.
func Leaf(tok Token) *Node {
	return &Node{Kind: Terminal, Token: tok}
}

// New creates a non-terminal node. The node is invalid if any child is.
func New(kind NodeKind, children ...*Node) *Node {
	if kind == Terminal {
		panic("ast: New called with Terminal kind; use Leaf")
	}
	n := &Node{Kind: kind, Children: make([]*Node, 0, len(children))}
	n.Append(children...)
	return n
}

// NewPlaceholder creates the invalid node recovery inserts in place of a
// production it could not parse. tok is the offending token, if any.
func NewPlaceholder(tok Token) *Node {
	return &Node{Kind: Placeholder, Token: tok, invalid: true}
}

// Append adds children in order. Appending to a terminal node is a
// programming error and panics.
func (n *Node) Append(children ...*Node) {
	if n.Kind == Terminal {
		panic(fmt.Sprintf("ast: cannot append children to terminal %s", n.Token))
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Children = append(n.Children, c)
		if c.invalid {
			n.invalid = true
		}
	}
}

// IsInvalid reports whether the node or any of its descendants failed to parse.
func (n *Node) IsInvalid() bool { return n.invalid }

// MarkInvalid flags the node itself as failed.
func (n *Node) MarkInvalid() { n.invalid = true }

// IsTerminal reports whether n is a leaf.
func (n *Node) IsTerminal() bool { return n.Kind == Terminal }

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// String renders the tree one node per line, children indented by two spaces.
// Non-terminals print their kind; terminals print the canonical token text.
func (n *Node) String() string {
	var sb strings.Builder
	n.Walk(func(node *Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		switch node.Kind {
		case Terminal:
			sb.WriteString(node.Token.Canonical())
		case Placeholder:
			sb.WriteString("Placeholder")
			if node.Token.Text != "" {
				fmt.Fprintf(&sb, "(%s)", node.Token.Text)
			}
		default:
			sb.WriteString(node.Kind.String())
		}
		if node.invalid {
			sb.WriteString(" !")
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
