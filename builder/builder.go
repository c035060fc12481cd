// Package builder regenerates RottenScript source from parsed trees.
//
// The output is normalized: four-space block indentation, one declaration or
// statement per line, single spaces around binary operators, and strings
// re-quoted with double quotes where possible. Attributes are consumed by the
// semantic pass and are not emitted. Unparsing valid output again yields the
// same text.
package builder

import (
	"fmt"
	"strings"

	"github.com/metaphox/rots-lang/ast"
	"github.com/metaphox/rots-lang/semantic"
)

const indent = "    "

// Build unparses every file of p and returns path → text. The file holding
// the entry point gets an invocation of it appended.
func Build(p *semantic.Project) map[string]string {
	entry, hasEntry := p.EntryPoint()
	out := make(map[string]string, len(p.Files()))
	for _, f := range p.Files() {
		name := ""
		if hasEntry && entry.File == f.Path {
			name = entry.Name
		}
		out[f.Path] = Unparse(f.Tree, name)
	}
	return out
}

// Unparse renders one translation unit. When entry is not empty, `entry();`
// is appended two lines after the body.
func Unparse(tree *ast.Node, entry string) string {
	var u unparser
	u.node(tree, 0)
	if entry != "" {
		fmt.Fprintf(&u.sb, "\n\n%s();\n", entry)
	}
	return u.sb.String()
}

type unparser struct {
	sb strings.Builder
}

func (u *unparser) write(s string) { u.sb.WriteString(s) }

// newline writes a line feed and the indentation for depth.
func (u *unparser) newline(depth int) {
	u.sb.WriteByte('\n')
	u.sb.WriteString(strings.Repeat(indent, depth))
}

// trim drops the last n bytes written.
func (u *unparser) trim(n int) {
	s := u.sb.String()
	u.sb.Reset()
	u.sb.WriteString(s[:len(s)-n])
}

func (u *unparser) node(n *ast.Node, depth int) {
	switch n.Kind {
	case ast.Terminal:
		u.write(n.Token.Canonical())

	case ast.Placeholder, ast.Attribute:

	case ast.TranslationUnit:
		for _, c := range n.Children {
			u.node(c, depth)
		}

	case ast.ImportDeclaration:
		u.node(n.Child(0), depth)
		u.write(";")
		u.newline(depth)

	case ast.NamedImportDeclaration:
		last := len(n.Children) - 1
		u.write("import { ")
		u.list(n.Children[:last], depth)
		u.write(" } from ")
		u.node(n.Child(last), depth)

	case ast.DefaultImportDeclaration:
		u.write("import ")
		u.node(n.Child(0), depth)
		u.write(" from ")
		u.node(n.Child(1), depth)

	case ast.ExportableConstDeclaration:
		switch len(n.Children) {
		case 1:
		case 2:
			u.write("export ")
		case 3:
			u.write("export default ")
		default:
			panic(fmt.Sprintf("builder: ExportableConstDeclaration with %d children", len(n.Children)))
		}
		u.node(n.Child(len(n.Children)-1), depth)

	case ast.ConstDeclaration:
		u.write("const ")
		u.node(n.Child(0), depth)

	case ast.LetDeclaration:
		u.write("let ")
		u.node(n.Child(0), depth)

	case ast.DeclarationBody:
		u.node(n.Child(0), depth)
		u.write(" = ")
		u.node(n.Child(1), depth)
		u.write(";")
		u.newline(depth)

	case ast.Expression, ast.ExpressionStatement:
		u.node(n.Child(0), depth)
		if n.Kind == ast.ExpressionStatement {
			u.write(";")
			u.newline(depth)
		}

	case ast.UnaryExpression:
		u.node(n.Child(0), depth)
		u.node(n.Child(1), depth)

	case ast.ParenthesizedExpression:
		u.write("(")
		u.node(n.Child(0), depth)
		u.write(")")

	case ast.FunctionExpression:
		u.write("(")
		u.list(n.Child(0).Children, depth)
		u.write(") => ")
		u.node(n.Child(1), depth)

	case ast.CompoundExpression:
		u.compound(n, depth)

	case ast.CallExpression:
		u.node(n.Child(0), depth)
		for _, seg := range n.Children[1:] {
			if seg.Kind == ast.Args {
				u.write("(")
				u.list(seg.Children, depth)
				u.write(")")
				continue
			}
			u.write(".")
			u.node(seg, depth)
		}

	default:
		if !n.Kind.IsBinary() {
			panic(fmt.Sprintf("builder: cannot unparse %s", n.Kind))
		}
		u.node(n.Child(0), depth)
		u.write(" ")
		u.node(n.Child(1), depth)
		u.write(" ")
		u.node(n.Child(2), depth)
	}
}

// compound renders a block. Its items sit one level deeper; statements end
// with a newline for the next item, and the last one is pulled back to the
// block's own indentation before the closing brace.
func (u *unparser) compound(n *ast.Node, depth int) {
	if len(n.Children) == 0 {
		u.write("{}")
		return
	}
	u.write("{")
	u.newline(depth + 1)
	for _, c := range n.Children {
		u.node(c, depth+1)
	}
	if n.Child(len(n.Children)-1).Kind == ast.Expression {
		u.newline(depth)
	} else {
		u.trim(len(indent))
	}
	u.write("}")
}

func (u *unparser) list(nodes []*ast.Node, depth int) {
	for i, c := range nodes {
		if i > 0 {
			u.write(", ")
		}
		u.node(c, depth)
	}
}
