// Package semantic builds the per-batch symbol table of a RottenScript
// project: one FuncInfo per top-level const declaration, the imports of each
// file, and the single entry point.
package semantic

import (
	"fmt"

	"github.com/metaphox/rots-lang/ast"
)

// ExportKind classifies how a top-level declaration is exported.
type ExportKind int

const (
	NotExported ExportKind = iota
	Export
	DefaultExport
)

func (k ExportKind) String() string {
	switch k {
	case NotExported:
		return "none"
	case Export:
		return "export"
	case DefaultExport:
		return "export default"
	default:
		return fmt.Sprintf("ExportKind(%d)", int(k))
	}
}

// exportKindOf decodes the export form of an ExportableConstDeclaration from
// its child count.
func exportKindOf(decl *ast.Node) ExportKind {
	switch len(decl.Children) {
	case 1:
		return NotExported
	case 2:
		return Export
	case 3:
		return DefaultExport
	default:
		panic(fmt.Sprintf("semantic: ExportableConstDeclaration with %d children", len(decl.Children)))
	}
}

// FuncInfo describes one top-level declaration.
type FuncInfo struct {
	Name       string
	File       string
	Export     ExportKind
	ID         int // unique and strictly increasing across the batch
	Attributes []string
	IsEntry    bool

	// Body is the DeclarationBody node; Body.Child(1) is the initialiser.
	Body *ast.Node
}

// FullPath returns "file#name", unique within a batch.
func (f *FuncInfo) FullPath() string {
	return f.File + "#" + f.Name
}

// HasAttribute reports whether name was attached to the declaration.
func (f *FuncInfo) HasAttribute(name string) bool {
	for _, a := range f.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

func (f *FuncInfo) String() string {
	s := fmt.Sprintf("#%d %s (%s)", f.ID, f.FullPath(), f.Export)
	if f.IsEntry {
		s += " entry"
	}
	return s
}
