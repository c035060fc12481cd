package semantic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metaphox/rots-lang/ast"
)

// DefaultEntryAttribute marks the declaration invoked at the end of the
// entry file.
const DefaultEntryAttribute = "EntryPoint"

var (
	// ErrMultipleEntryPoints is returned when more than one declaration in a
	// batch carries the entry attribute.
	ErrMultipleEntryPoints = errors.New("multiple entry points")
	// ErrDuplicateDeclaration is returned when a file declares a name twice.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	// ErrInvalidTree is returned for a missing tree, a tree that is not a
	// translation unit, or one that failed to parse.
	ErrInvalidTree = errors.New("tree has syntax errors")
)

// File is one parsed input of a batch.
type File struct {
	Path string
	Tree *ast.Node
}

// Import is one import declaration. Names is set for the named form,
// Default for the default form.
type Import struct {
	Path    string
	Names   []string
	Default string
}

// FileInfo is the per-file view of a project.
type FileInfo struct {
	Path    string
	Tree    *ast.Node
	Imports []Import
	Funcs   []*FuncInfo
}

// Exports returns the exported declarations of the file, in source order.
func (f *FileInfo) Exports() []*FuncInfo {
	var out []*FuncInfo
	for _, fn := range f.Funcs {
		if fn.Export != NotExported {
			out = append(out, fn)
		}
	}
	return out
}

// Project is the symbol table of one batch. Build it with Analyze.
type Project struct {
	entryAttribute string

	files  []*FileInfo
	byPath map[string]*FileInfo
	funcs  []*FuncInfo
	entry  *FuncInfo
	nextID int
}

// Option configures Analyze.
type Option func(*Project)

// WithEntryAttribute changes the attribute that marks the entry point.
func WithEntryAttribute(name string) Option {
	return func(p *Project) {
		if name != "" {
			p.entryAttribute = name
		}
	}
}

// Analyze folds files, in order, into a Project. IDs are assigned in the same
// order, so the result is deterministic for a given input slice.
func Analyze(files []File, opts ...Option) (*Project, error) {
	p := &Project{
		entryAttribute: DefaultEntryAttribute,
		byPath:         make(map[string]*FileInfo, len(files)),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, f := range files {
		if err := p.add(f); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Project) add(f File) error {
	if f.Tree == nil || f.Tree.Kind != ast.TranslationUnit || f.Tree.IsInvalid() {
		return fmt.Errorf("%s: %w", f.Path, ErrInvalidTree)
	}

	info := &FileInfo{Path: f.Path, Tree: f.Tree}
	seen := make(map[string]bool)
	var attributes []string

	for _, n := range f.Tree.Children {
		switch n.Kind {
		case ast.ImportDeclaration:
			info.Imports = append(info.Imports, importOf(n.Child(0)))

		case ast.Attribute:
			attributes = append(attributes, n.Child(0).Token.Value)

		case ast.ExportableConstDeclaration:
			kind := exportKindOf(n)
			body := n.Child(len(n.Children) - 1).Child(0)
			name := body.Child(0).Token.Value
			if seen[name] {
				return fmt.Errorf("%s: %w: %s", f.Path, ErrDuplicateDeclaration, name)
			}
			seen[name] = true

			fn := &FuncInfo{
				Name:       name,
				File:       f.Path,
				Export:     kind,
				ID:         p.nextID,
				Attributes: attributes,
				Body:       body,
			}
			p.nextID++
			attributes = nil

			if fn.HasAttribute(p.entryAttribute) {
				if p.entry != nil {
					return fmt.Errorf("%w: %s and %s",
						ErrMultipleEntryPoints, p.entry.FullPath(), fn.FullPath())
				}
				fn.IsEntry = true
				p.entry = fn
			}
			info.Funcs = append(info.Funcs, fn)
			p.funcs = append(p.funcs, fn)

		default:
			panic(fmt.Sprintf("semantic: unexpected %s in translation unit", n.Kind))
		}
	}

	p.files = append(p.files, info)
	p.byPath[f.Path] = info
	return nil
}

func importOf(n *ast.Node) Import {
	last := len(n.Children) - 1
	imp := Import{Path: n.Child(last).Token.Value}
	switch n.Kind {
	case ast.NamedImportDeclaration:
		for _, c := range n.Children[:last] {
			imp.Names = append(imp.Names, c.Token.Value)
		}
	case ast.DefaultImportDeclaration:
		imp.Default = n.Child(0).Token.Value
	default:
		panic(fmt.Sprintf("semantic: unexpected %s in import", n.Kind))
	}
	return imp
}

// Files returns the analyzed files in input order.
func (p *Project) Files() []*FileInfo { return p.files }

// File returns the analyzed file at path.
func (p *Project) File(path string) (*FileInfo, bool) {
	f, ok := p.byPath[path]
	return f, ok
}

// Funcs returns every declaration in ID order.
func (p *Project) Funcs() []*FuncInfo { return p.funcs }

// Func returns the declaration name in the file at path.
func (p *Project) Func(path, name string) (*FuncInfo, bool) {
	f, ok := p.byPath[path]
	if !ok {
		return nil, false
	}
	for _, fn := range f.Funcs {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// Lookup returns every declaration called name, across files, in ID order.
func (p *Project) Lookup(name string) []*FuncInfo {
	var out []*FuncInfo
	for _, fn := range p.funcs {
		if fn.Name == name {
			out = append(out, fn)
		}
	}
	return out
}

// EntryPoint returns the declaration marked with the entry attribute.
func (p *Project) EntryPoint() (*FuncInfo, bool) {
	return p.entry, p.entry != nil
}

// String summarises the project: the entry point, then one line per
// declaration.
func (p *Project) String() string {
	var sb strings.Builder
	sb.WriteString("entry point: ")
	if p.entry != nil {
		sb.WriteString(p.entry.FullPath())
	} else {
		sb.WriteString("[none]")
	}
	sb.WriteByte('\n')
	for _, fn := range p.funcs {
		sb.WriteString("  ")
		sb.WriteString(fn.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
