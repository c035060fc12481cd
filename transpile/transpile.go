// Package transpile runs the whole pipeline over a batch of source files:
// lexing and parsing in parallel, then one sequential semantic pass over the
// files that parsed cleanly, then unparsing.
package transpile

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/metaphox/rots-lang/ast"
	"github.com/metaphox/rots-lang/builder"
	"github.com/metaphox/rots-lang/internal/logs"
	"github.com/metaphox/rots-lang/lexer"
	"github.com/metaphox/rots-lang/parser"
	"github.com/metaphox/rots-lang/semantic"
)

// Source is one input file.
type Source struct {
	Path    string
	Content string
}

// FileResult is the outcome of lexing and parsing one file.
type FileResult struct {
	Path    string
	Tokens  []ast.Token
	Invalid []ast.Token // invalid lexemes; the file is not parsed when set
	Tree    *ast.Node
	Errors  parser.Diagnostics
}

// OK reports whether the file lexed and parsed without errors.
func (f *FileResult) OK() bool {
	return len(f.Invalid) == 0 && len(f.Errors) == 0 && f.Tree != nil
}

// Err returns the lex or syntax errors of the file, or nil.
func (f *FileResult) Err() error {
	if len(f.Invalid) != 0 {
		return &lexer.Error{Tokens: f.Invalid}
	}
	return f.Errors.Err()
}

// Result is the outcome of a batch.
type Result struct {
	RunID   string
	Files   []*FileResult // in input order
	Project *semantic.Project
	// Output maps path to regenerated text, for clean files only.
	Output map[string]string
}

// Failed returns the files that did not lex or parse cleanly.
func (r *Result) Failed() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if !f.OK() {
			out = append(out, f)
		}
	}
	return out
}

// Err joins the errors of every failed file.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Failed() {
		errs = append(errs, f.Err())
	}
	return errors.Join(errs...)
}

type options struct {
	logger         logs.Logger
	workers        int
	entryAttribute string
	runID          string
	analyze        bool
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger logs.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers bounds the number of files lexed and parsed at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithEntryAttribute changes the attribute marking the entry point.
func WithEntryAttribute(name string) Option {
	return func(o *options) {
		o.entryAttribute = name
	}
}

// WithRunID sets the id attached to every log record of the run.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// ParseOnly stops after parsing: no symbol table and no output.
func ParseOnly() Option {
	return func(o *options) {
		o.analyze = false
	}
}

// Run transpiles sources. Files that fail to lex or parse are reported in the
// result and left out of the output; the others still succeed. The returned
// error is reserved for conditions that abort the whole batch: cancellation
// and semantic errors such as multiple entry points.
func Run(ctx context.Context, sources []Source, opts ...Option) (*Result, error) {
	o := &options{
		logger:         logs.Discard(),
		workers:        runtime.NumCPU(),
		entryAttribute: semantic.DefaultEntryAttribute,
		analyze:        true,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.runID == "" {
		o.runID = uuid.New().String()
	}
	logger := o.logger.With("run", o.runID)

	res := &Result{
		RunID: o.runID,
		Files: make([]*FileResult, len(sources)),
	}

	if err := parseAll(ctx, sources, res.Files, o.workers, logger); err != nil {
		return nil, err
	}

	var clean []semantic.File
	for _, f := range res.Files {
		if !f.OK() {
			logger.Warn("file has errors",
				"path", f.Path,
				"invalid", len(f.Invalid),
				"diagnostics", len(f.Errors.Compact()),
			)
			continue
		}
		clean = append(clean, semantic.File{Path: f.Path, Tree: f.Tree})
	}
	if !o.analyze {
		return res, nil
	}

	project, err := semantic.Analyze(clean, semantic.WithEntryAttribute(o.entryAttribute))
	if err != nil {
		logger.Error("semantic analysis failed", "error", err)
		return res, fmt.Errorf("analyze: %w", err)
	}
	res.Project = project
	if entry, ok := project.EntryPoint(); ok {
		logger.Debug("entry point", "func", entry.FullPath())
	}

	res.Output = builder.Build(project)
	logger.Info("transpiled",
		"files", len(sources),
		"clean", len(clean),
		"funcs", len(project.Funcs()),
	)
	return res, nil
}

// parseAll lexes and parses every source into out, at most workers at a time,
// and returns once all of them are done.
func parseAll(ctx context.Context, sources []Source, out []*FileResult, workers int, logger logs.Logger) error {
	sem := newSemaphore(workers)
	var wg sync.WaitGroup
	var err error
	for i, src := range sources {
		if err = ctx.Err(); err != nil {
			break
		}
		sem.acquire()
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			defer sem.release()
			out[i] = parseFile(src)
			logger.Debug("parsed",
				"path", src.Path,
				"tokens", len(out[i].Tokens),
				"ok", out[i].OK(),
			)
		}(i, src)
	}
	wg.Wait()
	return err
}

// parseFile lexes src and, when every lexeme is valid, parses it.
func parseFile(src Source) *FileResult {
	f := &FileResult{Path: src.Path}
	f.Tokens, f.Invalid = lexer.Tokenize(src.Content, src.Path)
	if len(f.Invalid) != 0 {
		return f
	}
	f.Tree, f.Errors = parser.Parse(f.Tokens, parser.WithPath(src.Path))
	return f
}

// Dump renders the tokens of a file one per line as "line:col kind text",
// for debugging.
func Dump(tokens []ast.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", tok.Line, tok.Col, tok.Kind, tok.Text)
	}
	return sb.String()
}
