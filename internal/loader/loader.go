// Package loader collects source files for a transpile run.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/metaphox/rots-lang/transpile"
)

// Load walks root and returns every regular file whose name ends in ext, in
// lexical path order.
func Load(ctx context.Context, root, ext string) ([]transpile.Source, error) {
	return LoadFS(ctx, os.DirFS(root), root, ext)
}

// LoadFS is Load over fsys. Paths in the result are joined onto prefix.
func LoadFS(ctx context.Context, fsys fs.FS, prefix, ext string) ([]transpile.Source, error) {
	var sources []transpile.Source
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		sources = append(sources, transpile.Source{
			Path:    filepath.Join(prefix, filepath.FromSlash(path)),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", prefix, err)
	}
	return sources, nil
}

// Files reads the given paths. Directories are walked with Load.
func Files(ctx context.Context, paths []string, ext string) ([]transpile.Source, error) {
	var sources []transpile.Source
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if info.IsDir() {
			more, err := Load(ctx, path, ext)
			if err != nil {
				return nil, err
			}
			sources = append(sources, more...)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		sources = append(sources, transpile.Source{Path: path, Content: string(content)})
	}
	return sources, nil
}
