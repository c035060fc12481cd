package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/metaphox/rots-lang/internal/loader"
)

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"main.rots":        {Data: []byte("const a = 1;")},
		"lib/util.rots":    {Data: []byte("const b = 2;")},
		"lib/readme.md":    {Data: []byte("# notes")},
		"lib/deep/x.rots":  {Data: []byte("const c = 3;")},
		"other.rots.bak":   {Data: []byte("ignored")},
		"empty/.gitignore": {Data: nil},
	}
	sources, err := loader.LoadFS(context.Background(), fsys, "src", ".rots")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join("src", "lib", "deep", "x.rots"),
		filepath.Join("src", "lib", "util.rots"),
		filepath.Join("src", "main.rots"),
	}
	if len(sources) != len(want) {
		t.Fatalf("got %d sources, want %d: %v", len(sources), len(want), sources)
	}
	for i, w := range want {
		if sources[i].Path != w {
			t.Errorf("source %d: got %s, want %s", i, sources[i].Path, w)
		}
	}
	if sources[2].Content != "const a = 1;" {
		t.Errorf("content: %q", sources[2].Content)
	}
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{"a.rots": {Data: []byte("")}}
	if _, err := loader.LoadFS(ctx, fsys, "src", ".rots"); err == nil {
		t.Error("expected a context error")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "one.rots")
	if err := os.WriteFile(file, []byte("const x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "two.rots"), []byte("const y = 2;"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := loader.Files(context.Background(), []string{file, sub}, ".rots")
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 || sources[0].Path != file || sources[1].Path != filepath.Join(sub, "two.rots") {
		t.Errorf("got %v", sources)
	}

	if _, err := loader.Files(context.Background(), []string{filepath.Join(dir, "missing")}, ".rots"); err == nil {
		t.Error("expected an error for a missing path")
	}
}
