package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/metaphox/rots-lang/internal/config"
	"github.com/metaphox/rots-lang/internal/loader"
	"github.com/metaphox/rots-lang/transpile"
)

var (
	buildOutDir string
	buildStdout bool
)

var buildCmd = &cobra.Command{
	Use:   "build [paths...]",
	Short: "Transpile a project",
	Long: `Transpile RottenScript files to JavaScript.

Without arguments the configured src_dir is walked. Each clean file is
written under out_dir, keeping its path relative to src_dir. Files with
errors are reported and skipped.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "output directory (overrides out_dir)")
	buildCmd.Flags().BoolVar(&buildStdout, "stdout", false, "print the output instead of writing files")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if buildOutDir != "" {
		cfg.OutDir = buildOutDir
	}

	res, err := transpileArgs(cmd, cfg, args, transpile.WithLogger(logger))
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(res.Output))
	for path := range res.Output {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := cmd.OutOrStdout()
	for _, path := range paths {
		if buildStdout {
			fmt.Fprintf(out, "%s\n%s\n", mutedStyle.Render("// "+path), res.Output[path])
			continue
		}
		dst, err := cfg.OutputPath(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(dst, []byte(res.Output[path]), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		logger.Debug("wrote", "src", path, "dst", dst)
	}

	if failed := len(res.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	if !buildStdout {
		fmt.Fprintf(out, "%s %d files to %s\n", successStyle.Render("built"), len(paths), pathStyle.Render(cfg.OutDir))
	}
	return nil
}

// transpileArgs loads the files named by args, or the configured source
// directory, runs the pipeline and prints the errors of every failed file.
func transpileArgs(cmd *cobra.Command, cfg *config.Config, args []string, opts ...transpile.Option) (*transpile.Result, error) {
	if len(args) == 0 {
		args = []string{cfg.SrcDir}
	}
	sources, err := loader.Files(cmd.Context(), args, cfg.Extension)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no %s files found", cfg.Extension)
	}

	opts = append([]transpile.Option{
		transpile.WithWorkers(cfg.Workers),
		transpile.WithEntryAttribute(cfg.EntryAttribute),
	}, opts...)
	res, err := transpile.Run(cmd.Context(), sources, opts...)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Failed() {
		printFileErrors(cmd.ErrOrStderr(), f)
	}
	return res, nil
}
