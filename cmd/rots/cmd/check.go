package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/rots-lang/transpile"
)

var checkParseOnly bool

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report errors without writing output",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkParseOnly, "parse-only", false, "stop after parsing")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	opts := []transpile.Option{transpile.WithLogger(logger)}
	if checkParseOnly {
		opts = append(opts, transpile.ParseOnly())
	}
	res, err := transpileArgs(cmd, cfg, args, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose && res.Project != nil {
		fmt.Fprint(out, res.Project)
	}
	if failed := len(res.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	fmt.Fprintf(out, "%s %d files\n", successStyle.Render("ok"), len(res.Files))
	return nil
}
