package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/rots-lang/internal/loader"
	"github.com/metaphox/rots-lang/transpile"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	sources, err := loader.Files(cmd.Context(), args, "")
	if err != nil {
		return err
	}
	if len(sources) != 1 {
		return fmt.Errorf("%s: expected a single file", args[0])
	}
	res, err := transpile.Run(cmd.Context(), sources, transpile.ParseOnly(), transpile.WithWorkers(1))
	if err != nil {
		return err
	}
	f := res.Files[0]
	if f.Tree != nil {
		fmt.Fprint(cmd.OutOrStdout(), f.Tree)
	}
	if n := printFileErrors(cmd.ErrOrStderr(), f); n > 0 {
		return fmt.Errorf("%s has %d errors", f.Path, n)
	}
	return nil
}
