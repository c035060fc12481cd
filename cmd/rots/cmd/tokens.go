package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/rots-lang/internal/loader"
	"github.com/metaphox/rots-lang/lexer"
	"github.com/metaphox/rots-lang/transpile"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	sources, err := loader.Files(cmd.Context(), args, "")
	if err != nil {
		return err
	}
	if len(sources) != 1 {
		return fmt.Errorf("%s: expected a single file", args[0])
	}
	src := sources[0]
	tokens, invalid := lexer.Tokenize(src.Content, src.Path)
	fmt.Fprint(cmd.OutOrStdout(), transpile.Dump(tokens))
	if n := printFileErrors(cmd.ErrOrStderr(), &transpile.FileResult{Path: src.Path, Invalid: invalid}); n > 0 {
		return fmt.Errorf("%d invalid tokens", n)
	}
	return nil
}
