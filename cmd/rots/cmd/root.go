package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/metaphox/rots-lang/internal/config"
	"github.com/metaphox/rots-lang/internal/logs"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rots",
	Short: "RottenScript transpiler",
	Long: `rots transpiles RottenScript sources to JavaScript.

Commands:
  build   - transpile a project into the output directory
  check   - report lex, syntax and semantic errors without writing
  tokens  - print the token stream of a file
  ast     - print the syntax tree of a file`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and builds the logger for a command.
func setup() (*config.Config, logs.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	level, err := logs.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logs.New(logs.Options{Level: level, Format: cfg.Log.Format})
	return cfg, logger, nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", errorStyle.Render("error"), err)
}
