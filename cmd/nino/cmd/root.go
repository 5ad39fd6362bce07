package cmd

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/ridulfo/nino-lang/internal/config"
	"github.com/ridulfo/nino-lang/internal/diag"
	"github.com/ridulfo/nino-lang/internal/lexer"
	"github.com/ridulfo/nino-lang/internal/parser"
)

var (
	cfgFile string
	verbose bool

	cfg = config.Default()
)

// errReported marks failures whose diagnostic was already written.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "nino [file]",
	Short: "nino - a small functional language",
	Long: `nino is a tiny expression language with typed declarations,
pattern matching and tail-call eliminated recursion.

Running nino with a single file argument is the same as "nino run <file>".`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runProgram(cmd, args)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace evaluation")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	lvl, err := c.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		lvl = log.Verbose
	}
	log.SetLogLevel(lvl)
	log.LogVf("config loaded from %q", cfgFile)
	cfg = c
	return nil
}

func renderer() diag.Renderer {
	return diag.Renderer{Color: cfg.Diagnostics.Color}
}

// parseSource parses src, writing a caret diagnostic on failure.
func parseSource(cmd *cobra.Command, src string) ([]parser.Item, error) {
	items, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), renderer().Render(src, err))
		return nil, errReported
	}
	return items, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(data), nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "nino: %v\n", err)
}
