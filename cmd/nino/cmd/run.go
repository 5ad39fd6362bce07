package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridulfo/nino-lang/internal/evaluator"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a nino program",
	Long: `Runs the program top to bottom. Parse errors are shown with a caret
under the offending token; a runtime error stops the program at the
failing statement.

Examples:
  nino run program.nino
  nino --verbose run factorial.nino`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runProgram(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	items, err := parseSource(cmd, src)
	if err != nil {
		return err
	}
	ev := evaluator.New(cmd.OutOrStdout(), evaluator.WithMaxDepth(cfg.Interpreter.MaxDepth))
	if err := ev.Run(items); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), renderer().Runtime(err))
		return errReported
	}
	return nil
}
