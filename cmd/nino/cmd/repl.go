package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ridulfo/nino-lang/internal/evaluator"
	"github.com/ridulfo/nino-lang/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := evaluator.New(cmd.OutOrStdout(), evaluator.WithMaxDepth(cfg.Interpreter.MaxDepth))
		s := repl.NewSession(ev, cmd.OutOrStdout(), cmd.ErrOrStderr(), renderer())
		return repl.Run(s, repl.Options{
			Prompt:       cfg.REPL.Prompt,
			Continuation: cfg.REPL.Continuation,
			HistoryFile:  cfg.REPL.HistoryFile,
		})
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
