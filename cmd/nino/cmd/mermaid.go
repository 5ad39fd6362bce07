package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridulfo/nino-lang/internal/mermaid"
)

var mermaidCmd = &cobra.Command{
	Use:   "mermaid <code>",
	Short: "Draw an expression as a Mermaid flowchart",
	Long: `Prints the code followed by a fenced mermaid block charting the
expression tree of its first statement.

Example:
  nino mermaid "1 + 2 * 3;"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := mermaid.Render(args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), renderer().Render(args[0], err))
			return errReported
		}
		fmt.Fprintln(cmd.OutOrStdout(), chart)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mermaidCmd)
}
