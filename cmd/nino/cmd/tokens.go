package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ridulfo/nino-lang/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE:  printTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
}

func printTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	for _, t := range lexer.Lex(src) {
		if err := enc.Encode(tokenOut{Type: string(t.Kind), Value: t.Lit, Begin: t.Begin, End: t.End}); err != nil {
			return err
		}
	}
	return nil
}
