package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ridulfo/nino-lang/internal/parser"
)

var astFormat string

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the parsed program",
	Long: `Parses the file and prints its syntax tree.

Examples:
  nino ast program.nino
  nino ast --format yaml program.nino`,
	Args: cobra.ExactArgs(1),
	RunE: printAST,
}

func init() {
	astCmd.Flags().StringVarP(&astFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(astCmd)
}

func printAST(cmd *cobra.Command, args []string) error {
	if astFormat != "json" && astFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want json or yaml)", astFormat)
	}
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	items, err := parseSource(cmd, src)
	if err != nil {
		return err
	}
	tree := parser.Dump(items)

	if astFormat == "yaml" {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}
