package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pilasm/internal/parser"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a file",
		Long: `Scans a file and prints one token per line with its position,
kind and text. Whitespace and comments are skipped.

Example:
  pilasm tokens main.pil`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd, opts, args[0])
			if err != nil {
				return err
			}

			tokens, err := parser.NewScanner(src.name, src.text).ScanTokens()
			if err != nil {
				src.report(cmd, err)
				return errReported
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Position.Line, tok.Position.Column, tok.Type, tok.Lexeme)
			}
			return w.Flush()
		},
	}
}
