package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pilasm/internal/ast"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func newParseCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a file and list its top-level statements",
		Long: `Parses a PIL or ASM file and prints one line per top-level statement,
or the whole syntax tree as YAML.

Examples:
  pilasm parse main.pil
  pilasm parse --format yaml vm.asm
  cat main.pil | pilasm parse -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", opts.format)
			}

			src, err := loadSource(cmd, opts, args[0])
			if err != nil {
				return err
			}
			tree, err := src.parse(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.format == formatYAML {
				data, err := ast.DumpYAML(tree)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			for _, line := range statementSummary(tree) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or yaml")
	return cmd
}
