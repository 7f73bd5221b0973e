package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errReported marks failures whose diagnostics were already printed.
var errReported = stderrors.New("errors reported")

type options struct {
	grammar string
	format  string
	noColor bool
	verbose bool
}

// NewRootCommand builds the pilasm command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "pilasm",
		Short: "Parser and formatter for PIL constraint files and ASM machine files",
		Long: `pilasm parses PIL constraint files and ASM machine files, reports
syntax errors with source excerpts, and prints the canonical form of
the parsed tree.

Grammars:
  pil  - constraint files (namespaces, columns, identities)
  asm  - module files (machines, imports, submodules)
  auto - pick by file extension (.asm is asm, anything else is pil)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			switch opts.grammar {
			case grammarAuto, grammarPIL, grammarASM:
				return nil
			}
			return fmt.Errorf("unknown grammar %q (want pil, asm or auto)", opts.grammar)
		},
	}

	root.PersistentFlags().StringVarP(&opts.grammar, "grammar", "g", grammarAuto, "grammar to parse with: pil, asm or auto")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "report timing information")

	root.AddCommand(newParseCommand(opts))
	root.AddCommand(newFmtCommand(opts))
	root.AddCommand(newTokensCommand(opts))
	return root
}

func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil && !stderrors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}
