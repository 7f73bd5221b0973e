package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newFmtCommand(opts *options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Print a file in canonical form",
		Long: `Parses a PIL or ASM file and prints it back in canonical form.
Comments are not preserved.

Examples:
  pilasm fmt main.pil
  pilasm fmt -w vm.asm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd, opts, args[0])
			if err != nil {
				return err
			}
			tree, err := src.parse(cmd, opts)
			if err != nil {
				return err
			}

			formatted := tree.String()
			if !strings.HasSuffix(formatted, "\n") {
				formatted += "\n"
			}

			if write && args[0] != stdinName {
				info, err := os.Stat(args[0])
				if err != nil {
					return fmt.Errorf("writing %s: %w", args[0], err)
				}
				if err := os.WriteFile(args[0], []byte(formatted), info.Mode().Perm()); err != nil {
					return fmt.Errorf("writing %s: %w", args[0], err)
				}
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatted)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the source file")
	return cmd
}
