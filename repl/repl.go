// Package repl reads PIL statements line by line and echoes their canonical form.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"pilasm/internal/errors"
	"pilasm/internal/parser"
)

const PROMPT = ">> "

// Start runs the loop until in is exhausted. Each line is parsed as a
// constraint file, so several statements may share a line.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		file, err := parser.ParsePILFile("<repl>", line)
		if err != nil {
			if compilerErr, ok := errors.FromParseError(err); ok {
				fmt.Fprint(out, errors.NewErrorReporter("<repl>", line).FormatError(compilerErr))
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		for _, stmt := range file.Statements {
			fmt.Fprintf(out, "%T\n%s\n", stmt, stmt)
		}
	}
}
