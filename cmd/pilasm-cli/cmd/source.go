package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pilasm/internal/ast"
	"pilasm/internal/errors"
	"pilasm/internal/parser"
)

const (
	grammarAuto = "auto"
	grammarPIL  = "pil"
	grammarASM  = "asm"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// source is an input file together with the grammar it is parsed with.
type source struct {
	name    string
	text    string
	grammar string
}

func loadSource(cmd *cobra.Command, opts *options, name string) (*source, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		reportPlain(cmd, errors.ErrorReadInput, fmt.Sprintf("failed to read %s: %v", name, err))
		return nil, errReported
	}

	grammar := opts.grammar
	if grammar == grammarAuto {
		grammar = grammarPIL
		if strings.EqualFold(filepath.Ext(name), ".asm") {
			grammar = grammarASM
		}
	}
	return &source{name: name, text: string(data), grammar: grammar}, nil
}

// parse returns an *ast.PILFile or an *ast.ASMModule depending on the
// grammar. Parse errors are rendered to stderr and errReported is returned.
func (s *source) parse(cmd *cobra.Command, opts *options) (fmt.Stringer, error) {
	start := time.Now()

	var (
		tree fmt.Stringer
		err  error
	)
	if s.grammar == grammarASM {
		tree, err = parser.ParseASMModule(s.name, s.text)
	} else {
		tree, err = parser.ParsePILFile(s.name, s.text)
	}
	if err != nil {
		s.report(cmd, err)
		if opts.verbose {
			fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Parsing failed after %s", formatDuration(time.Since(start))))
		}
		return nil, errReported
	}

	if opts.verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("Parsed %s in %s", s.name, formatDuration(time.Since(start))))
	}
	return tree, nil
}

func (s *source) report(cmd *cobra.Command, err error) {
	compilerErr, ok := errors.FromParseError(err)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return
	}
	reporter := errors.NewErrorReporter(s.name, s.text)
	fmt.Fprint(cmd.ErrOrStderr(), reporter.FormatErrors([]errors.CompilerError{compilerErr}))
}

func reportPlain(cmd *cobra.Command, code, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", red(fmt.Sprintf("error[%s]", code)), message)
}

// statementSummary lists one line per top-level statement.
func statementSummary(tree fmt.Stringer) []string {
	var lines []string
	switch t := tree.(type) {
	case *ast.PILFile:
		for _, stmt := range t.Statements {
			lines = append(lines, fmt.Sprintf("%s\t%s", stmt.NodePos(), stmt))
		}
	case *ast.ASMModule:
		for _, def := range t.Statements {
			lines = append(lines, fmt.Sprintf("%s\t%s %s", def.Pos, symbolKind(def.Value), def.Name))
		}
	}
	return lines
}

func symbolKind(v ast.SymbolValue) string {
	switch v.(type) {
	case *ast.MachineDefinition:
		return "machine"
	case *ast.LocalModule, *ast.ExternalModule:
		return "mod"
	case *ast.Import:
		return "use"
	case *ast.EnumDeclaration:
		return "enum"
	case *ast.TypedExpression:
		return "let"
	default:
		return "symbol"
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
