package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"pilasm/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

// Error is the only level the parser produces: parsing stops at the first problem.
const Error ErrorLevel = "error"

// CompilerError is a diagnostic with its source location and hints
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0101
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion is a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err with a source excerpt and a caret marker under
// the offending span
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0101]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(err.Level)), err.Message))
	}

	width := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	gutter := dim("│")

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, gutter))

	line := err.Position.Line
	if line > 1 && line-1 <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n", dim(fmt.Sprintf("%*d", width, line-1)), gutter, er.lines[line-2]))
	}
	if line > 0 && line <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, line)), gutter, er.lines[line-1]))
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, gutter, er.createMarker(err.Position.Column, err.Length, err.Level)))
	}
	if line > 0 && line < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n", dim(fmt.Sprintf("%*d", width, line+1)), gutter, er.lines[line]))
	}

	if len(err.Suggestions) > 0 {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", indent, gutter))
		for i, suggestion := range err.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s: %s\n", indent, suggestionColor("help"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s       %s\n", indent, suggestion.Message))
			}
			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s %s\n", indent, suggestionColor("│"), suggestionColor(suggestion.Replacement)))
			}
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, gutter, noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, gutter, helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatErrors renders every diagnostic followed by a summary line
func (er *ErrorReporter) FormatErrors(errs []CompilerError) string {
	var result strings.Builder
	for _, err := range errs {
		result.WriteString(er.FormatError(err))
	}
	if n := len(errs); n > 0 {
		noun := "error"
		if n > 1 {
			noun = "errors"
		}
		result.WriteString(fmt.Sprintf("%s: could not parse `%s` due to %d previous %s\n",
			er.getLevelColor(Error)("error"), er.filename, n, noun))
	}
	return result.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

// createMarker creates the caret underline for a span
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
