package errors

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"pilasm/internal/ast"
	"pilasm/internal/parser"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a new error builder
func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion and the text that would replace the span
func (b *DiagnosticBuilder) WithSuggestion(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

var (
	foundLexeme     = regexp.MustCompile(`found '(.*)'$`)
	unknownProperty = regexp.MustCompile("^unknown machine property `(.*)`$")
)

var machineProperties = []string{
	ast.PropertyDegree,
	ast.PropertyMinDegree,
	ast.PropertyMaxDegree,
	ast.PropertyLatch,
	ast.PropertyOperationID,
	ast.PropertyCallSelectors,
}

// CodeForKind maps a parser error kind to its diagnostic code.
func CodeForKind(kind parser.ErrorKind) string {
	switch kind {
	case parser.LexicalError:
		return ErrorLexical
	case parser.ValidationError:
		return ErrorValidation
	default:
		return ErrorSyntax
	}
}

// FromParseError converts an error returned by the parser entry points into
// a diagnostic. The second result is false for errors of any other origin.
func FromParseError(err error) (CompilerError, bool) {
	var perr *parser.Error
	if !stderrors.As(err, &perr) {
		return CompilerError{}, false
	}

	pos := ast.Position{
		Filename: perr.Pos.Filename,
		Offset:   perr.Pos.Offset,
		Line:     perr.Pos.Line,
		Column:   perr.Pos.Column,
	}
	builder := NewDiagnostic(CodeForKind(perr.Kind), perr.Msg, pos)

	if m := foundLexeme.FindStringSubmatch(perr.Msg); m != nil {
		builder = builder.WithLength(len(m[1]))
	}

	switch perr.Kind {
	case parser.LexicalError:
		builder = builder.WithNote("comments start with '//' or '/*'; strings use double quotes")
		if perr.Msg == "unterminated block comment" {
			builder = builder.WithHelp("close the comment with '*/'")
		}
	case parser.SyntaxError:
		if strings.HasSuffix(perr.Msg, "found end of input") {
			builder = builder.WithHelp("the input ends early; look for a missing ';' or closing bracket")
		}
	case parser.ValidationError:
		if m := unknownProperty.FindStringSubmatch(perr.Msg); m != nil {
			if similar := findSimilarNames(m[1], machineProperties); len(similar) > 0 {
				builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0])
			}
			builder = builder.WithNote("known properties: " + strings.Join(machineProperties, ", "))
		}
	}

	return builder.Build(), true
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
