package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pilasm/internal/errors"
)

const diagnosticSource = "pilasm"

// ConvertParseError transforms an error returned by the parser into LSP
// diagnostics. Errors of other origin become a single diagnostic at the
// start of the document.
func ConvertParseError(err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	compilerErr, ok := errors.FromParseError(err)
	if !ok {
		return []protocol.Diagnostic{{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(diagnosticSource),
			Message:  err.Error(),
		}}
	}

	line := uint32(max(compilerErr.Position.Line-1, 0))
	start := uint32(max(compilerErr.Position.Column-1, 0))
	length := uint32(max(compilerErr.Length, 1))

	message := compilerErr.Message
	for _, s := range compilerErr.Suggestions {
		message += "\nhelp: " + s.Message
	}
	for _, note := range compilerErr.Notes {
		message += "\nnote: " + note
	}
	if compilerErr.HelpText != "" {
		message += "\nhelp: " + compilerErr.HelpText
	}

	code := protocol.IntegerOrString{Value: compilerErr.Code}
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &code,
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
