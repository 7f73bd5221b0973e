package errors

// Error codes for the pilasm front end. They appear in diagnostics printed
// by the CLI and in the code field of language server diagnostics.
//
// Error code ranges:
// E0100-E0199: Parser errors
// E0900-E0999: Tooling errors

const (
	// E0100: Input that does not form a token
	ErrorLexical = "E0100"

	// E0101: Token stream that does not match the grammar
	ErrorSyntax = "E0101"

	// E0102: Well-formed syntax with invalid content, such as unknown
	// machine properties or numbers that overflow their field
	ErrorValidation = "E0102"

	// E0900: Input file could not be read
	ErrorReadInput = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorLexical:
		return "Source text contains characters that do not form a token"
	case ErrorSyntax:
		return "Tokens do not match the expected grammar"
	case ErrorValidation:
		return "Construct is syntactically valid but its content is rejected"
	case ErrorReadInput:
		return "Input file could not be read"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
