package lsp

import (
	"strings"
	"unicode/utf8"

	"pilasm/internal/parser"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// declarationKeywords introduce a name that should be marked as a declaration,
// mapped to the token type of that name.
var declarationKeywords = map[parser.TokenType]string{
	parser.LET:       "variable",
	parser.MACHINE:   "type",
	parser.ENUM:      "type",
	parser.INSTR:     "function",
	parser.FUNCTION:  "function",
	parser.OPERATION: "function",
	parser.NAMESPACE: "namespace",
	parser.MOD:       "namespace",
	parser.REG:       "property",
}

var primitiveTypes = map[parser.TokenType]bool{
	parser.INT:         true,
	parser.FE:          true,
	parser.BOOL:        true,
	parser.EXPR:        true,
	parser.STRING_TYPE: true,
}

// collectSemanticTokens classifies the lexical tokens of source. The
// classification is lexical with one token of lookbehind and lookahead, so
// it still works on documents that do not parse.
func collectSemanticTokens(filename, source string) []SemanticToken {
	tokens, err := parser.NewScanner(filename, source).ScanTokens()
	if err != nil {
		return nil
	}

	var result []SemanticToken
	for i, tok := range tokens {
		if tok.Type == parser.EOF {
			break
		}
		var prev, next parser.Token
		if i > 0 {
			prev = tokens[i-1]
		}
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}

		tokenType, modifiers := classify(prev, tok, next)
		if tokenType == "" {
			continue
		}
		result = append(result, makeToken(tok, tokenType, modifiers)...)
	}
	return result
}

func classify(prev, tok, next parser.Token) (string, []string) {
	switch tok.Type {
	case parser.NUMBER, parser.HEX_NUMBER:
		return "number", nil
	case parser.STRING:
		return "string", nil
	case parser.CONSTANT_IDENTIFIER:
		return "variable", []string{"readonly"}
	case parser.PUBLIC_IDENTIFIER:
		return "variable", nil
	case parser.UNDERSCORE:
		return "", nil
	}

	if primitiveTypes[tok.Type] {
		return "type", nil
	}
	if _, ok := parser.KEYWORDS[tok.Lexeme]; ok && !isNameToken(tok) {
		return "keyword", nil
	}

	if isNameToken(tok) {
		if kind, ok := declarationKeywords[prev.Type]; ok {
			return kind, []string{"declaration"}
		}
		if next.Type == parser.DOUBLE_COLON {
			return "namespace", nil
		}
		if next.Type == parser.LEFT_PAREN {
			return "function", nil
		}
		return "variable", nil
	}

	if isOperator(tok.Type) {
		return "operator", nil
	}
	return "", nil
}

func isNameToken(tok parser.Token) bool {
	switch tok.Type {
	case parser.IDENTIFIER, parser.UPPER_IDENTIFIER, parser.FILE, parser.LOC, parser.INSN:
		return true
	}
	return false
}

func isOperator(tt parser.TokenType) bool {
	switch tt {
	case parser.PLUS, parser.MINUS, parser.STAR, parser.STAR_STAR, parser.SLASH,
		parser.PERCENT, parser.CARET, parser.AMPERSAND, parser.AND, parser.PIPE,
		parser.OR, parser.BANG, parser.BANG_EQUAL, parser.EQUAL, parser.EQUAL_EQUAL,
		parser.LESS, parser.LESS_EQUAL, parser.LESS_EQUAL_EQUAL, parser.GREATER,
		parser.GREATER_EQUAL, parser.SHIFT_LEFT, parser.SHIFT_RIGHT, parser.APOSTROPHE,
		parser.TILDE, parser.ARROW, parser.FAT_ARROW, parser.TILDE_ARROW:
		return true
	}
	return false
}

func makeToken(tok parser.Token, tokenType string, modifiers []string) []SemanticToken {
	// LSP tokens cannot span lines.
	if tok.Lexeme == "" || strings.Contains(tok.Lexeme, "\n") {
		return nil
	}

	mask := 0
	for _, m := range modifiers {
		mask |= 1 << indexOf(m, SemanticTokenModifiers)
	}

	return []SemanticToken{{
		Line:           uint32(tok.Position.Line - 1),
		StartChar:      uint32(tok.Position.Column - 1),
		Length:         uint32(utf8.RuneCountInString(tok.Lexeme)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: mask,
	}}
}

// encodeSemanticTokens packs tokens into the relative LSP wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
