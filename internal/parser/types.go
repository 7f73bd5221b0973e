package parser

import "github.com/alecthomas/participle/v2/lexer"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	UPPER_IDENTIFIER
	CONSTANT_IDENTIFIER
	PUBLIC_IDENTIFIER
	NUMBER
	HEX_NUMBER
	STRING
	UNDERSCORE

	// Keywords
	INCLUDE
	NAMESPACE
	LET
	CONSTANT
	POL
	COL
	COMMIT
	WITNESS
	FIXED
	PUBLIC
	ENUM
	IN
	IS
	CONNECT
	MATCH
	IF
	ELSE
	QUERY
	CONSTR
	MACHINE
	WITH
	REG
	INSTR
	LINK
	FUNCTION
	OPERATION
	RETURN
	USE
	AS
	MOD
	SUPER
	STRING_TYPE

	// Keywords that are also accepted as identifiers
	FILE
	LOC
	INSN
	INT
	FE
	EXPR
	BOOL

	// Operators
	PLUS
	MINUS
	STAR
	STAR_STAR
	SLASH
	PERCENT
	CARET
	AMPERSAND
	AND
	PIPE
	OR
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	LESS_EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	SHIFT_LEFT
	SHIFT_RIGHT
	APOSTROPHE
	TILDE
	ARROW
	FAT_ARROW
	TILDE_ARROW
	AT
	DOLLAR_BRACE

	// Separators
	COMMA
	DOT
	DOT_DOT
	SEMICOLON
	COLON
	DOUBLE_COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenNames = map[TokenType]string{
	ILLEGAL:             "illegal token",
	EOF:                 "end of input",
	IDENTIFIER:          "identifier",
	UPPER_IDENTIFIER:    "uppercase identifier",
	CONSTANT_IDENTIFIER: "constant identifier",
	PUBLIC_IDENTIFIER:   "public identifier",
	NUMBER:              "number",
	HEX_NUMBER:          "number",
	STRING:              "string",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for text, tt := range KEYWORDS {
		if tt == t {
			return "'" + text + "'"
		}
	}
	for text, tt := range operatorTokens {
		if tt == t {
			return "'" + text + "'"
		}
	}
	return "unknown token"
}

// Token is a significant lexeme. Whitespace and comments never become tokens.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position lexer.Position
}

// describe renders a token for error messages.
func (t Token) describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return "'" + t.Lexeme + "'"
}
