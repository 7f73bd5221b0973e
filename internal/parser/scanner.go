package parser

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order and the first match wins, so longer operators
// come before their prefixes.
var scannerDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`},
	{Name: "UnterminatedComment", Pattern: `/\*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "HexNumber", Pattern: `0x[0-9a-fA-F]+(?:_[0-9a-fA-F]+)*`},
	{Name: "Number", Pattern: `[0-9]+(?:_[0-9]+)*`},
	{Name: "ConstantIdent", Pattern: `%[a-zA-Z_][a-zA-Z$_0-9@]*`},
	{Name: "PublicIdent", Pattern: `:[a-zA-Z_][a-zA-Z$_0-9@]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z$_0-9@]*`},
	{Name: "Operator", Pattern: `<==|<=|>=|==|!=|<<|>>|\*\*|::|=>|~>|->|&&|\|\||\.\.|\$\{|[-+*/%^&|!<>=~'.,;:(){}\[\]@]`},
})

var scannerSymbols = scannerDef.Symbols()

var operatorTokens = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   STAR,
	"**":  STAR_STAR,
	"/":   SLASH,
	"%":   PERCENT,
	"^":   CARET,
	"&":   AMPERSAND,
	"&&":  AND,
	"|":   PIPE,
	"||":  OR,
	"!":   BANG,
	"!=":  BANG_EQUAL,
	"=":   EQUAL,
	"==":  EQUAL_EQUAL,
	"<":   LESS,
	"<=":  LESS_EQUAL,
	"<==": LESS_EQUAL_EQUAL,
	">":   GREATER,
	">=":  GREATER_EQUAL,
	"<<":  SHIFT_LEFT,
	">>":  SHIFT_RIGHT,
	"'":   APOSTROPHE,
	"~":   TILDE,
	"->":  ARROW,
	"=>":  FAT_ARROW,
	"~>":  TILDE_ARROW,
	"@":   AT,
	"${":  DOLLAR_BRACE,
	",":   COMMA,
	".":   DOT,
	"..":  DOT_DOT,
	";":   SEMICOLON,
	":":   COLON,
	"::":  DOUBLE_COLON,
	"(":   LEFT_PAREN,
	")":   RIGHT_PAREN,
	"{":   LEFT_BRACE,
	"}":   RIGHT_BRACE,
	"[":   LEFT_BRACKET,
	"]":   RIGHT_BRACKET,
}

// Scanner turns source text into the token stream consumed by the Parser.
type Scanner struct {
	filename string
	source   string
}

func NewScanner(filename, source string) *Scanner {
	return &Scanner{filename: filename, source: source}
}

// ScanTokens returns all significant tokens followed by a single EOF token,
// or the first lexical error.
func (s *Scanner) ScanTokens() ([]Token, error) {
	lex, err := scannerDef.LexString(s.filename, s.source)
	if err != nil {
		return nil, lexError(err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, lexError(err)
	}

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			tokens = append(tokens, Token{Type: EOF, Position: t.Pos})
			break
		}
		if t.Type == scannerSymbols["UnterminatedComment"] {
			return nil, &Error{Pos: t.Pos, Msg: "unterminated block comment", Kind: LexicalError}
		}
		tt, keep := s.classify(t)
		if !keep {
			continue
		}
		tokens = append(tokens, Token{Type: tt, Lexeme: t.Value, Position: t.Pos})
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF, Position: s.endPosition()})
	}
	return tokens, nil
}

func (s *Scanner) classify(t lexer.Token) (TokenType, bool) {
	switch t.Type {
	case scannerSymbols["Whitespace"], scannerSymbols["Comment"], scannerSymbols["BlockComment"]:
		return ILLEGAL, false
	case scannerSymbols["String"]:
		return STRING, true
	case scannerSymbols["HexNumber"]:
		return HEX_NUMBER, true
	case scannerSymbols["Number"]:
		return NUMBER, true
	case scannerSymbols["ConstantIdent"]:
		return CONSTANT_IDENTIFIER, true
	case scannerSymbols["PublicIdent"]:
		return PUBLIC_IDENTIFIER, true
	case scannerSymbols["Ident"]:
		return classifyIdentifier(t.Value), true
	}
	if tt, ok := operatorTokens[t.Value]; ok {
		return tt, true
	}
	return ILLEGAL, true
}

func (s *Scanner) endPosition() lexer.Position {
	pos := lexer.Position{Filename: s.filename, Offset: len(s.source), Line: 1, Column: 1}
	for _, r := range s.source {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

func lexError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pos: perr.Position(), Msg: perr.Message(), Kind: LexicalError}
	}
	return &Error{Msg: err.Error(), Kind: LexicalError}
}
