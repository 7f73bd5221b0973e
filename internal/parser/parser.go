package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrorKind classifies where a parse error originated.
type ErrorKind int

const (
	// SyntaxError means the token stream matched no grammar alternative.
	SyntaxError ErrorKind = iota
	// LexicalError means no lexeme matched at the reported offset.
	LexicalError
	// ValidationError means a construct was well formed but its content was
	// rejected, such as an unknown machine property or an overflowing stage.
	ValidationError
)

// Error is the single error type returned by every entry point.
type Error struct {
	Pos  lexer.Position
	Msg  string
	Kind ErrorKind
}

var _ participle.Error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Message() string { return e.Msg }

func (e *Error) Position() lexer.Position { return e.Pos }

// bailout carries the first error out of the recursive descent.
type bailout struct {
	err *Error
}

type Parser struct {
	filename string
	tokens   []Token
	current  int
}

func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

// guard runs fn and converts a bailout into a returned error. Any other
// panic is a bug and is re-raised.
func (p *Parser) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	fn()
	return nil
}
