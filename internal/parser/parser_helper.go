package parser

import (
	"fmt"

	"pilasm/internal/ast"

	"github.com/alecthomas/participle/v2/lexer"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

// checkAt looks offset tokens past the current one.
func (p *Parser) checkAt(offset int, tt TokenType) bool {
	return p.peekAt(offset).Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return Token{}
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) Token {
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// errorAtCurrent aborts parsing with "<message>, found <token>".
func (p *Parser) errorAtCurrent(message string) {
	tok := p.peek()
	p.fail(tok.Position, SyntaxError, fmt.Sprintf("%s, found %s", message, tok.describe()))
}

func (p *Parser) fail(pos lexer.Position, kind ErrorKind, message string) {
	panic(bailout{err: &Error{Pos: pos, Msg: message, Kind: kind}})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

// consumeIdent consumes a general identifier and returns its text.
func (p *Parser) consumeIdent(message string) string {
	if !isIdentifier(p.peek()) {
		p.errorAtCurrent(message)
	}
	return p.advance().Lexeme
}

// matchColon consumes a ':' and reports whether it was present. A public
// identifier such as ":int" is split into ':' and "int", since the scanner
// cannot tell "x:int" from a public reference.
func (p *Parser) matchColon() bool {
	if p.match(COLON) {
		return true
	}
	if !p.check(PUBLIC_IDENTIFIER) {
		return false
	}
	tok := p.peek()
	name := tok.Lexeme[1:]
	namePos := tok.Position
	namePos.Offset++
	namePos.Column++
	split := []Token{
		{Type: COLON, Lexeme: ":", Position: tok.Position},
		{Type: classifyIdentifier(name), Lexeme: name, Position: namePos},
	}
	p.replaceCurrent(split...)
	p.advance()
	return true
}

func (p *Parser) consumeColon(message string) {
	if !p.matchColon() {
		p.errorAtCurrent(message)
	}
}

// consumeCloseAngle consumes a closing '>' of a generic list, splitting
// ">>" and ">=" so that nested lists and "let x: T<U>= v" work.
func (p *Parser) consumeCloseAngle(message string) {
	tok := p.peek()
	rest := tok.Position
	rest.Offset++
	rest.Column++
	switch tok.Type {
	case GREATER:
		p.advance()
		return
	case SHIFT_RIGHT:
		p.replaceCurrent(
			Token{Type: GREATER, Lexeme: ">", Position: tok.Position},
			Token{Type: GREATER, Lexeme: ">", Position: rest},
		)
	case GREATER_EQUAL:
		p.replaceCurrent(
			Token{Type: GREATER, Lexeme: ">", Position: tok.Position},
			Token{Type: EQUAL, Lexeme: "=", Position: rest},
		)
	default:
		p.errorAtCurrent(message)
	}
	p.advance()
}

// replaceCurrent substitutes the current token with toks.
func (p *Parser) replaceCurrent(toks ...Token) {
	tail := append([]Token{}, p.tokens[p.current+1:]...)
	p.tokens = append(append(p.tokens[:p.current], toks...), tail...)
}

// parseCommaList calls item until no ',' follows. When allowTrailing is set
// a ',' directly before closing ends the list.
func (p *Parser) parseCommaList(closing TokenType, allowTrailing bool, item func()) {
	if p.check(closing) {
		return
	}
	for {
		item()
		if !p.match(COMMA) {
			return
		}
		if allowTrailing && p.check(closing) {
			return
		}
	}
}
