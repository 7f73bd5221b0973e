package parser

import (
	"pilasm/internal/ast"
)

func (p *Parser) parsePattern() ast.Pattern {
	if p.check(DOT_DOT) {
		p.errorAtCurrent("'..' is only allowed inside array patterns")
	}
	return p.parsePatternElem()
}

func (p *Parser) parsePatternElem() ast.Pattern {
	tok := p.peek()
	switch tok.Type {
	case UNDERSCORE:
		p.advance()
		return &ast.CatchAllPattern{}
	case DOT_DOT:
		p.advance()
		return &ast.EllipsisPattern{}
	case MINUS:
		p.advance()
		_, value := p.consumeNumber("expected number after '-' in pattern")
		return &ast.NumberPattern{Value: value.Neg(value)}
	case NUMBER, HEX_NUMBER:
		p.advance()
		return &ast.NumberPattern{Value: p.parseNumber(tok)}
	case STRING:
		p.advance()
		return &ast.StringPattern{Value: p.unquote(tok)}
	case LEFT_PAREN:
		return p.parseTuplePattern()
	case LEFT_BRACKET:
		return p.parseArrayPattern()
	}

	if p.startsSymbolPath() {
		enum := &ast.EnumPattern{Path: p.parseSymbolPath(isIdentifier)}
		if p.match(LEFT_PAREN) {
			enum.Fields = []ast.Pattern{}
			p.parseCommaList(RIGHT_PAREN, true, func() {
				enum.Fields = append(enum.Fields, p.parsePattern())
			})
			p.consume(RIGHT_PAREN, "expected ')' after enum pattern fields")
		}
		return enum
	}

	p.errorAtCurrent("expected pattern")
	return nil
}

// parseTuplePattern accepts "()" or at least two comma-separated patterns.
func (p *Parser) parseTuplePattern() ast.Pattern {
	p.consume(LEFT_PAREN, "expected '('")
	tuple := &ast.TuplePattern{Items: []ast.Pattern{}}
	if p.match(RIGHT_PAREN) {
		return tuple
	}
	tuple.Items = append(tuple.Items, p.parsePattern())
	for {
		p.consume(COMMA, "expected ',' in tuple pattern")
		tuple.Items = append(tuple.Items, p.parsePattern())
		if p.match(RIGHT_PAREN) {
			return tuple
		}
	}
}

// parseArrayPattern accepts at most one '..' element.
func (p *Parser) parseArrayPattern() ast.Pattern {
	p.consume(LEFT_BRACKET, "expected '['")
	array := &ast.ArrayPattern{Items: []ast.Pattern{}}
	seenEllipsis := false
	p.parseCommaList(RIGHT_BRACKET, true, func() {
		if p.check(DOT_DOT) {
			if seenEllipsis {
				p.errorAtCurrent("only one '..' is allowed in an array pattern")
			}
			seenEllipsis = true
		}
		array.Items = append(array.Items, p.parsePatternElem())
	})
	p.consume(RIGHT_BRACKET, "expected ']' after array pattern")
	return array
}
