package parser

import (
	"pilasm/internal/ast"
)

var primitiveTypes = map[TokenType]ast.Primitive{
	BANG:        ast.Bottom,
	BOOL:        ast.Bool,
	INT:         ast.Int,
	FE:          ast.Fe,
	STRING_TYPE: ast.String,
	COL:         ast.Col,
	EXPR:        ast.AlgebraicExpr,
}

// parseType parses a type, where a comma-separated list of terms followed
// by "->" is a function type. The return type is a single term, so
// "a -> b -> c" needs parentheses.
func (p *Parser) parseType() ast.Type {
	if p.match(ARROW) {
		return &ast.FunctionType{Value: p.parseTypeTerm()}
	}

	items := []ast.Type{p.parseTypeTerm()}
	for p.match(COMMA) {
		items = append(items, p.parseTypeTerm())
	}
	if p.match(ARROW) {
		return &ast.FunctionType{Params: items, Value: p.parseTypeTerm()}
	}
	if len(items) > 1 {
		p.errorAtCurrent("expected '->' after parameter types")
	}
	return items[0]
}

// parseTypeTerm parses a primary type with any number of array suffixes.
func (p *Parser) parseTypeTerm() ast.Type {
	typ := p.parsePrimaryType()
	for p.match(LEFT_BRACKET) {
		array := &ast.ArrayType{Base: typ}
		if !p.check(RIGHT_BRACKET) {
			array.Length = p.parseExpr()
		}
		p.consume(RIGHT_BRACKET, "expected ']' after array length")
		typ = array
	}
	return typ
}

func (p *Parser) parsePrimaryType() ast.Type {
	if prim, ok := primitiveTypes[p.peek().Type]; ok {
		p.advance()
		return prim
	}

	if p.check(LEFT_PAREN) {
		return p.parseParenType()
	}

	if p.check(DOUBLE_COLON) || p.check(SUPER) || isTypePathIdentifier(p.peek()) {
		named := &ast.NamedType{Path: p.parseSymbolPath(isTypePathIdentifier)}
		if p.match(LESS) {
			named.Args = p.parseTypeArgs()
		}
		return named
	}

	p.errorAtCurrent("expected type")
	return nil
}

// parseParenType parses "()" and tuples, grouping, or a parenthesized
// function type such as "(int, fe -> bool)" or "(-> int)".
func (p *Parser) parseParenType() ast.Type {
	p.consume(LEFT_PAREN, "expected '('")
	if p.match(ARROW) {
		fn := &ast.FunctionType{Value: p.parseTypeTerm()}
		p.consume(RIGHT_PAREN, "expected ')' after function type")
		return fn
	}
	if p.match(RIGHT_PAREN) {
		return &ast.TupleType{}
	}

	items := []ast.Type{p.parseTypeTerm()}
	for p.match(COMMA) {
		items = append(items, p.parseTypeTerm())
	}
	if p.match(ARROW) {
		fn := &ast.FunctionType{Params: items, Value: p.parseTypeTerm()}
		p.consume(RIGHT_PAREN, "expected ')' after function type")
		return fn
	}
	p.consume(RIGHT_PAREN, "expected ')' after types")
	if len(items) == 1 {
		return items[0]
	}
	return &ast.TupleType{Items: items}
}

// parseTypeArgs parses the arguments of a generic list whose '<' has
// already been consumed.
func (p *Parser) parseTypeArgs() []ast.Type {
	args := []ast.Type{}
	if !p.checkCloseAngle() {
		for {
			args = append(args, p.parseTypeTerm())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consumeCloseAngle("expected '>' after type arguments")
	return args
}

func (p *Parser) checkCloseAngle() bool {
	return p.check(GREATER) || p.check(SHIFT_RIGHT) || p.check(GREATER_EQUAL)
}

// parseTypeVarBounds parses "T: A + B, U" up to (not including) closing.
// Type variables are uppercase identifiers.
func (p *Parser) parseTypeVarBounds(closing func() bool) ast.TypeVarBounds {
	var vars ast.TypeVarBounds
	if closing() {
		return vars
	}
	for {
		v := ast.TypeVarBound{Name: p.consume(UPPER_IDENTIFIER, "expected type variable").Lexeme}
		if p.matchColon() {
			v.Bounds = append(v.Bounds, p.consumeIdent("expected trait name"))
			for p.match(PLUS) {
				v.Bounds = append(v.Bounds, p.consumeIdent("expected trait name after '+'"))
			}
		}
		vars = append(vars, v)
		if !p.match(COMMA) {
			return vars
		}
	}
}

// parseGenericParams parses an optional "<T: A, U>" list.
func (p *Parser) parseGenericParams() ast.TypeVarBounds {
	if !p.match(LESS) {
		return nil
	}
	vars := p.parseTypeVarBounds(p.checkCloseAngle)
	p.consumeCloseAngle("expected '>' after type variables")
	return vars
}
