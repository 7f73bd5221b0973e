package parser

import (
	"pilasm/internal/ast"
)

func (p *Parser) parsePILFile() *ast.PILFile {
	file := &ast.PILFile{}
	for !p.isAtEnd() {
		file.Statements = append(file.Statements, p.parsePilStatement())
	}
	return file
}

func (p *Parser) parsePilStatement() ast.PilStatement {
	switch p.peek().Type {
	case INCLUDE:
		return p.parseInclude()
	case NAMESPACE:
		return p.parseNamespace()
	case LET:
		return p.parseLetStatement()
	case CONSTANT:
		return p.parseConstantDefinition()
	case POL, COL:
		return p.parsePolynomialStatement()
	case PUBLIC:
		return p.parsePublicDeclaration()
	case ENUM:
		return p.parseEnumDeclaration()
	}

	stmt := p.parseIdentityOrExpression()
	p.consume(SEMICOLON, "expected ';' after statement")
	return stmt
}

func (p *Parser) parseInclude() *ast.Include {
	start := p.consume(INCLUDE, "expected 'include'")
	path := p.consumeString("expected file name after 'include'")
	p.consume(SEMICOLON, "expected ';' after include")
	return &ast.Include{Pos: p.makePos(start), Path: path}
}

func (p *Parser) parseNamespace() *ast.Namespace {
	start := p.consume(NAMESPACE, "expected 'namespace'")
	ns := &ast.Namespace{Pos: p.makePos(start), Name: p.parseSymbolPath(isIdentifier)}
	if p.match(LEFT_PAREN) {
		ns.Degree = p.parseExpr()
		p.consume(RIGHT_PAREN, "expected ')' after namespace degree")
	}
	p.consume(SEMICOLON, "expected ';' after namespace")
	return ns
}

// parseLetHead parses "let <T: B> name: type" and the optional "= value".
// Type variables without a type annotation are rejected.
func (p *Parser) parseLetHead() (Token, string, *ast.TypeScheme, ast.Expr) {
	start := p.consume(LET, "expected 'let'")
	vars := p.parseGenericParams()
	name := p.consumeIdent("expected name after 'let'")

	var scheme *ast.TypeScheme
	if p.matchColon() {
		scheme = &ast.TypeScheme{Vars: vars, Type: p.parseType()}
	} else if len(vars) > 0 {
		p.errorAtCurrent("expected ':' and a type after generic let")
	}

	var value ast.Expr
	if p.match(EQUAL) {
		value = p.parseExpr()
	}
	p.consume(SEMICOLON, "expected ';' after let statement")
	return start, name, scheme, value
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	start, name, scheme, value := p.parseLetHead()
	return &ast.LetStatement{Pos: p.makePos(start), Name: name, TypeScheme: scheme, Value: value}
}

func (p *Parser) parseConstantDefinition() *ast.ConstantDefinition {
	start := p.consume(CONSTANT, "expected 'constant'")
	name := p.consume(CONSTANT_IDENTIFIER, "expected %-prefixed constant name").Lexeme
	p.consume(EQUAL, "expected '=' after constant name")
	value := p.parseExpr()
	p.consume(SEMICOLON, "expected ';' after constant definition")
	return &ast.ConstantDefinition{Pos: p.makePos(start), Name: name, Value: value}
}

func (p *Parser) parsePublicDeclaration() *ast.PublicDeclaration {
	start := p.consume(PUBLIC, "expected 'public'")
	decl := &ast.PublicDeclaration{Pos: p.makePos(start)}
	decl.Name = p.consumeIdent("expected name after 'public'")
	p.consume(EQUAL, "expected '=' after public name")

	if isIdentifier(p.peek()) && p.checkAt(1, DOT) {
		namespace := p.advance().Lexeme
		p.advance()
		decl.Polynomial.Path = ast.PathFromNames(namespace, p.consumeIdent("expected column name after '.'"))
	} else {
		decl.Polynomial.Path = p.parseSymbolPath(isIdentifier)
	}

	if p.match(LEFT_BRACKET) {
		decl.Index = p.parseExpr()
		p.consume(RIGHT_BRACKET, "expected ']' after column index")
	}
	p.consume(LEFT_PAREN, "expected '(' before row")
	decl.Row = p.parseExpr()
	p.consume(RIGHT_PAREN, "expected ')' after row")
	p.consume(SEMICOLON, "expected ';' after public declaration")
	return decl
}

// parsePolynomialStatement handles every statement starting with "pol" or
// "col".
func (p *Parser) parsePolynomialStatement() ast.PilStatement {
	start := p.advance()
	pos := p.makePos(start)

	switch {
	case p.match(CONSTANT, FIXED):
		return p.parseFixedColumn(pos)
	case p.match(COMMIT, WITNESS):
		return p.parseWitnessColumn(pos)
	}

	name := p.consumeIdent("expected column name")
	p.consume(EQUAL, "expected '=' after column name")
	value := p.parseExpr()
	p.consume(SEMICOLON, "expected ';' after column definition")
	return &ast.PolynomialDefinition{Pos: pos, Name: name, Value: value}
}

func (p *Parser) parseFixedColumn(pos ast.Position) ast.PilStatement {
	name := p.consumeIdent("expected column name")

	var def ast.FunctionDefinition
	switch {
	case p.check(LEFT_PAREN):
		params := p.parseParenPatterns()
		body := p.parseBlockExpr()
		def = &ast.ExpressionDefinition{Expr: &ast.LambdaExpr{Kind: ast.Pure, Params: params, Body: body}}
	case p.match(EQUAL):
		if p.check(LEFT_BRACKET) {
			def = &ast.ArrayDefinition{Value: p.parseArrayExpression()}
		} else {
			def = &ast.ExpressionDefinition{Expr: p.parseExpr()}
		}
	default:
		names := p.parsePolynomialNames(name)
		p.consume(SEMICOLON, "expected ';' after column declaration")
		return &ast.PolynomialConstantDeclaration{Pos: pos, Names: names}
	}

	p.consume(SEMICOLON, "expected ';' after column definition")
	return &ast.PolynomialConstantDefinition{Pos: pos, Name: name, Definition: def}
}

func (p *Parser) parseWitnessColumn(pos ast.Position) ast.PilStatement {
	decl := &ast.PolynomialCommitDeclaration{Pos: pos}
	if p.peek().Lexeme == "stage" && p.checkAt(1, LEFT_PAREN) {
		p.advance()
		p.advance()
		stage := uint32(p.consumeUint(32, "expected stage number"))
		p.consume(RIGHT_PAREN, "expected ')' after stage number")
		decl.Stage = &stage
	}

	name := p.consumeIdent("expected column name")
	if p.check(LEFT_PAREN) {
		params := p.parseParenPatterns()
		p.consume(QUERY, "expected 'query' after witness column parameters")
		body := p.parseExpr()
		decl.Names = []ast.PolynomialName{{Name: name}}
		decl.Definition = &ast.QueryDefinition{Expr: &ast.LambdaExpr{Kind: ast.Query, Params: params, Body: body}}
	} else {
		decl.Names = p.parsePolynomialNames(name)
	}
	p.consume(SEMICOLON, "expected ';' after witness column declaration")
	return decl
}

// parsePolynomialNames parses "a, b[4], c" where the first name has
// already been consumed.
func (p *Parser) parsePolynomialNames(first string) []ast.PolynomialName {
	var names []ast.PolynomialName
	name := first
	for {
		poly := ast.PolynomialName{Name: name}
		if p.match(LEFT_BRACKET) {
			poly.ArraySize = p.parseExpr()
			p.consume(RIGHT_BRACKET, "expected ']' after array size")
		}
		names = append(names, poly)
		if !p.match(COMMA) {
			return names
		}
		name = p.consumeIdent("expected column name after ','")
	}
}

// parseParenPatterns parses "(p, q)" as used by column definitions.
func (p *Parser) parseParenPatterns() []ast.Pattern {
	p.consume(LEFT_PAREN, "expected '('")
	params := []ast.Pattern{}
	p.parseCommaList(RIGHT_PAREN, true, func() {
		params = append(params, p.parsePattern())
	})
	p.consume(RIGHT_PAREN, "expected ')' after parameters")
	return params
}

// parseArrayExpression parses "[a, b]* + [c]". Concatenation is left
// associative.
func (p *Parser) parseArrayExpression() ast.ArrayExpression {
	expr := p.parseArrayTerm()
	for p.match(PLUS) {
		expr = &ast.ArrayConcat{Left: expr, Right: p.parseArrayTerm()}
	}
	return expr
}

func (p *Parser) parseArrayTerm() ast.ArrayExpression {
	p.consume(LEFT_BRACKET, "expected '[' to start array value")
	items := p.parseExprList(RIGHT_BRACKET)
	p.consume(RIGHT_BRACKET, "expected ']' after array value")
	if p.match(STAR) {
		return &ast.RepeatedValue{Items: items}
	}
	return &ast.ArrayValue{Items: items}
}

func (p *Parser) parseEnumDeclaration() *ast.EnumDeclaration {
	start := p.consume(ENUM, "expected 'enum'")
	enum := &ast.EnumDeclaration{Pos: p.makePos(start)}
	enum.Name = p.consumeIdent("expected enum name")
	enum.TypeVars = p.parseGenericParams()

	p.consume(LEFT_BRACE, "expected '{' after enum name")
	p.parseCommaList(RIGHT_BRACE, true, func() {
		variant := ast.EnumVariant{Name: p.consumeIdent("expected variant name")}
		if p.match(LEFT_PAREN) {
			variant.Fields = []ast.Type{}
			p.parseCommaList(RIGHT_PAREN, false, func() {
				variant.Fields = append(variant.Fields, p.parseTypeTerm())
			})
			p.consume(RIGHT_PAREN, "expected ')' after variant fields")
		}
		enum.Variants = append(enum.Variants, variant)
	})
	p.consume(RIGHT_BRACE, "expected '}' after enum variants")
	return enum
}

// parseIdentityOrExpression parses an identity or a bare expression
// without its terminator. A leading '{' always starts an expression list.
func (p *Parser) parseIdentityOrExpression() ast.PilStatement {
	start := p.peek()
	pos := p.makePos(start)

	if p.check(LEFT_BRACE) {
		list := p.parseBracedExprList()
		if p.match(CONNECT) {
			right := p.parseBracedExprList()
			return &ast.ConnectIdentity{Pos: pos, Left: list, Right: right}
		}
		return p.parseIdentityRest(pos, ast.SelectedExpressions{Expressions: list})
	}

	expr := p.parseExpr()
	switch {
	case p.check(LEFT_BRACE):
		list := p.parseBracedExprList()
		return p.parseIdentityRest(pos, ast.SelectedExpressions{Selector: expr, Expressions: list})
	case p.check(IN), p.check(IS):
		return p.parseIdentityRest(pos, ast.SelectedExpressions{Expressions: []ast.Expr{expr}})
	}
	return &ast.ExpressionStatement{Pos: pos, Expr: expr}
}

func (p *Parser) parseIdentityRest(pos ast.Position, left ast.SelectedExpressions) ast.PilStatement {
	switch {
	case p.match(IN):
		return &ast.PlookupIdentity{Pos: pos, Left: left, Right: p.parseSelectedExpressions()}
	case p.match(IS):
		return &ast.PermutationIdentity{Pos: pos, Left: left, Right: p.parseSelectedExpressions()}
	}
	p.errorAtCurrent("expected 'in', 'is' or 'connect' after expression list")
	return nil
}

func (p *Parser) parseSelectedExpressions() ast.SelectedExpressions {
	if p.check(LEFT_BRACE) {
		return ast.SelectedExpressions{Expressions: p.parseBracedExprList()}
	}
	expr := p.parseExpr()
	if p.check(LEFT_BRACE) {
		return ast.SelectedExpressions{Selector: expr, Expressions: p.parseBracedExprList()}
	}
	return ast.SelectedExpressions{Expressions: []ast.Expr{expr}}
}

func (p *Parser) parseBracedExprList() []ast.Expr {
	p.consume(LEFT_BRACE, "expected '{'")
	list := p.parseExprList(RIGHT_BRACE)
	p.consume(RIGHT_BRACE, "expected '}' after expression list")
	return list
}
