package parser

import (
	"pilasm/internal/ast"
)

type binaryOperator struct {
	prec int
	op   ast.BinaryOperator
}

const comparisonPrecedence = 3

// Power is handled outside this table: its left operand must be a term.
var binaryOperators = map[TokenType]binaryOperator{
	OR:            {1, ast.LogicalOr},
	AND:           {2, ast.LogicalAnd},
	LESS:          {comparisonPrecedence, ast.Less},
	LESS_EQUAL:    {comparisonPrecedence, ast.LessEqual},
	EQUAL_EQUAL:   {comparisonPrecedence, ast.Equal},
	EQUAL:         {comparisonPrecedence, ast.Identity},
	BANG_EQUAL:    {comparisonPrecedence, ast.NotEqual},
	GREATER_EQUAL: {comparisonPrecedence, ast.GreaterEqual},
	GREATER:       {comparisonPrecedence, ast.Greater},
	PIPE:          {4, ast.BinaryOr},
	CARET:         {5, ast.BinaryXor},
	AMPERSAND:     {6, ast.BinaryAnd},
	SHIFT_LEFT:    {7, ast.ShiftLeft},
	SHIFT_RIGHT:   {7, ast.ShiftRight},
	PLUS:          {8, ast.Add},
	MINUS:         {8, ast.Sub},
	STAR:          {9, ast.Mul},
	SLASH:         {9, ast.Div},
	PERCENT:       {9, ast.Mod},
}

// parseExpr parses a full expression, including lambdas, which are only
// allowed where a complete expression is expected.
func (p *Parser) parseExpr() ast.Expr {
	switch {
	case p.check(PIPE) || p.check(OR):
		return p.parseLambda(ast.Pure)
	case p.check(QUERY) && (p.checkAt(1, PIPE) || p.checkAt(1, OR)):
		p.advance()
		return p.parseLambda(ast.Query)
	case p.check(CONSTR) && (p.checkAt(1, PIPE) || p.checkAt(1, OR)):
		p.advance()
		return p.parseLambda(ast.Constr)
	}
	return p.parsePrattExpr(1)
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parseUnaryExpr()

	for {
		info, ok := binaryOperators[p.peek().Type]
		if !ok || info.prec < minPrec {
			break
		}

		p.advance()
		right := p.parsePrattExpr(info.prec + 1)
		expr = &ast.BinaryExpr{Left: expr, Op: info.op, Right: right}

		if info.prec == comparisonPrecedence {
			if next, ok := binaryOperators[p.peek().Type]; ok && next.prec == comparisonPrecedence {
				p.errorAtCurrent("comparison operators cannot be chained")
			}
		}
	}

	return expr
}

// parseUnaryExpr handles prefix operators, the postfix next operator and
// right-associative power. A prefixed or primed operand cannot be the base
// of a power without parentheses.
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.match(MINUS, BANG) {
		op := ast.Minus
		if p.previous().Type == BANG {
			op = ast.LogicalNot
		}
		return &ast.UnaryExpr{Op: op, Expr: p.parsePostfixUnaryExpr()}
	}

	term := p.parseTerm()
	if p.match(STAR_STAR) {
		return &ast.BinaryExpr{Left: term, Op: ast.Pow, Right: p.parseUnaryExpr()}
	}
	if p.match(APOSTROPHE) {
		return &ast.UnaryExpr{Op: ast.Next, Expr: term}
	}
	return term
}

func (p *Parser) parsePostfixUnaryExpr() ast.Expr {
	term := p.parseTerm()
	if p.match(APOSTROPHE) {
		return &ast.UnaryExpr{Op: ast.Next, Expr: term}
	}
	return term
}

// parseTerm parses a primary expression followed by any number of calls
// and index accesses.
func (p *Parser) parseTerm() ast.Expr {
	expr := p.parsePrimaryExpr()

	for {
		if p.match(LEFT_PAREN) {
			args := p.parseExprList(RIGHT_PAREN)
			p.consume(RIGHT_PAREN, "expected ')' after arguments")
			expr = &ast.CallExpr{Function: expr, Args: args}
		} else if p.match(LEFT_BRACKET) {
			index := p.parseExpr()
			p.consume(RIGHT_BRACKET, "expected ']' after index")
			expr = &ast.IndexExpr{Array: expr, Index: index}
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case NUMBER, HEX_NUMBER:
		p.advance()
		return &ast.NumberExpr{Value: p.parseNumber(tok)}
	case STRING:
		p.advance()
		return &ast.StringExpr{Value: p.unquote(tok)}
	case CONSTANT_IDENTIFIER:
		p.advance()
		return &ast.ReferenceExpr{Path: ast.PathFromNames(tok.Lexeme)}
	case PUBLIC_IDENTIFIER:
		p.advance()
		return &ast.PublicReferenceExpr{Name: tok.Lexeme[1:]}
	case LEFT_BRACKET:
		p.advance()
		items := p.parseExprList(RIGHT_BRACKET)
		p.consume(RIGHT_BRACKET, "expected ']' after array elements")
		return &ast.ArrayLiteralExpr{Items: items}
	case LEFT_PAREN:
		return p.parseParenExpr()
	case LEFT_BRACE:
		return p.parseBlockExpr()
	case MATCH:
		return p.parseMatchExpr()
	case IF:
		return p.parseIfExpr()
	case DOLLAR_BRACE:
		p.advance()
		inner := p.parseExpr()
		p.consume(RIGHT_BRACE, "expected '}' after free input")
		return &ast.FreeInputExpr{Expr: inner}
	}

	if p.startsSymbolPath() {
		return p.parseReference()
	}

	p.errorAtCurrent("expected expression")
	return nil
}

// parseParenExpr distinguishes "()" and tuples from plain grouping. A
// trailing comma makes a one-element tuple.
func (p *Parser) parseParenExpr() ast.Expr {
	p.consume(LEFT_PAREN, "expected '('")
	if p.match(RIGHT_PAREN) {
		return &ast.TupleExpr{Items: []ast.Expr{}}
	}

	first := p.parseExpr()
	if p.match(RIGHT_PAREN) {
		return first
	}

	p.consume(COMMA, "expected ',' or ')' in parenthesized expression")
	items := []ast.Expr{first}
	for !p.check(RIGHT_PAREN) {
		items = append(items, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RIGHT_PAREN, "expected ')' after tuple elements")
	return &ast.TupleExpr{Items: items}
}

// parseExprList parses comma-separated expressions up to (not including)
// closing. The list may be empty and may end with a comma.
func (p *Parser) parseExprList(closing TokenType) []ast.Expr {
	var exprs []ast.Expr
	p.parseCommaList(closing, true, func() {
		exprs = append(exprs, p.parseExpr())
	})
	return exprs
}

func (p *Parser) parseLambda(kind ast.FunctionKind) ast.Expr {
	params := []ast.Pattern{}
	if !p.match(OR) {
		p.consume(PIPE, "expected '|' to start lambda parameters")
		p.parseCommaList(PIPE, false, func() {
			params = append(params, p.parsePattern())
		})
		p.consume(PIPE, "expected '|' after lambda parameters")
	}
	return &ast.LambdaExpr{Kind: kind, Params: params, Body: p.parseExpr()}
}

// parseBlockExpr parses "{ stmt; ...; value }". The trailing value is
// mandatory.
func (p *Parser) parseBlockExpr() *ast.BlockExpr {
	p.consume(LEFT_BRACE, "expected '{' to start block")
	block := &ast.BlockExpr{}
	for {
		if p.match(LET) {
			let := &ast.LetInsideBlock{Pattern: p.parsePattern()}
			if p.match(EQUAL) {
				let.Value = p.parseExpr()
			}
			p.consume(SEMICOLON, "expected ';' after let statement")
			block.Statements = append(block.Statements, let)
			continue
		}

		expr := p.parseExpr()
		if p.match(SEMICOLON) {
			block.Statements = append(block.Statements, &ast.ExprInsideBlock{Expr: expr})
			continue
		}
		p.consume(RIGHT_BRACE, "expected ';' or '}' in block")
		block.Expr = expr
		return block
	}
}

func (p *Parser) parseMatchExpr() ast.Expr {
	p.consume(MATCH, "expected 'match'")
	match := &ast.MatchExpr{Scrutinee: p.parseExpr()}
	p.consume(LEFT_BRACE, "expected '{' after match scrutinee")
	p.parseCommaList(RIGHT_BRACE, true, func() {
		pattern := p.parsePattern()
		p.consume(FAT_ARROW, "expected '=>' after match pattern")
		match.Arms = append(match.Arms, ast.MatchArm{Pattern: pattern, Value: p.parseExpr()})
	})
	p.consume(RIGHT_BRACE, "expected '}' after match arms")
	return match
}

func (p *Parser) parseIfExpr() ast.Expr {
	p.consume(IF, "expected 'if'")
	cond := p.parseExpr()
	body := p.parseBlockExpr()
	p.consume(ELSE, "expected 'else' after if body")
	elseBody := p.parseBlockExpr()
	return &ast.IfExpr{Condition: cond, Body: body, ElseBody: elseBody}
}
