package parser

import "pilasm/internal/ast"

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.consume(FUNCTION, "expected 'function'")
	fn := &ast.FunctionDeclaration{Pos: p.makePos(start)}
	fn.Name = p.consumeIdent("expected function name")
	fn.Params = p.parseParams()

	p.consume(LEFT_BRACE, "expected '{' to start function body")
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		fn.Body = append(fn.Body, p.parseFunctionStatement())
	}
	p.consume(RIGHT_BRACE, "expected '}' after function body")
	return fn
}

func (p *Parser) parseFunctionStatement() ast.FunctionStatement {
	tok := p.peek()
	switch {
	case tok.Type == DOT:
		return p.parseDebugDirective()
	case tok.Type == RETURN:
		return p.parseReturn()
	case isIdentifier(tok) && p.checkAt(1, COLON):
		p.advance()
		p.advance()
		return &ast.LabelStatement{Pos: p.makePos(tok), Name: tok.Lexeme}
	case isIdentifier(tok) && (p.checkAt(1, COMMA) || p.checkAt(1, LESS_EQUAL_EQUAL) || p.checkAt(1, LESS_EQUAL)):
		return p.parseAssignment()
	case isIdentifier(tok):
		return p.parseInstructionCall()
	}
	p.errorAtCurrent("expected function statement")
	return nil
}

// parseAssignment parses "A, B <== e;" or "A, B <= X, _ = e;".
func (p *Parser) parseAssignment() *ast.AssignmentStatement {
	start := p.peek()
	stmt := &ast.AssignmentStatement{Pos: p.makePos(start)}
	for {
		stmt.LHS = append(stmt.LHS, p.consumeIdent("expected register name"))
		if !p.match(COMMA) {
			break
		}
	}

	switch {
	case p.match(LESS_EQUAL_EQUAL):
	case p.match(LESS_EQUAL):
		stmt.Registers = []ast.AssignmentRegister{}
		for {
			if p.match(UNDERSCORE) {
				stmt.Registers = append(stmt.Registers, ast.AssignmentRegister{Wildcard: true})
			} else {
				stmt.Registers = append(stmt.Registers, ast.AssignmentRegister{Name: p.consumeIdent("expected assignment register or '_'")})
			}
			if !p.match(COMMA) {
				break
			}
		}
		p.consume(EQUAL, "expected '=' after assignment registers")
	default:
		p.errorAtCurrent("expected '<==' or '<=' in assignment")
	}

	stmt.RHS = p.parseExpr()
	p.consume(SEMICOLON, "expected ';' after assignment")
	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	start := p.consume(RETURN, "expected 'return'")
	ret := &ast.ReturnStatement{Pos: p.makePos(start)}
	if !p.check(SEMICOLON) {
		ret.Values = p.parseExprSequence()
	}
	p.consume(SEMICOLON, "expected ';' after return")
	return ret
}

func (p *Parser) parseInstructionCall() *ast.InstructionStatement {
	start := p.advance()
	stmt := &ast.InstructionStatement{Pos: p.makePos(start), Instruction: start.Lexeme}
	if !p.check(SEMICOLON) {
		stmt.Inputs = p.parseExprSequence()
	}
	p.consume(SEMICOLON, "expected ';' after instruction")
	return stmt
}

// parseDebugDirective parses ".debug file|loc|insn ...;". Numbers are
// limited to 64 bits.
func (p *Parser) parseDebugDirective() *ast.DebugDirectiveStatement {
	start := p.consume(DOT, "expected '.'")
	if p.peek().Lexeme != "debug" {
		p.errorAtCurrent("expected 'debug' after '.'")
	}
	p.advance()

	stmt := &ast.DebugDirectiveStatement{Pos: p.makePos(start)}
	switch {
	case p.match(FILE):
		file := &ast.DebugFile{ID: p.consumeUint(64, "expected file id")}
		file.Directory = p.consumeString("expected directory string")
		file.File = p.consumeString("expected file name string")
		stmt.Directive = file
	case p.match(LOC):
		loc := &ast.DebugLoc{File: p.consumeUint(64, "expected file id")}
		loc.Line = p.consumeUint(64, "expected line number")
		loc.Column = p.consumeUint(64, "expected column number")
		stmt.Directive = loc
	case p.match(INSN):
		stmt.Directive = &ast.DebugOriginalInstruction{Text: p.consumeString("expected instruction text")}
	default:
		p.errorAtCurrent("expected 'file', 'loc' or 'insn' after '.debug'")
	}
	p.consume(SEMICOLON, "expected ';' after debug directive")
	return stmt
}
