package parser

import (
	"pilasm/internal/ast"
)

// parseASMModule parses module statements until closing (EOF for a file,
// '}' for an inline module).
func (p *Parser) parseASMModule(closing TokenType) *ast.ASMModule {
	module := &ast.ASMModule{}
	for !p.check(closing) && !p.isAtEnd() {
		module.Statements = append(module.Statements, p.parseModuleStatement())
	}
	return module
}

func (p *Parser) parseModuleStatement() *ast.SymbolDefinition {
	tok := p.peek()
	switch tok.Type {
	case MACHINE:
		return p.parseMachineDefinition()
	case USE:
		return p.parseImport()
	case MOD:
		return p.parseModule()
	case LET:
		start, name, scheme, value := p.parseLetHead()
		if value == nil {
			p.fail(start.Position, SyntaxError, "module-level let needs a value")
		}
		return &ast.SymbolDefinition{
			Pos:   p.makePos(start),
			Name:  name,
			Value: &ast.TypedExpression{Expr: value, TypeScheme: scheme},
		}
	case ENUM:
		enum := p.parseEnumDeclaration()
		return &ast.SymbolDefinition{Pos: enum.Pos, Name: enum.Name, Value: enum}
	}
	p.errorAtCurrent("expected 'machine', 'use', 'mod', 'let' or 'enum'")
	return nil
}

func (p *Parser) parseImport() *ast.SymbolDefinition {
	start := p.consume(USE, "expected 'use'")
	path := p.parseSymbolPath(isIdentifier)
	name := path.Last().Name
	if p.match(AS) {
		name = p.consumeIdent("expected alias after 'as'")
	} else if path.Last().Super {
		p.errorAtCurrent("expected 'as' after a path ending in 'super'")
	}
	p.consume(SEMICOLON, "expected ';' after use")
	return &ast.SymbolDefinition{Pos: p.makePos(start), Name: name, Value: &ast.Import{Path: path}}
}

func (p *Parser) parseModule() *ast.SymbolDefinition {
	start := p.consume(MOD, "expected 'mod'")
	def := &ast.SymbolDefinition{Pos: p.makePos(start)}
	def.Name = p.consumeIdent("expected module name")

	if p.match(SEMICOLON) {
		def.Value = &ast.ExternalModule{Name: def.Name}
		return def
	}

	p.consume(LEFT_BRACE, "expected ';' or '{' after module name")
	module := p.parseASMModule(RIGHT_BRACE)
	p.consume(RIGHT_BRACE, "expected '}' after module body")
	p.match(SEMICOLON)
	def.Value = &ast.LocalModule{Module: module}
	return def
}

func (p *Parser) parseMachineDefinition() *ast.SymbolDefinition {
	start := p.consume(MACHINE, "expected 'machine'")
	def := &ast.SymbolDefinition{Pos: p.makePos(start)}
	def.Name = p.consumeIdent("expected machine name")
	machine := &ast.MachineDefinition{}

	if p.check(LEFT_PAREN) {
		argsTok := p.peek()
		args, err := ast.NewMachineArguments(p.parseParamList())
		if err != nil {
			p.fail(argsTok.Position, ValidationError, err.Error())
		}
		machine.Arguments = args
	}

	if p.check(WITH) {
		withTok := p.advance()
		var props []ast.MachineProperty
		for {
			key := p.consumeIdent("expected machine property name")
			p.consumeColon("expected ':' after machine property name")
			props = append(props, ast.MachineProperty{Key: key, Value: p.parseExpr()})
			if !p.match(COMMA) {
				break
			}
		}
		properties, err := ast.NewMachineProperties(props)
		if err != nil {
			p.fail(withTok.Position, ValidationError, err.Error())
		}
		machine.Properties = properties
	}

	p.consume(LEFT_BRACE, "expected '{' to start machine body")
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		machine.Statements = append(machine.Statements, p.parseMachineStatement())
	}
	p.consume(RIGHT_BRACE, "expected '}' after machine body")

	def.Value = machine
	return def
}

func (p *Parser) parseMachineStatement() ast.MachineStatement {
	switch p.peek().Type {
	case REG:
		return p.parseRegisterDeclaration()
	case INSTR:
		return p.parseInstructionDeclaration()
	case LINK:
		return p.parseLinkDeclaration()
	case FUNCTION:
		return p.parseFunctionDeclaration()
	case OPERATION:
		return p.parseOperationDeclaration()
	}

	if p.looksLikeSubmachine() {
		start := p.peek()
		typ := p.parseSymbolPath(isIdentifier)
		name := p.consumeIdent("expected instance name")
		p.consume(SEMICOLON, "expected ';' after submachine")
		return &ast.Submachine{Pos: p.makePos(start), Type: typ, Name: name}
	}

	return &ast.Pil{Statement: p.parsePilStatement()}
}

// looksLikeSubmachine scans ahead for "path name ;" without consuming.
func (p *Parser) looksLikeSubmachine() bool {
	i := 0
	if p.checkAt(i, DOUBLE_COLON) {
		i++
	}
	for {
		tok := p.peekAt(i)
		if !isIdentifier(tok) && tok.Type != SUPER {
			return false
		}
		i++
		if !p.checkAt(i, DOUBLE_COLON) {
			break
		}
		i++
	}
	return isIdentifier(p.peekAt(i)) && p.checkAt(i+1, SEMICOLON)
}

func (p *Parser) parseRegisterDeclaration() *ast.RegisterDeclaration {
	start := p.consume(REG, "expected 'reg'")
	reg := &ast.RegisterDeclaration{Pos: p.makePos(start)}
	reg.Name = p.consumeIdent("expected register name")

	if p.match(LEFT_BRACKET) {
		switch {
		case p.match(LESS_EQUAL):
			reg.Flag = ast.IsAssignment
		case p.match(AT):
			switch p.consumeIdent("expected 'pc' or 'r' after '@'") {
			case "pc":
				reg.Flag = ast.IsPC
			case "r":
				reg.Flag = ast.IsReadOnly
			default:
				p.fail(p.previous().Position, SyntaxError, "unknown register flag '@"+p.previous().Lexeme+"'")
			}
		default:
			p.errorAtCurrent("expected '@pc', '<=' or '@r'")
		}
		p.consume(RIGHT_BRACKET, "expected ']' after register flag")
	}

	p.consume(SEMICOLON, "expected ';' after register declaration")
	return reg
}

func (p *Parser) parseInstructionDeclaration() *ast.InstructionDeclaration {
	start := p.consume(INSTR, "expected 'instr'")
	decl := &ast.InstructionDeclaration{Pos: p.makePos(start)}
	decl.Name = p.consumeIdent("expected instruction name")
	decl.Instruction = *p.parseInstruction()
	return decl
}

// parseInstruction parses the parameters and body that follow
// "instr name".
func (p *Parser) parseInstruction() *ast.Instruction {
	instr := &ast.Instruction{Params: p.parseParams()}

	switch {
	case p.check(LEFT_BRACE):
		p.advance()
		body := &ast.LocalInstructionBody{}
		p.parseCommaList(RIGHT_BRACE, true, func() {
			body.Elements = append(body.Elements, p.parseInstructionElement())
		})
		p.consume(RIGHT_BRACE, "expected '}' after instruction body")
		instr.Body = body
	case p.match(EQUAL):
		ref := p.parseCallableRef()
		p.consume(SEMICOLON, "expected ';' after instruction link")
		instr.Body = &ast.CallablePlookup{Ref: ref}
	case p.match(TILDE):
		ref := p.parseCallableRef()
		p.consume(SEMICOLON, "expected ';' after instruction link")
		instr.Body = &ast.CallablePermutation{Ref: ref}
	default:
		p.errorAtCurrent("expected '{', '=' or '~' to start instruction body")
	}
	return instr
}

// parseInstructionElement accepts lookup and permutation identities and
// plain constraint expressions.
func (p *Parser) parseInstructionElement() ast.PilStatement {
	start := p.peek()
	stmt := p.parseIdentityOrExpression()
	if _, ok := stmt.(*ast.ConnectIdentity); ok {
		p.fail(start.Position, SyntaxError, "connect identities are not allowed in instruction bodies")
	}
	return stmt
}

func (p *Parser) parseLinkDeclaration() *ast.LinkDeclaration {
	start := p.consume(LINK, "expected 'link'")
	link := &ast.LinkDeclaration{Pos: p.makePos(start)}
	link.Flag = p.parseExpr()

	switch {
	case p.match(FAT_ARROW):
	case p.match(TILDE_ARROW):
		link.IsPermutation = true
	default:
		p.errorAtCurrent("expected '=>' or '~>' after link flag")
	}

	link.Link = p.parseCallableRef()
	p.consume(SEMICOLON, "expected ';' after link declaration")
	return link
}

// parseCallableRef parses "instance.callable inputs -> outputs".
func (p *Parser) parseCallableRef() ast.CallableRef {
	var ref ast.CallableRef
	ref.Instance = p.consumeIdent("expected submachine instance")
	p.consume(DOT, "expected '.' after submachine instance")
	ref.Callable = p.consumeIdent("expected operation name")

	if !p.check(ARROW) && !p.check(SEMICOLON) {
		ref.Params.Inputs = p.parseExprSequence()
	}
	if p.match(ARROW) {
		ref.Params.Outputs = p.parseExprSequence()
	}
	return ref
}

// parseExprSequence parses one or more comma-separated expressions.
func (p *Parser) parseExprSequence() []ast.Expr {
	exprs := []ast.Expr{p.parseExpr()}
	for p.match(COMMA) {
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

func (p *Parser) parseOperationDeclaration() *ast.OperationDeclaration {
	start := p.consume(OPERATION, "expected 'operation'")
	op := &ast.OperationDeclaration{Pos: p.makePos(start)}
	op.Name = p.consumeIdent("expected operation name")
	if p.match(LESS) {
		_, id := p.consumeNumber("expected operation id")
		op.ID = id
		p.consumeCloseAngle("expected '>' after operation id")
	}
	op.Params = p.parseParams()
	p.consume(SEMICOLON, "expected ';' after operation declaration")
	return op
}

// parseParams parses "inputs -> outputs" where either side may be empty.
func (p *Parser) parseParams() ast.Params {
	var params ast.Params
	params.Inputs = p.parseParamList()
	if p.match(ARROW) {
		params.Outputs = p.parseParamList()
	}
	return params
}

// parseParamList parses a comma-separated parameter list, optionally
// wrapped in parentheses.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.match(LEFT_PAREN) {
		p.parseCommaList(RIGHT_PAREN, false, func() {
			params = append(params, p.parseParam())
		})
		p.consume(RIGHT_PAREN, "expected ')' after parameters")
		return params
	}
	if !isIdentifier(p.peek()) {
		return nil
	}
	for {
		params = append(params, p.parseParam())
		if !p.match(COMMA) {
			return params
		}
	}
}

// parseParam parses "name", "name[2]" or "name: path".
func (p *Parser) parseParam() ast.Param {
	param := ast.Param{Name: p.consumeIdent("expected parameter name")}
	if p.match(LEFT_BRACKET) {
		_, param.Index = p.consumeNumber("expected parameter index")
		p.consume(RIGHT_BRACKET, "expected ']' after parameter index")
	}
	if p.matchColon() {
		typ := p.parseSymbolPath(isIdentifier)
		param.Type = &typ
	}
	return param
}
