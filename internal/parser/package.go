package parser

import (
	"pilasm/internal/ast"
)

// parse scans source and runs rule over the whole token stream. Every
// entry point rejects trailing input.
func parse[T any](sourceName, source string, rule func(p *Parser) T) (T, error) {
	var result T
	tokens, err := NewScanner(sourceName, source).ScanTokens()
	if err != nil {
		return result, err
	}

	p := NewParser(sourceName, tokens)
	err = p.guard(func() {
		result = rule(p)
		p.consume(EOF, "expected end of input")
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// ParsePILFile parses a constraint file.
func ParsePILFile(sourceName, source string) (*ast.PILFile, error) {
	return parse(sourceName, source, (*Parser).parsePILFile)
}

// ParseASMModule parses an assembly module.
func ParseASMModule(sourceName, source string) (*ast.ASMModule, error) {
	return parse(sourceName, source, func(p *Parser) *ast.ASMModule {
		return p.parseASMModule(EOF)
	})
}

// ParseInstruction parses what follows "instr name": parameters and body.
func ParseInstruction(sourceName, source string) (*ast.Instruction, error) {
	return parse(sourceName, source, (*Parser).parseInstruction)
}

func ParseType(sourceName, source string) (ast.Type, error) {
	return parse(sourceName, source, (*Parser).parseType)
}

func ParseSymbolPath(sourceName, source string) (ast.SymbolPath, error) {
	return parse(sourceName, source, func(p *Parser) ast.SymbolPath {
		return p.parseSymbolPath(isIdentifier)
	})
}

// ParseTypeVarBounds parses a bare list such as "T: Add + Mul, U".
func ParseTypeVarBounds(sourceName, source string) (ast.TypeVarBounds, error) {
	return parse(sourceName, source, func(p *Parser) ast.TypeVarBounds {
		return p.parseTypeVarBounds(p.isAtEnd)
	})
}

func ParseExpression(sourceName, source string) (ast.Expr, error) {
	return parse(sourceName, source, (*Parser).parseExpr)
}
