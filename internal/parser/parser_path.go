package parser

import "pilasm/internal/ast"

func (p *Parser) startsSymbolPath() bool {
	tok := p.peek()
	return isIdentifier(tok) || tok.Type == SUPER || tok.Type == DOUBLE_COLON
}

// parseSymbolPath parses "a::b", "::a::b" or "super::a". segment decides
// which tokens are names. A "::" followed by '<' is left for the caller,
// since it opens a generic argument list.
func (p *Parser) parseSymbolPath(segment func(Token) bool) ast.SymbolPath {
	var path ast.SymbolPath
	if p.match(DOUBLE_COLON) {
		path.Parts = append(path.Parts, ast.Part{})
	}
	for {
		tok := p.peek()
		switch {
		case tok.Type == SUPER:
			path.Parts = append(path.Parts, ast.Part{Super: true})
		case segment(tok):
			path.Parts = append(path.Parts, ast.Part{Name: tok.Lexeme})
		default:
			p.errorAtCurrent("expected identifier or 'super' in path")
		}
		p.advance()

		if !p.check(DOUBLE_COLON) || p.checkAt(1, LESS) {
			return path
		}
		p.advance()
	}
}

// parseReference parses a namespaced reference: either "ns.name" or a
// symbol path with optional "::<T, ...>" type arguments.
func (p *Parser) parseReference() *ast.ReferenceExpr {
	if isIdentifier(p.peek()) && p.checkAt(1, DOT) && isIdentifier(p.peekAt(2)) {
		namespace := p.advance().Lexeme
		p.advance()
		name := p.advance().Lexeme
		return &ast.ReferenceExpr{Path: ast.PathFromNames(namespace, name)}
	}

	ref := &ast.ReferenceExpr{Path: p.parseSymbolPath(isIdentifier)}
	if p.check(DOUBLE_COLON) && p.checkAt(1, LESS) {
		p.advance()
		p.advance()
		ref.TypeArgs = p.parseTypeArgs()
	}
	return ref
}
