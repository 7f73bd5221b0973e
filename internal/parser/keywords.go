package parser

var KEYWORDS = map[string]TokenType{
	"include":   INCLUDE,
	"namespace": NAMESPACE,
	"let":       LET,
	"constant":  CONSTANT,
	"pol":       POL,
	"col":       COL,
	"commit":    COMMIT,
	"witness":   WITNESS,
	"fixed":     FIXED,
	"public":    PUBLIC,
	"enum":      ENUM,
	"in":        IN,
	"is":        IS,
	"connect":   CONNECT,
	"match":     MATCH,
	"if":        IF,
	"else":      ELSE,
	"query":     QUERY,
	"constr":    CONSTR,
	"machine":   MACHINE,
	"with":      WITH,
	"reg":       REG,
	"instr":     INSTR,
	"link":      LINK,
	"function":  FUNCTION,
	"operation": OPERATION,
	"return":    RETURN,
	"use":       USE,
	"as":        AS,
	"mod":       MOD,
	"super":     SUPER,
	"string":    STRING_TYPE,

	"file": FILE,
	"loc":  LOC,
	"insn": INSN,
	"int":  INT,
	"fe":   FE,
	"expr": EXPR,
	"bool": BOOL,
}

// isIdentifier reports whether tok may be used as a name. The reserved
// words file, loc, insn, int, fe, expr and bool are keywords only where
// the grammar asks for them.
func isIdentifier(tok Token) bool {
	switch tok.Type {
	case IDENTIFIER, UPPER_IDENTIFIER, FILE, LOC, INSN, INT, FE, EXPR, BOOL:
		return true
	}
	return false
}

// isTypePathIdentifier is isIdentifier without int and fe, which always
// denote primitive types in type position.
func isTypePathIdentifier(tok Token) bool {
	return isIdentifier(tok) && tok.Type != INT && tok.Type != FE
}

func classifyIdentifier(text string) TokenType {
	if tt, ok := KEYWORDS[text]; ok {
		return tt
	}
	if text == "_" {
		return UNDERSCORE
	}
	if text[0] >= 'A' && text[0] <= 'Z' {
		return UPPER_IDENTIFIER
	}
	return IDENTIFIER
}
