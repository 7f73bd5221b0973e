package parser

import (
	"fmt"
	"math/big"
	"strings"
)

// parseNumber converts a NUMBER or HEX_NUMBER token to its value.
// Underscores are separators and carry no meaning.
func (p *Parser) parseNumber(tok Token) *big.Int {
	digits := strings.ReplaceAll(tok.Lexeme, "_", "")
	base := 10
	if tok.Type == HEX_NUMBER {
		digits = digits[2:]
		base = 16
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		p.fail(tok.Position, LexicalError, fmt.Sprintf("invalid number literal %s", tok.describe()))
	}
	return value
}

func (p *Parser) consumeNumber(message string) (Token, *big.Int) {
	if !p.check(NUMBER) && !p.check(HEX_NUMBER) {
		p.errorAtCurrent(message)
	}
	tok := p.advance()
	return tok, p.parseNumber(tok)
}

// consumeUint consumes a number that must fit in bits bits.
func (p *Parser) consumeUint(bits int, message string) uint64 {
	tok, value := p.consumeNumber(message)
	if value.BitLen() > bits {
		p.fail(tok.Position, ValidationError, fmt.Sprintf("number %s does not fit in %d bits", value, bits))
	}
	return value.Uint64()
}

func (p *Parser) consumeString(message string) string {
	tok := p.consume(STRING, message)
	return p.unquote(tok)
}

// unquote strips the quotes of a STRING token and decodes its escapes.
func (p *Parser) unquote(tok Token) string {
	body := tok.Lexeme[1 : len(tok.Lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '\'':
			sb.WriteByte(body[i])
		default:
			pos := tok.Position
			pos.Offset += i
			pos.Column += i
			p.fail(pos, LexicalError, fmt.Sprintf("unknown escape sequence '\\%c' in string", body[i]))
		}
	}
	return sb.String()
}
