package parser

import "github.com/bru-go/bru/sre"

// controlEscapes maps the plain control-character escape letters. \v is
// deliberately excluded here: per the Open Question resolution in
// DESIGN.md, \v (and \V, \h, \H, \N) are treated as shorthand-class
// atoms everywhere, taking priority over the plain-control-escape
// reading.
var controlEscapes = map[rune]rune{
	't': '\t',
	'n': '\n',
	'r': '\r',
	'f': '\f',
	'a': '\a',
	'e': 0x1B,
}

// parseEscape implements the `\X` atom production.
func (p *parser) parseEscape() (*sre.Node, Code, int) {
	pos := p.pos
	p.advance(1) // consume backslash
	if p.atEnd() {
		return nil, EndOfString, pos
	}
	c := p.peek()

	if ivs, ok := shorthandClass(c); ok {
		p.advance(1)
		return p.b.RegexCC(ivs), Success, 0
	}
	if ch, ok := controlEscapes[c]; ok {
		p.advance(1)
		return p.b.RegexLiteral(ch), Success, 0
	}

	switch {
	case c == 'Q':
		p.advance(1)
		return p.parseQuotedLiteralRun(), Success, 0

	case c >= '1' && c <= '9':
		return p.parseBackreference(pos)

	case c == '0':
		p.advance(1)
		p.consumeOctalDigits(2)
		p.features = p.features.Set(FeatureOctalEscape)
		return p.b.Epsilon(), Unsupported, 0

	case c == 'x':
		p.advance(1)
		p.consumeHexEscapeBody()
		p.features = p.features.Set(FeatureHexEscape)
		return p.b.Epsilon(), Unsupported, 0

	case c == 'u':
		p.advance(1)
		for i := 0; i < 4 && isHexDigit(p.peek()); i++ {
			p.advance(1)
		}
		p.features = p.features.Set(FeatureUnicodeEscape)
		return p.b.Epsilon(), Unsupported, 0

	case isAlphaNumeric(c):
		// Unknown letter/digit escape: the SRE has no representation
		// for it (e.g. \b word-boundary has no dedicated node kind).
		return nil, InvalidEscape, pos

	default:
		// Backslash followed by punctuation: the escaped literal char.
		p.advance(1)
		return p.b.RegexLiteral(c), Success, 0
	}
}

func (p *parser) parseQuotedLiteralRun() *sre.Node {
	var result *sre.Node
	for !p.atEnd() && !(p.peek() == '\\' && p.peekAt(1) == 'E') {
		lit := p.b.RegexLiteral(p.peek())
		p.advance(1)
		if result == nil {
			result = lit
		} else {
			result = p.b.RegexBranch(false, result, lit)
		}
	}
	if !p.atEnd() {
		p.advance(2) // consume \E
	}
	if result == nil {
		result = p.b.Epsilon()
	}
	return result
}

func (p *parser) parseBackreference(pos int) (*sre.Node, Code, int) {
	start := p.pos
	for !p.atEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance(1)
	}
	n := 0
	for _, r := range p.src[start:p.pos] {
		n = n*10 + int(r-'0')
	}
	if n == 0 || n > p.ncaptures {
		return nil, NonExistentRef, pos
	}
	p.features = p.features.Set(FeatureBackreference)
	return p.b.RegexBackreference(n), Unsupported, 0
}

func (p *parser) consumeOctalDigits(max int) {
	for i := 0; i < max && p.peek() >= '0' && p.peek() <= '7'; i++ {
		p.advance(1)
	}
}

func (p *parser) consumeHexEscapeBody() {
	if p.peek() == '{' {
		p.advance(1)
		for !p.atEnd() && p.peek() != '}' {
			p.advance(1)
		}
		if !p.atEnd() {
			p.advance(1)
		}
		return
	}
	for i := 0; i < 2 && isHexDigit(p.peek()); i++ {
		p.advance(1)
	}
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlphaNumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseSimpleEscapeChar parses the escape-char production used inside a
// character class: control escapes and escaped punctuation
// resolve to a literal rune; anything else is returned literally too,
// a deliberately lenient in-class fallback.
func (p *parser) parseSimpleEscapeChar() (rune, Code, int, bool) {
	c := p.peek()
	if ch, ok := controlEscapes[c]; ok {
		p.advance(1)
		return ch, Success, 0, true
	}
	p.advance(1)
	return c, Success, 0, true
}
