package parser

import (
	"github.com/bru-go/bru/internal/ucd"
	"github.com/bru-go/bru/interval"
	"github.com/bru-go/bru/sre"
)

// parseAtom implements atom := escape | group | class | anchor | literal.
func (p *parser) parseAtom() (*sre.Node, Code, int) {
	p.skipInlineComments()
	if p.atEnd() {
		return nil, EndOfString, p.pos
	}
	c := p.peek()
	switch c {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClassAtom()
	case '^':
		p.advance(1)
		return p.b.Caret(), Success, 0
	case '$':
		p.advance(1)
		return p.b.Dollar(), Success, 0
	case '.':
		p.advance(1)
		return p.b.RegexCC(dotIntervals()), Success, 0
	case '\\':
		return p.parseEscape()
	case ')':
		return nil, Unquantifiable, p.pos
	case '*', '+', '?':
		return nil, Unquantifiable, p.pos
	case '{':
		if p.looksLikeCounter() {
			return nil, Unquantifiable, p.pos
		}
		p.advance(1)
		return p.b.RegexLiteral('{'), Success, 0
	default:
		p.advance(1)
		return p.b.RegexLiteral(c), Success, 0
	}
}

// parseGroup implements the group head dispatch: (...) capturing,
// (?:...) non-capturing, (?=...)/(?!...) lookahead (supported),
// (?<=...)/(?<!...) lookbehind / (?P<name>...)/(?<name>...) named /
// (?>...) atomic / (?(...)...) conditional / (?R)/(?0) recursion
// (all unsupported: balanced, skipped, flagged).
func (p *parser) parseGroup() (*sre.Node, Code, int) {
	start := p.pos
	p.advance(1) // consume '('

	if p.peek() != '?' {
		return p.parseCapturingBody(start)
	}

	switch {
	case p.peekAt(1) == ':':
		p.advance(2)
		return p.parseGroupBody(start, func(n *sre.Node) *sre.Node { return n })

	case p.peekAt(1) == '=':
		p.advance(2)
		return p.parseLookaroundBody(start, true)

	case p.peekAt(1) == '!':
		p.advance(2)
		return p.parseLookaroundBody(start, false)

	case p.peekAt(1) == '<' && (p.peekAt(2) == '=' || p.peekAt(2) == '!'):
		p.advance(3)
		return p.unsupportedGroup(start, FeatureLookbehind)

	case p.peekAt(1) == '<' || (p.peekAt(1) == 'P' && p.peekAt(2) == '<'):
		// (?<name>...) or (?P<name>...): named capture, unsupported.
		off := 2
		if p.peekAt(1) == 'P' {
			off = 3
		}
		p.advance(off)
		return p.unsupportedGroup(start, FeatureNamedGroup)

	case p.peekAt(1) == '>':
		p.advance(2)
		return p.unsupportedGroup(start, FeatureAtomicGroup)

	case p.peekAt(1) == '(':
		// Consume only "(?": the condition's own '(' is left for the
		// balancer to count.
		p.advance(1)
		return p.unsupportedGroup(start, FeatureConditional)

	case p.peekAt(1) == 'R' || (p.peekAt(1) >= '0' && p.peekAt(1) <= '9'):
		p.advance(2)
		return p.unsupportedGroup(start, FeatureRecursion)

	default:
		// Unknown (?X...) prefix: treat conservatively as unsupported
		// rather than crashing.
		p.advance(2)
		return p.unsupportedGroup(start, FeatureConditional)
	}
}

func (p *parser) parseCapturingBody(start int) (*sre.Node, Code, int) {
	if p.inLookahead == 0 {
		p.ncaptures++
	}
	idx := p.ncaptures
	body, code, pos := p.parseGroupBody(start, func(n *sre.Node) *sre.Node {
		return p.b.RegexCapture(idx, n)
	})
	return body, code, pos
}

// parseGroupBody parses an alternation body and consumes the matching
// ')', applying wrap to the parsed child (e.g. to add a Capture node).
func (p *parser) parseGroupBody(start int, wrap func(*sre.Node) *sre.Node) (*sre.Node, Code, int) {
	child, code, pos := p.parseAlt()
	if code.isHard() {
		return nil, code, pos
	}
	if p.atEnd() {
		return nil, IncompleteGroupStructure, start
	}
	if p.peek() != ')' {
		return nil, UnmatchedParen, p.pos
	}
	p.advance(1)
	return wrap(child), code, 0
}

func (p *parser) parseLookaroundBody(start int, positive bool) (*sre.Node, Code, int) {
	p.inLookahead++
	child, code, pos := p.parseGroupBody(start, func(n *sre.Node) *sre.Node {
		return p.b.RegexLookahead(n, positive)
	})
	p.inLookahead--
	return child, code, pos
}

// unsupportedGroup consumes the remainder of an unsupported group via the
// balancer, substitutes Epsilon, and records the feature.
func (p *parser) unsupportedGroup(start int, feat Feature) (*sre.Node, Code, int) {
	p.startPos = start
	if err := p.skipBalancedGroup(); err != nil {
		r := err.(*Result)
		return nil, r.Code, r.Pos
	}
	p.features = p.features.Set(feat)
	return p.b.Epsilon(), Unsupported, 0
}

func dotIntervals() *interval.Intervals { return ucd.Dot() }
