package parser

import (
	"github.com/bru-go/bru/internal/ucd"
	"github.com/bru-go/bru/interval"
	"github.com/bru-go/bru/sre"
)

// parseClassAtom parses a full `[...]` character class into a CC node.
func (p *parser) parseClassAtom() (*sre.Node, Code, int) {
	start := p.pos
	ivs, code, pos := p.parseClass()
	if code.isHard() {
		return nil, code, pos
	}
	_ = start
	return p.b.RegexCC(ivs), code, 0
}

func (p *parser) parseClass() (*interval.Intervals, Code, int) {
	start := p.pos
	p.advance(1) // consume '['
	neg := false
	if p.peek() == '^' {
		neg = true
		p.advance(1)
	}

	var ranges []interval.Interval
	first := true
	for {
		if p.atEnd() {
			return nil, MissingClosingBracket, start
		}
		if p.peek() == ']' && !first {
			p.advance(1)
			break
		}
		first = false

		// POSIX named class: [:name:]
		if p.peek() == '[' && p.peekAt(1) == ':' {
			if ivs, ok := p.tryParsePosixClass(); ok {
				ranges = append(ranges, ivs.Ranges...)
				continue
			}
		}

		loRune, loIsShorthand, loIvs, code, pos := p.parseClassMember()
		if code.isHard() {
			return nil, code, pos
		}
		if loIsShorthand {
			ranges = append(ranges, loIvs.Ranges...)
			continue
		}

		// Range? member-'-'member, but not if '-' is immediately before ']'.
		if p.peek() == '-' && p.peekAt(1) != ']' && !p.atEnd2(1) {
			dashPos := p.pos
			p.advance(1)
			hiRune, hiIsShorthand, _, code, pos := p.parseClassMember()
			if code.isHard() {
				return nil, code, pos
			}
			if hiIsShorthand {
				return nil, CCRangeContainsShorthandEscape, dashPos
			}
			if hiRune < loRune {
				return nil, CCRangeOutOfOrder, dashPos
			}
			ranges = append(ranges, interval.NewInterval(loRune, hiRune))
			continue
		}

		ranges = append(ranges, interval.NewInterval(loRune, loRune))
	}

	if len(ranges) == 0 {
		// Empty class body (e.g. "[]" with no closing handled above, or
		// "[^]"); treat as matching nothing by using an unsatisfiable
		// range rather than panicking on the Intervals invariant.
		ranges = []interval.Interval{interval.NewInterval(1, 0)}
	}
	return &interval.Intervals{Neg: neg, Ranges: ranges}, Success, 0
}

func (p *parser) atEnd2(off int) bool { return p.pos+off >= len(p.src) }

// parseClassMember parses one class member: a literal rune, or an
// escape. Returns (rune, isShorthandClass, shorthandIntervals, code, pos).
func (p *parser) parseClassMember() (rune, bool, *interval.Intervals, Code, int) {
	if p.peek() == '\\' {
		return p.parseClassEscape()
	}
	r := p.peek()
	p.advance(1)
	return r, false, nil, Success, 0
}

func (p *parser) tryParsePosixClass() (*interval.Intervals, bool) {
	save := p.pos
	p.advance(2) // "[:"
	negPosix := false
	if p.peek() == '^' {
		negPosix = true
		p.advance(1)
	}
	nameStart := p.pos
	for !p.atEnd() && p.peek() != ':' {
		p.advance(1)
	}
	if p.atEnd() || p.peekAt(1) != ']' {
		p.pos = save
		return nil, false
	}
	name := string(p.src[nameStart:p.pos])
	p.advance(2) // ":]"
	ivs, ok := ucd.Posix(name)
	if !ok {
		p.pos = save
		return nil, false
	}
	if negPosix {
		ivs = ivs.Complement(interval.MaxCodepoint)
	}
	return ivs, true
}

// parseClassEscape parses a `\X` escape inside a character class: either
// a shorthand class or a control escape; any other escaped character
// (hex and octal escape letters and digits included) is taken literally.
func (p *parser) parseClassEscape() (rune, bool, *interval.Intervals, Code, int) {
	pos := p.pos
	p.advance(1) // consume backslash
	if p.atEnd() {
		return 0, false, nil, EndOfString, pos
	}
	c := p.peek()
	if ivs, ok := shorthandClass(c); ok {
		p.advance(1)
		return 0, true, ivs, Success, 0
	}
	r, code, errPos, ok := p.parseSimpleEscapeChar()
	if !ok {
		return 0, false, nil, code, errPos
	}
	return r, false, nil, Success, 0
}

// shorthandClass maps a shorthand escape letter to its Intervals.
func shorthandClass(c rune) (*interval.Intervals, bool) {
	switch c {
	case 'd':
		return ucd.Digit(), true
	case 'D':
		return ucd.NotDigit(), true
	case 'w':
		return ucd.Word(), true
	case 'W':
		return ucd.NotWord(), true
	case 's':
		return ucd.Space(), true
	case 'S':
		return ucd.NotSpace(), true
	case 'h':
		return ucd.HorizontalSpace(), true
	case 'H':
		return ucd.NotHorizontalSpace(), true
	case 'v':
		return ucd.VerticalSpace(), true
	case 'V':
		return ucd.NotVerticalSpace(), true
	case 'N':
		return ucd.NotNewline(), true
	default:
		return nil, false
	}
}

// skipCharClassBody consumes a `[...]` body (p.pos currently at '[') for
// the unsupported-group balancer, which only needs to find the matching
// ']' without building an Intervals — '(' and ')' lose their meaning
// inside a character class.
func (p *parser) skipCharClassBody() error {
	p.advance(1)
	if p.peek() == '^' {
		p.advance(1)
	}
	first := true
	for {
		if p.atEnd() {
			return p.errAt(MissingClosingBracket, p.startPos)
		}
		if p.peek() == ']' && !first {
			p.advance(1)
			return nil
		}
		first = false
		if p.peek() == '\\' {
			p.advance(1)
			if !p.atEnd() {
				p.advance(1)
			}
			continue
		}
		p.advance(1)
	}
}
