package parser

import "github.com/bru-go/bru/sre"

// looksLikeCounter reports whether p.pos (positioned at '{') begins a
// well-formed `{m}` / `{m,}` / `{m,n}` counter body, without consuming
// anything — used by parseAtom to decide whether a bare '{' is a
// literal.
func (p *parser) looksLikeCounter() bool {
	i := p.pos + 1
	digitsStart := i
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return false
	}
	if i < len(p.src) && p.src[i] == ',' {
		i++
		for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
			i++
		}
	}
	return i < len(p.src) && p.src[i] == '}'
}

// tryParseQuantifier implements quantifier := ('*'|'+'|'?'|counter) '?'?.
// Returns (node, code, pos, present); present is false when no
// quantifier follows, in which case atom is returned unchanged.
func (p *parser) tryParseQuantifier(atom *sre.Node) (*sre.Node, Code, int, bool) {
	if p.atEnd() {
		return atom, Success, 0, false
	}
	switch p.peek() {
	case '*':
		p.advance(1)
		greedy := p.consumeLazyMark()
		return p.b.RegexRepetition("*", atom, greedy), Success, 0, true
	case '+':
		p.advance(1)
		greedy := p.consumeLazyMark()
		return p.b.RegexRepetition("+", atom, greedy), Success, 0, true
	case '?':
		p.advance(1)
		greedy := p.consumeLazyMark()
		return p.b.RegexRepetition("?", atom, greedy), Success, 0, true
	case '{':
		if !p.looksLikeCounter() {
			return atom, Success, 0, false
		}
		return p.parseCounterQuantifier(atom)
	default:
		return atom, Success, 0, false
	}
}

// consumeLazyMark consumes a trailing '?' (lazy marker) if present and
// returns whether the quantifier is greedy. A trailing '+' (possessive)
// is recognized, flagged unsupported, and treated as greedy, since the
// SRE has no possessive-repetition node.
func (p *parser) consumeLazyMark() bool {
	if p.peek() == '?' {
		p.advance(1)
		return false
	}
	if p.peek() == '+' {
		p.advance(1)
		p.features = p.features.Set(FeaturePossessiveQuantifier)
	}
	return true
}

// parseCounterQuantifier parses `{m}` / `{m,}` / `{m,n}` once
// looksLikeCounter has already confirmed well-formedness, and lowers it
// per the OnlyCounters / UnboundedCounters / ExpandCounters options.
func (p *parser) parseCounterQuantifier(atom *sre.Node) (*sre.Node, Code, int, bool) {
	start := p.pos
	p.advance(1) // '{'
	minStart := p.pos
	for p.peek() >= '0' && p.peek() <= '9' {
		p.advance(1)
	}
	min := atoiRunes(p.src[minStart:p.pos])
	max := min
	if p.peek() == ',' {
		p.advance(1)
		maxStart := p.pos
		for p.peek() >= '0' && p.peek() <= '9' {
			p.advance(1)
		}
		if p.pos == maxStart {
			max = -1 // unbounded: {m,}
		} else {
			max = atoiRunes(p.src[maxStart:p.pos])
		}
	}
	p.advance(1) // '}'
	greedy := p.consumeLazyMark()

	if max != -1 && max < min {
		return nil, Unquantifiable, start, true
	}

	node := p.lowerCounter(atom, min, max, greedy)
	return node, Success, 0, true
}

// lowerCounter applies the quantifier-lowering rules. sre.Counter
// has no unbounded form (RegexCounter rejects min > max, and an unbounded
// max is represented here as -1), so a genuinely unbounded {min,} always
// decomposes into Star/Plus regardless of OnlyCounters; Options.UnboundedCounters
// only chooses WHICH decomposition: Counter(min,min)·Star when false (a
// fixed mandatory count checked explicitly, then an open tail), or the
// natural Star/Plus form when true (the default).
func (p *parser) lowerCounter(atom *sre.Node, min, max int, greedy bool) *sre.Node {
	if max == -1 {
		if !p.opts.UnboundedCounters {
			return p.b.RegexBranch(false,
				p.b.RegexCounter(atom, greedy, min, min),
				p.b.RegexRepetition("*", p.b.Clone(atom), greedy))
		}
		switch min {
		case 0:
			return p.b.RegexRepetition("*", atom, greedy)
		case 1:
			return p.b.RegexRepetition("+", atom, greedy)
		default:
			return p.expandUnboundedMin(atom, min, greedy)
		}
	}

	if p.opts.ExpandCounters {
		return p.expandCounter(atom, min, max, greedy)
	}
	if p.opts.OnlyCounters {
		return p.b.RegexCounter(atom, greedy, min, max)
	}
	if min == 0 && max == 1 {
		return p.b.RegexRepetition("?", atom, greedy)
	}
	return p.b.RegexCounter(atom, greedy, min, max)
}

// expandUnboundedMin lowers {min,} for min >= 2 into min-1 mandatory
// copies followed by a Plus of the final copy.
func (p *parser) expandUnboundedMin(atom *sre.Node, min int, greedy bool) *sre.Node {
	var result *sre.Node
	for i := 0; i < min-1; i++ {
		c := p.b.Clone(atom)
		if result == nil {
			result = c
		} else {
			result = p.b.RegexBranch(false, result, c)
		}
	}
	tail := p.b.RegexRepetition("+", atom, greedy)
	if result == nil {
		return tail
	}
	return p.b.RegexBranch(false, result, tail)
}

// expandCounter unrolls a bounded {min,max} counter into a concatenation
// of min mandatory copies followed by (max-min) optional copies, per
// the ExpandCounters option.
func (p *parser) expandCounter(atom *sre.Node, min, max int, greedy bool) *sre.Node {
	var result *sre.Node
	app := func(n *sre.Node) {
		if result == nil {
			result = n
		} else {
			result = p.b.RegexBranch(false, result, n)
		}
	}
	for i := 0; i < min; i++ {
		app(p.b.Clone(atom))
	}
	for i := 0; i < max-min; i++ {
		app(p.b.RegexRepetition("?", p.b.Clone(atom), greedy))
	}
	if result == nil {
		result = p.b.Epsilon()
	}
	return result
}

func atoiRunes(rs []rune) int {
	n := 0
	for _, r := range rs {
		n = n*10 + int(r-'0')
	}
	return n
}
