package sre

import "github.com/bru-go/bru/interval"

// Builder assigns monotonically increasing RIDs as nodes are
// constructed: every AST node has a unique rid. A parse owns exactly
// one Builder.
type Builder struct {
	nextRID int
}

// NewBuilder returns a Builder with RID allocation starting at 0.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) rid() int {
	id := b.nextRID
	b.nextRID++
	return id
}

func (b *Builder) Epsilon() *Node { return &Node{Kind: Epsilon, RID: b.rid()} }
func (b *Builder) Caret() *Node   { return &Node{Kind: Caret, RID: b.rid()} }
func (b *Builder) Dollar() *Node  { return &Node{Kind: Dollar, RID: b.rid()} }
func (b *Builder) Memoise() *Node { return &Node{Kind: Memoise, RID: b.rid()} }

// RegexLiteral builds a single-character literal node.
func (b *Builder) RegexLiteral(ch rune) *Node {
	return &Node{Kind: Literal, Ch: ch, RID: b.rid()}
}

// RegexCC builds a character-class node over ivs. ivs must be non-nil and
// non-empty, per the Intervals invariant.
func (b *Builder) RegexCC(ivs *interval.Intervals) *Node {
	if ivs == nil || len(ivs.Ranges) == 0 {
		panic("sre: RegexCC requires non-empty Intervals")
	}
	return &Node{Kind: CC, Intervals: ivs, RID: b.rid()}
}

// RegexBranch builds Alt or Concat nodes depending on isAlt.
func (b *Builder) RegexBranch(isAlt bool, l, r *Node) *Node {
	k := Concat
	if isAlt {
		k = Alt
	}
	return &Node{Kind: k, L: l, R: r, RID: b.rid()}
}

// RegexCapture builds a capturing group wrapping child with group index idx.
func (b *Builder) RegexCapture(idx int, child *Node) *Node {
	return &Node{Kind: Capture, Idx: idx, Child: child, RID: b.rid()}
}

// RegexRepetition builds Star/Plus/Ques depending on kind ("*", "+", "?").
func (b *Builder) RegexRepetition(kind string, child *Node, greedy bool) *Node {
	var k Kind
	switch kind {
	case "*":
		k = Star
	case "+":
		k = Plus
	case "?":
		k = Ques
	default:
		panic("sre: RegexRepetition: unknown kind " + kind)
	}
	return &Node{Kind: k, Child: child, Greedy: greedy, RID: b.rid()}
}

// RegexCounter builds a bounded repetition {min,max}. Requires
// min <= max <= CounterMax; max == -1 means unbounded
// and is rejected here — callers lower unbounded counters to Star/Plus or
// to Counter(min,min)·Star before calling this (parser.Options.UnboundedCounters).
func (b *Builder) RegexCounter(child *Node, greedy bool, min, max int) *Node {
	if min > max {
		panic("sre: RegexCounter: min > max")
	}
	if max > CounterMax {
		panic("sre: RegexCounter: max exceeds CounterMax")
	}
	return &Node{Kind: Counter, Child: child, Greedy: greedy, Min: min, Max: max, RID: b.rid()}
}

// RegexLookahead builds a zero-width lookahead assertion.
func (b *Builder) RegexLookahead(child *Node, positive bool) *Node {
	return &Node{Kind: Lookahead, Child: child, Positive: positive, RID: b.rid()}
}

// RegexBackreference builds a backreference to capture group refIdx.
// Always reported Unsupported by the parser; the node exists so the sum
// type stays total and constructions can reject it with a typed error
// rather than a type-assertion panic.
func (b *Builder) RegexBackreference(refIdx int) *Node {
	return &Node{Kind: Backreference, RefIdx: refIdx, RID: b.rid()}
}
