// Package parser implements a recursive-descent PCRE-flavoured regex
// parser producing an sre.Node tree.
package parser

import (
	"github.com/bru-go/bru/sre"
)

// parser holds the mutable state of a single parse.
type parser struct {
	src       []rune
	pos       int
	opts      Options
	b         *sre.Builder
	ncaptures int
	features  FeatureSet
	worst     Code

	// inLookahead tracks nesting depth of lookahead bodies, so capture
	// indices skip groups opened inside a lookahead.
	inLookahead int

	// startPos remembers the position at the start of the construct
	// currently being parsed, used to locate IncompleteGroupStructure
	// errors at the opening paren rather than at EOF.
	startPos int
}

// Parse parses src with opts and returns the resulting tree together with
// a Result describing success, the worst Unsupported features seen, or
// the first hard error encountered.
func Parse(src string, opts Options) (*sre.Node, Result) {
	p := &parser{
		src:  []rune(src),
		opts: opts,
		b:    sre.NewBuilder(),
	}

	root, code, pos := p.parseTop()
	res := Result{Code: code, Pos: pos, Features: p.features}
	if code.isHard() {
		return nil, res
	}
	if p.opts.WholeMatchCapture {
		root = p.b.RegexCapture(0, root)
	}
	return root, res
}

func (p *parser) parseTop() (*sre.Node, Code, int) {
	root, code, pos := p.parseAlt()
	if code.isHard() {
		return nil, code, pos
	}
	if !p.atEnd() {
		// Stray ')' with no matching '(' ends the alternation early.
		return nil, UnmatchedParen, p.pos
	}
	if p.features != 0 {
		code = worse(code, Unsupported)
	}
	return root, code, 0
}

// --- cursor helpers ---------------------------------------------------

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	i := p.pos + off
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *parser) advance(n int) { p.pos += n }

func (p *parser) errAt(code Code, pos int) error {
	return &Result{Code: code, Pos: pos}
}

// skipInlineComments consumes `(?#...)` comments and is called wherever
// whitespace would be ignored — i.e. before every atom.
func (p *parser) skipInlineComments() {
	for !p.atEnd() && p.peek() == '(' && p.peekAt(1) == '?' && p.peekAt(2) == '#' {
		p.advance(3)
		for !p.atEnd() && p.peek() != ')' {
			p.advance(1)
		}
		if !p.atEnd() {
			p.advance(1)
		}
	}
}

// --- grammar: alt := expr ('|' expr)* ----------------------------------

func (p *parser) parseAlt() (*sre.Node, Code, int) {
	left, code, pos := p.parseExpr()
	if code.isHard() {
		return nil, code, pos
	}
	for !p.atEnd() && p.peek() == '|' {
		p.advance(1)
		right, c2, pos2 := p.parseExpr()
		if c2.isHard() {
			return nil, c2, pos2
		}
		code = worse(code, c2)
		left = p.b.RegexBranch(true, left, right)
	}
	return left, code, 0
}

// --- grammar: expr := elem* --------------------------------------------

func (p *parser) parseExpr() (*sre.Node, Code, int) {
	var result *sre.Node
	code := Success
	for {
		p.skipInlineComments()
		if p.atEnd() || p.peek() == '|' || p.peek() == ')' {
			break
		}
		elem, c, pos := p.parseElem()
		if c.isHard() {
			return nil, c, pos
		}
		code = worse(code, c)
		if result == nil {
			result = elem
		} else {
			result = p.b.RegexBranch(false, result, elem)
		}
	}
	if result == nil {
		result = p.b.Epsilon()
	}
	return result, code, 0
}

// --- grammar: elem := atom quantifier? ----------------------------------

func (p *parser) parseElem() (*sre.Node, Code, int) {
	atom, code, pos := p.parseAtom()
	if code.isHard() {
		return nil, code, pos
	}
	p.skipInlineComments()
	quantified, c2, pos2, present := p.tryParseQuantifier(atom)
	if c2.isHard() {
		return nil, c2, pos2
	}
	if present {
		code = worse(code, c2)
		return quantified, code, 0
	}
	return atom, code, 0
}
