package parser

// Feature identifies one unsupported construct; a single parse's
// FeatureSet accumulates every distinct one encountered.
type Feature uint32

const (
	FeatureBackreference Feature = 1 << iota
	FeatureLookbehind
	FeatureAtomicGroup
	FeatureNamedGroup
	FeatureConditional
	FeatureRecursion
	FeaturePossessiveQuantifier
	FeatureHexEscape
	FeatureOctalEscape
	FeatureUnicodeEscape
)

var featureNames = map[Feature]string{
	FeatureBackreference:       "backreference",
	FeatureLookbehind:          "lookbehind",
	FeatureAtomicGroup:         "atomic-group",
	FeatureNamedGroup:          "named-group",
	FeatureConditional:         "conditional-pattern",
	FeatureRecursion:           "pattern-recursion",
	FeaturePossessiveQuantifier: "possessive-quantifier",
	FeatureHexEscape:           "hex-escape",
	FeatureOctalEscape:         "octal-escape",
	FeatureUnicodeEscape:       "unicode-escape",
}

// FeatureSet is a bitset of encountered Features.
type FeatureSet uint32

// Set adds f to the set and returns the updated set.
func (fs FeatureSet) Set(f Feature) FeatureSet { return fs | FeatureSet(f) }

// Has reports whether f was encountered.
func (fs FeatureSet) Has(f Feature) bool { return fs&FeatureSet(f) != 0 }

// Names returns the human-readable names of every feature present, in
// declaration order (for --log-unsupported dumps).
func (fs FeatureSet) Names() []string {
	var out []string
	for f := FeatureBackreference; f <= FeatureUnicodeEscape; f <<= 1 {
		if fs.Has(f) {
			out = append(out, featureNames[f])
		}
	}
	return out
}

// skipBalancedGroup consumes from p.pos (positioned just after the
// recognized "(?X" prefix) through the matching close paren, honouring
// \Q...\E quoted runs and character classes (where '(' and ')' lose their
// special meaning) via a brace-and-escape-aware balancer. On success p.pos
// is just past the consumed ')' and the result is nil; it returns an error
// if EOF is reached first.
func (p *parser) skipBalancedGroup() error {
	depth := 1
	for {
		if p.atEnd() {
			return p.errAt(IncompleteGroupStructure, p.startPos)
		}
		c := p.peek()
		switch {
		case c == '\\' && p.peekAt(1) == 'Q':
			p.advance(2)
			for !p.atEnd() && !(p.peek() == '\\' && p.peekAt(1) == 'E') {
				p.advance(1)
			}
			if !p.atEnd() {
				p.advance(2)
			}
		case c == '\\':
			p.advance(1)
			if !p.atEnd() {
				p.advance(1)
			}
		case c == '[':
			if err := p.skipCharClassBody(); err != nil {
				return err
			}
		case c == '(':
			depth++
			p.advance(1)
		case c == ')':
			depth--
			p.advance(1)
			if depth == 0 {
				return nil
			}
		default:
			p.advance(1)
		}
	}
}
