// Package ucd holds the small, fixed set of Unicode tables the parser
// needs for character-class shorthand escapes (\d \w \s \h \v \N and
// their uppercase complements). Anything beyond this set — general
// Unicode property classes, script tables, case folding — is explicitly
// out of scope.
package ucd

import "github.com/bru-go/bru/interval"

// Digit returns the Intervals for \d: ASCII decimal digits.
func Digit() *interval.Intervals { return interval.New(interval.NewInterval('0', '9')) }

// Word returns the Intervals for \w: word characters (letters, digits,
// underscore), ASCII-only by design.
func Word() *interval.Intervals {
	return interval.New(
		interval.NewInterval('a', 'z'),
		interval.NewInterval('A', 'Z'),
		interval.NewInterval('0', '9'),
		interval.NewInterval('_', '_'),
	)
}

// Space returns the Intervals for \s: whitespace.
func Space() *interval.Intervals {
	return interval.New(
		interval.NewInterval(' ', ' '),
		interval.NewInterval('\t', '\t'),
		interval.NewInterval('\n', '\n'),
		interval.NewInterval('\r', '\r'),
		interval.NewInterval('\f', '\f'),
		interval.NewInterval('\v', '\v'),
	)
}

// HorizontalSpace returns the Intervals for \h: horizontal whitespace.
func HorizontalSpace() *interval.Intervals {
	return interval.New(
		interval.NewInterval(' ', ' '),
		interval.NewInterval('\t', '\t'),
	)
}

// VerticalSpace returns the Intervals for \v, which the parser treats as
// this shorthand class both inside and outside a character class:
// vertical whitespace.
func VerticalSpace() *interval.Intervals {
	return interval.New(
		interval.NewInterval('\n', '\n'),
		interval.NewInterval('\r', '\r'),
		interval.NewInterval('\f', '\f'),
		interval.NewInterval(0x0B, 0x0B),
	)
}

// NotDigit returns the Intervals for \D: the complement of \d.
func NotDigit() *interval.Intervals { return Digit().Complement(interval.MaxCodepoint) }

// NotWord returns the Intervals for \W: the complement of \w.
func NotWord() *interval.Intervals { return Word().Complement(interval.MaxCodepoint) }

// NotSpace returns the Intervals for \S: the complement of \s.
func NotSpace() *interval.Intervals { return Space().Complement(interval.MaxCodepoint) }

// NotHorizontalSpace returns the Intervals for \H.
func NotHorizontalSpace() *interval.Intervals {
	return HorizontalSpace().Complement(interval.MaxCodepoint)
}

// NotVerticalSpace returns the Intervals for \V.
func NotVerticalSpace() *interval.Intervals {
	return VerticalSpace().Complement(interval.MaxCodepoint)
}

// NotNewline returns the Intervals for \N: any codepoint except '\n',
// the same set the unescaped '.' metaclass uses.
func NotNewline() *interval.Intervals {
	return &interval.Intervals{Neg: true, Ranges: []interval.Interval{interval.NewInterval('\n', '\n')}}
}

// Dot returns the Intervals for the '.' metaclass: everything but '\n'.
func Dot() *interval.Intervals { return NotNewline() }

// Posix returns the Intervals for a POSIX named class (e.g. "alnum"),
// and whether name was recognized.
func Posix(name string) (*interval.Intervals, bool) {
	switch name {
	case "alnum":
		return interval.New(interval.NewInterval('a', 'z'), interval.NewInterval('A', 'Z'), interval.NewInterval('0', '9')), true
	case "alpha":
		return interval.New(interval.NewInterval('a', 'z'), interval.NewInterval('A', 'Z')), true
	case "digit":
		return Digit(), true
	case "lower":
		return interval.New(interval.NewInterval('a', 'z')), true
	case "upper":
		return interval.New(interval.NewInterval('A', 'Z')), true
	case "space":
		return Space(), true
	case "punct":
		return interval.New(interval.NewInterval('!', '/'), interval.NewInterval(':', '@'),
			interval.NewInterval('[', '`'), interval.NewInterval('{', '~')), true
	case "blank":
		return HorizontalSpace(), true
	case "cntrl":
		return interval.New(interval.NewInterval(0x00, 0x1F), interval.NewInterval(0x7F, 0x7F)), true
	case "print":
		return interval.New(interval.NewInterval(0x20, 0x7E)), true
	case "graph":
		return interval.New(interval.NewInterval(0x21, 0x7E)), true
	case "xdigit":
		return interval.New(interval.NewInterval('0', '9'), interval.NewInterval('a', 'f'), interval.NewInterval('A', 'F')), true
	default:
		return nil, false
	}
}
