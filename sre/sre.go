// Package sre implements the regex AST ("SRE" — sub-regular-expression
// tree): a sum-typed tree with shared construction, cloning, and printing,
// produced by the parser and consumed by the NFA constructions.
package sre

import "github.com/bru-go/bru/interval"

// Kind tags the variant of a Node.
type Kind uint8

const (
	Epsilon Kind = iota
	Caret
	Dollar
	Memoise
	Literal
	CC
	Alt
	Concat
	Capture
	Star
	Plus
	Ques
	Counter
	Lookahead
	Backreference
)

func (k Kind) String() string {
	switch k {
	case Epsilon:
		return "Epsilon"
	case Caret:
		return "Caret"
	case Dollar:
		return "Dollar"
	case Memoise:
		return "Memoise"
	case Literal:
		return "Literal"
	case CC:
		return "CC"
	case Alt:
		return "Alt"
	case Concat:
		return "Concat"
	case Capture:
		return "Capture"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case Ques:
		return "Ques"
	case Counter:
		return "Counter"
	case Lookahead:
		return "Lookahead"
	case Backreference:
		return "Backreference"
	default:
		return "Unknown"
	}
}

// CounterMax bounds a Counter node's Max field.
const CounterMax = 1 << 16

// Node is a tagged-union AST node. Only the fields relevant to Kind are
// populated; dedicated constructors in construct.go are the only
// supported way to build one, so every kind's mandatory fields are always
// present.
type Node struct {
	Kind Kind

	// RID is a monotonically-assigned id unique across a parse, used by
	// transformers to map AST nodes to memory slots (epsilon-loop guards,
	// memoisation keys).
	RID int

	// Literal
	Ch rune

	// CC
	Intervals *interval.Intervals

	// Alt, Concat
	L, R *Node

	// Capture
	Idx   int
	Child *Node

	// Star, Plus, Ques, Counter
	Greedy bool

	// Counter
	Min, Max int

	// Lookahead
	Positive bool

	// Backreference
	RefIdx int
}

// IsNil reports whether n is the nil pointer (helper for readability at
// call sites that walk optional children).
func (n *Node) IsNil() bool { return n == nil }
