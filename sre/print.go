package sre

import (
	"fmt"
	"strings"
)

// Print renders n as a canonical, parenthesised tree, used by parser
// round-trip tests and by the `bru parse` CLI subcommand.
func Print(n *Node) string {
	var sb strings.Builder
	print1(&sb, n)
	return sb.String()
}

func print1(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case Epsilon:
		sb.WriteString("ε")
	case Caret:
		sb.WriteString("^")
	case Dollar:
		sb.WriteString("$")
	case Memoise:
		sb.WriteString("Memoise")
	case Literal:
		fmt.Fprintf(sb, "%c", n.Ch)
	case CC:
		sb.WriteString(n.Intervals.String())
	case Alt:
		sb.WriteString("Alt(")
		print1(sb, n.L)
		sb.WriteString(",")
		print1(sb, n.R)
		sb.WriteString(")")
	case Concat:
		sb.WriteString("Concat(")
		print1(sb, n.L)
		sb.WriteString(",")
		print1(sb, n.R)
		sb.WriteString(")")
	case Capture:
		fmt.Fprintf(sb, "Capture(%d,", n.Idx)
		print1(sb, n.Child)
		sb.WriteString(")")
	case Star:
		sb.WriteString("Star(")
		print1(sb, n.Child)
		fmt.Fprintf(sb, ",%v)", n.Greedy)
	case Plus:
		sb.WriteString("Plus(")
		print1(sb, n.Child)
		fmt.Fprintf(sb, ",%v)", n.Greedy)
	case Ques:
		sb.WriteString("Ques(")
		print1(sb, n.Child)
		fmt.Fprintf(sb, ",%v)", n.Greedy)
	case Counter:
		sb.WriteString("Counter(")
		print1(sb, n.Child)
		fmt.Fprintf(sb, ",%v,%d,%d)", n.Greedy, n.Min, n.Max)
	case Lookahead:
		sb.WriteString("Lookahead(")
		print1(sb, n.Child)
		fmt.Fprintf(sb, ",%v)", n.Positive)
	case Backreference:
		fmt.Fprintf(sb, "Backreference(%d)", n.RefIdx)
	default:
		sb.WriteString("?")
	}
}
