package sre

import (
	"testing"

	"github.com/bru-go/bru/interval"
)

func TestBuilderAssignsUniqueRIDs(t *testing.T) {
	b := NewBuilder()
	a := b.RegexLiteral('a')
	c := b.RegexLiteral('b')
	n := b.RegexBranch(true, a, c)
	seen := map[int]bool{}
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		if seen[node.RID] {
			t.Fatalf("duplicate RID %d", node.RID)
		}
		seen[node.RID] = true
		walk(node.L)
		walk(node.R)
		walk(node.Child)
	}
	walk(n)
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct RIDs, got %d", len(seen))
	}
}

func TestCloneDeepCopiesIntervals(t *testing.T) {
	b := NewBuilder()
	cc := b.RegexCC(interval.New(interval.NewInterval('a', 'z')))
	clone := b.Clone(cc)
	if clone.RID == cc.RID {
		t.Fatal("clone should get a fresh RID")
	}
	clone.Intervals.Ranges[0] = interval.NewInterval('0', '9')
	if cc.Intervals.Ranges[0] == interval.NewInterval('0', '9') {
		t.Fatal("clone mutated original Intervals")
	}
}

func TestPrintRoundTripShape(t *testing.T) {
	b := NewBuilder()
	n := b.RegexBranch(false, b.RegexLiteral('a'), b.RegexLiteral('b'))
	got := Print(n)
	want := "Concat(a,b)"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}

func TestRegexCounterInvariants(t *testing.T) {
	b := NewBuilder()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for min > max")
		}
	}()
	b.RegexCounter(b.RegexLiteral('a'), true, 5, 2)
}
