package glushkov

import (
	"testing"

	"github.com/bru-go/bru/sre"
)

func TestConstructLiteralSingleState(t *testing.T) {
	b := sre.NewBuilder()
	n := b.RegexLiteral('a')
	m, err := Construct(n)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumStates() != 1 {
		t.Fatalf("expected 1 state (1 position), got %d", m.NumStates())
	}
	if len(m.InitialFns) != 1 {
		t.Fatalf("expected 1 initial function, got %d", len(m.InitialFns))
	}
}

func TestConstructConcatFollowEdge(t *testing.T) {
	b := sre.NewBuilder()
	n := b.RegexBranch(false, b.RegexLiteral('a'), b.RegexLiteral('b'))
	m, err := Construct(n)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumStates() != 2 {
		t.Fatalf("expected 2 positions for 'ab', got %d", m.NumStates())
	}
	// Exactly one state should have a transition to another position (the
	// 'a' position's follow edge to 'b'); 'b' only has its terminal
	// transition to the sentinel.
	withOut := 0
	for _, sid := range m.States() {
		for _, tid := range m.State(sid).Out {
			if m.Transition(tid).Dst != 0 {
				withOut++
				break
			}
		}
	}
	if withOut != 1 {
		t.Fatalf("expected exactly 1 state with a follow edge, got %d", withOut)
	}
}

func TestConstructStarNullable(t *testing.T) {
	b := sre.NewBuilder()
	n := b.RegexRepetition("*", b.RegexLiteral('a'), true)
	m, err := Construct(n)
	if err != nil {
		t.Fatal(err)
	}
	// A nullable whole-regex has an initial function straight to the sentinel.
	foundEmptyPath := false
	for _, tid := range m.InitialFns {
		tr := m.Transition(tid)
		if tr.Dst == 0 {
			foundEmptyPath = true
		}
	}
	if !foundEmptyPath {
		t.Fatal("expected an initial-to-sentinel transition for a nullable star")
	}
}

func TestConstructRejectsCounterAndLookahead(t *testing.T) {
	b := sre.NewBuilder()
	counter := b.RegexCounter(b.RegexLiteral('a'), true, 1, 3)
	if _, err := Construct(counter); err == nil {
		t.Fatal("expected error constructing Counter under Glushkov")
	}

	look := b.RegexLookahead(b.RegexLiteral('a'), true)
	if _, err := Construct(look); err == nil {
		t.Fatal("expected error constructing Lookahead under Glushkov")
	}
}
