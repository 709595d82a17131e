package transform

import (
	"testing"

	"github.com/bru-go/bru/construct/thompson"
	"github.com/bru-go/bru/parser"
	"github.com/bru-go/bru/smir"
)

func buildSMIR(t *testing.T, pattern string) *smir.SMIR {
	t.Helper()
	root, res := parser.Parse(pattern, parser.DefaultOptions())
	if res.Code != parser.Success && res.Code != parser.Unsupported {
		t.Fatalf("parser.Parse(%q) failed: %v", pattern, res.Code)
	}
	m, err := thompson.Construct(root, thompson.Options{Semantics: thompson.PCRE})
	if err != nil {
		t.Fatalf("thompson.Construct(%q): %v", pattern, err)
	}
	return m
}

func countConsuming(m *smir.SMIR) int {
	n := 0
	for _, sid := range m.States() {
		if isConsuming(m.State(sid)) {
			n++
		}
	}
	return n
}

func TestFlattenEveryStateConsuming(t *testing.T) {
	m := buildSMIR(t, "a(b|c)*d")
	out, _ := Flatten(m)
	for _, sid := range out.States() {
		st := out.State(sid)
		if !isConsuming(st) {
			t.Errorf("flattened state %d is not consuming: actions=%v", sid, st.Actions.Slice())
		}
	}
}

func TestFlattenNoZeroWidthActionsOnTransitions(t *testing.T) {
	m := buildSMIR(t, "ab")
	out, _ := Flatten(m)
	for _, sid := range out.States() {
		st := out.State(sid)
		for _, tid := range st.Out {
			tr := out.Transition(tid)
			for _, a := range tr.Actions.Slice() {
				if a.Kind == smir.EpsSet || a.Kind == smir.EpsChk {
					t.Errorf("transition %d carries an eps-guard action after flatten: %v", tid, a)
				}
			}
		}
	}
}

func TestFlattenEpsilonLoopAbandonsRepeatedPath(t *testing.T) {
	// (a?)* has an epsilon-loop guard; flatten must terminate (not hang)
	// and must report at least the would-be-infinite path as eliminated.
	m := buildSMIR(t, "(a?)*")
	out, res := Flatten(m)
	if out == nil {
		t.Fatal("Flatten returned nil")
	}
	if res.EliminatedPaths == 0 {
		t.Error("expected at least one eliminated path for (a?)*")
	}
}

func TestMemoIN(t *testing.T) {
	m := buildSMIR(t, "a|a")
	res := ApplyMemoisation(m, MemoIN)
	if res.Annotated == 0 {
		t.Error("expected MemoIN to annotate at least one merge point")
	}
}

func TestMemoCNDetectsBackEdge(t *testing.T) {
	m := buildSMIR(t, "a*")
	res := ApplyMemoisation(m, MemoCN)
	if res.Annotated == 0 {
		t.Error("expected MemoCN to annotate the back-edge target of a*")
	}
}

func TestMemoIARIsNoOp(t *testing.T) {
	m := buildSMIR(t, "a*")
	before := countConsuming(m)
	res := ApplyMemoisation(m, MemoIAR)
	if res.Annotated != 0 {
		t.Errorf("MemoIAR annotated %d states, want 0 (no-op)", res.Annotated)
	}
	if after := countConsuming(m); after != before {
		t.Errorf("MemoIAR changed consuming-state count: %d -> %d", before, after)
	}
}

func TestPathEncodeOnlyBranchingStates(t *testing.T) {
	m := buildSMIR(t, "a|b")
	PathEncode(m)
	found := false
	for _, sid := range m.States() {
		st := m.State(sid)
		if len(st.Out) < 2 {
			continue
		}
		found = true
		for _, tid := range st.Out {
			tr := m.Transition(tid)
			if tr.Actions.Len() == 0 || tr.Actions.At(0).Kind != smir.Write {
				t.Errorf("branch transition %d missing leading Write action", tid)
			}
		}
	}
	if !found {
		t.Fatal("no branching state found in a|b SMIR")
	}
}

func TestFromStatesInducedSubgraph(t *testing.T) {
	m := buildSMIR(t, "ab")
	all := m.States()
	include := map[smir.StateID]bool{}
	for _, sid := range all[:1] {
		include[sid] = true
	}
	sub := FromStates(m, include)
	if sub.NumStates() != 1 {
		t.Errorf("FromStates() produced %d states, want 1", sub.NumStates())
	}
}

func TestWithStatesPredicate(t *testing.T) {
	m := buildSMIR(t, "a|b")
	sub := WithStates(m, func(_ smir.StateID, st *smir.State) bool {
		return isConsuming(st)
	})
	for _, sid := range sub.States() {
		if !isConsuming(sub.State(sid)) {
			t.Errorf("WithStates kept a non-consuming state %d", sid)
		}
	}
}
