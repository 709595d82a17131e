// Package transform implements the optional SMIR-to-SMIR passes: memoisation
// (IN / CN / IAR), flatten (Thompson-only), path-encoding, and sub-machine
// extraction.
package transform

import "github.com/bru-go/bru/smir"

// MemoPolicy selects a memoisation annotation strategy.
type MemoPolicy int

const (
	// MemoNone applies no memoisation.
	MemoNone MemoPolicy = iota
	// MemoIN annotates every state with in-degree > 1.
	MemoIN
	// MemoCN annotates every back-edge target found by a DFS from the
	// initial state(s).
	MemoCN
	// MemoIAR is declared but not implemented; requesting it is a no-op.
	MemoIAR
)

// MemoResult reports how many states were annotated.
type MemoResult struct {
	Annotated int
}

// ApplyMemoisation mutates m in place per policy, prepending Memo(k)
// actions to the selected states with freshly allocated keys.
func ApplyMemoisation(m *smir.SMIR, policy MemoPolicy) MemoResult {
	switch policy {
	case MemoIN:
		return applyIN(m)
	case MemoCN:
		return applyCN(m)
	default:
		return MemoResult{}
	}
}

// allTransitions enumerates every transition in m, including initial
// functions sourced at the Sentinel (which aren't reachable through any
// state's Out list).
func allTransitions(m *smir.SMIR) []*smir.Transition {
	var out []*smir.Transition
	for _, sid := range m.States() {
		st := m.State(sid)
		for _, tid := range st.Out {
			out = append(out, m.Transition(tid))
		}
	}
	for _, tid := range m.InitialFns {
		out = append(out, m.Transition(tid))
	}
	return out
}

func applyIN(m *smir.SMIR) MemoResult {
	indeg := make(map[smir.StateID]int)
	for _, t := range allTransitions(m) {
		if t.Dst != smir.Sentinel {
			indeg[t.Dst]++
		}
	}

	next := 0
	annotated := 0
	for _, sid := range sortedStates(m) {
		if indeg[sid] <= 1 {
			continue
		}
		m.StatePrependAction(sid, smir.ActionMemo(next))
		next++
		annotated++
	}
	return MemoResult{Annotated: annotated}
}

func applyCN(m *smir.SMIR) MemoResult {
	onPath := make(map[smir.StateID]bool)
	visited := make(map[smir.StateID]bool)
	backEdgeTargets := make(map[smir.StateID]bool)

	var dfs func(sid smir.StateID)
	dfs = func(sid smir.StateID) {
		if onPath[sid] {
			backEdgeTargets[sid] = true
			return
		}
		if visited[sid] {
			return
		}
		visited[sid] = true
		onPath[sid] = true
		st := m.State(sid)
		for _, tid := range st.Out {
			t := m.Transition(tid)
			if t.Dst != smir.Sentinel {
				dfs(t.Dst)
			}
		}
		onPath[sid] = false
	}

	for _, tid := range m.InitialFns {
		t := m.Transition(tid)
		if t.Dst != smir.Sentinel {
			dfs(t.Dst)
		}
	}

	next := 0
	annotated := 0
	for _, sid := range sortedStates(m) {
		if !backEdgeTargets[sid] {
			continue
		}
		m.StatePrependAction(sid, smir.ActionMemo(next))
		next++
		annotated++
	}
	return MemoResult{Annotated: annotated}
}

func sortedStates(m *smir.SMIR) []smir.StateID {
	ids := m.States()
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
