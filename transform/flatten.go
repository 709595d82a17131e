package transform

import "github.com/bru-go/bru/smir"

// FlattenResult reports statistics from a Flatten pass.
type FlattenResult struct {
	EliminatedPaths int
}

// isConsuming reports whether st carries a Char or Pred action — the
// flatten pass's definition of a state that carries a consuming action.
func isConsuming(st *smir.State) bool {
	for i := 0; i < st.Actions.Len(); i++ {
		if k := st.Actions.At(i).Kind; k == smir.Char || k == smir.Pred {
			return true
		}
	}
	return false
}

func stripEpsGuards(actions []smir.Action) []smir.Action {
	out := make([]smir.Action, 0, len(actions))
	for _, a := range actions {
		if a.Kind == smir.EpsSet || a.Kind == smir.EpsChk {
			continue
		}
		out = append(out, a)
	}
	return out
}

// signature computes the ZWA-signature used to decide whether two
// transitions into the same destination can be collapsed: the set of
// Begin/End flags present.
func signature(actions []smir.Action) (hasBegin, hasEnd bool) {
	for _, a := range actions {
		switch a.Kind {
		case smir.Begin:
			hasBegin = true
		case smir.End:
			hasEnd = true
		}
	}
	return
}

// flattener holds the mutable state of a single Flatten run.
type flattener struct {
	old        *smir.SMIR
	out        *smir.SMIR
	consuming  map[smir.StateID]smir.StateID // old consuming-state id -> new state id
	eliminated int
}

// Flatten runs the Thompson-only flatten pass: produces an
// equivalent SMIR whose every state carries a consuming action and every
// zero-width action lives on a transition.
func Flatten(m *smir.SMIR) (*smir.SMIR, FlattenResult) {
	f := &flattener{
		old:       m,
		out:       smir.New(m.Regex),
		consuming: make(map[smir.StateID]smir.StateID),
	}
	f.out.Subs = m.Subs

	for _, tid := range m.InitialFns {
		t := m.Transition(tid)
		f.walkFromRoot(t.Dst, append([]smir.Action{}, t.Actions.Slice()...), map[int]bool{}, map[smir.StateID]bool{})
	}

	return f.out, FlattenResult{EliminatedPaths: f.eliminated}
}

// materialize returns (creating if needed) the new output state mirroring
// old consuming state cur, copying its own actions onto the new state.
func (f *flattener) materialize(cur smir.StateID) smir.StateID {
	if id, ok := f.consuming[cur]; ok {
		return id
	}
	st := f.old.State(cur)
	id := f.out.AddState()
	for _, a := range stripEpsGuards(st.Actions.Slice()) {
		f.out.StateAppendAction(id, a)
	}
	f.consuming[cur] = id
	f.exploreFrom(cur, id)
	return id
}

// walkFromRoot explores from an initial-function target, eventually
// registering either a materialized consuming state as an initial state
// or an immediate accept (an initial function that matches empty).
func (f *flattener) walkFromRoot(cur smir.StateID, accum []smir.Action, epsSeen map[int]bool, visiting map[smir.StateID]bool) {
	f.walkOnward(cur, accum, epsSeen, visiting, func(targetOld smir.StateID, isFinal bool, path []smir.Action) {
		if isFinal {
			// No consuming state on this path at all: the machine
			// accepts empty input via a single zero-width state.
			id := f.out.AddState()
			tid := f.out.SetInitial(id)
			for _, a := range stripEpsGuards(path) {
				f.out.TransAppendAction(tid, a)
			}
			f.out.SetFinal(id)
			return
		}
		outID := f.materialize(targetOld)
		tid := f.out.SetInitial(outID)
		for _, a := range stripEpsGuards(path) {
			f.out.TransAppendAction(tid, a)
		}
	})
}

// exploreFrom walks every outgoing transition of old consuming state cur
// (now materialized as outID), emitting one collapsed output transition
// per distinct reachable consuming state or final acceptance.
func (f *flattener) exploreFrom(cur smir.StateID, outID smir.StateID) {
	st := f.old.State(cur)
	if st == nil {
		return
	}
	type pending struct {
		targetOld smir.StateID
		isFinal   bool
		path      []smir.Action
	}
	var results []pending

	for _, tid := range st.Out {
		t := f.old.Transition(tid)
		accum := append([]smir.Action{}, t.Actions.Slice()...)
		f.walkOnward(t.Dst, accum, map[int]bool{}, map[smir.StateID]bool{}, func(targetOld smir.StateID, isFinal bool, path []smir.Action) {
			results = append(results, pending{targetOld: targetOld, isFinal: isFinal, path: path})
		})
	}

	seen := make(map[smir.StateID]struct{})
	seenFinal := false
	for _, r := range results {
		path := stripEpsGuards(r.path)
		if r.isFinal {
			if seenFinal {
				continue
			}
			hb, he := signature(path)
			if collapseMatches(f.out, outID, smir.Sentinel, hb, he) {
				continue
			}
			seenFinal = true
			tid := f.out.SetFinal(outID)
			for _, a := range path {
				f.out.TransAppendAction(tid, a)
			}
			continue
		}
		dstOut := f.materialize(r.targetOld)
		if _, ok := seen[dstOut]; ok {
			continue
		}
		hb, he := signature(path)
		if collapseMatches(f.out, outID, dstOut, hb, he) {
			continue
		}
		seen[dstOut] = struct{}{}
		tid := f.out.AddTransition(outID, dstOut)
		for _, a := range path {
			f.out.TransAppendAction(tid, a)
		}
	}
}

// collapseMatches reports whether an existing outgoing transition from
// src to dst with the same ZWA-signature already exists, in which case
// the caller should drop the duplicate.
func collapseMatches(m *smir.SMIR, src, dst smir.StateID, hb, he bool) bool {
	st := m.State(src)
	if st == nil {
		return false
	}
	for _, tid := range st.Out {
		t := m.Transition(tid)
		if t.Dst != dst {
			continue
		}
		ehb, ehe := signature(t.Actions.Slice())
		if ehb == hb && ehe == he {
			return true
		}
	}
	return false
}

// walkOnward performs the zero-width DFS from a non-consuming old state,
// invoking emit once per path that reaches a consuming state or the
// virtual final. Paths whose accumulated actions run EpsChk(k) after
// EpsSet(k) can never fire and are abandoned.
func (f *flattener) walkOnward(cur smir.StateID, accum []smir.Action, epsSeen map[int]bool, visiting map[smir.StateID]bool, emit func(targetOld smir.StateID, isFinal bool, path []smir.Action)) {
	if cur == smir.Sentinel {
		emit(smir.Sentinel, true, accum)
		return
	}
	if visiting[cur] {
		// A zero-width cycle not already broken by an EpsSet/EpsChk pair:
		// defensively abandon rather than loop forever.
		f.eliminated++
		return
	}
	st := f.old.State(cur)
	if st == nil {
		return
	}

	// Check this state's own actions for the abandon condition and
	// append them to the accumulated path.
	seen := cloneEpsSeen(epsSeen)
	path := append([]smir.Action{}, accum...)
	for i := 0; i < st.Actions.Len(); i++ {
		a := st.Actions.At(i)
		if a.Kind == smir.EpsChk && seen[a.K] {
			f.eliminated++
			return
		}
		if a.Kind == smir.EpsSet {
			seen[a.K] = true
		}
		path = append(path, a)
	}

	if isConsuming(st) {
		emit(cur, false, path)
		return
	}

	visiting2 := cloneVisiting(visiting)
	visiting2[cur] = true
	for _, tid := range st.Out {
		t := f.old.Transition(tid)
		branchSeen := cloneEpsSeen(seen)
		branchPath := append([]smir.Action{}, path...)
		abandoned := false
		for _, a := range t.Actions.Slice() {
			if a.Kind == smir.EpsChk && branchSeen[a.K] {
				f.eliminated++
				abandoned = true
				break
			}
			if a.Kind == smir.EpsSet {
				branchSeen[a.K] = true
			}
			branchPath = append(branchPath, a)
		}
		if abandoned {
			continue
		}
		f.walkOnward(t.Dst, branchPath, branchSeen, visiting2, emit)
	}
}

func cloneEpsSeen(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneVisiting(m map[smir.StateID]bool) map[smir.StateID]bool {
	out := make(map[smir.StateID]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
