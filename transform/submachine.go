package transform

import "github.com/bru-go/bru/smir"

// FromStates builds the sub-machine induced by include: every state in
// include is copied (with its own actions), and a transition survives
// iff both its (non-Sentinel) endpoints are included.
func FromStates(m *smir.SMIR, include map[smir.StateID]bool) *smir.SMIR {
	out := smir.New(m.Regex)
	out.Subs = m.Subs
	remap := make(map[smir.StateID]smir.StateID, len(include))

	for _, sid := range sortedStates(m) {
		if !include[sid] {
			continue
		}
		st := m.State(sid)
		nid := out.AddState()
		for i := 0; i < st.Actions.Len(); i++ {
			out.StateAppendAction(nid, st.Actions.At(i))
		}
		remap[sid] = nid
	}

	endpointIncluded := func(id smir.StateID) (smir.StateID, bool) {
		if id == smir.Sentinel {
			return smir.Sentinel, true
		}
		nid, ok := remap[id]
		return nid, ok
	}

	for _, sid := range sortedStates(m) {
		if !include[sid] {
			continue
		}
		st := m.State(sid)
		nsrc := remap[sid]
		for _, tid := range st.Out {
			t := m.Transition(tid)
			ndst, ok := endpointIncluded(t.Dst)
			if !ok {
				continue
			}
			var ntid smir.TransitionID
			if t.Dst == smir.Sentinel {
				ntid = out.SetFinal(nsrc)
			} else {
				ntid = out.AddTransition(nsrc, ndst)
			}
			copyActions(out, ntid, t)
		}
	}

	for _, tid := range m.InitialFns {
		t := m.Transition(tid)
		ndst, ok := endpointIncluded(t.Dst)
		if !ok {
			continue
		}
		ntid := out.SetInitial(ndst)
		copyActions(out, ntid, t)
	}

	return out
}

// FromTransitions builds the sub-machine induced by a set of transitions:
// both endpoints of every included transition are pulled in
// automatically.
func FromTransitions(m *smir.SMIR, include map[smir.TransitionID]bool) *smir.SMIR {
	states := make(map[smir.StateID]bool)
	for _, sid := range m.States() {
		st := m.State(sid)
		for _, tid := range st.Out {
			if !include[tid] {
				continue
			}
			states[sid] = true
			if t := m.Transition(tid); t.Dst != smir.Sentinel {
				states[t.Dst] = true
			}
		}
	}
	for _, tid := range m.InitialFns {
		if !include[tid] {
			continue
		}
		if t := m.Transition(tid); t.Dst != smir.Sentinel {
			states[t.Dst] = true
		}
	}

	return withTransitionFilter(m, states, include)
}

// withTransitionFilter builds the sub-machine over exactly the named
// states and transitions (unlike FromStates, which keeps every
// transition between two included states rather than only named ones).
func withTransitionFilter(m *smir.SMIR, states map[smir.StateID]bool, include map[smir.TransitionID]bool) *smir.SMIR {
	out := smir.New(m.Regex)
	out.Subs = m.Subs
	remap := make(map[smir.StateID]smir.StateID, len(states))
	for _, sid := range sortedStates(m) {
		if !states[sid] {
			continue
		}
		st := m.State(sid)
		nid := out.AddState()
		for i := 0; i < st.Actions.Len(); i++ {
			out.StateAppendAction(nid, st.Actions.At(i))
		}
		remap[sid] = nid
	}
	for _, sid := range sortedStates(m) {
		if !states[sid] {
			continue
		}
		st := m.State(sid)
		for _, tid := range st.Out {
			if !include[tid] {
				continue
			}
			t := m.Transition(tid)
			var ntid smir.TransitionID
			if t.Dst == smir.Sentinel {
				ntid = out.SetFinal(remap[sid])
			} else {
				ntid = out.AddTransition(remap[sid], remap[t.Dst])
			}
			copyActions(out, ntid, t)
		}
	}
	for _, tid := range m.InitialFns {
		if !include[tid] {
			continue
		}
		t := m.Transition(tid)
		var ndst smir.StateID
		if t.Dst != smir.Sentinel {
			ndst = remap[t.Dst]
		}
		ntid := out.SetInitial(ndst)
		copyActions(out, ntid, t)
	}
	return out
}

func copyActions(out *smir.SMIR, ntid smir.TransitionID, src *smir.Transition) {
	for i := 0; i < src.Actions.Len(); i++ {
		out.TransAppendAction(ntid, src.Actions.At(i))
	}
}

// WithStates applies pred to every state of m to build the inclusion
// vector, then delegates to FromStates.
func WithStates(m *smir.SMIR, pred func(smir.StateID, *smir.State) bool) *smir.SMIR {
	include := make(map[smir.StateID]bool)
	for _, sid := range m.States() {
		if pred(sid, m.State(sid)) {
			include[sid] = true
		}
	}
	return FromStates(m, include)
}

// WithTransitions applies pred to every transition of m to build the
// inclusion set, then delegates to FromTransitions.
func WithTransitions(m *smir.SMIR, pred func(*smir.Transition) bool) *smir.SMIR {
	include := make(map[smir.TransitionID]bool)
	for _, sid := range m.States() {
		st := m.State(sid)
		for _, tid := range st.Out {
			if pred(m.Transition(tid)) {
				include[tid] = true
			}
		}
	}
	for _, tid := range m.InitialFns {
		if pred(m.Transition(tid)) {
			include[tid] = true
		}
	}
	return FromTransitions(m, include)
}
