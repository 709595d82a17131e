package transform

import (
	"strconv"

	"github.com/bru-go/bru/smir"
)

// PathEncode mutates m in place: for every state with >= 2 outgoing
// transitions, each transition is prepended with Write actions emitting
// the decimal index of that transition (within the state's Out list)
// followed by a space, so a successful run's byte stream traces which
// alternative was chosen at every branch point.
//
// This implementation runs against whatever SMIR it is handed
// (flattened or not) and only ever looks at a state's own Out list, so
// it composes with either.
func PathEncode(m *smir.SMIR) {
	for _, sid := range sortedStates(m) {
		st := m.State(sid)
		if len(st.Out) < 2 {
			continue
		}
		for idx, tid := range st.Out {
			prefix := indexWriteActions(idx)
			t := m.Transition(tid)
			t.Actions = *prependActions(prefix, &t.Actions)
		}
	}
}

func indexWriteActions(idx int) []smir.Action {
	digits := strconv.Itoa(idx)
	actions := make([]smir.Action, 0, len(digits)+1)
	for _, d := range digits {
		actions = append(actions, smir.ActionWrite(byte(d)))
	}
	actions = append(actions, smir.ActionWrite(' '))
	return actions
}

func prependActions(prefix []smir.Action, existing *smir.ActionList) *smir.ActionList {
	out := &smir.ActionList{}
	for _, a := range prefix {
		out.Append(a)
	}
	out.Concat(existing)
	return out
}
