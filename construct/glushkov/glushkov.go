// Package glushkov builds a position automaton SMIR directly from an SRE
// tree: one state per consuming-or-zero-width leaf ("position"), no
// epsilon states, fewer states than Thompson.
package glushkov

import (
	"fmt"

	"github.com/bru-go/bru/smir"
	"github.com/bru-go/bru/sre"
)

// Error reports a construction failure: an SRE kind Glushkov cannot
// compile.
type Error struct {
	Kind sre.Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("glushkov: cannot construct %s: %s", e.Kind, e.Msg)
}

// posEntry pairs a position with the ordered actions that must run when
// a transition lands on it via this particular first/last/follow
// occurrence.
type posEntry struct {
	pos     int
	actions []smir.Action
}

func clonePosEntries(in []posEntry) []posEntry {
	out := make([]posEntry, len(in))
	copy(out, in)
	return out
}

func withPrefix(in []posEntry, prefix []smir.Action) []posEntry {
	if len(prefix) == 0 {
		return clonePosEntries(in)
	}
	out := make([]posEntry, len(in))
	for i, e := range in {
		acts := make([]smir.Action, 0, len(prefix)+len(e.actions))
		acts = append(acts, prefix...)
		acts = append(acts, e.actions...)
		out[i] = posEntry{pos: e.pos, actions: acts}
	}
	return out
}

func withSuffix(in []posEntry, suffix []smir.Action) []posEntry {
	if len(suffix) == 0 {
		return clonePosEntries(in)
	}
	out := make([]posEntry, len(in))
	for i, e := range in {
		acts := make([]smir.Action, 0, len(e.actions)+len(suffix))
		acts = append(acts, e.actions...)
		acts = append(acts, suffix...)
		out[i] = posEntry{pos: e.pos, actions: acts}
	}
	return out
}

// frag is the result of constructing a sub-expression: its first and last
// position sets, nullability, and — when nullable — the action list that
// must fire for its own empty match (the "gamma" path).
type frag struct {
	first    []posEntry
	last     []posEntry
	nullable bool
	gamma    []smir.Action
}

type rfa struct {
	positions []smir.Action // positions[i] = the leaf action for position i (1-based; 0 unused)
	follow    map[int][]posEntry
}

func newRfa() *rfa {
	return &rfa{
		positions: []smir.Action{{}}, // index 0 unused
		follow:    make(map[int][]posEntry),
	}
}

func (r *rfa) newPosition(a smir.Action) int {
	pos := len(r.positions)
	r.positions = append(r.positions, a)
	return pos
}

func (r *rfa) addFollow(from int, entries []posEntry) {
	r.follow[from] = append(r.follow[from], entries...)
}

// Construct lowers root into a position-automaton SMIR.
func Construct(root *sre.Node) (*smir.SMIR, error) {
	r := newRfa()
	f, err := r.build(root)
	if err != nil {
		return nil, err
	}

	m := smir.New("")
	stateOf := make([]smir.StateID, len(r.positions))
	for i := 1; i < len(r.positions); i++ {
		stateOf[i] = m.AddState()
		m.StateAppendAction(stateOf[i], r.positions[i])
	}
	for from, entries := range r.follow {
		entries = mergeDuplicatePositions(entries)
		for _, e := range entries {
			tid := m.AddTransition(stateOf[from], stateOf[e.pos])
			for _, a := range e.actions {
				m.TransAppendAction(tid, a)
			}
		}
	}
	firstEntries := mergeDuplicatePositions(f.first)
	for _, e := range firstEntries {
		tid := m.SetInitial(stateOf[e.pos])
		for _, a := range e.actions {
			m.TransAppendAction(tid, a)
		}
	}
	for _, e := range f.last {
		m.SetFinal(stateOf[e.pos])
	}
	if f.nullable {
		tid := m.SetInitial(smir.Sentinel)
		for _, a := range f.gamma {
			m.TransAppendAction(tid, a)
		}
	}
	return m, nil
}

// mergeDuplicatePositions implements rfa_merge_outgoing: de-duplicates
// positions that appear more than once in a follow/first list, keeping
// the first (higher-priority) occurrence.
func mergeDuplicatePositions(entries []posEntry) []posEntry {
	seen := make(map[int]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.pos] {
			continue
		}
		seen[e.pos] = true
		out = append(out, e)
	}
	return out
}

func (r *rfa) build(n *sre.Node) (frag, error) {
	switch n.Kind {
	case sre.Epsilon, sre.Memoise:
		var acts []smir.Action
		if n.Kind == sre.Memoise {
			acts = []smir.Action{{Kind: smir.Memo, K: n.RID}}
		}
		return frag{nullable: true, gamma: acts}, nil

	case sre.Caret:
		pos := r.newPosition(smir.ActionBegin())
		return frag{first: []posEntry{{pos: pos}}, last: []posEntry{{pos: pos}}}, nil

	case sre.Dollar:
		pos := r.newPosition(smir.ActionEnd())
		return frag{first: []posEntry{{pos: pos}}, last: []posEntry{{pos: pos}}}, nil

	case sre.Literal:
		pos := r.newPosition(smir.ActionChar(n.Ch))
		return frag{first: []posEntry{{pos: pos}}, last: []posEntry{{pos: pos}}}, nil

	case sre.CC:
		pos := r.newPosition(smir.ActionPred(n.Intervals))
		return frag{first: []posEntry{{pos: pos}}, last: []posEntry{{pos: pos}}}, nil

	case sre.Alt:
		return r.buildAlt(n)

	case sre.Concat:
		return r.buildConcat(n)

	case sre.Capture:
		return r.buildCapture(n)

	case sre.Star, sre.Plus, sre.Ques:
		return r.buildRepetition(n)

	case sre.Counter:
		return frag{}, &Error{Kind: n.Kind, Msg: "counters are not supported under Glushkov construction"}

	case sre.Lookahead:
		return frag{}, &Error{Kind: n.Kind, Msg: "lookahead is not supported under Glushkov construction"}

	case sre.Backreference:
		return frag{}, &Error{Kind: n.Kind, Msg: "backreferences are unsupported"}

	default:
		return frag{}, &Error{Kind: n.Kind, Msg: "unknown SRE kind"}
	}
}

func (r *rfa) buildAlt(n *sre.Node) (frag, error) {
	fl, err := r.build(n.L)
	if err != nil {
		return frag{}, err
	}
	fr, err := r.build(n.R)
	if err != nil {
		return frag{}, err
	}
	out := frag{
		first:    append(clonePosEntries(fl.first), fr.first...),
		last:     append(clonePosEntries(fl.last), fr.last...),
		nullable: fl.nullable || fr.nullable,
	}
	switch {
	case fl.nullable:
		out.gamma = fl.gamma
	case fr.nullable:
		out.gamma = fr.gamma
	}
	return out, nil
}

func (r *rfa) buildConcat(n *sre.Node) (frag, error) {
	fl, err := r.build(n.L)
	if err != nil {
		return frag{}, err
	}
	fr, err := r.build(n.R)
	if err != nil {
		return frag{}, err
	}
	for _, p := range fl.last {
		r.addFollow(p.pos, fr.first)
	}

	out := frag{nullable: fl.nullable && fr.nullable}
	out.first = clonePosEntries(fl.first)
	if fl.nullable {
		out.first = append(out.first, withPrefix(fr.first, fl.gamma)...)
	}
	out.last = clonePosEntries(fr.last)
	if fr.nullable {
		out.last = append(out.last, withSuffix(fl.last, fr.gamma)...)
	}
	if out.nullable {
		out.gamma = append(append([]smir.Action{}, fl.gamma...), fr.gamma...)
	}
	return out, nil
}

func (r *rfa) buildCapture(n *sre.Node) (frag, error) {
	fc, err := r.build(n.Child)
	if err != nil {
		return frag{}, err
	}
	open := smir.ActionSave(2 * n.Idx)
	closeAct := smir.ActionSave(2*n.Idx + 1)
	out := frag{
		first:    withPrefix(fc.first, []smir.Action{open}),
		last:     withSuffix(fc.last, []smir.Action{closeAct}),
		nullable: fc.nullable,
	}
	if fc.nullable {
		acts := []smir.Action{open}
		acts = append(acts, fc.gamma...)
		acts = append(acts, closeAct)
		out.gamma = acts
	}
	return out, nil
}

func (r *rfa) buildRepetition(n *sre.Node) (frag, error) {
	fc, err := r.build(n.Child)
	if err != nil {
		return frag{}, err
	}

	switch n.Kind {
	case sre.Ques:
		return frag{first: clonePosEntries(fc.first), last: clonePosEntries(fc.last), nullable: true}, nil

	case sre.Star, sre.Plus:
		guard := []smir.Action{smir.ActionEpsChk(n.RID), smir.ActionEpsSet(n.RID)}
		looped := withPrefix(fc.first, guard)
		for _, p := range fc.last {
			r.addFollow(p.pos, looped)
		}
		out := frag{last: clonePosEntries(fc.last)}
		if n.Kind == sre.Star {
			out.first = withPrefix(fc.first, []smir.Action{smir.ActionEpsSet(n.RID)})
			out.nullable = true
			out.gamma = nil
		} else {
			out.first = clonePosEntries(fc.first)
			out.nullable = fc.nullable
			out.gamma = fc.gamma
		}
		return out, nil

	default:
		return frag{}, &Error{Kind: n.Kind, Msg: "not a repetition kind"}
	}
}
