// Package smir implements the state-machine intermediate representation:
// a uniform graph emitted by both NFA constructions (Thompson and
// Glushkov), transformed by optional passes, and lowered to bytecode by
// the compiler.
package smir

import "github.com/bru-go/bru/interval"

// StateID identifies a state. 0 is the virtual initial/final sentinel:
// transitions with Src == 0 are initial functions, transitions with
// Dst == 0 are terminal.
type StateID uint32

// Sentinel is the virtual initial/final state id.
const Sentinel StateID = 0

// TransitionID identifies a Transition uniquely and stably, independent
// of its position within any state's Out list and unchanged by Reorder.
type TransitionID uint32

// ActionKind tags an Action variant.
type ActionKind uint8

const (
	Begin ActionKind = iota
	End
	Char
	Pred
	Memo
	Save
	EpsChk
	EpsSet
	Write
	ZWA
)

func (k ActionKind) String() string {
	switch k {
	case Begin:
		return "Begin"
	case End:
		return "End"
	case Char:
		return "Char"
	case Pred:
		return "Pred"
	case Memo:
		return "Memo"
	case Save:
		return "Save"
	case EpsChk:
		return "EpsChk"
	case EpsSet:
		return "EpsSet"
	case Write:
		return "Write"
	case ZWA:
		return "ZWA"
	default:
		return "Unknown"
	}
}

// Action is one element of an ordered action list attached to a state or
// a transition. Only the field(s) relevant to Kind are meaningful.
type Action struct {
	Kind      ActionKind
	Ch        rune                // Char
	Intervals *interval.Intervals // Pred
	K         int                 // Memo / Save / EpsChk / EpsSet key; ZWA: index into SMIR.Subs
	Byte      byte                // Write
	Positive  bool                // ZWA: true = positive lookahead, false = negative
}

func ActionBegin() Action           { return Action{Kind: Begin} }
func ActionEnd() Action             { return Action{Kind: End} }
func ActionChar(ch rune) Action     { return Action{Kind: Char, Ch: ch} }
func ActionPred(iv *interval.Intervals) Action { return Action{Kind: Pred, Intervals: iv} }
func ActionMemo(k int) Action       { return Action{Kind: Memo, K: k} }
func ActionSave(k int) Action       { return Action{Kind: Save, K: k} }
func ActionEpsChk(k int) Action     { return Action{Kind: EpsChk, K: k} }
func ActionEpsSet(k int) Action     { return Action{Kind: EpsSet, K: k} }
func ActionWrite(b byte) Action     { return Action{Kind: Write, Byte: b} }

// ActionList is an ordered, append/prepend-only-in-bulk list of Actions.
// Concatenation and a remove-while-iterating cursor are the only other
// supported mutations.
type ActionList struct {
	items []Action
}

// Append adds a to the end of the list.
func (l *ActionList) Append(a Action) { l.items = append(l.items, a) }

// Prepend adds a to the front of the list.
func (l *ActionList) Prepend(a Action) {
	l.items = append([]Action{a}, l.items...)
}

// Concat appends other's items in order (smir_action_list_append as list
// concatenation) and returns the receiver for chaining.
func (l *ActionList) Concat(other *ActionList) *ActionList {
	if other == nil {
		return l
	}
	l.items = append(l.items, other.items...)
	return l
}

// ConcatFront prepends other's items in order.
func (l *ActionList) ConcatFront(other *ActionList) *ActionList {
	if other == nil {
		return l
	}
	l.items = append(append([]Action{}, other.items...), l.items...)
	return l
}

// Len returns the number of actions.
func (l *ActionList) Len() int { return len(l.items) }

// At returns the i'th action.
func (l *ActionList) At(i int) Action { return l.items[i] }

// Slice returns the underlying actions; callers must not mutate past the
// returned length.
func (l *ActionList) Slice() []Action { return l.items }

// Clone deep-copies the list (Intervals pointers are shared, mirroring
// SMIR ownership: Intervals is copied once into the compiled Program's aux
// arena, not per-clone).
func (l *ActionList) Clone() *ActionList {
	items := make([]Action, len(l.items))
	copy(items, l.items)
	return &ActionList{items: items}
}

// ActionIter walks an ActionList allowing in-place removal.
type ActionIter struct {
	list *ActionList
	pos  int
}

// Iter returns a fresh iterator over l.
func (l *ActionList) Iter() *ActionIter { return &ActionIter{list: l} }

// Next returns (action, true) and advances, or (zero, false) at the end.
func (it *ActionIter) Next() (Action, bool) {
	if it.pos >= len(it.list.items) {
		return Action{}, false
	}
	a := it.list.items[it.pos]
	it.pos++
	return a, true
}

// Remove deletes the action most recently returned by Next.
func (it *ActionIter) Remove() {
	if it.pos == 0 {
		return
	}
	idx := it.pos - 1
	it.list.items = append(it.list.items[:idx], it.list.items[idx+1:]...)
	it.pos--
}

// Transition is a directed edge between two states (or to/from the
// Sentinel) carrying an ordered action list executed when taken.
type Transition struct {
	ID      TransitionID
	Src     StateID
	Dst     StateID
	Actions ActionList
}

// Meta holds optional per-state compiler hooks. PreMeta/PostMeta are set by
// transformers (the write transformer, counter/memo lowering) and consumed
// by the compiler during action lowering.
type Meta struct {
	Pre  []Action
	Post []Action
}

// State is one SMIR state: its own action list plus its outgoing
// transitions in priority order (index 0 = highest priority).
type State struct {
	ID      StateID
	Actions ActionList
	Out     []TransitionID
	Meta    Meta
}

// SMIR is the full state machine: a regex's text (for diagnostics), its
// states, and the set of initial-function transitions.
type SMIR struct {
	Regex      string
	states     map[StateID]*State
	trans      map[TransitionID]*Transition
	nextState  StateID
	nextTrans  TransitionID
	InitialFns []TransitionID

	// Subs holds sub-machines referenced by ZWA actions (lookahead
	// bodies), each compiled independently and run recursively by the
	// VM.
	Subs []*SMIR
}

// New creates an empty SMIR for regex text src.
func New(src string) *SMIR {
	return &SMIR{
		Regex:     src,
		states:    make(map[StateID]*State),
		trans:     make(map[TransitionID]*Transition),
		nextState: 1,
	}
}

// AddState allocates a fresh state and returns its ID.
func (m *SMIR) AddState() StateID {
	id := m.nextState
	m.nextState++
	m.states[id] = &State{ID: id}
	return id
}

// State returns the state with the given id, or nil if it does not exist
// (including for Sentinel, which has no State record).
func (m *SMIR) State(id StateID) *State {
	return m.states[id]
}

// States returns all real (non-sentinel) state ids, unordered; callers
// needing a stable walk order sort them.
func (m *SMIR) States() []StateID {
	ids := make([]StateID, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	return ids
}

// NumStates returns the number of real states.
func (m *SMIR) NumStates() int { return len(m.states) }

func (m *SMIR) newTransition(src, dst StateID) *Transition {
	id := m.nextTrans
	m.nextTrans++
	t := &Transition{ID: id, Src: src, Dst: dst}
	m.trans[id] = t
	return t
}

// Transition returns the transition with the given id.
func (m *SMIR) Transition(id TransitionID) *Transition {
	return m.trans[id]
}

// AddTransition adds an ordinary transition from src to dst and appends it
// to src's Out list (lowest priority so far).
func (m *SMIR) AddTransition(src, dst StateID) TransitionID {
	t := m.newTransition(src, dst)
	if st := m.states[src]; st != nil {
		st.Out = append(st.Out, t.ID)
	}
	return t.ID
}

// PrependTransition is like AddTransition but gives the new transition the
// highest priority (index 0) in src's Out list.
func (m *SMIR) PrependTransition(src, dst StateID) TransitionID {
	t := m.newTransition(src, dst)
	if st := m.states[src]; st != nil {
		st.Out = append([]TransitionID{t.ID}, st.Out...)
	}
	return t.ID
}

// SetInitial registers sid as reachable from the virtual start and
// returns a fresh transition id whose actions run on entry.
func (m *SMIR) SetInitial(sid StateID) TransitionID {
	t := m.newTransition(Sentinel, sid)
	m.InitialFns = append(m.InitialFns, t.ID)
	return t.ID
}

// SetFinal marks sid as an accepting state by adding a terminal transition
// (Dst == Sentinel) to its Out list, returning the fresh transition id
// whose actions run on exit.
func (m *SMIR) SetFinal(sid StateID) TransitionID {
	return m.AddTransition(sid, Sentinel)
}

// StateAppendAction appends a to state sid's action list.
func (m *SMIR) StateAppendAction(sid StateID, a Action) {
	if st := m.states[sid]; st != nil {
		st.Actions.Append(a)
	}
}

// StatePrependAction prepends a to state sid's action list.
func (m *SMIR) StatePrependAction(sid StateID, a Action) {
	if st := m.states[sid]; st != nil {
		st.Actions.Prepend(a)
	}
}

// TransAppendAction appends a to transition tid's action list.
func (m *SMIR) TransAppendAction(tid TransitionID, a Action) {
	if t := m.trans[tid]; t != nil {
		t.Actions.Append(a)
	}
}

// TransPrependAction prepends a to transition tid's action list.
func (m *SMIR) TransPrependAction(tid TransitionID, a Action) {
	if t := m.trans[tid]; t != nil {
		t.Actions.Prepend(a)
	}
}

// Reorder applies a permutation to state IDs without invalidating any
// TransitionID's meaning: ordering maps old id -> new id for every real
// state; transitions' Src/Dst fields are rewritten in place, but their own
// IDs (and thus any external references to them) are unaffected.
func (m *SMIR) Reorder(ordering map[StateID]StateID) {
	newStates := make(map[StateID]*State, len(m.states))
	for old, st := range m.states {
		next, ok := ordering[old]
		if !ok {
			next = old
		}
		st.ID = next
		newStates[next] = st
	}
	m.states = newStates

	remap := func(id StateID) StateID {
		if id == Sentinel {
			return Sentinel
		}
		if next, ok := ordering[id]; ok {
			return next
		}
		return id
	}
	for _, t := range m.trans {
		t.Src = remap(t.Src)
		t.Dst = remap(t.Dst)
	}
}
