// Package compiler lowers an SMIR into a bytecode.Program:
// a two-pass layout (entry-offset recording, then branch-target patching)
// plus action lowering that de-duplicates Memo/EpsSet/EpsChk keys into
// compact thread-memory and memoisation-table indices.
package compiler

import (
	"fmt"
	"sort"

	"github.com/bru-go/bru/bytecode"
	"github.com/bru-go/bru/smir"
)

// Options configures layout choices the compiler makes beyond what the
// SMIR already dictates.
type Options struct {
	// OnlyStdSplit forces every multi-way branch (3+ out-edges) to lower
	// to a right-leaning chain of binary splits instead of a single
	// tswitch, matching engines without native n-way fork support.
	OnlyStdSplit bool

	// MarkStates emits a `state` instruction at the start of every
	// compiled state's body, a no-op debug boundary marker.
	MarkStates bool
}

// Error reports a state the compiler cannot lower.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "compiler: " + e.Msg }

// Compile lowers m into a fresh Program.
func Compile(m *smir.SMIR, opts Options) (*bytecode.Program, error) {
	prog := bytecode.New(m.Regex)
	c := &compiler{
		prog:     prog,
		w:        bytecode.NewWriter(prog),
		opts:     opts,
		memoKeys: make(map[int]int),
		epsKeys:  make(map[int]int),
		maxSave:  -1,
	}
	if err := c.compileMachine(m); err != nil {
		return nil, err
	}
	prog.NMemoInsts = len(c.memoKeys)
	prog.ThreadMemLen = len(c.epsKeys)
	prog.NCaptures = 1 // group 0 is always counted
	if c.maxSave >= 0 {
		prog.NCaptures = c.maxSave/2 + 1
	}
	return prog, nil
}

type compiler struct {
	prog *bytecode.Program
	w    *bytecode.Writer
	opts Options

	memoKeys map[int]int // smir rid -> compact memo-table index
	epsKeys  map[int]int // smir rid -> compact thread-memory slot
	maxSave  int         // highest Save slot index seen, for NCaptures
}

func (c *compiler) memoKey(rid int) int {
	if idx, ok := c.memoKeys[rid]; ok {
		return idx
	}
	idx := len(c.memoKeys)
	c.memoKeys[rid] = idx
	return idx
}

func (c *compiler) epsKey(rid int) int {
	if idx, ok := c.epsKeys[rid]; ok {
		return idx
	}
	idx := len(c.epsKeys)
	c.epsKeys[rid] = idx
	return idx
}

// compileMachine performs a self-contained two-pass compile of sm,
// appending instructions at the writer's current position. It is called
// once for the top-level SMIR and recursively for every lookahead body
// referenced by a ZWA action, sharing
// the outer memo/eps key spaces (SRE RIDs are unique across the whole
// parse, including inside lookahead subtrees) but using entry/exit maps
// scoped to this call since StateIDs are only unique within one SMIR.
func (c *compiler) compileMachine(sm *smir.SMIR) error {
	// The dispatch over InitialFns must be the very first thing emitted:
	// it is this machine's entry point (pc 0 for the top-level program;
	// the position a ZWA action's bodyEntry captures for a sub-machine).
	// Its targets aren't known yet, so only its patch sites are reserved
	// here — patching happens in the pass-2 section below, alongside
	// every other transition, once all state entries are known.
	initSites := c.emitBranch(len(sm.InitialFns))

	order := sortedStateIDs(sm)
	entry := make(map[smir.StateID]int, len(order))

	// Pass 1: record entry offsets, emit bodies and branch dispatches.
	branchSites := make(map[smir.StateID][]int)
	for _, sid := range order {
		st := sm.State(sid)
		entry[sid] = c.w.Len()
		if c.opts.MarkStates {
			c.w.State()
		}
		for _, a := range st.Meta.Pre {
			if err := c.emitAction(sm, a); err != nil {
				return err
			}
		}
		for i := 0; i < st.Actions.Len(); i++ {
			if err := c.emitAction(sm, st.Actions.At(i)); err != nil {
				return err
			}
		}
		for _, a := range st.Meta.Post {
			if err := c.emitAction(sm, a); err != nil {
				return err
			}
		}
		branchSites[sid] = c.emitBranch(len(st.Out))
	}

	matchPC := c.w.Len()
	c.w.Match()

	// Pass 2: patch every transition's branch slot (or a freshly emitted
	// action trampoline) to its destination.
	for i, tid := range sm.InitialFns {
		if err := c.patchTransition(sm, initSites[i], sm.Transition(tid), entry, matchPC); err != nil {
			return err
		}
	}
	for _, sid := range order {
		st := sm.State(sid)
		sites := branchSites[sid]
		for i, tid := range st.Out {
			if err := c.patchTransition(sm, sites[i], sm.Transition(tid), entry, matchPC); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitBranch reserves the control-transfer slot(s) for n prioritized
// out-edges by degree (0/1/2/n-way), and returns one patch site per
// edge in priority order. n == 0 returns nil (nothing reserved).
// n == 1 reserves a single jmp (redirected to a trampoline or straight to
// the destination in pass 2; the zero-action/adjacent-target case is
// collapsed away when patching, not here, since the destination's final
// offset is only known once Pass 2 runs).
func (c *compiler) emitBranch(n int) []int {
	switch {
	case n == 0:
		return nil
	case n == 1:
		return []int{c.w.Jmp()}
	case n == 2:
		a, b := c.w.Split()
		return []int{a, b}
	default:
		if c.opts.OnlyStdSplit {
			return c.emitStdSplitChain(n)
		}
		return c.w.TSwitch(n)
	}
}

// emitStdSplitChain lowers an n-way fork (n >= 3) into a right-leaning
// chain of binary splits, preserving priority order, for --only-std-split.
func (c *compiler) emitStdSplitChain(n int) []int {
	sites := make([]int, n)
	for i := 0; i < n-1; i++ {
		a, b := c.w.Split()
		sites[i] = a
		if i == n-2 {
			sites[i+1] = b
		} else {
			c.w.Patch(b, c.w.Len())
		}
	}
	return sites
}

// patchTransition resolves site to t's destination: directly, if t
// carries no actions, or through a freshly appended trampoline otherwise.
func (c *compiler) patchTransition(sm *smir.SMIR, site int, t *smir.Transition, entry map[smir.StateID]int, matchPC int) error {
	target, err := c.destinationPC(t, entry, matchPC)
	if err != nil {
		return err
	}
	if t.Actions.Len() == 0 {
		c.w.Patch(site, target)
		return nil
	}

	trampoline := c.w.Len()
	for i := 0; i < t.Actions.Len(); i++ {
		if err := c.emitAction(sm, t.Actions.At(i)); err != nil {
			return err
		}
	}
	if t.Dst == smir.Sentinel {
		c.w.Match()
	} else if c.w.Len() != target {
		c.w.Jmp2(target)
	}
	c.w.Patch(site, trampoline)
	return nil
}

func (c *compiler) destinationPC(t *smir.Transition, entry map[smir.StateID]int, matchPC int) (int, error) {
	if t.Dst == smir.Sentinel {
		return matchPC, nil
	}
	pc, ok := entry[t.Dst]
	if !ok {
		return 0, &Error{Msg: fmt.Sprintf("transition %d targets unknown state %d", t.ID, t.Dst)}
	}
	return pc, nil
}

func (c *compiler) emitAction(sm *smir.SMIR, a smir.Action) error {
	switch a.Kind {
	case smir.Begin:
		c.w.Begin()
	case smir.End:
		c.w.End()
	case smir.Char:
		c.w.Char(a.Ch)
	case smir.Pred:
		idx := c.prog.AddAux(a.Intervals)
		c.w.Pred(idx)
	case smir.Save:
		c.w.Save(a.K)
		if a.K > c.maxSave {
			c.maxSave = a.K
		}
	case smir.Write:
		c.w.Write(a.Byte)
	case smir.Memo:
		c.w.Memo(c.memoKey(a.K))
	case smir.EpsSet:
		c.w.EpsSet(c.epsKey(a.K))
	case smir.EpsChk:
		c.w.EpsChk(c.epsKey(a.K))
	case smir.ZWA:
		return c.emitZWA(sm, a)
	default:
		return &Error{Msg: fmt.Sprintf("unhandled action kind %v", a.Kind)}
	}
	return nil
}

// emitZWA inlines the lookahead body's compiled instructions directly
// after the zwa header, ending in its own match, then resumes the outer
// compilation at the offset immediately following (body; match; resume),
// adapted to SMIR's recursive-sub-SMIR representation instead of direct
// single-pass emission.
func (c *compiler) emitZWA(sm *smir.SMIR, a smir.Action) error {
	if a.K < 0 || a.K >= len(sm.Subs) {
		return &Error{Msg: fmt.Sprintf("zwa references out-of-range sub-machine %d", a.K)}
	}
	siteYes, siteNo := c.w.ZWA(a.Positive)
	bodyEntry := c.w.Len()
	if err := c.compileMachine(sm.Subs[a.K]); err != nil {
		return err
	}
	cont := c.w.Len()
	c.w.Patch(siteYes, bodyEntry)
	c.w.Patch(siteNo, cont)
	return nil
}

func sortedStateIDs(m *smir.SMIR) []smir.StateID {
	ids := m.States()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
