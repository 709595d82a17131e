// Package thompson builds an SMIR via Thompson's construction: one state
// per operator leaf plus an initial/final pair per composite.
package thompson

import (
	"errors"
	"fmt"

	"github.com/bru-go/bru/smir"
	"github.com/bru-go/bru/sre"
)

// CaptureSemantics selects how a greedy loop's capture/epsilon-loop
// actions are placed: PCRE aborts an iteration that matched
// empty, RE2 keeps the greedy-priority alternative for nullable bodies.
type CaptureSemantics uint8

const (
	PCRE CaptureSemantics = iota
	RE2
)

// Error reports a construction failure: an SRE kind Thompson cannot
// compile into a valid core.
type Error struct {
	Kind sre.Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("thompson: cannot construct %s: %s", e.Kind, e.Msg)
}

// ErrBackreference is returned whenever a Backreference node is reached;
// backreferences are a Non-goal and never constructible.
var ErrBackreference = errors.New("thompson: backreferences are unsupported")

// Options configures a single construction.
type Options struct {
	Semantics CaptureSemantics
}

// Construct lowers root into a fresh SMIR using Thompson's algorithm,
// with opts.Semantics choosing where capture and epsilon-guard actions
// are placed.
func Construct(root *sre.Node, opts Options) (*smir.SMIR, error) {
	m := smir.New("")
	c := &ctor{m: m, opts: opts}
	start, end, err := c.build(root)
	if err != nil {
		return nil, err
	}
	m.SetInitial(start)
	m.SetFinal(end)
	return m, nil
}

type ctor struct {
	m    *smir.SMIR
	opts Options
}

// build returns the entry and exit state IDs for the fragment compiled
// from n. The fragment has exactly one unconnected "exit" transition slot,
// represented here as the returned exit state plus the caller wiring a
// transition out of it (matching Thompson's classic fragment-with-dangling-
// out-edge style, adapted to SMIR's owned-transition model by always
// fully wiring each fragment's internal edges and returning states whose
// remaining out-degree is the caller's to complete).
func (c *ctor) build(n *sre.Node) (start, end smir.StateID, err error) {
	switch n.Kind {
	case sre.Epsilon, sre.Memoise:
		s := c.m.AddState()
		if n.Kind == sre.Memoise {
			c.m.StateAppendAction(s, smir.Action{Kind: smir.Memo, K: n.RID})
		}
		return s, s, nil

	case sre.Caret:
		s := c.m.AddState()
		c.m.StateAppendAction(s, smir.ActionBegin())
		return s, s, nil

	case sre.Dollar:
		s := c.m.AddState()
		c.m.StateAppendAction(s, smir.ActionEnd())
		return s, s, nil

	case sre.Literal:
		s := c.m.AddState()
		c.m.StateAppendAction(s, smir.ActionChar(n.Ch))
		return s, s, nil

	case sre.CC:
		s := c.m.AddState()
		c.m.StateAppendAction(s, smir.ActionPred(n.Intervals))
		return s, s, nil

	case sre.Alt:
		return c.buildAlt(n)

	case sre.Concat:
		return c.buildConcat(n)

	case sre.Capture:
		return c.buildCapture(n)

	case sre.Star, sre.Plus, sre.Ques:
		return c.buildRepetition(n)

	case sre.Counter:
		return smir.Sentinel, smir.Sentinel, &Error{Kind: n.Kind, Msg: "counters are not lowered by Thompson; expand_counters or a Counter-aware compiler pass is required"}

	case sre.Lookahead:
		return c.buildLookahead(n)

	case sre.Backreference:
		return smir.Sentinel, smir.Sentinel, ErrBackreference

	default:
		return smir.Sentinel, smir.Sentinel, &Error{Kind: n.Kind, Msg: "unknown SRE kind"}
	}
}

func (c *ctor) buildAlt(n *sre.Node) (smir.StateID, smir.StateID, error) {
	lStart, lEnd, err := c.build(n.L)
	if err != nil {
		return 0, 0, err
	}
	rStart, rEnd, err := c.build(n.R)
	if err != nil {
		return 0, 0, err
	}
	init := c.m.AddState()
	fin := c.m.AddState()
	c.m.AddTransition(init, lStart)
	c.m.AddTransition(init, rStart)
	c.m.AddTransition(lEnd, fin)
	c.m.AddTransition(rEnd, fin)
	return init, fin, nil
}

func (c *ctor) buildConcat(n *sre.Node) (smir.StateID, smir.StateID, error) {
	lStart, lEnd, err := c.build(n.L)
	if err != nil {
		return 0, 0, err
	}
	rStart, rEnd, err := c.build(n.R)
	if err != nil {
		return 0, 0, err
	}
	c.m.AddTransition(lEnd, rStart)
	return lStart, rEnd, nil
}

func (c *ctor) buildCapture(n *sre.Node) (smir.StateID, smir.StateID, error) {
	cStart, cEnd, err := c.build(n.Child)
	if err != nil {
		return 0, 0, err
	}
	init := c.m.AddState()
	fin := c.m.AddState()
	tIn := c.m.AddTransition(init, cStart)
	c.m.TransAppendAction(tIn, smir.ActionSave(2*n.Idx))
	tOut := c.m.AddTransition(cEnd, fin)
	c.m.TransAppendAction(tOut, smir.ActionSave(2*n.Idx+1))
	return init, fin, nil
}

// buildRepetition implements Star/Plus/Ques with the PCRE/RE2 capture
// semantics split.
//
// All three share one branch/exit shape: a branch state with two outgoing
// transitions (enter the child, leave to the final state), ordered
// enter-then-leave when greedy and leave-then-enter when lazy. Star's
// entry point is the branch itself (so even the first iteration is
// guarded); Plus's entry point is the child's own start state, bypassing
// the guard for the one mandatory iteration (the back-edge's EpsChk still
// fires on its exit, but against a freshly-reset — hence always-passing —
// memory slot; see NewThread in threadmgr/thread.go). Ques has no
// back-edge at all.
func (c *ctor) buildRepetition(n *sre.Node) (smir.StateID, smir.StateID, error) {
	cStart, cEnd, err := c.build(n.Child)
	if err != nil {
		return 0, 0, err
	}
	branch := c.m.AddState()
	fin := c.m.AddState()

	var tEnter, tLeave smir.TransitionID
	if n.Greedy {
		tEnter = c.m.AddTransition(branch, cStart)
		tLeave = c.m.AddTransition(branch, fin)
	} else {
		tLeave = c.m.AddTransition(branch, fin)
		tEnter = c.m.AddTransition(branch, cStart)
	}
	_ = tLeave

	switch n.Kind {
	case sre.Ques:
		c.m.AddTransition(cEnd, fin)
		return branch, fin, nil
	case sre.Star:
		c.wireEpsilonLoop(branch, cEnd, tEnter, n.RID)
		return branch, fin, nil
	case sre.Plus:
		c.wireEpsilonLoop(branch, cEnd, tEnter, n.RID)
		return cStart, fin, nil
	default:
		return 0, 0, &Error{Kind: n.Kind, Msg: "not a repetition kind"}
	}
}

// wireEpsilonLoop connects the child's end back to branch (so it can
// re-enter or exit) and attaches the EpsSet/EpsChk pair per the selected
// capture semantics.
func (c *ctor) wireEpsilonLoop(branch, cEnd smir.StateID, tEnter smir.TransitionID, rid int) {
	back := c.m.AddTransition(cEnd, branch)
	switch c.opts.Semantics {
	case PCRE:
		c.m.TransAppendAction(tEnter, smir.ActionEpsSet(rid))
		c.m.TransAppendAction(back, smir.ActionEpsChk(rid))
	case RE2:
		c.m.TransAppendAction(tEnter, smir.ActionEpsSet(rid))
		c.m.TransAppendAction(back, smir.ActionEpsSet(rid))
		c.m.StateAppendAction(cEnd, smir.ActionEpsChk(rid))
	}
}

// buildLookahead wires a zero-width assertion whose body is constructed
// into its own sub-SMIR, run recursively by the VM's `zwa` instruction.
func (c *ctor) buildLookahead(n *sre.Node) (smir.StateID, smir.StateID, error) {
	sub, err := Construct(n.Child, c.opts)
	if err != nil {
		return 0, 0, err
	}
	idx := len(c.m.Subs)
	c.m.Subs = append(c.m.Subs, sub)
	s := c.m.AddState()
	c.m.StateAppendAction(s, smir.Action{Kind: smir.ZWA, K: idx, Positive: n.Positive})
	return s, s, nil
}
