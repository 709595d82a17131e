package threadmgr

import (
	"github.com/bru-go/bru/bytecode"
	"github.com/bru-go/bru/internal/conv"
	"github.com/bru-go/bru/internal/sparse"
)

// Lockstep is the Thompson-style BFS scheduler: three
// queues (curr/next/sync) and a flag tracking whether the current batch
// has crossed into "waiting for the next character" territory.
//
// Unlike the source, where a single shared sp advances underneath every
// thread in lockstep, each Thread here carries its own SP (set by the
// `char`/`pred` dispatch handler when it consumes). Threads promoted
// from sync into curr together are, by construction, already at the
// same SP — Lockstep doesn't need to separately track or advance a
// global position.
type Lockstep struct {
	shape Shape
	prog  *bytecode.Program

	curr, next, sync []*Thread
	inLockstep       bool

	// syncSeen dedups by PC alone in O(1) via a sparse set. Valid only
	// for threads with no Counters and no thread memory: a thread
	// carrying either needs that state compared too (Thread.Equal), so
	// those fall back to the linear scan over sync.
	syncSeen *sparse.SparseSet
}

// NewLockstep returns a Lockstep scheduler dispatching against prog,
// allocating threads of shape sh.
func NewLockstep(prog *bytecode.Program, sh Shape) *Lockstep {
	return &Lockstep{shape: sh, prog: prog, syncSeen: sparse.NewSparseSet(conv.IntToUint32(len(prog.Code) + 1))}
}

func (l *Lockstep) isConsuming(pc int) bool {
	r := bytecode.NewReader(l.prog.Code, pc)
	switch r.PeekOp() {
	case bytecode.Char, bytecode.Pred:
		return true
	default:
		return false
	}
}

func (l *Lockstep) Init(pc, sp int) *Thread {
	l.Reset()
	t := NewThread(pc, sp, l.shape)
	l.curr = append(l.curr, t)
	return t
}

func (l *Lockstep) Reset() {
	l.curr = l.curr[:0]
	l.next = l.next[:0]
	l.sync = l.sync[:0]
	l.inLockstep = false
	l.syncSeen.Clear()
}

func (l *Lockstep) DoneExec() bool {
	return len(l.curr) == 0 && len(l.next) == 0 && len(l.sync) == 0
}

// Schedule implements the dedup-then-route rule: drop t if a
// bytecode-equal thread already waits in sync; otherwise route a
// consuming thread to sync once next has drained (so it waits for the
// character step), or to next otherwise (more work remains at this sp).
func (l *Lockstep) Schedule(t *Thread) {
	if l.isConsuming(t.PC) && len(l.next) == 0 {
		if len(t.Counters) == 0 && len(t.Mem) == 0 {
			if l.syncSeen.Contains(conv.IntToUint32(t.PC)) {
				return
			}
		} else {
			for _, s := range l.sync {
				if t.Equal(s) {
					return
				}
			}
		}
		l.sync = append(l.sync, t)
		if len(t.Counters) == 0 && len(t.Mem) == 0 {
			l.syncSeen.Insert(conv.IntToUint32(t.PC))
		}
		return
	}
	l.next = append(l.next, t)
}

// ScheduleInOrder is Schedule for Lockstep: the queues are plain FIFOs,
// so calling Schedule repeatedly from one fan-out instruction already
// preserves transition priority as scheduling order.
func (l *Lockstep) ScheduleInOrder(t *Thread) { l.Schedule(t) }

// Next implements next_thread: drain curr, promoting next
// (same character) or swapping sync into curr (character boundary
// crossed) when curr empties, and redirecting any consuming thread drawn
// before the character boundary back through Schedule.
func (l *Lockstep) Next() (*Thread, bool) {
	if len(l.curr) == 0 {
		switch {
		case len(l.next) > 0:
			l.curr, l.next = l.next, l.curr[:0]
		case len(l.sync) > 0:
			l.curr, l.sync = l.sync, l.curr[:0]
			l.inLockstep = true
			l.syncSeen.Clear()
		default:
			return nil, false
		}
	}
	t := l.curr[0]
	l.curr = l.curr[1:]
	if !l.inLockstep && l.isConsuming(t.PC) {
		l.Schedule(t)
		return l.Next()
	}
	return t, true
}

// NotifyMatch clears the remaining same-position alternatives —
// lower-priority threads competing for this exact
// dispatch step lose to the higher-priority match, but threads already
// queued for a different subject position (next/sync, e.g. other
// unanchored start offsets) keep running.
func (l *Lockstep) NotifyMatch(t *Thread) {
	l.curr = l.curr[:0]
}

func (l *Lockstep) Clone(t *Thread) *Thread { return t.Clone() }

func (l *Lockstep) Kill(t *Thread) {}

var _ ThreadManager = (*Lockstep)(nil)
