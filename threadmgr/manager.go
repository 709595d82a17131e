package threadmgr

import "github.com/bru-go/bru/bytecode"

// ThreadManager is the base vtable: core scheduling plus the handful of
// primitives every layer and the SRVM dispatch loop need regardless of
// which scheduling discipline is underneath.
type ThreadManager interface {
	// Init resets the manager and returns a fresh thread at (pc, sp),
	// made the current active thread.
	Init(pc, sp int) *Thread

	// Reset discards all scheduled threads without producing a new one.
	Reset()

	// DoneExec reports whether there is no more scheduled work.
	DoneExec() bool

	// Schedule adds t to the run queue at the lowest priority relative
	// to anything already scheduled in this dispatch step.
	Schedule(t *Thread)

	// ScheduleInOrder adds t preserving source order across a run of
	// calls from the same fan-out instruction (split/tswitch): repeated
	// calls from one instruction land in transition priority order
	// without the caller needing to reverse them.
	ScheduleInOrder(t *Thread)

	// Next returns the next thread to run, or (nil, false) if none
	// remain for this step.
	Next() (*Thread, bool)

	// NotifyMatch tells the manager t reported a match.
	NotifyMatch(t *Thread)

	// Clone returns an independent copy of t for a fork point.
	Clone(t *Thread) *Thread

	// Kill discards t. Most managers treat this as a no-op (Go's GC
	// reclaims it); Pool overrides it to recycle the allocation.
	Kill(t *Thread)
}

// Memoiser is implemented by managers (or layers wrapping one) that
// support the `memo k` opcode's per-(k, sp) bitmap. The SRVM dispatch loop type-asserts for this
// optional interface and treats `memo` as a no-op when absent.
type Memoiser interface {
	// Memoise reports whether (k, sp) has not been seen before, marking
	// it seen as a side effect. A false return means the thread should
	// be killed.
	Memoise(k, sp int) bool
}

// MatchLogger is implemented by layers wanting every reported match
// logged as execution continues past it, instead of the base managers'
// default of treating a match as terminal for the current dispatch
// step.
type MatchLogger interface {
	LogMatch(t *Thread)
}

// Instrumented is implemented by layers counting opcode fetches and
// kills.
type Instrumented interface {
	RecordFetch(op bytecode.Op)
	RecordKill(op bytecode.Op)
}
