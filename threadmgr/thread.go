// Package threadmgr implements the pluggable thread-manager scheduling
// disciplines the SRVM dispatch loop drives: a Spencer
// depth-first backtracker and a Lockstep Thompson-style BFS scheduler,
// plus a handful of decorator layers that wrap either one to add
// memoisation, pooling, instrumentation, and all-matches logging without
// touching the scheduling logic itself.
package threadmgr

// Shape fixes the per-thread allocation sizes a Program compiles to, so
// every Init/Clone can size a Thread's slices without consulting the
// Program itself.
type Shape struct {
	NCaptures int // capture pairs; Thread.Captures has 2*NCaptures slots
	NCounters int
	MemLen    int // EpsSet/EpsChk thread-memory slots
}

// Thread is one VM execution state: an instruction pointer, a subject
// position, and the private storage the Captures/Counters/Memory/Write
// extensions read and write. Go lets every extension's state live as a
// plain field on one concrete struct — there is no need to compute a
// per-layer offset into an opaque blob, the way a vtable built on a raw
// byte array would.
type Thread struct {
	PC int
	SP int

	// Captures holds 2*NCaptures slots, start/end pairs of capture group
	// i at indices 2*i/2*i+1; -1 means unset.
	Captures []int

	// Counters holds the {m,n} bound-tracking integers reset/inc/cmp
	// index into.
	Counters []int64

	// Mem holds EpsSet/EpsChk epsilon-loop guard slots; -1 means unset
	// ("not yet stored" distinguished from sp == 0 — a stored sp of 0
	// must still compare as "set").
	Mem []int

	// WriteBuf accumulates the path-encoding transform's Write actions.
	WriteBuf []byte
}

// NewThread allocates a Thread of shape sh at (pc, sp), with Captures and
// Mem initialised to the unset sentinel -1.
func NewThread(pc, sp int, sh Shape) *Thread {
	caps := make([]int, 2*sh.NCaptures)
	for i := range caps {
		caps[i] = -1
	}
	mem := make([]int, sh.MemLen)
	for i := range mem {
		mem[i] = -1
	}
	return &Thread{
		PC:       pc,
		SP:       sp,
		Captures: caps,
		Counters: make([]int64, sh.NCounters),
		Mem:      mem,
	}
}

// Clone deep-copies t, as every fork point (jmp/split/gsplit/lsplit/
// tswitch/zwa) requires: the clones diverge independently from here on.
func (t *Thread) Clone() *Thread {
	nt := &Thread{PC: t.PC, SP: t.SP}
	nt.Captures = append([]int(nil), t.Captures...)
	nt.Counters = append([]int64(nil), t.Counters...)
	nt.Mem = append([]int(nil), t.Mem...)
	nt.WriteBuf = append([]byte(nil), t.WriteBuf...)
	return nt
}

// Equal reports bytecode-equality for Lockstep's sync-queue deduplication
//: pc identical, and every extension with an equality
// predicate agrees (counters, thread memory). Captures are deliberately
// excluded — they differ by path even when the automaton state they
// represent is the same, and Thompson semantics already picks the
// higher-priority path via scheduling order, not via capture comparison.
func (t *Thread) Equal(o *Thread) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.PC != o.PC {
		return false
	}
	if len(t.Counters) != len(o.Counters) {
		return false
	}
	for i := range t.Counters {
		if t.Counters[i] != o.Counters[i] {
			return false
		}
	}
	if len(t.Mem) != len(o.Mem) {
		return false
	}
	for i := range t.Mem {
		if t.Mem[i] != o.Mem[i] {
			return false
		}
	}
	return true
}
