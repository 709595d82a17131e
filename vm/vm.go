// Package vm implements the stack-machine regex virtual machine (SRVM):
// the dispatch loop that interprets a bytecode.Program one instruction
// at a time, driven by a pluggable threadmgr.ThreadManager.
//
// The loop itself is scheduler-agnostic — every opcode's effect is
// expressed purely in terms of the ThreadManager interface
// (Schedule/ScheduleInOrder/Next/Clone/Kill/NotifyMatch), so the same
// dispatch code drives both Spencer's depth-first backtracking and
// Lockstep's BFS without a single scheduler-specific branch.
package vm

import (
	"unicode/utf8"

	"github.com/bru-go/bru/bytecode"
	"github.com/bru-go/bru/threadmgr"
)

// Scheduler selects which threadmgr discipline a VM drives its program
// with.
type Scheduler int

const (
	Spencer Scheduler = iota
	Lockstep
)

// Match is one successful srvm run: the overall span plus every capture
// group's (start, end) pair, raw save-slot values with -1 meaning unset.
type Match struct {
	Start, End int
	Captures   []int
}

// Group returns capture group i's (start, end), or (-1, -1) if group i
// never matched (e.g. an unreached alternative arm). Group 0 is the
// whole match.
func (m *Match) Group(i int) (start, end int) {
	if i == 0 {
		return m.Start, m.End
	}
	if 2*i+1 >= len(m.Captures) {
		return -1, -1
	}
	return m.Captures[2*i], m.Captures[2*i+1]
}

// VM interprets a single compiled Program under a chosen scheduler.
type VM struct {
	prog  *bytecode.Program
	sched Scheduler
	shape threadmgr.Shape
}

// New returns a VM ready to run prog under sched.
func New(prog *bytecode.Program, sched Scheduler) *VM {
	return &VM{
		prog:  prog,
		sched: sched,
		shape: threadmgr.Shape{
			NCaptures: prog.NCaptures,
			NCounters: len(prog.Counters),
			MemLen:    prog.ThreadMemLen,
		},
	}
}

// newManager builds a fresh thread manager of the VM's configured
// scheduling discipline, sized for this VM's program. Used both for a
// top-level run and, via emitted zwa instructions, for every recursive
// lookahead sub-run: a fresh manager of the same kind, seeded at the
// lookahead body's entry.
func (vm *VM) newManager() threadmgr.ThreadManager {
	switch vm.sched {
	case Lockstep:
		return threadmgr.NewLockstep(vm.prog, vm.shape)
	default:
		return threadmgr.NewSpencer(vm.shape)
	}
}

// Match runs a single anchored attempt starting at text's first byte:
// one attempt, no retry at later positions.
func (vm *VM) Match(text []byte) (*Match, bool) {
	mgr := vm.newManager()
	return vm.runFrom(mgr, text, 0)
}

// Find runs an unanchored search: successive attempts at sp = 0, then
// each codepoint boundary after, stopping at the first match or once
// the text is exhausted — the same stopping rule as not trying further
// start positions once one is found, but expressed as repeated
// independent runFrom attempts rather than a single parallel pass: the
// Lockstep scheduler here does not itself re-seed start threads per
// character, so the retry lives here instead, uniformly for both
// schedulers.
func (vm *VM) Find(text []byte) (*Match, bool) {
	mgr := vm.newManager()
	for sp := 0; sp <= len(text); {
		if m, ok := vm.runFrom(mgr, text, sp); ok {
			return m, true
		}
		if sp >= len(text) {
			break
		}
		_, width := utf8.DecodeRune(text[sp:])
		if width == 0 {
			width = 1
		}
		sp += width
	}
	return nil, false
}

// Finder iterates successive non-overlapping matches over one subject,
// mirroring srvm_find's persistent curr_sp: each call to Next resumes
// from just past the previous match (or by one codepoint, for a
// zero-width match), eventually reporting exhaustion.
type Finder struct {
	vm        *VM
	mgr       threadmgr.ThreadManager
	text      []byte
	sp        int
	exhausted bool
}

// NewFinder returns a Finder scanning text from its start.
func (vm *VM) NewFinder(text []byte) *Finder {
	return &Finder{vm: vm, mgr: vm.newManager(), text: text}
}

// Next returns the next match, or (nil, false) once the subject is
// exhausted.
func (f *Finder) Next() (*Match, bool) {
	if f.exhausted {
		return nil, false
	}
	for sp := f.sp; sp <= len(f.text); {
		if m, ok := f.vm.runFrom(f.mgr, f.text, sp); ok {
			if m.End > sp {
				f.sp = m.End
			} else {
				_, width := utf8.DecodeRune(f.text[sp:])
				if width == 0 {
					width = 1
				}
				f.sp = sp + width
			}
			return m, true
		}
		if sp >= len(f.text) {
			break
		}
		_, width := utf8.DecodeRune(f.text[sp:])
		if width == 0 {
			width = 1
		}
		sp += width
	}
	f.exhausted = true
	return nil, false
}

// runFrom performs one complete, non-retrying srvm_run: initialise mgr
// at (pc 0, sp) and dispatch instructions until the manager has no more
// scheduled work. Threads the manager keeps after a NotifyMatch go on
// running, and a later match replaces the earlier one: Spencer drains
// everything on a match, so its run ends there, while Lockstep's
// surviving threads all came from higher-priority paths.
func (vm *VM) runFrom(mgr threadmgr.ThreadManager, text []byte, sp int) (*Match, bool) {
	mgr.Init(0, sp)
	var best *Match
	for {
		th, ok := mgr.Next()
		if !ok {
			return best, best != nil
		}
		// A thread that has advanced past the end of the subject is a
		// dead end — a length-bounded Go slice has no sentinel byte of
		// its own to check against.
		if th.SP > len(text) {
			vm.kill(mgr, th, bytecode.Noop)
			continue
		}
		if m, matched := vm.step(mgr, th, text); matched {
			// Without a group-0 save in the program, the span is this
			// run's start position through the matching thread's SP.
			if len(m.Captures) < 2 || m.Captures[0] < 0 {
				m.Start, m.End = sp, th.SP
			}
			best = m
		}
	}
}

func (vm *VM) kill(mgr threadmgr.ThreadManager, th *threadmgr.Thread, op bytecode.Op) {
	if instr, ok := mgr.(threadmgr.Instrumented); ok {
		instr.RecordKill(op)
	}
	mgr.Kill(th)
}
