package vm

import (
	"unicode/utf8"

	"github.com/bru-go/bru/bytecode"
	"github.com/bru-go/bru/threadmgr"
)

// step executes the single instruction at th.PC against text, leaving
// th rescheduled (continuing or forked into siblings) unless it dies or
// reports a match.
func (vm *VM) step(mgr threadmgr.ThreadManager, th *threadmgr.Thread, text []byte) (*Match, bool) {
	r := bytecode.NewReader(vm.prog.Code, th.PC)
	op := r.ReadOp()
	if instr, ok := mgr.(threadmgr.Instrumented); ok {
		instr.RecordFetch(op)
	}

	switch op {
	case bytecode.Noop:
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Match:
		m := &Match{Start: th.SP, End: th.SP, Captures: append([]int(nil), th.Captures...)}
		if len(m.Captures) >= 2 {
			m.Start, m.End = m.Captures[0], m.Captures[1]
		}
		mgr.NotifyMatch(th)
		return m, true

	case bytecode.Begin:
		if th.SP == 0 {
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.End:
		if th.SP == len(text) {
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.Memo:
		k := int(r.ReadUint32())
		ok := true
		if memoiser, has := mgr.(threadmgr.Memoiser); has {
			ok = memoiser.Memoise(k, th.SP)
		}
		if ok {
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.Char:
		want := r.ReadRune()
		c, width := utf8.DecodeRune(text[th.SP:])
		if width > 0 && c == want {
			th.SP += width
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.Pred:
		idx := int(r.ReadUint32())
		c, width := utf8.DecodeRune(text[th.SP:])
		if width > 0 && idx < len(vm.prog.Aux) && vm.prog.Aux[idx].Matches(c) {
			th.SP += width
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.Save:
		k := int(r.ReadUint32())
		if k < len(th.Captures) {
			th.Captures[k] = th.SP
		}
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Jmp:
		th.PC = r.ReadOffset()
		mgr.Schedule(th)

	case bytecode.Split:
		a := r.ReadOffset()
		b := r.ReadOffset()
		secondary := mgr.Clone(th)
		secondary.PC = b
		th.PC = a
		mgr.Schedule(th)
		mgr.ScheduleInOrder(secondary)

	case bytecode.GSplit:
		// Single explicit target, implicit fallthrough for the other arm
		//. Greedy prefers the looping/explicit target, so the
		// active thread continues there while the exit (fallthrough) is
		// the lower-priority clone.
		target := r.ReadOffset()
		after := r.PC()
		secondary := mgr.Clone(th)
		secondary.PC = after
		th.PC = target
		mgr.Schedule(th)
		mgr.ScheduleInOrder(secondary)

	case bytecode.LSplit:
		// Lazy prefers the fallthrough (skip/exit first); the explicit
		// target becomes the lower-priority clone, tried only once the
		// fallthrough path is exhausted.
		target := r.ReadOffset()
		after := r.PC()
		secondary := mgr.Clone(th)
		secondary.PC = target
		th.PC = after
		mgr.Schedule(th)
		mgr.ScheduleInOrder(secondary)

	case bytecode.TSwitch:
		n := int(r.ReadUint32())
		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = r.ReadOffset()
		}
		clones := make([]*threadmgr.Thread, 0, n)
		for i := 1; i < n; i++ {
			clone := mgr.Clone(th)
			clone.PC = offsets[i]
			clones = append(clones, clone)
		}
		th.PC = offsets[0]
		mgr.Schedule(th)
		for _, clone := range clones {
			mgr.ScheduleInOrder(clone)
		}

	case bytecode.EpsReset:
		k := int(r.ReadUint32())
		if k < len(th.Mem) {
			th.Mem[k] = -1
		}
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.EpsSet:
		k := int(r.ReadUint32())
		if k < len(th.Mem) {
			th.Mem[k] = th.SP
		}
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.EpsChk:
		k := int(r.ReadUint32())
		stored := -1
		if k < len(th.Mem) {
			stored = th.Mem[k]
		}
		if th.SP > stored {
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.Reset:
		i := int(r.ReadUint32())
		val := r.ReadInt64()
		if i < len(th.Counters) {
			th.Counters[i] = val
		}
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Inc:
		i := int(r.ReadUint32())
		if i < len(th.Counters) {
			th.Counters[i]++
		}
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Cmp:
		i := int(r.ReadUint32())
		val := r.ReadInt64()
		ord := r.ReadOrd()
		var cur int64
		if i < len(th.Counters) {
			cur = th.Counters[i]
		}
		if ord.Eval(cur, val) {
			th.PC = r.PC()
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.ZWA:
		yes := r.ReadOffset()
		no := r.ReadOffset()
		positive := r.ReadByte() != 0
		lookahead := mgr.Clone(th)
		lookahead.PC = yes
		sub := vm.newManager()
		_, matched := vm.runFromThread(sub, text, lookahead)
		th.PC = no
		if matched == positive {
			mgr.Schedule(th)
		} else {
			vm.kill(mgr, th, op)
		}

	case bytecode.State:
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Write:
		b := r.ReadByte()
		th.WriteByte(b)
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Write0:
		th.WriteByte(0)
		th.PC = r.PC()
		mgr.Schedule(th)

	case bytecode.Write1:
		th.WriteByte(1)
		th.PC = r.PC()
		mgr.Schedule(th)
	}

	return nil, false
}

// runFromThread is runFrom's sibling for a zwa's recursive sub-run: it
// seeds mgr with an already-built thread (the lookahead clone) instead
// of calling Init with a fresh (pc, sp) pair, since the clone already
// carries the outer thread's counters/memory/captures at the point the
// lookahead fired.
func (vm *VM) runFromThread(mgr threadmgr.ThreadManager, text []byte, seed *threadmgr.Thread) (*Match, bool) {
	// Init (rather than Schedule) gives the fresh thread whatever
	// scheduler-specific placement a true start thread gets (Lockstep
	// routes it straight into curr, bypassing the consuming-op/sync
	// routing Schedule would apply); its counters/memory/captures are
	// then overwritten from seed; the lookahead continues with the
	// outer thread's state as of the point zwa fired, not a blank one.
	t0 := mgr.Init(seed.PC, seed.SP)
	t0.Counters = append([]int64(nil), seed.Counters...)
	t0.Mem = append([]int(nil), seed.Mem...)
	t0.Captures = append([]int(nil), seed.Captures...)
	t0.WriteBuf = append([]byte(nil), seed.WriteBuf...)
	for {
		th, ok := mgr.Next()
		if !ok {
			return nil, false
		}
		if th.SP > len(text) {
			vm.kill(mgr, th, bytecode.Noop)
			continue
		}
		if m, matched := vm.step(mgr, th, text); matched {
			return m, true
		}
	}
}
