package threadmgr

import "testing"

func TestPoolReusesKilledThreadOnClone(t *testing.T) {
	shape := Shape{NCaptures: 1, NCounters: 1, MemLen: 1}
	p := NewPool(NewSpencer(shape))

	orig := p.Init(0, 0)
	clone := p.Clone(orig)
	p.Kill(clone)

	clone2 := p.Clone(orig)
	if clone2 != clone {
		t.Error("Clone should reuse the Thread returned by Kill instead of allocating a new one")
	}
}

func TestPoolClonePreservesSourceFields(t *testing.T) {
	shape := Shape{NCaptures: 1, NCounters: 1, MemLen: 1}
	p := NewPool(NewSpencer(shape))

	orig := p.Init(3, 7)
	orig.Captures[0] = 42
	orig.Counters[0] = 9
	orig.Mem[0] = 1

	clone := p.Clone(orig)
	if clone.PC != 3 || clone.SP != 7 {
		t.Errorf("clone pc/sp = %d/%d, want 3/7", clone.PC, clone.SP)
	}
	if clone.Captures[0] != 42 || clone.Counters[0] != 9 || clone.Mem[0] != 1 {
		t.Error("clone should copy source's field values")
	}
}
