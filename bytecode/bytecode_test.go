package bytecode

import (
	"strings"
	"testing"

	"github.com/bru-go/bru/interval"
)

func TestWriterReaderRoundTripSimpleOps(t *testing.T) {
	prog := New("a")
	w := NewWriter(prog)
	w.Char('a')
	w.Match()

	r := NewReader(prog.Code, 0)
	if op := r.ReadOp(); op != Char {
		t.Fatalf("op 0 = %v, want Char", op)
	}
	if ch := r.ReadRune(); ch != 'a' {
		t.Fatalf("char operand = %q, want 'a'", ch)
	}
	if op := r.ReadOp(); op != Match {
		t.Fatalf("op 1 = %v, want Match", op)
	}
}

func TestJmpPatchResolvesToAbsoluteTarget(t *testing.T) {
	prog := New("")
	w := NewWriter(prog)
	site := w.Jmp()
	target := w.Len()
	w.Match()
	w.Patch(site, target)

	r := NewReader(prog.Code, 0)
	r.ReadOp()
	got := r.ReadOffset()
	if got != target {
		t.Errorf("jmp resolved to %d, want %d", got, target)
	}
}

func TestSplitPrimarySecondaryOrder(t *testing.T) {
	prog := New("")
	w := NewWriter(prog)
	siteA, siteB := w.Split()
	targetA := w.Len()
	w.Match()
	targetB := w.Len()
	w.End()
	w.Patch(siteA, targetA)
	w.Patch(siteB, targetB)

	r := NewReader(prog.Code, 0)
	r.ReadOp()
	gotA := r.ReadOffset()
	gotB := r.ReadOffset()
	if gotA != targetA || gotB != targetB {
		t.Errorf("split offsets = (%d, %d), want (%d, %d)", gotA, gotB, targetA, targetB)
	}
}

func TestTSwitchNWayPatch(t *testing.T) {
	prog := New("")
	w := NewWriter(prog)
	sites := w.TSwitch(3)
	var targets []int
	for i := 0; i < 3; i++ {
		targets = append(targets, w.Len())
		w.Noop()
	}
	for i, site := range sites {
		w.Patch(site, targets[i])
	}

	r := NewReader(prog.Code, 0)
	r.ReadOp()
	n := r.ReadUint32()
	if n != 3 {
		t.Fatalf("tswitch n = %d, want 3", n)
	}
	for i := 0; i < 3; i++ {
		if got := r.ReadOffset(); got != targets[i] {
			t.Errorf("tswitch arm %d = %d, want %d", i, got, targets[i])
		}
	}
}

func TestCmpRoundTrip(t *testing.T) {
	prog := New("")
	w := NewWriter(prog)
	w.Reset(0, 5)
	w.Inc(0)
	w.Cmp(0, 5, GE)

	r := NewReader(prog.Code, 0)
	if op := r.ReadOp(); op != Reset {
		t.Fatalf("op = %v, want Reset", op)
	}
	if i := r.ReadUint32(); i != 0 {
		t.Errorf("reset counter index = %d, want 0", i)
	}
	if v := r.ReadInt64(); v != 5 {
		t.Errorf("reset value = %d, want 5", v)
	}
	if op := r.ReadOp(); op != Inc {
		t.Fatalf("op = %v, want Inc", op)
	}
	r.ReadUint32()
	if op := r.ReadOp(); op != Cmp {
		t.Fatalf("op = %v, want Cmp", op)
	}
	r.ReadUint32()
	r.ReadInt64()
	if ord := r.ReadOrd(); ord != GE {
		t.Errorf("cmp ord = %v, want GE", ord)
	}
}

func TestZWARoundTrip(t *testing.T) {
	prog := New("")
	w := NewWriter(prog)
	siteYes, siteNo := w.ZWA(true)
	yesTarget := w.Len()
	w.Match()
	noTarget := w.Len()
	w.End()
	w.Patch(siteYes, yesTarget)
	w.Patch(siteNo, noTarget)

	r := NewReader(prog.Code, 0)
	r.ReadOp()
	gotYes := r.ReadOffset()
	gotNo := r.ReadOffset()
	positive := r.ReadByte()
	if gotYes != yesTarget || gotNo != noTarget {
		t.Errorf("zwa offsets = (%d, %d), want (%d, %d)", gotYes, gotNo, yesTarget, noTarget)
	}
	if positive != 1 {
		t.Errorf("zwa positive flag = %d, want 1", positive)
	}
}

func TestPredAuxIndexing(t *testing.T) {
	prog := New("")
	iv := interval.Single('x')
	idx := prog.AddAux(iv)
	w := NewWriter(prog)
	w.Pred(idx)

	r := NewReader(prog.Code, 0)
	r.ReadOp()
	if got := r.ReadUint32(); int(got) != idx {
		t.Errorf("pred aux index = %d, want %d", got, idx)
	}
}

func TestDisassembleProducesOneLinePerInstruction(t *testing.T) {
	prog := New("ab")
	w := NewWriter(prog)
	w.Char('a')
	w.Char('b')
	w.Match()

	var sb strings.Builder
	if err := Disassemble(&sb, prog); err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	out := sb.String()
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("disassembly has %d lines, want 3:\n%s", got, out)
	}
	if !strings.Contains(out, "char") || !strings.Contains(out, "match") {
		t.Errorf("disassembly missing expected mnemonics:\n%s", out)
	}
}

func TestOrdEval(t *testing.T) {
	cases := []struct {
		ord  Ord
		a, b int64
		want bool
	}{
		{LT, 1, 2, true},
		{LT, 2, 2, false},
		{LE, 2, 2, true},
		{EQ, 2, 2, true},
		{NE, 2, 3, true},
		{GE, 3, 2, true},
		{GT, 2, 3, false},
	}
	for _, c := range cases {
		if got := c.ord.Eval(c.a, c.b); got != c.want {
			t.Errorf("%v.Eval(%d, %d) = %v, want %v", c.ord, c.a, c.b, got, c.want)
		}
	}
}
