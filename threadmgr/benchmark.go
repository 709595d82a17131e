package threadmgr

import (
	"fmt"
	"io"

	"github.com/bru-go/bru/bytecode"
)

// Benchmark wraps a ThreadManager, counting per-opcode instruction
// fetches (recorded by the SRVM dispatch loop via RecordFetch, since
// Next only returns a Thread, not the opcode it is about to execute) and
// per-opcode kills, reporting both via Log.
type Benchmark[M ThreadManager] struct {
	Base M
	prog *bytecode.Program

	fetches [256]int
	kills   [256]int
}

// NewBenchmark wraps base, decoding opcodes at kill time against prog.
func NewBenchmark[M ThreadManager](base M, prog *bytecode.Program) *Benchmark[M] {
	return &Benchmark[M]{Base: base, prog: prog}
}

func (b *Benchmark[M]) Init(pc, sp int) *Thread  { return b.Base.Init(pc, sp) }
func (b *Benchmark[M]) Reset()                    { b.Base.Reset() }
func (b *Benchmark[M]) DoneExec() bool            { return b.Base.DoneExec() }
func (b *Benchmark[M]) Schedule(t *Thread)        { b.Base.Schedule(t) }
func (b *Benchmark[M]) ScheduleInOrder(t *Thread) { b.Base.ScheduleInOrder(t) }
func (b *Benchmark[M]) Next() (*Thread, bool)     { return b.Base.Next() }
func (b *Benchmark[M]) NotifyMatch(t *Thread)     { b.Base.NotifyMatch(t) }
func (b *Benchmark[M]) Clone(t *Thread) *Thread   { return b.Base.Clone(t) }

func (b *Benchmark[M]) Kill(t *Thread) {
	r := bytecode.NewReader(b.prog.Code, t.PC)
	b.kills[r.PeekOp()]++
	b.Base.Kill(t)
}

func (b *Benchmark[M]) RecordFetch(op bytecode.Op) { b.fetches[op]++ }
func (b *Benchmark[M]) RecordKill(op bytecode.Op)  { b.kills[op]++ }

// Log writes per-opcode fetch and kill counts to w.
func (b *Benchmark[M]) Log(w io.Writer) {
	fmt.Fprintln(w, "fetches:")
	for op := 0; op < len(b.fetches); op++ {
		if b.fetches[op] > 0 {
			fmt.Fprintf(w, "  %s: %d\n", bytecode.Op(op), b.fetches[op])
		}
	}
	fmt.Fprintln(w, "kills:")
	for op := 0; op < len(b.kills); op++ {
		if b.kills[op] > 0 {
			fmt.Fprintf(w, "  %s: %d\n", bytecode.Op(op), b.kills[op])
		}
	}
}

var _ ThreadManager = (*Benchmark[*Spencer])(nil)
var _ Instrumented = (*Benchmark[*Spencer])(nil)
