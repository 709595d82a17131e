package bytecode

import "github.com/bru-go/bru/interval"

// Program is a compiled regex: a flat instruction stream plus the tables
// it indexes into. Operands are native-endian fixed-size
// integers since a Program is never serialized across processes — it is
// built and interpreted within a single SRVM run.
type Program struct {
	// Regex is the original source text, kept for diagnostics and for
	// program_print-style disassembly.
	Regex string

	// Code is the instruction byte stream.
	Code []byte

	// Aux holds the Intervals a pred instruction's operand indexes into.
	// Unlike the original's byte-serialized aux arena, this is a plain Go
	// slice of pointers: there is no pointer-equality trick to replicate
	// (char carries its rune value directly as its operand), and
	// serializing an Intervals to bytes only to deserialize it on every
	// pred dispatch would be pure overhead in a single-process VM.
	Aux []*interval.Intervals

	// NMemoInsts is the number of distinct memo keys emitted, sizing the
	// Memoised thread-manager layer's bitmap.
	NMemoInsts int

	// Counters holds each counter's reset default, indexed by counter id.
	Counters []int64

	// ThreadMemLen is the number of thread-memory slots each thread
	// carries for epsset/epschk bookkeeping; memo keys are counted
	// separately in NMemoInsts.
	ThreadMemLen int

	// NCaptures is the number of capture groups, including group 0 (the
	// whole match) — 2*NCaptures save slots in total, start/end per
	// group.
	NCaptures int
}

// New constructs an empty program for regex, ready for a compiler to
// append instructions to via a Writer.
func New(regex string) *Program {
	return &Program{Regex: regex}
}

// AddAux appends iv to the auxiliary table and returns its index, the
// operand a pred instruction's Writer.Pred call expects.
func (p *Program) AddAux(iv *interval.Intervals) int {
	p.Aux = append(p.Aux, iv)
	return len(p.Aux) - 1
}

// NumInsts reports the length of the instruction stream in bytes, i.e.
// the pc value one past the last instruction.
func (p *Program) NumInsts() int { return len(p.Code) }
