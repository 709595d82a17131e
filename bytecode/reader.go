package bytecode

import "encoding/binary"

// Reader walks a Program's Code stream from a given pc, decoding one
// operand at a time. It carries no
// allocations of its own; the SRVM embeds one per thread record position.
type Reader struct {
	code []byte
	pc   int
}

// NewReader returns a Reader positioned at pc within code.
func NewReader(code []byte, pc int) Reader {
	return Reader{code: code, pc: pc}
}

// PC returns the reader's current position.
func (r *Reader) PC() int { return r.pc }

// SetPC repositions the reader, e.g. after a jmp/split/tswitch branch.
func (r *Reader) SetPC(pc int) { r.pc = pc }

// PeekOp returns the opcode at the current pc without advancing.
func (r *Reader) PeekOp() Op { return Op(r.code[r.pc]) }

// ReadOp reads the opcode at pc and advances past it.
func (r *Reader) ReadOp() Op {
	op := Op(r.code[r.pc])
	r.pc++
	return op
}

func (r *Reader) ReadUint32() uint32 {
	v := binary.NativeEndian.Uint32(r.code[r.pc : r.pc+4])
	r.pc += 4
	return v
}

func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

func (r *Reader) ReadInt64() int64 {
	v := int64(binary.NativeEndian.Uint64(r.code[r.pc : r.pc+8]))
	r.pc += 8
	return v
}

func (r *Reader) ReadRune() rune {
	return rune(r.ReadInt32())
}

func (r *Reader) ReadByte() byte {
	b := r.code[r.pc]
	r.pc++
	return b
}

func (r *Reader) ReadOrd() Ord {
	return Ord(r.ReadByte())
}

// ReadOffset reads a relative offset and returns the absolute target pc,
// computed from the position immediately following the offset field.
func (r *Reader) ReadOffset() int {
	after := r.pc + 4
	off := r.ReadInt32()
	return after + int(off)
}
