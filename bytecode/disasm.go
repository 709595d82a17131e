package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes prog's instruction stream in human-readable form to
// w, one instruction per line prefixed with its absolute index — the
// `compile` CLI subcommand's bytecode listing.
func Disassemble(w io.Writer, prog *Program) error {
	r := NewReader(prog.Code, 0)
	for r.pc < len(prog.Code) {
		idx := r.pc
		line, err := disasmOne(&r, prog)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%4d: %s\n", idx, line); err != nil {
			return err
		}
	}
	return nil
}

func disasmOne(r *Reader, prog *Program) (string, error) {
	op := r.ReadOp()
	switch op {
	case Noop:
		return "noop", nil
	case Match:
		return "match", nil
	case Begin:
		return "begin", nil
	case End:
		return "end", nil
	case State:
		return "state", nil
	case Write0:
		return "write0", nil
	case Write1:
		return "write1", nil

	case Memo:
		return fmt.Sprintf("memo %d", r.ReadUint32()), nil
	case Save:
		return fmt.Sprintf("save %d", r.ReadUint32()), nil
	case EpsReset:
		return fmt.Sprintf("epsreset %d", r.ReadUint32()), nil
	case EpsSet:
		return fmt.Sprintf("epsset %d", r.ReadUint32()), nil
	case EpsChk:
		return fmt.Sprintf("epschk %d", r.ReadUint32()), nil
	case Inc:
		return fmt.Sprintf("inc %d", r.ReadUint32()), nil

	case Char:
		return fmt.Sprintf("char %q", r.ReadRune()), nil

	case Pred:
		idx := r.ReadUint32()
		if prog != nil && int(idx) < len(prog.Aux) && prog.Aux[idx] != nil {
			return fmt.Sprintf("pred %s", prog.Aux[idx].String()), nil
		}
		return fmt.Sprintf("pred %d", idx), nil

	case Write:
		return fmt.Sprintf("write 0x%x", r.ReadByte()), nil

	case Jmp:
		return fmt.Sprintf("jmp %d", r.ReadOffset()), nil
	case GSplit:
		return fmt.Sprintf("gsplit %d", r.ReadOffset()), nil
	case LSplit:
		return fmt.Sprintf("lsplit %d", r.ReadOffset()), nil

	case Split:
		a := r.ReadOffset()
		b := r.ReadOffset()
		return fmt.Sprintf("split %d, %d", a, b), nil

	case TSwitch:
		n := r.ReadUint32()
		s := fmt.Sprintf("tswitch %d", n)
		for i := uint32(0); i < n; i++ {
			s += fmt.Sprintf(", %d", r.ReadOffset())
		}
		return s, nil

	case Reset:
		i := r.ReadUint32()
		val := r.ReadInt64()
		return fmt.Sprintf("reset %d, %d", i, val), nil

	case Cmp:
		i := r.ReadUint32()
		val := r.ReadInt64()
		ord := r.ReadOrd()
		return fmt.Sprintf("cmp%s %d, %d", ord, i, val), nil

	case ZWA:
		yes := r.ReadOffset()
		no := r.ReadOffset()
		positive := r.ReadByte()
		return fmt.Sprintf("zwa %d, %d, %d", yes, no, positive), nil

	default:
		return "", fmt.Errorf("bytecode: unknown opcode %d at pc %d", op, r.pc-1)
	}
}
