package bytecode

import "encoding/binary"

// Writer appends instructions to a Program's Code stream and hands back
// patch sites for the compiler's two-pass layout: pass 1
// emits placeholder offsets via the methods below, pass 2 overwrites
// them with Patch once destinations are known.
type Writer struct {
	prog *Program
}

// NewWriter returns a Writer appending to prog.Code.
func NewWriter(prog *Program) *Writer {
	return &Writer{prog: prog}
}

// Len returns the current write position, i.e. the pc the next emitted
// instruction will occupy.
func (w *Writer) Len() int { return len(w.prog.Code) }

func (w *Writer) emitByte(b byte) {
	w.prog.Code = append(w.prog.Code, b)
}

func (w *Writer) emitOp(op Op) {
	w.emitByte(byte(op))
}

func (w *Writer) emitUint32(v uint32) {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], v)
	w.prog.Code = append(w.prog.Code, buf[:]...)
}

func (w *Writer) emitInt32(v int32) {
	w.emitUint32(uint32(v))
}

func (w *Writer) emitInt64(v int64) {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], uint64(v))
	w.prog.Code = append(w.prog.Code, buf[:]...)
}

func (w *Writer) emitRune(r rune) {
	w.emitInt32(int32(r))
}

// Patch overwrites the 4-byte placeholder at site with the relative
// offset from the byte immediately following it to target.
func (w *Writer) Patch(site, target int) {
	offset := int32(target - (site + 4))
	binary.NativeEndian.PutUint32(w.prog.Code[site:site+4], uint32(offset))
}

func (w *Writer) Noop()  { w.emitOp(Noop) }
func (w *Writer) Match() { w.emitOp(Match) }
func (w *Writer) Begin() { w.emitOp(Begin) }
func (w *Writer) End()   { w.emitOp(End) }
func (w *Writer) State() { w.emitOp(State) }

func (w *Writer) Memo(k int) { w.emitOp(Memo); w.emitUint32(uint32(k)) }
func (w *Writer) Char(ch rune) {
	w.emitOp(Char)
	w.emitRune(ch)
}
func (w *Writer) Pred(auxIdx int) { w.emitOp(Pred); w.emitUint32(uint32(auxIdx)) }
func (w *Writer) Save(k int)      { w.emitOp(Save); w.emitUint32(uint32(k)) }

// Jmp emits a jmp with a placeholder offset and returns its patch site.
func (w *Writer) Jmp() (site int) {
	w.emitOp(Jmp)
	site = w.Len()
	w.emitInt32(0)
	return site
}

// Jmp2 emits a jmp whose target is already known, skipping the
// patch-site dance Jmp requires for forward references.
func (w *Writer) Jmp2(target int) {
	site := w.Jmp()
	w.Patch(site, target)
}

// Split emits a fork with two placeholder offsets, primary first.
func (w *Writer) Split() (siteA, siteB int) {
	w.emitOp(Split)
	siteA = w.Len()
	w.emitInt32(0)
	siteB = w.Len()
	w.emitInt32(0)
	return siteA, siteB
}

func (w *Writer) GSplit() (site int) {
	w.emitOp(GSplit)
	site = w.Len()
	w.emitInt32(0)
	return site
}

func (w *Writer) LSplit() (site int) {
	w.emitOp(LSplit)
	site = w.Len()
	w.emitInt32(0)
	return site
}

// TSwitch emits an n-way fork in priority order and returns the n patch
// sites, one per arm.
func (w *Writer) TSwitch(n int) (sites []int) {
	w.emitOp(TSwitch)
	w.emitUint32(uint32(n))
	sites = make([]int, n)
	for i := range sites {
		sites[i] = w.Len()
		w.emitInt32(0)
	}
	return sites
}

func (w *Writer) EpsReset(k int) { w.emitOp(EpsReset); w.emitUint32(uint32(k)) }
func (w *Writer) EpsSet(k int)   { w.emitOp(EpsSet); w.emitUint32(uint32(k)) }
func (w *Writer) EpsChk(k int)   { w.emitOp(EpsChk); w.emitUint32(uint32(k)) }

func (w *Writer) Reset(i int, val int64) {
	w.emitOp(Reset)
	w.emitUint32(uint32(i))
	w.emitInt64(val)
}

func (w *Writer) Inc(i int) { w.emitOp(Inc); w.emitUint32(uint32(i)) }

func (w *Writer) Cmp(i int, val int64, ord Ord) {
	w.emitOp(Cmp)
	w.emitUint32(uint32(i))
	w.emitInt64(val)
	w.emitByte(byte(ord))
}

// ZWA emits a lookahead dispatch and returns the Yes/No patch sites.
func (w *Writer) ZWA(positive bool) (siteYes, siteNo int) {
	w.emitOp(ZWA)
	siteYes = w.Len()
	w.emitInt32(0)
	siteNo = w.Len()
	w.emitInt32(0)
	if positive {
		w.emitByte(1)
	} else {
		w.emitByte(0)
	}
	return siteYes, siteNo
}

func (w *Writer) Write(b byte) { w.emitOp(Write); w.emitByte(b) }
func (w *Writer) Write0()      { w.emitOp(Write0) }
func (w *Writer) Write1()      { w.emitOp(Write1) }
