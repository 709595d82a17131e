package threadmgr

// Memoised wraps a ThreadManager with the `memo k` bitmap: an
// nmemo x (textLen+1) bit array indexed by (k, sp), a bit-vector
// visited-set generalised from a single (state, pos) key to an
// arbitrary caller-chosen k.
type Memoised[M ThreadManager] struct {
	Base M

	bitmap  []uint64
	nmemo   int
	textLen int
}

// NewMemoised wraps base with a bitmap sized for nmemo memo points over
// a subject of length textLen.
func NewMemoised[M ThreadManager](base M, nmemo, textLen int) *Memoised[M] {
	m := &Memoised[M]{Base: base, nmemo: nmemo, textLen: textLen}
	bits := nmemo * (textLen + 1)
	m.bitmap = make([]uint64, (bits+63)/64)
	return m
}

func (m *Memoised[M]) Init(pc, sp int) *Thread {
	for i := range m.bitmap {
		m.bitmap[i] = 0
	}
	return m.Base.Init(pc, sp)
}

func (m *Memoised[M]) Reset()                        { m.Base.Reset() }
func (m *Memoised[M]) DoneExec() bool                { return m.Base.DoneExec() }
func (m *Memoised[M]) Schedule(t *Thread)             { m.Base.Schedule(t) }
func (m *Memoised[M]) ScheduleInOrder(t *Thread)      { m.Base.ScheduleInOrder(t) }
func (m *Memoised[M]) Next() (*Thread, bool)          { return m.Base.Next() }
func (m *Memoised[M]) NotifyMatch(t *Thread)          { m.Base.NotifyMatch(t) }
func (m *Memoised[M]) Clone(t *Thread) *Thread        { return m.Base.Clone(t) }
func (m *Memoised[M]) Kill(t *Thread)                 { m.Base.Kill(t) }

// Memoise reports whether (k, sp) is unseen, marking it seen either way.
func (m *Memoised[M]) Memoise(k, sp int) bool {
	idx := k*(m.textLen+1) + sp
	word, bit := idx/64, uint64(1)<<uint(idx%64)
	if m.bitmap[word]&bit != 0 {
		return false
	}
	m.bitmap[word] |= bit
	return true
}

var _ ThreadManager = (*Memoised[*Spencer])(nil)
var _ Memoiser = (*Memoised[*Spencer])(nil)
