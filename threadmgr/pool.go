package threadmgr

// Pool wraps a ThreadManager with a free-list so the dominant allocation
// source during matching — Clone at every fork point — reuses discarded
// Thread storage instead of allocating fresh slices each time. Init
// still defers to Base, since a search's first thread is a one-off per
// run.
type Pool[M ThreadManager] struct {
	Base M
	free []*Thread
}

// NewPool wraps base with an empty free-list.
func NewPool[M ThreadManager](base M) *Pool[M] {
	return &Pool[M]{Base: base}
}

func (p *Pool[M]) take() *Thread {
	n := len(p.free)
	if n == 0 {
		return nil
	}
	t := p.free[n-1]
	p.free = p.free[:n-1]
	return t
}

func (p *Pool[M]) Init(pc, sp int) *Thread   { return p.Base.Init(pc, sp) }
func (p *Pool[M]) Reset()                     { p.Base.Reset() }
func (p *Pool[M]) DoneExec() bool             { return p.Base.DoneExec() }
func (p *Pool[M]) Schedule(t *Thread)         { p.Base.Schedule(t) }
func (p *Pool[M]) ScheduleInOrder(t *Thread)  { p.Base.ScheduleInOrder(t) }
func (p *Pool[M]) Next() (*Thread, bool)      { return p.Base.Next() }
func (p *Pool[M]) NotifyMatch(t *Thread)      { p.Base.NotifyMatch(t) }

// Clone reuses a freed Thread's backing slices when one is available and
// sized compatibly with t; otherwise it falls back to Base.Clone.
func (p *Pool[M]) Clone(t *Thread) *Thread {
	nt := p.take()
	if nt == nil || len(nt.Captures) != len(t.Captures) ||
		len(nt.Counters) != len(t.Counters) || len(nt.Mem) != len(t.Mem) {
		return p.Base.Clone(t)
	}
	nt.PC, nt.SP = t.PC, t.SP
	copy(nt.Captures, t.Captures)
	copy(nt.Counters, t.Counters)
	copy(nt.Mem, t.Mem)
	nt.WriteBuf = append(nt.WriteBuf[:0], t.WriteBuf...)
	return nt
}

// Kill returns t to the free-list instead of discarding it.
func (p *Pool[M]) Kill(t *Thread) {
	p.free = append(p.free, t)
}

var _ ThreadManager = (*Pool[*Spencer])(nil)
