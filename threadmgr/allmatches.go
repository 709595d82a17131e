package threadmgr

// AllMatches wraps a ThreadManager so every reported match is logged and
// execution continues past it, instead of the base schedulers' default
// of treating NotifyMatch as terminal for the run (Spencer would
// otherwise drain every pending alternative at the first match).
type AllMatches[M ThreadManager] struct {
	Base M
	Log  func(t *Thread)
}

// NewAllMatches wraps base, calling log for every match it reports.
func NewAllMatches[M ThreadManager](base M, log func(t *Thread)) *AllMatches[M] {
	return &AllMatches[M]{Base: base, Log: log}
}

func (a *AllMatches[M]) Init(pc, sp int) *Thread  { return a.Base.Init(pc, sp) }
func (a *AllMatches[M]) Reset()                    { a.Base.Reset() }
func (a *AllMatches[M]) DoneExec() bool            { return a.Base.DoneExec() }
func (a *AllMatches[M]) Schedule(t *Thread)        { a.Base.Schedule(t) }
func (a *AllMatches[M]) ScheduleInOrder(t *Thread) { a.Base.ScheduleInOrder(t) }
func (a *AllMatches[M]) Next() (*Thread, bool)     { return a.Base.Next() }
func (a *AllMatches[M]) Clone(t *Thread) *Thread   { return a.Base.Clone(t) }
func (a *AllMatches[M]) Kill(t *Thread)            { a.Base.Kill(t) }

// NotifyMatch logs t and kills only the reporting thread, letting
// siblings that would otherwise be drained keep running so every match
// is found, not just the first.
func (a *AllMatches[M]) NotifyMatch(t *Thread) {
	a.LogMatch(t)
	a.Base.Kill(t)
}

func (a *AllMatches[M]) LogMatch(t *Thread) {
	if a.Log != nil {
		a.Log(t)
	}
}

var _ ThreadManager = (*AllMatches[*Spencer])(nil)
var _ MatchLogger = (*AllMatches[*Spencer])(nil)
