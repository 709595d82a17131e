package bru

// Regex is a compiled pattern ready for matching: the public facade over
// Engine's parser -> sre -> construction -> smir -> transforms ->
// compiler -> vm pipeline. Exposes a stdlib-shaped
// Regex/Compile/MustCompile/Find*/Match* surface so callers familiar
// with regexp feel at home, while exposing the engine's own knobs via
// CompileWithOptions.
type Regex struct {
	engine  *Engine
	pattern string
}

// Compile compiles pattern using DefaultEngineOptions.
func Compile(pattern string) (*Regex, error) {
	return CompileWithOptions(pattern, DefaultEngineOptions())
}

// MustCompile compiles pattern and panics on error, for patterns known
// valid at compile time (e.g. package-level vars).
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("bru: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithOptions compiles pattern under a caller-chosen
// construction, memoisation policy, and scheduler.
func CompileWithOptions(pattern string, opts EngineOptions) (*Regex, error) {
	eng, err := NewEngine(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: eng, pattern: pattern}, nil
}

// String returns the source pattern text.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capture groups excluding group 0.
func (r *Regex) NumSubexp() int {
	n := r.engine.NumCaptures() - 1
	if n < 0 {
		return 0
	}
	return n
}

// Match reports whether b contains any match of the regex (an unanchored
// search, like Find).
func (r *Regex) Match(b []byte) bool {
	_, ok := r.engine.Find(b)
	return ok
}

// MatchString is Match over a string.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the leftmost unanchored match in b, or nil.
func (r *Regex) Find(b []byte) []byte {
	m, ok := r.engine.Find(b)
	if !ok {
		return nil
	}
	return b[m.Start:m.End]
}

// FindString is Find over a string.
func (r *Regex) FindString(s string) string {
	m := r.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns the leftmost match's [start, end) in b, or nil.
func (r *Regex) FindIndex(b []byte) []int {
	m, ok := r.engine.Find(b)
	if !ok {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindStringIndex is FindIndex over a string.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups'
// text; unmatched groups are nil, result[0] is the whole match.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	m, ok := r.engine.Find(b)
	if !ok {
		return nil
	}
	n := r.engine.NumCaptures()
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		s, e := m.Group(i)
		if s < 0 || e < 0 {
			continue
		}
		out[i] = b[s:e]
	}
	return out
}

// FindStringSubmatch is FindSubmatch over a string.
func (r *Regex) FindStringSubmatch(s string) []string {
	groups := r.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			out[i] = string(g)
		}
	}
	return out
}

// FindSubmatchIndex returns the leftmost match's group index pairs,
// result[2*i:2*i+2] for group i, -1 for an unmatched group.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	m, ok := r.engine.Find(b)
	if !ok {
		return nil
	}
	n := r.engine.NumCaptures()
	out := make([]int, 2*n)
	for i := 0; i < n; i++ {
		s, e := m.Group(i)
		out[2*i], out[2*i+1] = s, e
	}
	return out
}

// FindStringSubmatchIndex is FindSubmatchIndex over a string.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// FindAll returns every non-overlapping match in b, at most n of them
// (all of them if n < 0).
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	var out [][]byte
	for _, m := range r.engine.FindAll(b) {
		out = append(out, b[m.Start:m.End])
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAllString is FindAll over a string.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}
