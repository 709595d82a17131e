package bru

import (
	"strings"

	"github.com/bru-go/bru/bytecode"
	"github.com/bru-go/bru/compiler"
	"github.com/bru-go/bru/construct/glushkov"
	"github.com/bru-go/bru/construct/thompson"
	"github.com/bru-go/bru/parser"
	"github.com/bru-go/bru/smir"
	"github.com/bru-go/bru/transform"
	"github.com/bru-go/bru/vm"
)

// Construction selects which SMIR-building algorithm Engine uses (the
// CLI's `-c thompson|glushkov|flat` flag).
type Construction int

const (
	Thompson Construction = iota
	Glushkov
)

// Scheduler aliases vm.Scheduler so callers configuring EngineOptions
// never need to import the vm package directly.
type Scheduler = vm.Scheduler

const (
	Spencer  = vm.Spencer
	Lockstep = vm.Lockstep
)

// EngineOptions wires together every stage's own Options into one place:
// a flat struct of functional sub-configs rather than a single opaque
// blob.
type EngineOptions struct {
	Parser       parser.Options
	Construction Construction
	Captures     thompson.CaptureSemantics
	Memo         transform.MemoPolicy
	Flatten      bool
	PathEncode   bool
	Compiler     compiler.Options
	Scheduler    vm.Scheduler
}

// DefaultEngineOptions returns the conventional pipeline configuration:
// PCRE-flavoured parsing, Thompson construction, no memoisation or
// flattening, Spencer scheduling.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Parser:    parser.DefaultOptions(),
		Scheduler: vm.Spencer,
	}
}

// Engine is the assembled pipeline for one compiled pattern: parser ->
// sre -> construction -> smir -> transforms -> compiler -> vm.Program.
// It owns a bytecode.Program and hands out fresh vm.VM values per-call
// so concurrent Match/Find callers never share scheduler state.
type Engine struct {
	pattern string
	prog    *bytecode.Program
	sched   vm.Scheduler
}

// NewEngine runs pattern through the full pipeline under opts.
func NewEngine(pattern string, opts EngineOptions) (*Engine, error) {
	root, res := parser.Parse(pattern, opts.Parser)
	if res.Code != parser.Success && res.Code != parser.Unsupported {
		return nil, &res
	}

	var m *smir.SMIR
	var err error
	switch opts.Construction {
	case Glushkov:
		m, err = glushkov.Construct(root)
	default:
		m, err = thompson.Construct(root, thompson.Options{Semantics: opts.Captures})
	}
	if err != nil {
		return nil, err
	}

	if opts.Memo != transform.MemoNone {
		transform.ApplyMemoisation(m, opts.Memo)
	}
	if opts.Flatten && opts.Construction == Thompson {
		flattened, _ := transform.Flatten(m)
		m = flattened
	}
	if opts.PathEncode {
		transform.PathEncode(m)
	}

	prog, err := compiler.Compile(m, opts.Compiler)
	if err != nil {
		return nil, err
	}

	return &Engine{pattern: pattern, prog: prog, sched: opts.Scheduler}, nil
}

// vm returns a fresh VM bound to the compiled program, cheap enough
// (no allocation beyond the small VM struct itself) to build per call.
func (e *Engine) vm() *vm.VM {
	return vm.New(e.prog, e.sched)
}

// Match reports whether text matches, anchored at its start.
func (e *Engine) Match(text []byte) (*vm.Match, bool) {
	return e.vm().Match(text)
}

// Find locates the first unanchored match in text.
func (e *Engine) Find(text []byte) (*vm.Match, bool) {
	return e.vm().Find(text)
}

// FindAll iterates every non-overlapping match via a Finder.
func (e *Engine) FindAll(text []byte) []*vm.Match {
	f := e.vm().NewFinder(text)
	var out []*vm.Match
	for {
		m, ok := f.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// NumCaptures reports the compiled program's capture-group count
// (group 0 included).
func (e *Engine) NumCaptures() int {
	return e.prog.NCaptures
}

// Disassemble returns the compiled program's textual disassembly, as
// produced by bytecode.Disassemble and printed by `bru compile`.
func (e *Engine) Disassemble() string {
	var b strings.Builder
	_ = bytecode.Disassemble(&b, e.prog)
	return b.String()
}
