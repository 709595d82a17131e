// Package fuzz exercises the seven invariants this engine promises to
// hold regardless of input: parser determinism, ε-substitution of
// unsupported constructs, counter-expansion equivalence, Thompson/
// Glushkov agreement on their shared operator subset, epsilon-loop
// termination, Lockstep's bounded instruction-fetch behavior, and CN
// memoisation idempotence.
package fuzz

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bru-go/bru"
	"github.com/bru-go/bru/construct/glushkov"
	"github.com/bru-go/bru/construct/thompson"
	"github.com/bru-go/bru/parser"
	"github.com/bru-go/bru/sre"
	"github.com/bru-go/bru/transform"
)

// FuzzParserIsDeterministic fuzzes over arbitrary pattern text and checks
// that parsing the same pattern twice yields the same canonical tree:
// sre.Print(parse(r)) is the same string both times. Parsing is the
// only side-effect-free, total-over-all-inputs stage (it never panics
// on malformed input, only returns a Result code), making it the stage
// safe to fuzz directly with unconstrained strings.
func FuzzParserIsDeterministic(f *testing.F) {
	for _, seed := range []string{
		"a|b", "(a*)*b", "a{2,4}", "[a-z]+", `\d+\s*\w*`,
		"(?:abc)+", "(?=a)b", "(?!a)b", "a??", "a*?",
		"(a", "a)", "[a-", `\`, "",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, pattern string) {
		root1, res1 := parser.Parse(pattern, parser.DefaultOptions())
		root2, res2 := parser.Parse(pattern, parser.DefaultOptions())
		if res1.Code != res2.Code || res1.Pos != res2.Pos || res1.Features != res2.Features {
			t.Fatalf("parser.Parse(%q) is nondeterministic: %+v vs %+v", pattern, res1, res2)
		}
		if res1.Code != parser.Success && res1.Code != parser.Unsupported {
			return
		}
		if sre.Print(root1) != sre.Print(root2) {
			t.Fatalf("parser.Parse(%q) produced different trees across runs", pattern)
		}
	})
}

// TestUnsupportedSubstitutesEpsilon covers property 2: an unsupported
// construct degrades to Epsilon rather than aborting the parse, and the
// resulting pattern still compiles and matches around it.
func TestUnsupportedSubstitutesEpsilon(t *testing.T) {
	root, res := parser.Parse("(?>a)b", parser.DefaultOptions())
	if res.Code != parser.Unsupported {
		t.Fatalf("Code = %v, want Unsupported", res.Code)
	}
	if !res.Features.Has(parser.FeatureAtomicGroup) {
		t.Fatalf("Features = %v, want FeatureAtomicGroup set", res.Features)
	}
	if _, err := thompson.Construct(root, thompson.Options{}); err != nil {
		t.Fatalf("thompson.Construct: %v", err)
	}

	re, err := bru.Compile("(?>a)b")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !re.MatchString("b") {
		t.Error("expected the atomic group to degrade to an empty match, so \"b\" alone still matches")
	}
}

// FuzzExpandCountersEquivalence covers property 3: with or without
// ExpandCounters, a bounded-counter pattern's matches against any input
// are identical.
func FuzzExpandCountersEquivalence(f *testing.F) {
	type seed struct {
		pattern, input string
	}
	for _, s := range []seed{
		{"a{2,4}", "aaaaa"},
		{"a{2,4}", "a"},
		{"(ab){1,3}c", "ababc"},
		{"x{0,2}y", "y"},
	} {
		f.Add(s.pattern, s.input)
	}
	f.Fuzz(func(t *testing.T, pattern, input string) {
		_, res := parser.Parse(pattern, parser.DefaultOptions())
		if res.Code != parser.Success {
			return
		}
		if !strings.Contains(pattern, "{") {
			return
		}

		unexpanded, err := bru.CompileWithOptions(pattern, bru.DefaultEngineOptions())
		if err != nil {
			return
		}
		expandOpts := bru.DefaultEngineOptions()
		expandOpts.Parser.ExpandCounters = true
		expanded, err := bru.CompileWithOptions(pattern, expandOpts)
		if err != nil {
			t.Fatalf("ExpandCounters compile failed after plain compile succeeded: %v", err)
		}

		m1 := unexpanded.MatchString(input)
		m2 := expanded.MatchString(input)
		if m1 != m2 {
			t.Fatalf("pattern %q input %q: Match disagrees (plain=%v expanded=%v)", pattern, input, m1, m2)
		}
	})
}

// thompsonGlushkovComparablePatterns lists patterns over the operator
// subset both constructions accept: no counters, no lookahead, no
// backreferences.
var thompsonGlushkovComparablePatterns = []string{
	"a", "ab", "a|b", "a*", "a+", "a?",
	"(ab)*c", "(a|b)+c", "[a-z]+", `\d+\w*`,
	"(a(b|c))+d",
}

// TestThompsonGlushkovAgreeOnSupportedSubset covers property 4: over
// the operator set both constructions accept, Thompson and Glushkov
// accept the same inputs and agree on PCRE-semantics captures.
func TestThompsonGlushkovAgreeOnSupportedSubset(t *testing.T) {
	inputs := []string{"", "a", "ab", "abc", "abcd", "xyz", "aabbcc"}
	for _, pattern := range thompsonGlushkovComparablePatterns {
		t.Run(pattern, func(t *testing.T) {
			root, res := parser.Parse(pattern, parser.DefaultOptions())
			if res.Code != parser.Success {
				t.Fatalf("parse(%q): %v", pattern, res.Error())
			}

			if _, err := thompson.Construct(root, thompson.Options{Semantics: thompson.PCRE}); err != nil {
				t.Fatalf("thompson.Construct: %v", err)
			}
			if _, err := glushkov.Construct(root); err != nil {
				t.Fatalf("glushkov.Construct: %v", err)
			}

			tOpts := bru.DefaultEngineOptions()
			tOpts.Construction = bru.Thompson
			tEng, err := bru.NewEngine(pattern, tOpts)
			if err != nil {
				t.Fatalf("NewEngine(thompson): %v", err)
			}

			gOpts := bru.DefaultEngineOptions()
			gOpts.Construction = bru.Glushkov
			gEng, err := bru.NewEngine(pattern, gOpts)
			if err != nil {
				t.Fatalf("NewEngine(glushkov): %v", err)
			}

			for _, input := range inputs {
				tm, tok := tEng.Match([]byte(input))
				gm, gok := gEng.Match([]byte(input))
				if tok != gok {
					t.Fatalf("pattern %q input %q: Match disagrees (thompson=%v glushkov=%v)", pattern, input, tok, gok)
				}
				if !tok {
					continue
				}
				if tm.Start != gm.Start || tm.End != gm.End {
					t.Fatalf("pattern %q input %q: span disagrees thompson=[%d,%d) glushkov=[%d,%d)",
						pattern, input, tm.Start, tm.End, gm.Start, gm.End)
				}
				if diff := cmp.Diff(tm.Captures, gm.Captures); diff != "" {
					t.Fatalf("pattern %q input %q: capture slots disagree (-thompson +glushkov):\n%s", pattern, input, diff)
				}
			}
		})
	}
}

// TestEpsilonLoopTerminates covers property 5: a nullable body under a
// Star never loops forever, regardless of scheduler or construction.
func TestEpsilonLoopTerminates(t *testing.T) {
	for _, sched := range []bru.Scheduler{bru.Spencer, bru.Lockstep} {
		for _, constr := range []bru.Construction{bru.Thompson, bru.Glushkov} {
			opts := bru.DefaultEngineOptions()
			opts.Scheduler = sched
			opts.Construction = constr
			eng, err := bru.NewEngine("(a?)*", opts)
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			done := make(chan bool, 1)
			go func() {
				m, ok := eng.Match([]byte(""))
				done <- ok && m.Start == 0 && m.End == 0
			}()
			select {
			case ok := <-done:
				if !ok {
					t.Error("expected a single empty match")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("match on (a?)* against \"\" did not terminate")
			}
		}
	}
}

// TestLockstepScalesLinearly covers property 6: Lockstep's per-character
// work is bounded independent of input length, approximated here by
// timing a pathological-looking pattern over inputs of growing length
// and checking wall-clock grows roughly linearly rather than
// exponentially (an exact instruction-fetch count would need the
// threadmgr.Instrumented hook wired through a public API this engine
// does not expose; see DESIGN.md).
func TestLockstepScalesLinearly(t *testing.T) {
	opts := bru.DefaultEngineOptions()
	opts.Scheduler = bru.Lockstep
	eng, err := bru.NewEngine("(a|a)*(a|a)*b", opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	measure := func(n int) time.Duration {
		input := strings.Repeat("a", n)
		start := time.Now()
		eng.Match([]byte(input))
		return time.Since(start)
	}

	small := measure(50)
	large := measure(500)
	// A 10x input growing exponential work would blow this budget by
	// orders of magnitude; Lockstep is allowed generous slack since
	// this is a coarse wall-clock proxy, not a cycle-exact bound.
	if large > 200*(small+time.Microsecond) {
		t.Errorf("Lockstep time grew from %v to %v over a 10x input, suspiciously non-linear", small, large)
	}
}

// TestMemoisationIsIdempotent covers property 7: CN memoisation never
// changes the first reported match or its captures for a pattern with a
// finite language intersected with a bounded window.
func TestMemoisationIsIdempotent(t *testing.T) {
	pattern := "(a|a)*(a|a)*b"
	input := "aaaaaaaaaab"

	plain := bru.DefaultEngineOptions()
	plainEng, err := bru.NewEngine(pattern, plain)
	if err != nil {
		t.Fatalf("NewEngine(plain): %v", err)
	}
	plainMatch, plainOK := plainEng.Match([]byte(input))

	memo := bru.DefaultEngineOptions()
	memo.Memo = transform.MemoCN
	memoEng, err := bru.NewEngine(pattern, memo)
	if err != nil {
		t.Fatalf("NewEngine(memo): %v", err)
	}
	memoMatch, memoOK := memoEng.Match([]byte(input))

	if plainOK != memoOK {
		t.Fatalf("Match disagrees: plain=%v memo=%v", plainOK, memoOK)
	}
	if !plainOK {
		return
	}
	if plainMatch.Start != memoMatch.Start || plainMatch.End != memoMatch.End {
		t.Fatalf("span disagrees: plain=[%d,%d) memo=[%d,%d)",
			plainMatch.Start, plainMatch.End, memoMatch.Start, memoMatch.End)
	}
	for g := 0; 2*g < len(plainMatch.Captures) && 2*g < len(memoMatch.Captures); g++ {
		ps, pe := plainMatch.Group(g)
		ms, me := memoMatch.Group(g)
		if ps != ms || pe != me {
			t.Fatalf("group %d disagrees: plain=(%d,%d) memo=(%d,%d)", g, ps, pe, ms, me)
		}
	}
}

// TestEndToEndScenarios exercises the documented worked examples directly.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("parse a|b", func(t *testing.T) {
		root, res := parser.Parse("a|b", parser.DefaultOptions())
		if res.Code != parser.Success {
			t.Fatalf("parse failed: %v", res.Error())
		}
		want := "Alt(a,b)"
		if got := sre.Print(root); got != want {
			t.Errorf("Print = %q, want %q", got, want)
		}
	})

	t.Run("match a*b spencer pcre", func(t *testing.T) {
		eng, err := bru.NewEngine("a*b", bru.DefaultEngineOptions())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		m, ok := eng.Match([]byte("aaab"))
		if !ok {
			t.Fatal("expected a match")
		}
		if m.Start != 0 || m.End != 4 {
			t.Errorf("span = [%d,%d), want [0,4)", m.Start, m.End)
		}
	})

	t.Run("match (a*)*b lockstep", func(t *testing.T) {
		opts := bru.DefaultEngineOptions()
		opts.Scheduler = bru.Lockstep
		eng, err := bru.NewEngine("(a*)*b", opts)
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		m, ok := eng.Match([]byte("aaaab"))
		if !ok {
			t.Fatal("expected a match")
		}
		s, e := m.Group(1)
		if s != 0 || e != 4 {
			t.Errorf("group 1 = (%d,%d), want (0,4)", s, e)
		}
	})

	t.Run("find \\d+ over abc 12 34 d", func(t *testing.T) {
		eng, err := bru.NewEngine(`\d+`, bru.DefaultEngineOptions())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		matches := eng.FindAll([]byte("abc 12 34 d"))
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(matches))
		}
		if string([]byte("abc 12 34 d")[matches[0].Start:matches[0].End]) != "12" {
			t.Errorf("first match = %q, want \"12\"", "abc 12 34 d"[matches[0].Start:matches[0].End])
		}
		if string([]byte("abc 12 34 d")[matches[1].Start:matches[1].End]) != "34" {
			t.Errorf("second match = %q, want \"34\"", "abc 12 34 d"[matches[1].Start:matches[1].End])
		}
	})

	t.Run("anchors respect subject boundaries", func(t *testing.T) {
		eng, err := bru.NewEngine("^foo$", bru.DefaultEngineOptions())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		if _, ok := eng.Match([]byte("foo")); !ok {
			t.Error("expected \"foo\" to match")
		}
		if _, ok := eng.Match([]byte("foo\n")); ok {
			t.Error("expected \"foo\\n\" not to match")
		}
	})

	t.Run("greedy vs lazy counter", func(t *testing.T) {
		eng, err := bru.NewEngine("a{2,4}", bru.DefaultEngineOptions())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		m, ok := eng.Match([]byte("aaaaa"))
		if !ok || m.End != 4 {
			t.Errorf("greedy a{2,4} on \"aaaaa\" = %v, end %d, want end 4", ok, m.End)
		}

		lazyEng, err := bru.NewEngine("a{2,4}?", bru.DefaultEngineOptions())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		lm, ok := lazyEng.Match([]byte("aaaaa"))
		if !ok || lm.End != 2 {
			t.Errorf("lazy a{2,4}? on \"aaaaa\" = %v, end %d, want end 2", ok, lm.End)
		}
	})
}
