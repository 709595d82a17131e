package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it. The subcommands print via fmt.Print* rather
// than cmd.OutOrStdout(), so tests capture the real stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	saved := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = saved
	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func resetFlags() {
	parseFlags = commonParserFlags{unboundedCounters: true}
	compileFlags.common = commonParserFlags{unboundedCounters: true}
	compileFlags.construction = "thompson"
	compileFlags.captureSem = "pcre"
	compileFlags.memo = "none"
	matchFlags.common = commonParserFlags{unboundedCounters: true}
	matchFlags.scheduler = "spencer"
	matchFlags.benchmark = false
}

func TestParseCommandPrintsAST(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"parse", "ab|c"})
	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "Alt(") {
		t.Errorf("parse output = %q, want an Alt( node", out)
	}
}

func TestParseCommandReportsHardError(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"parse", "(abc"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an unmatched paren")
	}
}

func TestCompileCommandPrintsDisassembly(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"compile", "ab"})
	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
	})
	if out == "" {
		t.Error("expected a non-empty bytecode listing")
	}
}

func TestCompileCommandRejectsUnknownConstruction(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"compile", "ab", "-c", "bogus"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown construction")
	}
}

func TestMatchCommandPrintsEachMatchAndCapture(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"match", `(\w+)@(\w+)`, "user@host"})
	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "match 0:") {
		t.Errorf("match output = %q, want a match 0 line", out)
	}
	if !strings.Contains(out, "group 1:") || !strings.Contains(out, "group 2:") {
		t.Errorf("match output = %q, want group 1 and group 2 lines", out)
	}
}

func TestMatchCommandReportsNoMatch(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"match", "xyz", "abc"})
	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "no match") {
		t.Errorf("match output = %q, want \"no match\"", out)
	}
}

func TestMatchCommandThompsonIsLockstepAlias(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"match", "a+", "aaa", "-s", "thompson"})
	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, "match 0:") {
		t.Errorf("match output = %q, want a match 0 line", out)
	}
}
