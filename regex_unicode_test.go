package bru_test

import (
	"testing"

	"github.com/bru-go/bru"
)

func TestMultibyteLiteralsMatchByRuneNotByte(t *testing.T) {
	re := bru.MustCompile(`café`)
	if !re.MatchString("café") {
		t.Error("expected a multibyte literal to match itself")
	}
}

func TestDotMatchesOneMultibyteRuneNotOneByte(t *testing.T) {
	re := bru.MustCompile(`^.$`)
	if !re.MatchString("é") {
		t.Error("expected . to match a single multibyte rune")
	}
	if !re.MatchString("日") {
		t.Error("expected . to match a single CJK rune")
	}
}

// \w's shorthand table is ASCII-only, so a multibyte rune ends a \w+
// run rather than extending it.
func TestWordShorthandIsASCIIOnlyAndStopsAtMultibyteRune(t *testing.T) {
	re := bru.MustCompile(`\w+`)
	if got := re.FindString("héllo world"); got != "h" {
		t.Errorf("FindString = %q, want %q", got, "h")
	}
}

func TestDigitShorthandIsASCIIOnly(t *testing.T) {
	re := bru.MustCompile(`\d+`)
	if got := re.FindString("42"); got != "42" {
		t.Errorf("FindString = %q, want %q", got, "42")
	}
}
