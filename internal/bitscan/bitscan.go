// Package bitscan provides a dense bitmap fast path for small, bounded
// rune ranges — used to turn an ASCII-only character class's linear
// range scan into an O(1) bit test. Feature-detects the host's
// population-count support the same way simd/memchr_amd64.go gates its
// AVX2 path, via golang.org/x/sys/cpu, even though math/bits already
// selects a hardware popcount instruction under the hood; the flag is
// kept for callers that want to choose a scan-based fallback count on
// hosts where a dense bitmap isn't worth building in the first place.
package bitscan

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// HasFastPopcount reports whether the host CPU exposes a hardware
// population-count instruction.
var HasFastPopcount = cpu.X86.HasPOPCNT

// Range is a single inclusive rune range, [Lo, Hi].
type Range struct {
	Lo, Hi rune
}

// Mask is a 128-bit dense membership set over runes [0, 127].
type Mask [2]uint64

// Build returns the Mask covering ranges, and false if any range falls
// outside ASCII — in which case a dense bitmap isn't a valid fast path
// and the caller should keep scanning the range list directly.
func Build(ranges []Range) (Mask, bool) {
	var m Mask
	for _, r := range ranges {
		if r.Lo < 0 || r.Hi > 127 || r.Lo > r.Hi {
			return Mask{}, false
		}
		for c := r.Lo; c <= r.Hi; c++ {
			m[c/64] |= 1 << uint(c%64)
		}
	}
	return m, true
}

// Test reports whether c is set. c must be in [0, 127]; callers check
// that range before relying on the mask (Build already validated the
// ranges it was built from, but a query rune is the caller's own to
// bounds-check).
func (m Mask) Test(c rune) bool {
	return m[c/64]&(1<<uint(c%64)) != 0
}

// Count returns the number of runes the mask matches.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1])
}
