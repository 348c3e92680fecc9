// Package identity mints and parses peer identifiers and derives the
// deterministic two-word display name carried in every presence frame.
package identity

import (
	"math"
	"unicode/utf16"
)

// javaStringHash reproduces the classic Java String.hashCode() recurrence:
// h = 0, then h = h*31 + c for every UTF-16 code unit c, with each
// multiply-add step wrapping at 32-bit two's complement. Go's int32
// arithmetic already wraps this way, so the loop body needs no explicit
// masking.
func javaStringHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// absInt32 returns the absolute value of a signed 32-bit integer.
// math.MinInt32 has no positive two's-complement counterpart (its negation
// overflows back to itself), so it is mapped to 0 rather than wrapping
// silently into another negative number.
func absInt32(v int32) int32 {
	if v == math.MinInt32 {
		return 0
	}
	if v < 0 {
		return -v
	}
	return v
}
