// Package safemath provides checked unsigned arithmetic for consensus-critical
// values. Every helper reports whether the result is exact instead of wrapping
// or saturating, so callers can surface overflow as an error.
package safemath

import (
	"math/bits"
)

// Add64 returns a+b and false when the sum does not fit into 64 bits.
func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// Sub64 returns a-b and false when b > a.
func Sub64(a, b uint64) (uint64, bool) {
	v, borrow := bits.Sub64(a, b, 0)
	return v, borrow == 0
}

// Mul64 returns a*b and false when the product does not fit into 64 bits.
func Mul64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// Div64 returns a/b and false when b is zero.
func Div64(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}
