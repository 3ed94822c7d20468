// Package conv provides checked integer narrowing for automaton IDs.
//
// State and transition IDs are stored as uint32. Builders count with int,
// so every narrowing goes through this package; overflow indicates an
// automaton far beyond any configured limit and panics.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
