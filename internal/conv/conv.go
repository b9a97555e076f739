// Package conv provides checked integer conversions for automaton state ids.
//
// They panic on overflow since that indicates a programming error (an arena
// larger than a state id can address), not a bad pattern.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct where int is 32 bits
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
