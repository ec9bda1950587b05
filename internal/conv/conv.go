// Package conv provides checked integer conversion helpers for the lexer,
// parser and generator.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent truncation. They panic on overflow since every caller
// validates its input first, so an overflow here is a programming error.
package conv

import "math"

// IntToByte converts an int to a byte.
// Panics if n < 0 or n > math.MaxUint8.
//
//go:inline
func IntToByte(n int) byte {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of byte range")
	}
	return byte(n)
}

// IntToUint32 converts an int to uint32.
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
