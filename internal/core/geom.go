// Package core provides the fundamental types shared by the engine, the game
// and the front ends: the 17x7 brightness grid, button identifiers and small
// numeric helpers. It has no external dependencies so game logic stays pure
// and testable.
package core

import "math"

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Floor splits v into its integer cell and the fractional offset within it.
// The fraction is always in [0, 1), also for negative values.
func Floor(v float64) (int, float64) {
	f := math.Floor(v)
	return int(f), v - f
}

// Rotate turns the vector (x, y) by angle radians.
// A zero angle returns the input unchanged, bit for bit.
func Rotate(x, y, angle float64) (float64, float64) {
	if angle == 0 {
		return x, y
	}
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
