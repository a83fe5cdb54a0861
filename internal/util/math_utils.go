package util

import "math"

// Round2 rounds to 2 decimal places using round-half-away-from-zero, the
// rounding rule applied to every published mean and delta.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp01 clamps v to the [0, 1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
