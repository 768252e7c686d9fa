package core

import "math"

const denormalFloor = 1e-30

// Clamp limits value to the inclusive range [min, max].
// NaN values collapse to min so bounded controls never hold NaN.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min || math.IsNaN(value) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Decaying meters rely on this to actually reach zero.
func FlushDenormals(x float64) float64 {
	if x > -denormalFloor && x < denormalFloor {
		return 0
	}

	return x
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Wrap maps x into [0, 1) by taking its fractional part.
// Negative values wrap from the top, so -0.25 becomes 0.75.
func Wrap(x float64) float64 {
	if !IsFinite(x) {
		return 0
	}

	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}

	return f
}

// Lerp maps t in [0, 1] linearly onto [a, b].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
