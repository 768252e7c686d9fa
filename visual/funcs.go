package visual

import (
	"math"

	"github.com/cwbudde/algo-vis/dsp/spectrum"
)

const (
	// ReferenceHz is the lowest frequency considered for audio modulation.
	ReferenceHz = 500.0
	// MagnitudeDivisor brings raw magnitudes into a usable range.
	MagnitudeDivisor = 1e6
	// NoiseFloor is the scaled magnitude a bin must exceed to count.
	NoiseFloor = 1e-4
	// ClampThreshold is the scaled magnitude below which modulation is compressed.
	ClampThreshold = 10.0
	// Neutral is the modulation used when no bin qualifies.
	Neutral = 1.0
)

// Input is everything a visual function may read for one cell.
type Input struct {
	Y, X     float64
	T        float64
	Spectrum spectrum.Spectrum
	Divisor  float64
}

// Func evaluates one cell. Implementations must be pure.
type Func func(Input) float64

// Spiral is y*x*t.
func Spiral(in Input) float64 {
	return in.Y * in.X * in.T
}

// AltCurve layers a hyperbola over a drifting ramp.
func AltCurve(in Input) float64 {
	y, x, t := in.Y, in.X, in.T
	return 32/(t/x) + y/(x/y-1/t) + t*(y*0.05)
}

// Waves is x/y*t.
func Waves(in Input) float64 {
	return in.X / in.Y * in.T
}

// Solid is a nearly flat field that shifts hue with time.
func Solid(in Input) float64 {
	return (math.Mod(in.X, 2) + 1000) / (math.Mod(in.Y, 2) + 1000) * in.T
}

// AudioReactive skews the Spiral pattern by the spectrum modulation factor.
func AudioReactive(in Input) float64 {
	return audioWith(in, Modulation(in.Spectrum))
}

func audioWith(in Input, m float64) float64 {
	return (in.Y - m) * (in.X * m) * in.T / 100
}

// Modulation scans s for the first bin at or above ReferenceHz whose scaled
// magnitude exceeds NoiseFloor. Only that first bin is used. Scaled values
// below ClampThreshold are compressed to 1 + m/2; with no qualifying bin the
// result is Neutral.
func Modulation(s spectrum.Spectrum) float64 {
	b, ok := s.FirstAtOrAbove(ReferenceHz, func(b spectrum.Bin) bool {
		return b.Mag/MagnitudeDivisor > NoiseFloor
	})
	if !ok {
		return Neutral
	}

	m := b.Mag / MagnitudeDivisor
	if m < ClampThreshold {
		return 1 + m/2
	}
	return m
}
