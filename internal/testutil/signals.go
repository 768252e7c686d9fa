package testutil

import (
	"fmt"
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// SineFloat32 is DeterministicSine in the sample format audio callbacks deliver.
func SineFloat32(freqHz, sampleRate, amplitude float64, length int) []float32 {
	src := DeterministicSine(freqHz, sampleRate, amplitude, length)
	out := make([]float32, length)
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// SizeName formats a block size for sub-benchmark names.
func SizeName(n int) string {
	return fmt.Sprintf("n=%d", n)
}
