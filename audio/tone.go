package audio

import "math"

// Tone fills a Buffer-sized block with a sine of freq Hz and amplitude amp.
// It stands in for a live input when rendering offline.
func Tone(n int, sampleRate, freq, amp float64) []float32 {
	out := make([]float32, n)
	if sampleRate <= 0 {
		return out
	}
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = float32(amp * math.Sin(step*float64(i)))
	}
	return out
}
