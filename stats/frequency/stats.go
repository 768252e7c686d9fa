package frequency

import (
	"math"

	"github.com/cwbudde/algo-vis/dsp/core"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
)

// Stats holds frequency-domain statistics of a spectrum.
type Stats struct {
	BinCount int
	Sum      float64 // sum of magnitudes
	Peak     float64
	PeakFreq float64 // Hz
	Peak_dB  float64
	Average  float64
	Energy   float64 // sum of squared magnitudes
	// Spectral shape descriptors
	Centroid float64 // Hz
	Spread   float64 // Hz
	Flatness float64 // Wiener entropy, 0..1
	Rolloff  float64 // frequency below which 85% of energy lies (Hz)
}

// RolloffPercent is the energy fraction used by [Calculate] for Rolloff.
const RolloffPercent = 0.85

// Calculate computes all statistics of s. Bin frequencies are taken from
// the spectrum itself, so band-limited and zero-padded spectra work as is.
func Calculate(s spectrum.Spectrum) Stats {
	n := s.Len()
	if n == 0 {
		return Stats{Peak_dB: math.Inf(-1)}
	}

	st := Stats{BinCount: n}
	for i := range n {
		b := s.At(i)
		st.Sum += b.Mag
		st.Energy += b.Mag * b.Mag
		if i == 0 || b.Mag > st.Peak {
			st.Peak = b.Mag
			st.PeakFreq = b.Freq
		}
	}
	st.Peak_dB = core.LinearToDB(st.Peak)
	st.Average = st.Sum / float64(n)

	st.Centroid = centroid(s, st.Sum)
	st.Spread = spread(s, st.Centroid, st.Sum)
	st.Flatness = flatness(s)
	st.Rolloff = rolloff(s, RolloffPercent, st.Energy)
	return st
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(s spectrum.Spectrum) float64 {
	sum := 0.0
	for i := range s.Len() {
		sum += s.At(i).Mag
	}
	return centroid(s, sum)
}

func centroid(s spectrum.Spectrum, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i := range s.Len() {
		b := s.At(i)
		weighted += b.Freq * b.Mag
	}
	return weighted / sumMag
}

// spread is the magnitude-weighted standard deviation around the centroid.
func spread(s spectrum.Spectrum, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i := range s.Len() {
		b := s.At(i)
		d := b.Freq - cent
		weighted += d * d * b.Mag
	}
	return math.Sqrt(weighted / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// A DC bin at 0 Hz is excluded. If any considered bin is zero, 0 is returned.
func Flatness(s spectrum.Spectrum) float64 {
	return flatness(s)
}

func flatness(s spectrum.Spectrum) float64 {
	count := 0
	sumLin := 0.0
	sumLog := 0.0
	for i := range s.Len() {
		b := s.At(i)
		if b.Freq == 0 {
			continue
		}
		if b.Mag <= 0 {
			return 0
		}
		count++
		sumLin += b.Mag
		sumLog += math.Log(b.Mag)
	}
	if count == 0 || sumLin == 0 {
		return 0
	}
	return math.Exp(sumLog/float64(count)) / (sumLin / float64(count))
}

// Rolloff returns the frequency below which percent (0..1) of the spectral
// energy lies.
func Rolloff(s spectrum.Spectrum, percent float64) float64 {
	energy := 0.0
	for i := range s.Len() {
		m := s.At(i).Mag
		energy += m * m
	}
	return rolloff(s, percent, energy)
}

func rolloff(s spectrum.Spectrum, percent, total float64) float64 {
	n := s.Len()
	if n == 0 || total == 0 {
		return 0
	}
	threshold := percent * total
	cum := 0.0
	for i := range n {
		b := s.At(i)
		cum += b.Mag * b.Mag
		if cum >= threshold {
			return b.Freq
		}
	}
	return s.At(n - 1).Freq
}
