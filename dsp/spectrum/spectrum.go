package spectrum

import (
	"fmt"
	"math"
)

// Bin is a single (frequency, magnitude) pair.
type Bin struct {
	Freq float64
	Mag  float64
}

// Spectrum is an immutable, frequency-ascending sequence of bins.
// The zero value is an empty spectrum.
type Spectrum struct {
	bins []Bin
}

// FromBins builds a Spectrum from explicit bins. Frequencies must be
// non-decreasing and magnitudes non-negative. The input is copied.
func FromBins(bins []Bin) (Spectrum, error) {
	for i, b := range bins {
		if math.IsNaN(b.Freq) || math.IsNaN(b.Mag) {
			return Spectrum{}, fmt.Errorf("spectrum bin %d is NaN", i)
		}
		if b.Mag < 0 {
			return Spectrum{}, fmt.Errorf("spectrum magnitude must be >= 0 at index %d: %f", i, b.Mag)
		}
		if i > 0 && b.Freq < bins[i-1].Freq {
			return Spectrum{}, fmt.Errorf("spectrum frequencies must be ascending at index %d", i)
		}
	}
	return Spectrum{bins: append([]Bin(nil), bins...)}, nil
}

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s.bins) }

// At returns the bin at index i.
func (s Spectrum) At(i int) Bin { return s.bins[i] }

// Bins returns a copy of all bins.
func (s Spectrum) Bins() []Bin {
	return append([]Bin(nil), s.bins...)
}

// Freqs returns the bin frequencies in Hz.
func (s Spectrum) Freqs() []float64 {
	out := make([]float64, len(s.bins))
	for i, b := range s.bins {
		out[i] = b.Freq
	}
	return out
}

// Mags returns the bin magnitudes.
func (s Spectrum) Mags() []float64 {
	out := make([]float64, len(s.bins))
	for i, b := range s.bins {
		out[i] = b.Mag
	}
	return out
}

// FirstAtOrAbove returns the first bin at or above freq for which match
// reports true. Scanning stops at the first hit.
func (s Spectrum) FirstAtOrAbove(freq float64, match func(Bin) bool) (Bin, bool) {
	for _, b := range s.bins {
		if b.Freq < freq {
			continue
		}
		if match == nil || match(b) {
			return b, true
		}
	}
	return Bin{}, false
}
