package envelope

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vis/dsp/core"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
)

const (
	// DefaultSize is the number of tracked buckets.
	DefaultSize = 69
	// DefaultDecay gives a slow, smeary release.
	DefaultDecay = 0.9999
)

var errInvalidSize = errors.New("envelope size must be > 0")

// Smooth returns the next envelope for prev given a new spectrum.
//
// Bucket i follows spectrum bin i. A magnitude above the held value replaces
// it; otherwise the held value is multiplied by decay. Buckets without a
// matching bin keep decaying and extra bins are ignored. prev is not modified.
func Smooth(prev []float64, s spectrum.Spectrum, decay float64) []float64 {
	next := make([]float64, len(prev))
	copy(next, prev)
	smoothInto(next, s, core.Clamp(decay, 0, 1))
	return next
}

func smoothInto(buf []float64, s spectrum.Spectrum, decay float64) {
	mapped := s.Len()
	if mapped > len(buf) {
		mapped = len(buf)
	}

	for i := range buf {
		if i < mapped {
			if m := s.At(i).Mag; m > buf[i] {
				buf[i] = m
				continue
			}
		}
		buf[i] = core.FlushDenormals(buf[i] * decay)
	}
}

// PeakHold is a fixed-size envelope buffer updated in place.
// It is owned by the render loop and is not safe for concurrent use.
type PeakHold struct {
	values []float64
	decay  float64
}

// NewPeakHold returns a zeroed envelope of size buckets decaying by decay.
func NewPeakHold(size int, decay float64) (*PeakHold, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidSize, size)
	}
	if decay < 0 || decay > 1 {
		return nil, fmt.Errorf("envelope decay must be in [0,1]: %f", decay)
	}

	return &PeakHold{
		values: make([]float64, size),
		decay:  decay,
	}, nil
}

// Update folds s into the envelope using the configured decay.
func (p *PeakHold) Update(s spectrum.Spectrum) {
	smoothInto(p.values, s, p.decay)
}

// UpdateWithDecay folds s into the envelope using decay for this update
// only, clamped to [0,1].
func (p *PeakHold) UpdateWithDecay(s spectrum.Spectrum, decay float64) {
	smoothInto(p.values, s, core.Clamp(decay, 0, 1))
}

// Values returns a copy of the held magnitudes.
func (p *PeakHold) Values() []float64 {
	return append([]float64(nil), p.values...)
}

// Len returns the bucket count.
func (p *PeakHold) Len() int { return len(p.values) }

// Decay returns the configured decay factor.
func (p *PeakHold) Decay() float64 { return p.decay }

// Reset zeroes every bucket.
func (p *PeakHold) Reset() {
	for i := range p.values {
		p.values[i] = 0
	}
}
