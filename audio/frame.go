package audio

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// PCMScale lifts float samples in [-1, 1] to 16-bit integer amplitude,
// the range the visual modulation constants are tuned for.
const PCMScale = 32768.0

var (
	errGain        = errors.New("audio: gain must be finite and > 0")
	errFrameLength = errors.New("audio: frame length must be > 0")
	errSampleRate  = errors.New("audio: sample rate must be > 0")
)

// Frame is a fixed-length window of samples in chronological order.
// A published Frame is never written again.
type Frame struct {
	samples    []float64
	sampleRate float64
}

// Samples returns the frame samples. The slice is shared and must not be
// modified.
func (f Frame) Samples() []float64 { return f.samples }

// SampleRate returns the rate the samples were captured at, in Hz.
func (f Frame) SampleRate() float64 { return f.sampleRate }

// Len returns the number of samples.
func (f Frame) Len() int { return len(f.samples) }

// Buffer is a single-writer, single-reader handoff. Write keeps the most
// recent Len samples in a ring and publishes a copy in order; Snapshot
// returns the latest published frame.
type Buffer struct {
	ring []float64
	pos  int
	rate float64
	gain float64

	latest atomic.Pointer[Frame]
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithGain multiplies every written sample by g. Use PCMScale for float
// input from a sound card.
func WithGain(g float64) BufferOption {
	return func(b *Buffer) {
		b.gain = g
	}
}

// NewBuffer returns a Buffer holding n samples at sampleRate. Until the
// first Write, Snapshot returns a frame of silence.
func NewBuffer(n int, sampleRate float64, opts ...BufferOption) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", errFrameLength, n)
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %f", errSampleRate, sampleRate)
	}

	b := &Buffer{
		ring: make([]float64, n),
		rate: sampleRate,
		gain: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if !(b.gain > 0) || math.IsInf(b.gain, 0) {
		return nil, fmt.Errorf("%w: %f", errGain, b.gain)
	}

	b.latest.Store(&Frame{samples: make([]float64, n), sampleRate: sampleRate})
	return b, nil
}

// Len returns the frame length.
func (b *Buffer) Len() int { return len(b.ring) }

// Gain returns the input gain.
func (b *Buffer) Gain() float64 { return b.gain }

// SampleRate returns the configured sample rate.
func (b *Buffer) SampleRate() float64 { return b.rate }

// Write appends samples scaled by the buffer gain and publishes the
// resulting frame. Only one goroutine may call Write.
func (b *Buffer) Write(samples []float32) {
	if len(samples) == 0 {
		return
	}
	n := len(b.ring)
	if len(samples) > n {
		samples = samples[len(samples)-n:]
	}
	for _, s := range samples {
		b.ring[b.pos] = float64(s) * b.gain
		b.pos++
		if b.pos == n {
			b.pos = 0
		}
	}
	b.publish()
}

// Snapshot returns the most recently published frame. Safe for use
// concurrently with Write.
func (b *Buffer) Snapshot() Frame {
	return *b.latest.Load()
}

func (b *Buffer) publish() {
	out := make([]float64, len(b.ring))
	k := copy(out, b.ring[b.pos:])
	copy(out[k:], b.ring[:b.pos])
	b.latest.Store(&Frame{samples: out, sampleRate: b.rate})
}
