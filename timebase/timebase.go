// Package timebase accumulates wall-clock time into the bounded, bouncing
// time value that drives the visual functions.
package timebase

import (
	"time"

	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/core"
)

const (
	// Threshold bounds the accumulator magnitude. Reaching it reverses direction.
	Threshold = 1e9
	// DilationScale converts the 0-255 dilation control into a divisor offset.
	DilationScale = 100000.0
)

// Step is the outcome of one frame.
type Step struct {
	// State is the control snapshot the step was computed from, with
	// Backward reflecting any bounce taken this frame.
	State control.State

	Accumulator float64
	// Time is the normalised value handed to the visual functions.
	Time    float64
	Divisor float64
	Bounced bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeScale multiplies elapsed wall-clock time before accumulation.
// Non-positive values are ignored.
func WithTimeScale(f float64) Option {
	return func(e *Engine) {
		if f > 0 && core.IsFinite(f) {
			e.timeScale = f
		}
	}
}

// Engine owns the time accumulator. It is driven by the render loop only.
type Engine struct {
	acc       float64
	timeScale float64
}

// New returns an Engine with the accumulator at zero.
func New(opts ...Option) *Engine {
	e := &Engine{timeScale: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Accumulator returns the current accumulator value.
func (e *Engine) Accumulator() float64 { return e.acc }

// Reset sets the accumulator to zero.
func (e *Engine) Reset() { e.acc = 0 }

// Advance moves the accumulator by elapsed in the direction given by st.
//
// Reaching +Threshold turns the direction backward and reaching -Threshold
// turns it forward; the accumulator is held at the bound it reached. While
// st.Reset is asserted the accumulator is forced to zero and no bounce is
// taken.
func (e *Engine) Advance(elapsed time.Duration, st control.State) Step {
	bounced := false

	if st.Reset {
		e.acc = 0
	} else {
		dt := elapsed.Seconds() * e.timeScale
		if !(dt >= 0) || !core.IsFinite(dt) {
			dt = 0
		}

		if st.Backward {
			e.acc -= dt
		} else {
			e.acc += dt
		}

		switch {
		case e.acc >= Threshold:
			e.acc = Threshold
			if !st.Backward {
				st.Backward = true
				bounced = true
			}
		case e.acc <= -Threshold:
			e.acc = -Threshold
			if st.Backward {
				st.Backward = false
				bounced = true
			}
		}
	}

	divisor := st.Mode.TimeDivisor()

	return Step{
		State:       st,
		Accumulator: e.acc,
		Time:        e.acc/(divisor+DilationScale*st.Dilation) + st.Intensity/100,
		Divisor:     divisor,
		Bounced:     bounced,
	}
}

// Tick advances by elapsed against the current store state and writes a
// bounce back to the store in the same critical section, so a direction
// change made concurrently by another writer is never overwritten.
func (e *Engine) Tick(elapsed time.Duration, store *control.Store) Step {
	var step Step
	store.Update(func(st *control.State) {
		step = e.Advance(elapsed, *st)
		if step.Bounced {
			st.Backward = step.State.Backward
		}
	})
	return step
}
