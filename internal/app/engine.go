// Package app wires capture, analysis, control and time into the per-frame
// pipeline the renderer draws from.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-vis/audio"
	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/envelope"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
	"github.com/cwbudde/algo-vis/render"
	"github.com/cwbudde/algo-vis/stats/frequency"
	"github.com/cwbudde/algo-vis/timebase"
	"github.com/cwbudde/algo-vis/visual"
)

// Source provides the latest audio frame.
type Source interface {
	Snapshot() audio.Frame
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	analyzer     *spectrum.Analyzer
	clock        *timebase.Engine
	envelopeSize int
	log          *slog.Logger
}

// WithAnalyzer replaces the default analyzer.
func WithAnalyzer(a *spectrum.Analyzer) Option {
	return func(c *engineConfig) {
		if a != nil {
			c.analyzer = a
		}
	}
}

// WithClock replaces the default time engine.
func WithClock(t *timebase.Engine) Option {
	return func(c *engineConfig) {
		if t != nil {
			c.clock = t
		}
	}
}

// WithEnvelopeSize sets the peak-hold bucket count.
func WithEnvelopeSize(n int) Option {
	return func(c *engineConfig) {
		c.envelopeSize = n
	}
}

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Engine runs one frame of the pipeline per call. It is owned by the render
// loop; the only shared state it touches is the control store.
type Engine struct {
	store    *control.Store
	source   Source
	analyzer *spectrum.Analyzer
	envelope *envelope.PeakHold
	clock    *timebase.Engine
	log      *slog.Logger

	spectrum spectrum.Spectrum
	stats    frequency.Stats
	failures int
}

// NewEngine returns an Engine reading audio from source and controls from
// store.
func NewEngine(store *control.Store, source Source, opts ...Option) (*Engine, error) {
	if store == nil || source == nil {
		return nil, fmt.Errorf("app: engine needs a store and a source")
	}

	cfg := engineConfig{envelopeSize: envelope.DefaultSize, log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.analyzer == nil {
		cfg.analyzer = spectrum.NewAnalyzer()
	}
	if cfg.clock == nil {
		cfg.clock = timebase.New()
	}

	env, err := envelope.NewPeakHold(cfg.envelopeSize, store.Snapshot().Decay)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &Engine{
		store:    store,
		source:   source,
		analyzer: cfg.analyzer,
		envelope: env,
		clock:    cfg.clock,
		log:      cfg.log,
	}, nil
}

// Frame advances time by elapsed, analyses the latest audio and returns
// the prepared frame. An analysis failure keeps the previous spectrum and
// envelope.
func (e *Engine) Frame(elapsed time.Duration) Frame {
	step := e.clock.Tick(elapsed, e.store)
	if step.Bounced {
		e.log.Debug("time bounced", "backward", step.State.Backward, "acc", step.Accumulator)
	}

	in := e.source.Snapshot()
	s, err := e.analyzer.Analyze(in.Samples(), in.SampleRate())
	if err != nil {
		e.failures++
		e.log.Debug("analysis failed, reusing previous spectrum", "err", err, "failures", e.failures)
	} else {
		e.spectrum = s
		e.stats = frequency.Calculate(s)
		e.envelope.UpdateWithDecay(s, step.State.Decay)
	}

	return Frame{
		Frame:    visual.NewFrame(step.State.Mode, step.Time, step.Divisor, e.spectrum),
		Step:     step,
		Envelope: e.envelope.Values(),
		Stats:    e.stats,
	}
}

// Next implements render.Source.
func (e *Engine) Next(elapsed time.Duration) render.Scene {
	return e.Frame(elapsed)
}

// Failures returns the number of frames whose analysis failed.
func (e *Engine) Failures() int { return e.failures }

// Frame is everything the renderer needs for one frame.
type Frame struct {
	visual.Frame

	Step     timebase.Step
	Envelope []float64
	Stats    frequency.Stats
}

// HUD implements render.Scene.
func (f Frame) HUD() render.HUD {
	return render.HUD{
		State:       f.Step.State,
		Time:        f.Step.Time,
		Accumulator: f.Step.Accumulator,
		Stats:       f.Stats,
	}
}

// Meter implements render.Scene.
func (f Frame) Meter() []float64 { return f.Envelope }
