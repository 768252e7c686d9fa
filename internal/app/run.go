package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-vis/audio"
	"github.com/cwbudde/algo-vis/config"
	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
	"github.com/cwbudde/algo-vis/midi"
	"github.com/cwbudde/algo-vis/render"
	"github.com/cwbudde/algo-vis/timebase"
)

// EngineOptions derives engine options from cfg.
func EngineOptions(cfg config.Config, log *slog.Logger) []Option {
	return []Option{
		WithAnalyzer(spectrum.NewAnalyzer(
			spectrum.WithRange(cfg.Audio.LowHz, cfg.Audio.HighHz),
			spectrum.WithWindow(cfg.WindowType()),
		)),
		WithClock(timebase.New(timebase.WithTimeScale(cfg.Time.Scale))),
		WithEnvelopeSize(cfg.Envelope.Size),
		WithLogger(log),
	}
}

// Run opens audio capture and, unless keysOnly is set, the MIDI input, then
// blocks in the render window until it closes. MIDI failure after startup
// stops only the listener; the window keeps running with the last controls.
func Run(ctx context.Context, cfg config.Config, keysOnly bool, log *slog.Logger) error {
	store := control.NewStore(cfg.InitialState())

	buf, err := audio.NewBuffer(cfg.Audio.Frames, cfg.Audio.SampleRate, audio.WithGain(cfg.Audio.Gain))
	if err != nil {
		return err
	}
	if err := audio.Init(); err != nil {
		return err
	}
	defer audio.Terminate()

	capture, err := audio.OpenCapture(buf, audio.WithCaptureLogger(log))
	if err != nil {
		return err
	}
	defer capture.Close()
	if err := capture.Start(); err != nil {
		return err
	}

	if keysOnly {
		log.Info("keyboard only, midi disabled")
	} else {
		stop, err := startMIDI(ctx, cfg, store, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	eng, err := NewEngine(store, buf, EngineOptions(cfg, log)...)
	if err != nil {
		return err
	}
	win, err := render.NewWindow(eng, store, cfg.Render.Width, cfg.Render.Height, cfg.Render.Depth,
		render.WithOverlay(cfg.Render.Overlay),
		render.WithWindowLogger(log),
	)
	if err != nil {
		return err
	}
	return win.Run()
}

func startMIDI(ctx context.Context, cfg config.Config, store *control.Store, log *slog.Logger) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	if err := midi.Init(); err != nil {
		cancel()
		return nil, err
	}
	port, err := midi.OpenInput(cfg.MIDI.Device, cfg.MIDI.BufferSize)
	if err != nil {
		cancel()
		midi.Terminate()
		return nil, err
	}
	l, err := midi.NewListener(port, store, cfg.MIDIRoutes(), midi.WithLogger(log))
	if err != nil {
		cancel()
		port.Close()
		midi.Terminate()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("midi listener stopped, controls frozen", "err", err)
		}
	}()

	return func() {
		cancel()
		<-done
		port.Close()
		midi.Terminate()
	}, nil
}

// SnapshotOptions selects what a snapshot renders.
type SnapshotOptions struct {
	Mode    control.Mode
	Elapsed time.Duration
	// ToneHz feeds a sine of this frequency as audio; 0 renders silence.
	ToneHz  float64
	Overlay bool
}

// Snapshot renders a single frame offline and writes it as PNG to w.
func Snapshot(w io.Writer, cfg config.Config, opts SnapshotOptions, log *slog.Logger) error {
	st := cfg.InitialState()
	st.Mode = opts.Mode
	store := control.NewStore(st)

	buf, err := audio.NewBuffer(cfg.Audio.Frames, cfg.Audio.SampleRate, audio.WithGain(cfg.Audio.Gain))
	if err != nil {
		return err
	}
	if opts.ToneHz > 0 {
		buf.Write(audio.Tone(cfg.Audio.Frames, cfg.Audio.SampleRate, opts.ToneHz, 1))
	}

	eng, err := NewEngine(store, buf, EngineOptions(cfg, log)...)
	if err != nil {
		return err
	}
	raster, err := render.NewRaster(cfg.Render.Width, cfg.Render.Height, cfg.Render.Depth)
	if err != nil {
		return err
	}

	frame := eng.Frame(opts.Elapsed)
	render.RenderScene(raster, frame, opts.Overlay)

	var lines []string
	if opts.Overlay {
		lines = frame.HUD().Lines()
	}
	if err := render.WritePNG(w, raster.Image(), lines); err != nil {
		return fmt.Errorf("app: snapshot: %w", err)
	}
	log.Info("snapshot rendered", "mode", opts.Mode.String(), "t", frame.Step.Time, "cells", len(raster.Cells()))
	return nil
}
