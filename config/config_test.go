package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/window"
	"github.com/cwbudde/algo-vis/midi"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := Default().MIDIRoutes(); got != midi.DefaultRoutes() {
		t.Fatalf("default routes = %+v, want %+v", got, midi.DefaultRoutes())
	}
}

func TestLoadSample(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MIDI.Device != 3 || cfg.MIDI.Channel != 0 {
		t.Fatalf("midi = %+v", cfg.MIDI)
	}
	if cfg.MIDI.BufferSize != midi.DefaultBufferSize {
		t.Fatalf("buffer_size default lost: %d", cfg.MIDI.BufferSize)
	}

	r := cfg.MIDIRoutes()
	if r.Intensity != 16 || r.Dilation != 17 || r.Decay != 18 || r.Reset != 64 || r.Backward != 65 {
		t.Fatalf("routes = %+v", r)
	}
	if r.Modes[control.AltCurve] != 33 || r.Modes[control.AudioReactive] != midi.Unrouted {
		t.Fatalf("mode routes = %v", r.Modes)
	}

	st := cfg.InitialState()
	if st.Mode != control.Waves || st.Intensity != 10 || st.Channel != 0 {
		t.Fatalf("initial state = %+v", st)
	}
	if cfg.WindowType() != window.TypeBlackman {
		t.Fatalf("window = %v", cfg.WindowType())
	}
	if cfg.Audio.SampleRate != 48000 || cfg.Audio.Frames != 4096 {
		t.Fatalf("audio = %+v", cfg.Audio)
	}
	if cfg.Audio.HighHz != Default().Audio.HighHz {
		t.Fatalf("high_hz default lost: %v", cfg.Audio.HighHz)
	}
	if !cfg.Render.Overlay || cfg.Render.Depth != 5 {
		t.Fatalf("render = %+v", cfg.Render)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "sample.toml"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(Write(cfg)): %v\n%s", err, buf.String())
	}
	if back != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"route out of range", "[routes]\nintensity = 200\n"},
		{"route below unrouted", "[routes]\nreset = -2\n"},
		{"unknown key", "[routes]\nintensty = 1\n"},
		{"unknown mode", "[control]\nmode = \"plasma\"\n"},
		{"intensity too high", "[control]\nintensity = 300.0\n"},
		{"frames not power of two", "[audio]\nframes = 1000\n"},
		{"empty band", "[audio]\nlow_hz = 500.0\nhigh_hz = 100.0\n"},
		{"unknown window", "[audio]\nwindow = \"kaiser\"\n"},
		{"zero gain", "[audio]\ngain = 0.0\n"},
		{"bad channel", "[midi]\nchannel = 16\n"},
		{"bad depth", "[render]\ndepth = 11\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"zero time scale", "[time]\nscale = 0.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidationErrorsWrapErrInvalid(t *testing.T) {
	_, err := Parse([]byte("[routes]\nintensity = 200\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[routes\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want decode error", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg != Default() {
		t.Fatal("missing file did not yield defaults")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[render]\nwidth = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Fatal("invalid file accepted")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "WARN", "error"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q) = %v", s, err)
		}
	}
}
