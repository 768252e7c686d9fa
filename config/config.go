// Package config loads the TOML configuration file into validated settings.
//
// Missing keys keep their defaults, unknown keys are rejected so a typo in a
// route name does not silently leave a control unbound.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-vis/audio"
	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/core"
	"github.com/cwbudde/algo-vis/dsp/envelope"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
	"github.com/cwbudde/algo-vis/dsp/window"
	"github.com/cwbudde/algo-vis/midi"
)

// DefaultPath is the file read when no -config flag is given.
const DefaultPath = "config.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration file.
type Config struct {
	MIDI     MIDI     `toml:"midi"`
	Routes   Routes   `toml:"routes"`
	Control  Control  `toml:"control"`
	Audio    Audio    `toml:"audio"`
	Envelope Envelope `toml:"envelope"`
	Render   Render   `toml:"render"`
	Time     Time     `toml:"time"`
	Log      Log      `toml:"log"`
}

// MIDI selects the input device.
type MIDI struct {
	// Device is a portmidi device id; -1 selects the default input.
	Device     int   `toml:"device"`
	BufferSize int64 `toml:"buffer_size"`
	// Channel filters on a MIDI channel 0-15; -1 accepts all.
	Channel int `toml:"channel"`
}

// Routes maps controls to controller numbers. -1 leaves a control unrouted.
type Routes struct {
	Intensity int `toml:"intensity"`
	Dilation  int `toml:"time_dilation"`
	Decay     int `toml:"decay_factor"`
	Reset     int `toml:"reset"`
	Backward  int `toml:"backwards"`
	Spiral    int `toml:"spiral"`
	AltCurve  int `toml:"v2"`
	Waves     int `toml:"waves"`
	Solid     int `toml:"solid"`
	Audio     int `toml:"audio"`
}

// Control is the startup control state.
type Control struct {
	Mode      string  `toml:"mode"`
	Intensity float64 `toml:"intensity"`
	Dilation  float64 `toml:"dilation"`
	Decay     float64 `toml:"decay"`
}

// Audio configures capture and analysis.
type Audio struct {
	SampleRate float64 `toml:"sample_rate"`
	Frames     int     `toml:"frames"`
	LowHz      float64 `toml:"low_hz"`
	HighHz     float64 `toml:"high_hz"`
	Window     string  `toml:"window"`
	// Gain scales captured float samples before analysis.
	Gain float64 `toml:"gain"`
}

// Envelope configures the peak-hold smoother.
type Envelope struct {
	Size int `toml:"size"`
}

// Render configures the window and grid.
type Render struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Depth  int `toml:"depth"`
	// Overlay shows the statistics HUD at startup.
	Overlay bool `toml:"overlay"`
}

// Time configures the time engine.
type Time struct {
	Scale float64 `toml:"scale"`
}

// Log configures the process logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	r := midi.DefaultRoutes()
	return Config{
		MIDI: MIDI{Device: -1, BufferSize: midi.DefaultBufferSize, Channel: control.Omni},
		Routes: Routes{
			Intensity: int(r.Intensity),
			Dilation:  int(r.Dilation),
			Decay:     int(r.Decay),
			Reset:     int(r.Reset),
			Backward:  int(r.Backward),
			Spiral:    int(r.Modes[control.Spiral]),
			AltCurve:  int(r.Modes[control.AltCurve]),
			Waves:     int(r.Modes[control.Waves]),
			Solid:     int(r.Modes[control.Solid]),
			Audio:     int(r.Modes[control.AudioReactive]),
		},
		Control: Control{
			Mode:  control.Spiral.String(),
			Decay: envelope.DefaultDecay,
		},
		Audio: Audio{
			SampleRate: 44100,
			Frames:     2048,
			LowHz:      spectrum.DefaultLowHz,
			HighHz:     spectrum.DefaultHighHz,
			Window:     window.TypeHann.String(),
			Gain:       audio.PCMScale,
		},
		Envelope: Envelope{Size: envelope.DefaultSize},
		Render:   Render{Width: 1024, Height: 1024, Depth: 6},
		Time:     Time{Scale: 1},
		Log:      Log{Level: "info"},
	}
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.MIDI.Device < -1 {
		return invalid("midi.device must be >= -1: %d", c.MIDI.Device)
	}
	if c.MIDI.BufferSize <= 0 {
		return invalid("midi.buffer_size must be > 0: %d", c.MIDI.BufferSize)
	}
	if c.MIDI.Channel < control.Omni || c.MIDI.Channel > 15 {
		return invalid("midi.channel must be -1 or 0-15: %d", c.MIDI.Channel)
	}
	if err := c.MIDIRoutes().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := control.ParseMode(c.Control.Mode); err != nil {
		return fmt.Errorf("%w: control.mode: %w", ErrInvalid, err)
	}
	if !inRange(c.Control.Intensity, control.LevelMin, control.LevelMax) {
		return invalid("control.intensity out of range [0,255]: %f", c.Control.Intensity)
	}
	if !inRange(c.Control.Dilation, control.LevelMin, control.LevelMax) {
		return invalid("control.dilation out of range [0,255]: %f", c.Control.Dilation)
	}
	if !inRange(c.Control.Decay, 0, 1) {
		return invalid("control.decay out of range [0,1]: %f", c.Control.Decay)
	}
	if !(c.Audio.SampleRate > 0) {
		return invalid("audio.sample_rate must be > 0: %f", c.Audio.SampleRate)
	}
	if c.Audio.Frames < 2 || core.NextPowerOfTwo(c.Audio.Frames) != c.Audio.Frames {
		return invalid("audio.frames must be a power of two >= 2: %d", c.Audio.Frames)
	}
	if !(c.Audio.LowHz >= 0) || !(c.Audio.LowHz < c.Audio.HighHz) {
		return invalid("audio band [%f,%f] is empty", c.Audio.LowHz, c.Audio.HighHz)
	}
	if !(c.Audio.Gain > 0) || !core.IsFinite(c.Audio.Gain) {
		return invalid("audio.gain must be finite and > 0: %f", c.Audio.Gain)
	}
	if _, err := window.ParseType(c.Audio.Window); err != nil {
		return fmt.Errorf("%w: audio.window: %w", ErrInvalid, err)
	}
	if c.Envelope.Size <= 0 {
		return invalid("envelope.size must be > 0: %d", c.Envelope.Size)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return invalid("render size must be positive: %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Depth < 0 || c.Render.Depth > 10 {
		return invalid("render.depth out of range [0,10]: %d", c.Render.Depth)
	}
	if !(c.Time.Scale > 0) {
		return invalid("time.scale must be > 0: %f", c.Time.Scale)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// MIDIRoutes converts the route table.
func (c Config) MIDIRoutes() midi.Routes {
	r := midi.Routes{
		Intensity: midi.Route(c.Routes.Intensity),
		Dilation:  midi.Route(c.Routes.Dilation),
		Decay:     midi.Route(c.Routes.Decay),
		Reset:     midi.Route(c.Routes.Reset),
		Backward:  midi.Route(c.Routes.Backward),
	}
	r.Modes[control.Spiral] = midi.Route(c.Routes.Spiral)
	r.Modes[control.AltCurve] = midi.Route(c.Routes.AltCurve)
	r.Modes[control.Waves] = midi.Route(c.Routes.Waves)
	r.Modes[control.Solid] = midi.Route(c.Routes.Solid)
	r.Modes[control.AudioReactive] = midi.Route(c.Routes.Audio)
	return r
}

// InitialState returns the startup control state. Call after Validate.
func (c Config) InitialState() control.State {
	st := control.Defaults()
	if m, err := control.ParseMode(c.Control.Mode); err == nil {
		st.Mode = m
	}
	st.Intensity = c.Control.Intensity
	st.Dilation = c.Control.Dilation
	st.Decay = c.Control.Decay
	st.Channel = c.MIDI.Channel
	return st
}

// WindowType returns the parsed analysis window, Hann if invalid.
func (c Config) WindowType() window.Type {
	t, err := window.ParseType(c.Audio.Window)
	if err != nil {
		return window.TypeHann
	}
	return t
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
