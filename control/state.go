package control

import (
	"github.com/cwbudde/algo-vis/dsp/core"
)

const (
	// LevelMin and LevelMax bound intensity and dilation.
	LevelMin = 0.0
	LevelMax = 255.0

	// DefaultDecay is the envelope decay used until a controller sets one.
	DefaultDecay = 0.9999

	// Omni accepts messages on every MIDI channel.
	Omni = -1
)

// State is the shared control record. Values are copied out of the Store,
// so a State held by a caller never changes underneath it.
type State struct {
	Mode      Mode
	Intensity float64
	Dilation  float64
	Decay     float64
	Backward  bool
	Reset     bool
	// Channel is the MIDI channel (0-15) the listener accepts, or Omni.
	Channel int
}

// Defaults returns the startup state.
func Defaults() State {
	return State{
		Mode:    Spiral,
		Decay:   DefaultDecay,
		Channel: Omni,
	}
}

// normalize clamps every bounded field in place.
func (s *State) normalize() {
	if !s.Mode.Valid() {
		s.Mode = Spiral
	}
	s.Intensity = core.Clamp(s.Intensity, LevelMin, LevelMax)
	s.Dilation = core.Clamp(s.Dilation, LevelMin, LevelMax)
	s.Decay = core.Clamp(s.Decay, 0, 1)
	if s.Channel < Omni || s.Channel > 15 {
		s.Channel = Omni
	}
}

// AcceptsChannel reports whether a message on MIDI channel ch should be handled.
func (s State) AcceptsChannel(ch uint8) bool {
	return s.Channel == Omni || s.Channel == int(ch)
}
