package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/core"
)

const (
	// MaxValue is the largest 7-bit data value; it acts as "on" for flags.
	MaxValue = 127

	// DecayMin and DecayMax bound the decay factor reachable from a controller.
	DecayMin = 0.9
	DecayMax = 0.9999
)

// Event is a decoded control change.
type Event struct {
	// MIDIChannel is the status-byte channel, 0-15.
	MIDIChannel uint8
	// Channel is the route channel: the controller number, 0-127.
	Channel uint8
	Value   uint8
}

// Decode reduces msg to an Event. Messages other than control changes
// report false.
func Decode(msg gomidi.Message) (Event, bool) {
	var ev Event
	if !msg.GetControlChange(&ev.MIDIChannel, &ev.Channel, &ev.Value) {
		return Event{}, false
	}
	return ev, true
}

// Level maps a 7-bit value linearly onto [LevelMin, LevelMax].
func Level(v uint8) float64 {
	return float64(v) * control.LevelMax / MaxValue
}

// DecayFactor maps a 7-bit value linearly onto [DecayMin, DecayMax].
func DecayFactor(v uint8) float64 {
	return core.Lerp(DecayMin, DecayMax, float64(v)/MaxValue)
}

// apply mutates st for every route matching ev and reports how many matched.
func (r Routes) apply(st *control.State, ev Event) int {
	n := 0
	if r.Intensity.Matches(ev.Channel) {
		st.Intensity = Level(ev.Value)
		n++
	}
	if r.Dilation.Matches(ev.Channel) {
		st.Dilation = Level(ev.Value)
		n++
	}
	if r.Decay.Matches(ev.Channel) {
		st.Decay = DecayFactor(ev.Value)
		n++
	}
	if r.Reset.Matches(ev.Channel) {
		st.Reset = ev.Value == MaxValue
		n++
	}
	if r.Backward.Matches(ev.Channel) {
		st.Backward = ev.Value == MaxValue
		n++
	}
	for i, m := range r.Modes {
		if m.Matches(ev.Channel) {
			n++
			if ev.Value == MaxValue {
				st.Mode = control.Mode(i)
			}
		}
	}
	return n
}
