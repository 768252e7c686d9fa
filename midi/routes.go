package midi

import (
	"fmt"

	"github.com/cwbudde/algo-vis/control"
)

// Route binds a controller number to a control. Unrouted disables it.
type Route int16

// Unrouted marks a control with no controller bound.
const Unrouted Route = -1

// Matches reports whether a message on channel ch drives this route.
func (r Route) Matches(ch uint8) bool {
	return r >= 0 && int(r) == int(ch)
}

// Valid reports whether r is Unrouted or a 7-bit controller number.
func (r Route) Valid() bool {
	return r >= Unrouted && r <= 127
}

// Routes is the immutable channel-to-control table. Several routes may share
// a channel; a message on that channel then drives all of them.
type Routes struct {
	Intensity Route
	Dilation  Route
	Decay     Route
	Reset     Route
	Backward  Route
	Modes     [control.ModeCount]Route
}

// DefaultRoutes binds the first controllers of a generic control surface:
// 1-5 for the continuous controls and flags, 20-24 for mode buttons.
func DefaultRoutes() Routes {
	r := Routes{
		Intensity: 1,
		Dilation:  2,
		Decay:     3,
		Reset:     4,
		Backward:  5,
	}
	for i := range r.Modes {
		r.Modes[i] = Route(20 + i)
	}
	return r
}

// NoRoutes returns a table with every control unrouted.
func NoRoutes() Routes {
	r := Routes{
		Intensity: Unrouted,
		Dilation:  Unrouted,
		Decay:     Unrouted,
		Reset:     Unrouted,
		Backward:  Unrouted,
	}
	for i := range r.Modes {
		r.Modes[i] = Unrouted
	}
	return r
}

type namedRoute struct {
	name  string
	route Route
}

func (r Routes) named() []namedRoute {
	out := []namedRoute{
		{"intensity", r.Intensity},
		{"time_dilation", r.Dilation},
		{"decay_factor", r.Decay},
		{"reset", r.Reset},
		{"backwards", r.Backward},
	}
	for i, m := range r.Modes {
		out = append(out, namedRoute{control.Mode(i).String(), m})
	}
	return out
}

// Validate checks every route is Unrouted or within 0-127.
func (r Routes) Validate() error {
	for _, n := range r.named() {
		if !n.route.Valid() {
			return fmt.Errorf("midi: route %s out of range [-1,127]: %d", n.name, n.route)
		}
	}
	return nil
}
