package control

import (
	"fmt"
	"strings"
)

// Mode selects the active visual function.
type Mode uint8

const (
	Spiral Mode = iota
	AltCurve
	Waves
	Solid
	AudioReactive

	// ModeCount is the number of defined modes.
	ModeCount = int(AudioReactive) + 1
)

const (
	fastDivisor = 1000.0
	slowDivisor = 1e9
)

var modeNames = [ModeCount]string{
	Spiral:        "spiral",
	AltCurve:      "v2",
	Waves:         "waves",
	Solid:         "solid",
	AudioReactive: "audio",
}

// Modes returns every defined mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, ModeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool {
	return int(m) < ModeCount
}

// String returns the configuration name of m.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// TimeDivisor returns the base divisor applied to accumulated time.
// Waves and Solid animate visibly at small divisors; the other families
// need a much larger one.
func (m Mode) TimeDivisor() float64 {
	switch m {
	case Waves, Solid:
		return fastDivisor
	default:
		return slowDivisor
	}
}

// ParseMode resolves a mode name. "altcurve" is accepted for v2.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "altcurve" || name == "alt-curve" {
		return AltCurve, nil
	}
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return Spiral, fmt.Errorf("unknown mode %q", name)
}
