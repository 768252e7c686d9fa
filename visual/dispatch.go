package visual

import (
	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/core"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
)

// table is sized by ModeCount, so adding a mode without a function leaves a
// nil entry that TestEveryModeHasFunc catches.
var table = [control.ModeCount]Func{
	control.Spiral:        Spiral,
	control.AltCurve:      AltCurve,
	control.Waves:         Waves,
	control.Solid:         Solid,
	control.AudioReactive: AudioReactive,
}

// Lookup returns the function bound to m.
func Lookup(m control.Mode) (Func, bool) {
	if !m.Valid() {
		return nil, false
	}
	f := table[m]
	return f, f != nil
}

// Eval returns the raw value of m's function. Undefined modes yield 0.
func Eval(m control.Mode, in Input) float64 {
	f, ok := Lookup(m)
	if !ok {
		return 0
	}
	return f(in)
}

// Hue evaluates m and folds the result into [0, 1). NaN and infinities map to 0.
func Hue(m control.Mode, in Input) float64 {
	return core.Wrap(Eval(m, in))
}

// Frame binds the per-frame inputs so the render loop only supplies cell
// coordinates. Spectrum-derived values are computed once per frame.
type Frame struct {
	Mode     control.Mode
	T        float64
	Divisor  float64
	Spectrum spectrum.Spectrum

	modulation float64
}

// NewFrame prepares a Frame for mode at time t.
func NewFrame(mode control.Mode, t, divisor float64, s spectrum.Spectrum) Frame {
	f := Frame{Mode: mode, T: t, Divisor: divisor, Spectrum: s}
	if mode == control.AudioReactive {
		f.modulation = Modulation(s)
	}
	return f
}

// Value returns the raw function value for the cell at (y, x).
func (f Frame) Value(y, x float64) float64 {
	in := Input{Y: y, X: x, T: f.T, Spectrum: f.Spectrum, Divisor: f.Divisor}
	if f.Mode == control.AudioReactive {
		return audioWith(in, f.modulation)
	}
	return Eval(f.Mode, in)
}

// Hue returns the sanitised hue in [0, 1) for the cell at (y, x).
func (f Frame) Hue(y, x float64) float64 {
	return core.Wrap(f.Value(y, x))
}

// Modulation returns the audio modulation factor computed for this frame,
// or 0 when the frame is not audio-reactive.
func (f Frame) Modulation() float64 {
	return f.modulation
}
