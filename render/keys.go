package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cwbudde/algo-vis/control"
)

// Keys is the keyboard input of one tick.
type Keys struct {
	ResetDown, ResetUp bool

	Mode    control.Mode
	ModeSet bool

	Intensity float64
	Dilation  float64

	ToggleBackward bool
	ToggleOverlay  bool
	Quit           bool
}

var modeKeys = []struct {
	key  ebiten.Key
	mode control.Mode
}{
	{ebiten.KeyS, control.Spiral},
	{ebiten.KeyV, control.AltCurve},
	{ebiten.KeyW, control.Waves},
	{ebiten.KeyO, control.Solid},
	{ebiten.KeyA, control.AudioReactive},
}

// Held arrow keys repeat after repeatDelay ticks, then every repeatInterval.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// repeats reports whether a key held for d ticks fires this tick.
func repeats(d int) bool {
	switch {
	case d == 1:
		return true
	case d < repeatDelay:
		return false
	default:
		return (d-repeatDelay)%repeatInterval == 0
	}
}

func pressed(key ebiten.Key) bool {
	return repeats(inpututil.KeyPressDuration(key))
}

// ReadKeys samples the ebiten keyboard state. Call from Update only.
func ReadKeys() Keys {
	k := Keys{
		ResetDown:      inpututil.IsKeyJustPressed(ebiten.KeyR),
		ResetUp:        inpututil.IsKeyJustReleased(ebiten.KeyR),
		ToggleBackward: inpututil.IsKeyJustPressed(ebiten.KeyB),
		ToggleOverlay:  inpututil.IsKeyJustPressed(ebiten.KeyH),
		Quit:           inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	for _, mk := range modeKeys {
		if inpututil.IsKeyJustPressed(mk.key) {
			k.Mode, k.ModeSet = mk.mode, true
		}
	}
	if pressed(ebiten.KeyArrowUp) {
		k.Intensity++
	}
	if pressed(ebiten.KeyArrowDown) {
		k.Intensity--
	}
	if pressed(ebiten.KeyArrowRight) {
		k.Dilation++
	}
	if pressed(ebiten.KeyArrowLeft) {
		k.Dilation--
	}
	return k
}

func (k Keys) touchesState() bool {
	return k.ResetDown || k.ResetUp || k.ModeSet || k.ToggleBackward ||
		k.Intensity != 0 || k.Dilation != 0
}

// Apply writes the key actions into store in one update. Reset follows the
// R key edges only, so a reset held from MIDI is not cleared while the key
// is idle.
func (k Keys) Apply(store *control.Store) {
	if !k.touchesState() {
		return
	}
	store.Update(func(st *control.State) {
		switch {
		case k.ResetDown:
			st.Reset = true
		case k.ResetUp:
			st.Reset = false
		}
		if k.ModeSet && k.Mode.Valid() {
			st.Mode = k.Mode
		}
		if k.ToggleBackward {
			st.Backward = !st.Backward
		}
		st.Intensity += k.Intensity
		st.Dilation += k.Dilation
	})
}
