package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cwbudde/algo-vis/dsp/core"
)

// HueColor converts a hue in turns to a fully saturated, half-lightness
// colour. Hues outside [0, 1) wrap.
func HueColor(h float64) color.RGBA {
	c := colorful.Hsl(core.Wrap(h)*360, 1, 0.5).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
