package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// OverlayFontSize is the HUD text size in points.
const OverlayFontSize = 14

// Scene is one prepared frame: a hue per cell plus overlay content.
type Scene interface {
	Shader
	HUD() HUD
	Meter() []float64
}

// RenderScene draws s into r, adding the meter when overlay is set.
func RenderScene(r *Raster, s Scene, overlay bool) {
	r.Draw(s)
	if overlay {
		r.DrawMeter(s.Meter())
	}
}

// WritePNG encodes img to w with the overlay lines drawn on top. img is
// drawn on in place.
func WritePNG(w io.Writer, img *image.RGBA, lines []string) error {
	dc := gg.NewContextForRGBA(img)
	if len(lines) > 0 {
		if err := drawOverlay(dc, lines); err != nil {
			return err
		}
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func drawOverlay(dc *gg.Context, lines []string) error {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("render: parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: OverlayFontSize}))

	lineH := OverlayFontSize * 1.4
	boxW := 0.0
	for _, l := range lines {
		w, _ := dc.MeasureString(l)
		boxW = max(boxW, w)
	}

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(4, 4, boxW+12, lineH*float64(len(lines))+8)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, l := range lines {
		dc.DrawString(l, 10, 4+lineH*float64(i+1))
	}
	return nil
}
