package render

import (
	"image"
	"image/color"
)

// Shader supplies a hue for a cell centre.
type Shader interface {
	Hue(y, x float64) float64
}

// Raster owns the frame image and the grid laid over it.
type Raster struct {
	img   *image.RGBA
	cells []Cell
}

// NewRaster allocates a width x height image quartered depth times.
func NewRaster(width, height, depth int) (*Raster, error) {
	cells, err := Grid(width, height, depth)
	if err != nil {
		return nil, err
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		cells: cells,
	}, nil
}

// Image returns the frame image. It is overwritten by every Draw.
func (r *Raster) Image() *image.RGBA { return r.img }

// Cells returns the grid cells.
func (r *Raster) Cells() []Cell { return r.cells }

// Draw fills every cell with the colour of its hue.
func (r *Raster) Draw(s Shader) {
	for _, c := range r.cells {
		fill(r.img, c.Rect, HueColor(s.Hue(c.Y, c.X)))
	}
}

// DrawMeter overlays the values as vertical bars along the bottom edge,
// normalised to the largest value.
func (r *Raster) DrawMeter(values []float64) {
	if len(values) == 0 {
		return
	}
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak <= 0 {
		return
	}

	b := r.img.Bounds()
	height := b.Dy() / 5
	width := max(b.Dx()/len(values), 1)
	bar := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	for i, v := range values {
		h := int(float64(height) * v / peak)
		if h <= 0 {
			continue
		}
		x0 := b.Min.X + i*width
		rect := image.Rect(x0, b.Max.Y-h, x0+max(width-1, 1), b.Max.Y).Intersect(b)
		fill(r.img, rect, bar)
	}
}

func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	if rect.Empty() {
		return
	}
	row := img.PixOffset(rect.Min.X, rect.Min.Y)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		px := img.Pix[row : row+4*rect.Dx()]
		for i := 0; i < len(px); i += 4 {
			px[i+0] = c.R
			px[i+1] = c.G
			px[i+2] = c.B
			px[i+3] = c.A
		}
		row += img.Stride
	}
}
