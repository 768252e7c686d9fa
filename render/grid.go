package render

import (
	"fmt"
	"image"
)

// MaxDepth bounds the quartering depth.
const MaxDepth = 10

// Cell is one grid cell.
type Cell struct {
	// Rect is the pixel area in image coordinates.
	Rect image.Rectangle
	// X and Y locate the cell centre relative to the window centre, y up.
	X, Y float64
}

// Grid quarters a width x height window depth times. A depth of d yields
// 4^d cells as long as every cell stays at least one pixel wide; cells too
// small to split are kept whole. The cells tile the window exactly.
func Grid(width, height, depth int) ([]Cell, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: window size must be positive: %dx%d", width, height)
	}
	if depth < 0 || depth > MaxDepth {
		return nil, fmt.Errorf("render: depth out of range [0,%d]: %d", MaxDepth, depth)
	}

	cells := make([]Cell, 0, 1<<(2*depth))
	return quarter(image.Rect(0, 0, width, height), width, height, depth, cells), nil
}

func quarter(r image.Rectangle, width, height, depth int, out []Cell) []Cell {
	if depth == 0 || r.Dx() < 2 || r.Dy() < 2 {
		return append(out, cellOf(r, width, height))
	}

	mx := r.Min.X + r.Dx()/2
	my := r.Min.Y + r.Dy()/2
	out = quarter(image.Rect(r.Min.X, r.Min.Y, mx, my), width, height, depth-1, out)
	out = quarter(image.Rect(mx, r.Min.Y, r.Max.X, my), width, height, depth-1, out)
	out = quarter(image.Rect(r.Min.X, my, mx, r.Max.Y), width, height, depth-1, out)
	return quarter(image.Rect(mx, my, r.Max.X, r.Max.Y), width, height, depth-1, out)
}

func cellOf(r image.Rectangle, width, height int) Cell {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	return Cell{
		Rect: r,
		X:    cx - float64(width)/2,
		Y:    float64(height)/2 - cy,
	}
}
