package render

import (
	"image"

	"cloud-ca/internal/core"

	"golang.org/x/image/draw"
)

// Frame holds a reusable one-pixel-per-cell image of a sim plus its scaled
// copy. Frames are not safe for concurrent use.
type Frame struct {
	scale  int
	cells  *image.RGBA
	scaled *image.RGBA
}

// NewFrame allocates a frame for a grid of the given size. Scales below one
// are treated as one.
func NewFrame(size core.Size, scale int) *Frame {
	if scale < 1 {
		scale = 1
	}
	f := &Frame{scale: scale, cells: image.NewRGBA(image.Rect(0, 0, size.W, size.H))}
	if scale > 1 {
		f.scaled = image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	}
	return f
}

// Bounds returns the size of the scaled image.
func (f *Frame) Bounds() image.Rectangle {
	if f.scaled != nil {
		return f.scaled.Bounds()
	}
	return f.cells.Bounds()
}

// Render paints the sim's current cells and returns the scaled image. The
// returned image is overwritten by the next call.
func (f *Frame) Render(sim core.Sim) *image.RGBA {
	cells := sim.Cells()
	if len(cells)*4 != len(f.cells.Pix) {
		return f.output()
	}
	fillPaletteRGBA(f.cells.Pix, cells, sim.Palette())
	if f.scaled != nil {
		draw.NearestNeighbor.Scale(f.scaled, f.scaled.Bounds(), f.cells, f.cells.Bounds(), draw.Src, nil)
	}
	return f.output()
}

func (f *Frame) output() *image.RGBA {
	if f.scaled != nil {
		return f.scaled
	}
	return f.cells
}

// Rasterize renders sim into a new image with each cell scale pixels wide.
func Rasterize(sim core.Sim, scale int) *image.RGBA {
	return NewFrame(sim.Size(), scale).Render(sim)
}
