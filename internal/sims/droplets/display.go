package droplets

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	background = color.RGBA{R: 224, G: 224, B: 224, A: 255}
	ground     = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	celeste    = colorful.Color{R: 173.0 / 255, G: 216.0 / 255, B: 230.0 / 255}
	deepBlue   = colorful.Color{R: 0, G: 0, B: 1}
)

const (
	gradientSteps = 253
	groundIndex   = gradientSteps + 2
)

var dropletPalette = buildPalette()

// Palette maps display index 0 to the empty background, 1..254 to the
// celeste-to-blue size gradient and 255 to the ground band.
func (w *World) Palette() []color.RGBA { return dropletPalette }

// ColorFor blends from celeste to blue as size approaches scale.
func ColorFor(size, scale float64) color.RGBA {
	return blend(fraction(size, scale))
}

func fraction(size, scale float64) float64 {
	if scale <= 0 || math.IsNaN(size) {
		return 0
	}
	return math.Max(0, math.Min(1, size/scale))
}

func blend(t float64) color.RGBA {
	r, g, b := celeste.BlendRgb(deepBlue, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, groundIndex+1)
	palette[0] = background
	for i := 1; i < groundIndex; i++ {
		palette[i] = blend(float64(i-1) / gradientSteps)
	}
	palette[groundIndex] = ground
	return palette
}

func encodeSize(size, scale float64) uint8 {
	if size <= 0 {
		return 0
	}
	return uint8(1 + int(fraction(size, scale)*gradientSteps+0.5))
}

func (w *World) rebuildDisplay() {
	scale := w.cfg.Params.LargeThreshold
	for i, v := range w.cur.Cells() {
		w.display[i] = encodeSize(v, scale)
	}
	if w.cfg.Params.GroundRow {
		last := w.cur.Rows() - 1
		for j := 0; j < w.cur.Cols(); j++ {
			w.display[w.cur.Index(last, j)] = groundIndex
		}
	}
}

func (w *World) isGround(row int) bool {
	return w.cfg.Params.GroundRow && row == w.cur.Rows()-1
}
