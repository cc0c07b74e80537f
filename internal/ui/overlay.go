//go:build ebiten

package ui

import (
	"image/color"

	"cloud-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// minLabelScale is the smallest cell size in pixels that fits a size label.
const minLabelScale = 24

var (
	labelColor = color.RGBA{R: 20, G: 20, B: 40, A: 255}
	gridColor  = color.RGBA{R: 0, G: 0, B: 0, A: 40}
)

// Overlay draws optional annotations on top of the grid: numeric cell labels
// (key L) and cell borders (key G).
type Overlay struct {
	sim        core.Sim
	scale      int
	showLabels bool
	showGrid   bool
	pixel      *ebiten.Image
}

// NewOverlay constructs a new overlay instance. Labels start enabled when the
// cells are large enough to hold them.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	_, labeled := sim.(core.CellLabeler)
	o.showLabels = labeled && o.scale >= minLabelScale
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showLabels = !o.showLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if o.showGrid {
		for x := 0; x <= size.W; x++ {
			o.fill(screen, float64(x*o.scale), 0, 1, float64(size.H*o.scale), gridColor)
		}
		for y := 0; y <= size.H; y++ {
			o.fill(screen, 0, float64(y*o.scale), float64(size.W*o.scale), 1, gridColor)
		}
	}
	labeler, ok := o.sim.(core.CellLabeler)
	if !o.showLabels || !ok {
		return
	}
	face := basicfont.Face7x13
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			label := labeler.CellLabel(x, y)
			if label == "" {
				continue
			}
			b := text.BoundString(face, label)
			tx := x*o.scale + (o.scale-b.Dx())/2
			ty := y*o.scale + (o.scale+b.Dy())/2
			text.Draw(screen, label, face, tx, ty, labelColor)
		}
	}
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
