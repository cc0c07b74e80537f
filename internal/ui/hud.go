//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"cloud-ca/internal/core"
	"cloud-ca/internal/stats"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders run statistics and probability controls to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	series     *stats.Series
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []controlState
	setter       core.FloatParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int, series *stats.Series) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), series: series}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			if ctrl.Type != core.ParamTypeFloat {
				continue
			}
			c := controlState{control: ctrl}
			c.layout(h.width, len(h.controls))
			h.controls = append(h.controls, c)
		}
	}
	return h
}

// Update refreshes control values from the sim and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.refreshValues()
	h.handleInput()
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	face := basicfont.Face7x13
	text.Draw(h.panel, h.sim.Name(), face, panelPadding, panelPadding+headerBaseline, textColor)
	h.drawControls()
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	for _, line := range statLines(h.series) {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += 16
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshValues() {
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok || len(h.controls) == 0 {
		return
	}
	values := map[string]string{}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			values[p.Key] = p.Value
		}
	}
	for i := range h.controls {
		c := &h.controls[i]
		v, err := strconv.ParseFloat(values[c.control.Key], 64)
		c.hasValue = err == nil
		c.value = v
	}
}

func (h *HUD) handleInput() {
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	if px < 0 {
		return
	}
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case !c.hasValue:
		case pointInRect(px, my, c.minusRect):
			h.adjust(c, -1)
			return
		case pointInRect(px, my, c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) adjust(c *controlState, direction float64) {
	target, ok := c.target(direction)
	if ok && h.setter.SetFloatParameter(c.control.Key, target) {
		c.value = target
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		c := &h.controls[i]
		baseline := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, baseline, textColor)
		value, col := "--", dimColor
		if c.hasValue {
			value, col = strconv.FormatFloat(c.value, 'f', 2, 64), textColor
		}
		width := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minusRect.Min.X-buttonGap-width, baseline, col)
		_, canDown := c.target(-1)
		_, canUp := c.target(1)
		h.drawButton(c.minusRect, "-", c.hasValue && canDown && h.setter != nil)
		h.drawButton(c.plusRect, "+", c.hasValue && canUp && h.setter != nil)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

type controlState struct {
	control  core.ParameterControl
	value    float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func (c *controlState) layout(width, row int) {
	c.top = controlsTop + row*lineHeight
	y := c.top + (lineHeight-buttonSize)/2
	c.plusRect = image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
	c.minusRect = image.Rect(c.plusRect.Min.X-buttonGap-buttonSize, y, c.plusRect.Min.X-buttonGap, y+buttonSize)
}

// target returns the clamped value one step in direction and whether it
// differs from the current value.
func (c *controlState) target(direction float64) (float64, bool) {
	step := c.control.Step
	if step <= 0 {
		step = 0.05
	}
	t := c.value + direction*step
	if c.control.HasMin {
		t = math.Max(t, c.control.Min)
	}
	if c.control.HasMax {
		t = math.Min(t, c.control.Max)
	}
	return t, math.Abs(t-c.value) > 1e-9
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
