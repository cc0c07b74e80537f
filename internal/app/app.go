//go:build ebiten

package app

import (
	"time"

	"cloud-ca/internal/core"
	"cloud-ca/internal/driver"
	"cloud-ca/internal/render"
	"cloud-ca/internal/stats"
	"cloud-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width in pixels of the control panel right of the grid.
const HUDWidth = 260

// Game adapts a core simulation to the ebiten.Game interface and records one
// statistics sample per generation.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	maxSteps int
	paused   bool
	tickOnce bool
	seed     int64

	sampler driver.Sampler
	series  *stats.Series
}

// New constructs a Game for the provided simulation. A non-positive maxSteps
// runs until the window closes.
func New(sim core.Sim, scale int, seed int64, maxSteps int) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, scale),
		scale:    scale,
		maxSteps: maxSteps,
		seed:     seed,
		series:   &stats.Series{},
	}
	g.sampler, _ = sim.(driver.Sampler)
	g.hud = ui.NewHUD(sim, HUDWidth, g.series)
	return g
}

// Series returns the statistics recorded since the last reset.
func (g *Game) Series() *stats.Series { return g.series }

// Reset reinitializes the simulation state with the provided seed and clears
// the recorded series.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	*g.series = stats.Series{}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	done := g.maxSteps > 0 && g.series.Len() >= g.maxSteps
	if !done && (!g.paused || g.tickOnce) {
		g.sim.Step()
		s := stats.Sample{Step: g.series.Len() + 1}
		if g.sampler != nil {
			s = g.sampler.Sample()
		}
		g.series.Append(s)
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
