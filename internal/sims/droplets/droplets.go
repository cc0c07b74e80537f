// Package droplets implements the size-structured droplet automaton: each
// cell holds the mass of at most one droplet, droplets move one cell per step
// along a size-dependent neighbourhood and merge when they meet.
package droplets

import (
	"fmt"

	"cloud-ca/internal/core"
	"cloud-ca/internal/stats"
)

// World holds the lattice and transition pipeline for one droplet run.
type World struct {
	cfg Config

	cur     *core.Lattice[float64]
	engine  *core.Engine[float64]
	rng     *core.Policy
	display []uint8
	steps   int
}

// New returns a coalescence world with the provided dimensions.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a seeded world.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cur, err := core.NewLattice(cfg.Height, cfg.Width, 0.0)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		cur:     cur,
		engine:  NewEngine(cfg.Params),
		display: make([]uint8, cfg.Width*cfg.Height),
	}
	w.Reset(0)
	return w, nil
}

// Name returns the preset identifier.
func (w *World) Name() string { return w.cfg.Preset }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.cur.Size() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// RunSettings reports the configured scale, frame rate and step budget.
func (w *World) RunSettings() core.RunSettings {
	return core.RunSettings{Scale: w.cfg.Scale, FPS: w.cfg.FPS, MaxSteps: w.cfg.MaxSteps}
}

// Lattice exposes the current generation. Callers must not modify it.
func (w *World) Lattice() *core.Lattice[float64] { return w.cur }

// Steps returns the number of generations since the last reset.
func (w *World) Steps() int { return w.steps }

// Reset scatters droplets over the grid. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	p := w.cfg.Params
	w.rng = core.NewPolicy(seed)
	w.rng.SetFloor(p.SizeFloor)
	cells := w.cur.Cells()
	for i := range cells {
		cells[i] = 0
		if w.rng.Chance(p.InitialOccupancy) {
			cells[i] = w.rng.Normal(p.InitialSizeMean, p.InitialSizeStddev)
		}
	}
	w.steps = 0
	w.rebuildDisplay()
}

// Step advances the world by one generation.
func (w *World) Step() {
	w.cur = w.engine.Step(w.cur, w.rng)
	w.steps++
	w.rebuildDisplay()
}

// Cells exposes the palette-indexed display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Sample summarises the current generation.
func (w *World) Sample() stats.Sample {
	s := stats.CollectMass(w.cur)
	s.Step = w.steps
	return s
}

// CellLabel renders the droplet size at (x, y), or "" when empty or on the
// ground band.
func (w *World) CellLabel(x, y int) string {
	v, err := w.cur.Get(y, x)
	if err != nil || v <= 0 || w.isGround(y) {
		return ""
	}
	return fmt.Sprintf("%.1f", v)
}

func init() {
	for _, name := range Presets() {
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			c, err := FromMap(name, cfg)
			if err != nil {
				return nil, err
			}
			return NewWithConfig(c)
		})
	}
}
