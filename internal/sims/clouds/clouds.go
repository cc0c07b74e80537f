// Package clouds implements the humidity → activation → cloud automaton as a
// synchronous three-flag cellular automaton.
package clouds

import (
	"cloud-ca/internal/core"
	"cloud-ca/internal/stats"
)

// Name is the registry identifier of the cloud automaton.
const Name = "clouds"

// World holds the lattice and rule pipeline for one cloud run.
type World struct {
	cfg Config

	cur     *core.Lattice[Flags]
	engine  *core.Engine[Flags]
	rng     *core.Policy
	display []uint8
	steps   int
}

// New returns a cloud world with the provided dimensions using defaults.
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
	cur, err := core.NewLattice(cfg.Height, cfg.Width, Flags{})
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

// Name returns the simulation identifier.
func (w *World) Name() string { return Name }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.cur.Size() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// RunSettings reports the configured scale, frame rate and step budget.
func (w *World) RunSettings() core.RunSettings {
	return core.RunSettings{Scale: w.cfg.Scale, FPS: w.cfg.FPS, MaxSteps: w.cfg.MaxSteps}
}

// Lattice exposes the current generation. Callers must not modify it.
func (w *World) Lattice() *core.Lattice[Flags] { return w.cur }

// Steps returns the number of generations since the last reset.
func (w *World) Steps() int { return w.steps }

// Reset clears the grid and seeds humidity in the central square. A zero seed
// reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewPolicy(seed)
	w.cur.Fill(Flags{})
	p := w.cfg.Params
	ci, cj := w.cur.Rows()/2, w.cur.Cols()/2
	cells := w.cur.Cells()
	top, bottom := max(ci-p.SeedRadius, 0), min(ci+p.SeedRadius, w.cur.Rows()-1)
	left, right := max(cj-p.SeedRadius, 0), min(cj+p.SeedRadius, w.cur.Cols()-1)
	for i := top; i <= bottom; i++ {
		for j := left; j <= right; j++ {
			if w.rng.Chance(p.SeedHumidity) {
				cells[w.cur.Index(i, j)].Humidity = true
			}
		}
	}
	w.steps = 0
	w.rebuildDisplay()
}

// Step advances the automaton by one generation.
func (w *World) Step() {
	w.cur = w.engine.Step(w.cur, w.rng)
	w.steps++
	w.rebuildDisplay()
}

// Cells exposes the palette-indexed display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Sample counts the flags of the current generation.
func (w *World) Sample() stats.Sample {
	s := stats.CollectFlags(w.cur, func(f Flags) (bool, bool, bool) {
		return f.Humidity, f.Active, f.Cloud
	})
	s.Step = w.steps
	return s
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewWithConfig(c)
	})
}
