package core

import (
	"fmt"
	"image/color"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a lattice simulation must implement.
// Cells returns palette indices for the current generation.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
	Palette() []color.RGBA
}

// CellLabeler is implemented by sims that can annotate cells with text, such
// as the numeric droplet size.
type CellLabeler interface {
	CellLabel(x, y int) string
}

// Factory constructs a Sim from flag-style key/value overrides.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSim looks up name in the registry and builds it with cfg.
func NewSim(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v): %w", name, SimNames(), ErrInvalidConfig)
	}
	return f(cfg)
}

// RunSettings carries the driver-facing settings of a sim configuration.
type RunSettings struct {
	Scale    int
	FPS      int
	MaxSteps int
}

// RunSettingsProvider is implemented by sims that carry their own run
// settings.
type RunSettingsProvider interface {
	RunSettings() RunSettings
}

// SettingsOf returns the sim's run settings, with non-positive scale and fps
// replaced by defaults.
func SettingsOf(sim Sim) RunSettings {
	var s RunSettings
	if p, ok := sim.(RunSettingsProvider); ok {
		s = p.RunSettings()
	}
	if s.Scale <= 0 {
		s.Scale = 10
	}
	if s.FPS <= 0 {
		s.FPS = 10
	}
	return s
}
