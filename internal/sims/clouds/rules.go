package clouds

import "cloud-ca/internal/core"

// Flags is the state of one automaton cell.
type Flags struct {
	Humidity bool
	Active   bool
	Cloud    bool
}

func isHumid(f Flags) bool          { return f.Humidity }
func isActive(f Flags) bool         { return f.Active }
func isCloudSource(f Flags) bool    { return f.Active || f.Cloud }
func isActivationSite(f Flags) bool { return f.Humidity || f.Active }

// CloudGrowth keeps or spreads cloud on active and cloudy cells next to an
// active or cloudy neighbour.
type CloudGrowth struct {
	Pattern  core.Pattern
	SelfSeed bool
}

// Name implements core.Rule.
func (r *CloudGrowth) Name() string { return "cloud_growth" }

// Apply implements core.Rule.
func (r *CloudGrowth) Apply(cur, next *core.Lattice[Flags], _ *core.Policy) {
	dst := next.Cells()
	for idx, cell := range cur.Cells() {
		if !cell.Cloud && !cell.Active {
			continue
		}
		c := cur.Coord(idx)
		if (r.SelfSeed && cell.Active) || core.AnyNeighbor(cur, c.Row, c.Col, r.Pattern, isCloudSource) {
			dst[idx].Cloud = true
		}
	}
}

// Activation turns humid cells active when a neighbour is active.
type Activation struct {
	Pattern       core.Pattern
	LocalHumidity bool
}

// Name implements core.Rule.
func (r *Activation) Name() string { return "activation" }

// Apply implements core.Rule.
func (r *Activation) Apply(cur, next *core.Lattice[Flags], _ *core.Policy) {
	dst := next.Cells()
	for idx, cell := range cur.Cells() {
		if cell.Active {
			continue
		}
		c := cur.Coord(idx)
		humid := cell.Humidity || (r.LocalHumidity && core.AnyNeighbor(cur, c.Row, c.Col, r.Pattern, isHumid))
		if humid && core.AnyNeighbor(cur, c.Row, c.Col, r.Pattern, isActive) {
			dst[idx].Active = true
		}
	}
}

// Extinction clears cloud with probability Chance.
type Extinction struct {
	Chance float64
}

// Name implements core.Rule.
func (r *Extinction) Name() string { return "extinction" }

// Apply implements core.Rule.
func (r *Extinction) Apply(cur, next *core.Lattice[Flags], rng *core.Policy) {
	dst := next.Cells()
	for idx, cell := range cur.Cells() {
		if cell.Cloud && rng.Chance(r.Chance) {
			dst[idx].Cloud = false
		}
	}
}

// SpontaneousActivation activates cells bordering humidity or activity with
// probability Chance.
type SpontaneousActivation struct {
	Pattern core.Pattern
	Chance  float64
}

// Name implements core.Rule.
func (r *SpontaneousActivation) Name() string { return "spontaneous_activation" }

// Apply implements core.Rule.
func (r *SpontaneousActivation) Apply(cur, next *core.Lattice[Flags], rng *core.Policy) {
	dst := next.Cells()
	for idx, cell := range cur.Cells() {
		if cell.Active {
			continue
		}
		c := cur.Coord(idx)
		if core.AnyNeighbor(cur, c.Row, c.Col, r.Pattern, isActivationSite) && rng.Chance(r.Chance) {
			dst[idx].Active = true
		}
	}
}

// HumidityDiffusion spreads humidity to dry cells with probability Chance.
type HumidityDiffusion struct {
	Pattern core.Pattern
	Chance  float64
}

// Name implements core.Rule.
func (r *HumidityDiffusion) Name() string { return "humidity_diffusion" }

// Apply implements core.Rule.
func (r *HumidityDiffusion) Apply(cur, next *core.Lattice[Flags], rng *core.Policy) {
	dst := next.Cells()
	for idx, cell := range cur.Cells() {
		if cell.Humidity {
			continue
		}
		c := cur.Coord(idx)
		if core.AnyNeighbor(cur, c.Row, c.Col, r.Pattern, isHumid) && rng.Chance(r.Chance) {
			dst[idx].Humidity = true
		}
	}
}

// NewEngine builds the single synchronous phase of the cloud automaton. All
// rules read the same generation and write one copy of it.
func NewEngine(p Params) *core.Engine[Flags] {
	return core.NewEngine(core.Phase[Flags]{
		Init: core.InitCopy,
		Rules: []core.Rule[Flags]{
			&CloudGrowth{Pattern: p.Pattern, SelfSeed: p.SelfSeed},
			&Activation{Pattern: p.Pattern, LocalHumidity: p.LocalHumidity},
			&Extinction{Chance: p.ExtinctionChance},
			&SpontaneousActivation{Pattern: p.Pattern, Chance: p.ActivationChance},
			&HumidityDiffusion{Pattern: p.Pattern, Chance: p.DiffusionChance},
		},
	})
}
