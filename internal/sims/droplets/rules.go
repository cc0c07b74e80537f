package droplets

import (
	"math"

	"cloud-ca/internal/core"
)

// Tier maps droplets up to Max (inclusive) onto a movement pattern.
type Tier struct {
	Max     float64
	Pattern core.Pattern
}

// Movement moves every droplet one cell along a size-dependent pattern.
// Droplets landing on the same target coalesce by summing their mass.
type Movement struct {
	Tiers    []Tier
	Fallback Fallback

	buf []core.Coord
}

// Name implements core.Rule.
func (m *Movement) Name() string { return RuleMove }

// PatternFor returns the pattern governing a droplet of the given size.
func (m *Movement) PatternFor(size float64) core.Pattern {
	for _, t := range m.Tiers {
		if size <= t.Max {
			return t.Pattern
		}
	}
	if len(m.Tiers) == 0 {
		return core.Four
	}
	return m.Tiers[len(m.Tiers)-1].Pattern
}

// Apply implements core.Rule.
func (m *Movement) Apply(cur, next *core.Lattice[float64], rng *core.Policy) {
	src, dst := cur.Cells(), next.Cells()
	for idx, size := range src {
		if size <= 0 {
			continue
		}
		c := cur.Coord(idx)
		m.buf = core.AppendNeighborCoords(m.buf[:0], cur, c.Row, c.Col, m.PatternFor(size))
		target, err := core.ChooseUniform(rng, m.buf)
		if err != nil {
			if m.Fallback == FallbackStay {
				dst[idx] += size
			}
			continue
		}
		dst[next.Index(target.Row, target.Col)] += size
	}
}

// Birth injects new droplets with probability Chance per candidate cell.
type Birth struct {
	Chance float64
	Mode   BirthMode
	Size   float64
	Stddev float64
}

// Name implements core.Rule.
func (b *Birth) Name() string { return RuleBirth }

// Apply implements core.Rule. Deposits add to whatever the cell already holds.
func (b *Birth) Apply(cur, next *core.Lattice[float64], rng *core.Policy) {
	dst := next.Cells()
	if b.Mode == BirthTopRow {
		for j := 0; j < cur.Cols(); j++ {
			if rng.Chance(b.Chance) {
				dst[next.Index(0, j)] += b.draw(rng)
			}
		}
		return
	}
	for idx, size := range cur.Cells() {
		if size == 0 && rng.Chance(b.Chance) {
			dst[idx] += b.draw(rng)
		}
	}
}

func (b *Birth) draw(rng *core.Policy) float64 {
	if b.Stddev > 0 {
		return rng.Normal(b.Size, b.Stddev)
	}
	return b.Size
}

// Removal clears droplets larger than Threshold with probability Chance.
type Removal struct {
	Chance    float64
	Threshold float64
}

// Name implements core.Rule.
func (r *Removal) Name() string { return RuleRemove }

// Apply implements core.Rule.
func (r *Removal) Apply(cur, next *core.Lattice[float64], rng *core.Policy) {
	dst := next.Cells()
	for idx, size := range cur.Cells() {
		if size > r.Threshold && rng.Chance(r.Chance) {
			dst[idx] = 0
		}
	}
}

// Split breaks droplets larger than Threshold into two positive parts, one
// kept at the origin and one moved to a neighbour that is empty in cur.
type Split struct {
	Chance    float64
	Threshold float64
	Pattern   core.Pattern

	buf, free []core.Coord
}

// Name implements core.Rule.
func (s *Split) Name() string { return RuleSplit }

// Apply implements core.Rule.
func (s *Split) Apply(cur, next *core.Lattice[float64], rng *core.Policy) {
	src, dst := cur.Cells(), next.Cells()
	for idx, size := range src {
		if size <= s.Threshold || !rng.Chance(s.Chance) {
			continue
		}
		c := cur.Coord(idx)
		s.buf = core.AppendNeighborCoords(s.buf[:0], cur, c.Row, c.Col, s.Pattern)
		s.free = s.free[:0]
		for _, n := range s.buf {
			if src[cur.Index(n.Row, n.Col)] == 0 {
				s.free = append(s.free, n)
			}
		}
		target, err := core.ChooseUniform(rng, s.free)
		if err != nil {
			continue
		}
		kept := SplitPart(rng, size)
		dst[idx] += kept - size
		dst[next.Index(target.Row, target.Col)] += size - kept
	}
}

// SplitPart draws the share kept at the origin, strictly inside (0, size).
func SplitPart(rng *core.Policy, size float64) float64 {
	for i := 0; i < 64; i++ {
		kept := rng.Uniform(0, size)
		if kept > 0 && size-kept > 0 {
			return kept
		}
	}
	return size / 2
}

func buildRules(p Params) []core.Rule[float64] {
	rules := make([]core.Rule[float64], 0, len(p.Order))
	for _, name := range p.Order {
		switch name {
		case RuleMove:
			rules = append(rules, &Movement{
				Tiers: []Tier{
					{Max: p.MediumThreshold, Pattern: p.SmallPattern},
					{Max: p.MediumLargeThreshold, Pattern: p.MediumPattern},
					{Max: math.Inf(1), Pattern: p.LargePattern},
				},
				Fallback: p.Fallback,
			})
		case RuleBirth:
			rules = append(rules, &Birth{Chance: p.AddChance, Mode: p.BirthMode, Size: p.BirthSize, Stddev: p.BirthSizeStddev})
		case RuleRemove:
			rules = append(rules, &Removal{Chance: p.RemoveChance, Threshold: p.RemoveThreshold})
		case RuleSplit:
			rules = append(rules, &Split{Chance: p.SplitChance, Threshold: p.SplitThreshold, Pattern: p.SplitPattern})
		}
	}
	return rules
}

// NewEngine builds the transition pipeline for p. Movement starts from an
// empty buffer so mass survives only through explicit transfer; the other
// rules start from a copy. Each rule runs as its own synchronous phase in the
// configured order.
func NewEngine(p Params) *core.Engine[float64] {
	rules := buildRules(p)
	phases := make([]core.Phase[float64], 0, len(rules))
	for _, r := range rules {
		init := core.InitCopy
		if r.Name() == RuleMove {
			init = core.InitEmpty
		}
		phases = append(phases, core.Phase[float64]{Init: init, Rules: []core.Rule[float64]{r}})
	}
	return core.NewEngine(phases...)
}
