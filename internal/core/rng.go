package core

import (
	"math"
	"math/rand/v2"
)

// DefaultFloor is the lower clip applied to normally distributed sizes.
const DefaultFloor = 1.0

// Policy wraps one explicitly seeded generator and exposes the probability
// gates and choices the transition rules need. It is never seeded from the
// wall clock, so identical seeds replay identical trajectories.
type Policy struct {
	r     *rand.Rand
	floor float64
}

// NewPolicy creates a deterministic policy using the provided seed.
func NewPolicy(seed int64) *Policy {
	return &Policy{r: rand.New(rand.NewPCG(uint64(seed), 0)), floor: DefaultFloor}
}

// SetFloor changes the clip applied by Normal.
func (p *Policy) SetFloor(floor float64) { p.floor = floor }

// Floor returns the clip applied by Normal.
func (p *Policy) Floor() float64 { return p.floor }

// Bernoulli returns true with probability prob.
func (p *Policy) Bernoulli(prob float64) (bool, error) {
	if err := ValidateProbability("p", prob); err != nil {
		return false, err
	}
	return p.r.Float64() < prob, nil
}

// Chance is Bernoulli for probabilities already validated at startup.
func (p *Policy) Chance(prob float64) bool {
	return p.r.Float64() < prob
}

// Normal draws from N(mean, stddev) and clips the result at the floor.
func (p *Policy) Normal(mean, stddev float64) float64 {
	return math.Max(p.floor, mean+stddev*p.r.NormFloat64())
}

// Uniform returns a value in [low, high).
func (p *Policy) Uniform(low, high float64) float64 {
	return low + (high-low)*p.r.Float64()
}

// IntN returns a value in [0, n); zero when n <= 0.
func (p *Policy) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.IntN(n)
}

// ChooseUniform picks one candidate uniformly at random. Callers treat an empty
// set as "no admissible destination" and apply their own fallback.
func ChooseUniform[T any](p *Policy, candidates []T) (T, error) {
	if len(candidates) == 0 {
		var zero T
		return zero, ErrEmptyCandidateSet
	}
	return candidates[p.IntN(len(candidates))], nil
}
