package core

// Rule is one unit of transition behaviour. Apply must read only from cur and
// write only into next.
type Rule[C any] interface {
	Name() string
	Apply(cur, next *Lattice[C], rng *Policy)
}

// Init selects how a phase's write buffer starts out.
type Init uint8

const (
	// InitEmpty starts from zero-valued cells; content survives only through
	// explicit transfer.
	InitEmpty Init = iota
	// InitCopy starts from a copy of the read snapshot; cells stay the same
	// unless a rule changes them.
	InitCopy
)

// Phase is a group of rules sharing one read snapshot and one write buffer.
type Phase[C any] struct {
	Init  Init
	Rules []Rule[C]
}

// Engine applies an ordered pipeline of phases to produce successive
// generations.
type Engine[C any] struct {
	phases []Phase[C]
}

// NewEngine builds an engine running the phases in the order given.
func NewEngine[C any](phases ...Phase[C]) *Engine[C] {
	return &Engine[C]{phases: phases}
}

// Phases returns the configured pipeline.
func (e *Engine[C]) Phases() []Phase[C] { return e.phases }

// Step derives the next generation from cur. cur is never modified and the
// returned lattice never shares storage with it.
func (e *Engine[C]) Step(cur *Lattice[C], rng *Policy) *Lattice[C] {
	if len(e.phases) == 0 {
		return cur.Clone()
	}
	in := cur
	for _, phase := range e.phases {
		var out *Lattice[C]
		if phase.Init == InitCopy {
			out = in.Clone()
		} else {
			out = in.CloneEmpty()
		}
		for _, rule := range phase.Rules {
			rule.Apply(in, out, rng)
		}
		in = out
	}
	return in
}
