package clouds

import (
	"errors"
	"fmt"

	"cloud-ca/internal/core"
)

// Params holds the automaton probabilities and neighbourhood switches.
type Params struct {
	// SeedRadius is the half-width of the central square seeded with humidity.
	SeedRadius   int
	SeedHumidity float64

	ExtinctionChance float64
	ActivationChance float64
	DiffusionChance  float64

	Pattern core.Pattern

	// SelfSeed lets an active cell count as its own cloud source.
	SelfSeed bool
	// LocalHumidity satisfies the activation humidity requirement with any
	// humid neighbour, not only the cell itself.
	LocalHumidity bool
}

// Config controls the cloud automaton. Scale and FPS only affect rendering.
type Config struct {
	Width  int
	Height int

	Seed     int64
	MaxSteps int
	Scale    int
	FPS      int

	Params Params
}

// DefaultConfig returns the configuration of the 80×80 cloud evolution run.
func DefaultConfig() Config {
	return Config{
		Width:    80,
		Height:   80,
		Seed:     1337,
		MaxSteps: 200,
		Scale:    10,
		FPS:      5,
		Params: Params{
			SeedRadius:       3,
			SeedHumidity:     0.5,
			ExtinctionChance: 0.02,
			ActivationChance: 0.03,
			DiffusionChance:  0.2,
			Pattern:          core.Eight,
			SelfSeed:         true,
			LocalHumidity:    true,
		},
	}
}

// Keys lists the parameter keys FromMap understands, besides core.RunKeys.
var Keys = []string{
	"seed_radius", "seed_humidity", "p_extinction", "p_act", "p_diffuse",
	"pattern", "cloud_self_seed", "local_humidity",
}

// FromMap applies flag-style overrides to the default configuration.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	p := &c.Params
	err := errors.Join(
		core.RejectUnknown(cfg, Keys),
		core.ParseInt(cfg, "w", &c.Width),
		core.ParseInt(cfg, "h", &c.Height),
		core.ParseInt64(cfg, "seed", &c.Seed),
		core.ParseInt(cfg, "steps", &c.MaxSteps),
		core.ParseInt(cfg, "scale", &c.Scale),
		core.ParseInt(cfg, "fps", &c.FPS),
		core.ParseInt(cfg, "seed_radius", &p.SeedRadius),
		core.ParseFloat(cfg, "seed_humidity", &p.SeedHumidity),
		core.ParseFloat(cfg, "p_extinction", &p.ExtinctionChance),
		core.ParseFloat(cfg, "p_act", &p.ActivationChance),
		core.ParseFloat(cfg, "p_diffuse", &p.DiffusionChance),
		core.ParsePatternKey(cfg, "pattern", &p.Pattern),
		core.ParseBool(cfg, "cloud_self_seed", &p.SelfSeed),
		core.ParseBool(cfg, "local_humidity", &p.LocalHumidity),
	)
	if err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Validate rejects configurations that cannot produce a meaningful run.
func (c Config) Validate() error {
	p := c.Params
	errs := []error{
		core.ValidateDimensions(c.Width, c.Height),
		core.ValidateProbability("seed_humidity", p.SeedHumidity),
		core.ValidateProbability("p_extinction", p.ExtinctionChance),
		core.ValidateProbability("p_act", p.ActivationChance),
		core.ValidateProbability("p_diffuse", p.DiffusionChance),
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("steps=%d must not be negative: %w", c.MaxSteps, core.ErrInvalidConfig))
	}
	if p.SeedRadius < 0 {
		errs = append(errs, fmt.Errorf("seed_radius=%d must not be negative: %w", p.SeedRadius, core.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
