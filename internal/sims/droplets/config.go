package droplets

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cloud-ca/internal/core"
)

// Fallback decides what happens to a droplet with no admissible move.
type Fallback uint8

const (
	// FallbackStay keeps the droplet in place.
	FallbackStay Fallback = iota
	// FallbackVanish removes the droplet; rain reaching the ground.
	FallbackVanish
)

func (f Fallback) String() string {
	if f == FallbackVanish {
		return "vanish"
	}
	return "stay"
}

// BirthMode selects where new droplets appear.
type BirthMode uint8

const (
	// BirthEmptyCells seeds any empty cell with a fixed size.
	BirthEmptyCells BirthMode = iota
	// BirthTopRow seeds the top row with normally distributed sizes.
	BirthTopRow
)

func (m BirthMode) String() string {
	if m == BirthTopRow {
		return "top"
	}
	return "empty"
}

// Rule names accepted in Params.Order.
const (
	RuleMove   = "move"
	RuleBirth  = "birth"
	RuleRemove = "remove"
	RuleSplit  = "split"
)

// Preset names registered with the sim registry.
const (
	PresetCoalescence = "coalescence"
	PresetSteady      = "steady"
	PresetSplit       = "split"
	PresetRain        = "rain"
	PresetRainfall    = "rainfall"
	PresetDownpour    = "downpour"
)

// Params holds tunable thresholds and probabilities for the droplet sims.
type Params struct {
	InitialOccupancy  float64
	InitialSizeMean   float64
	InitialSizeStddev float64
	SizeFloor         float64

	MediumThreshold      float64
	MediumLargeThreshold float64
	LargeThreshold       float64
	SmallPattern         core.Pattern
	MediumPattern        core.Pattern
	LargePattern         core.Pattern
	Fallback             Fallback

	AddChance       float64
	BirthMode       BirthMode
	BirthSize       float64
	BirthSizeStddev float64

	RemoveChance    float64
	RemoveThreshold float64

	SplitChance    float64
	SplitThreshold float64
	SplitPattern   core.Pattern

	// Order lists the rules applied each step, first to last.
	Order []string

	// GroundRow draws the bottom row as ground instead of droplets.
	GroundRow bool
}

// Config controls the droplet simulation dimensions and run settings. Scale
// and FPS only affect rendering.
type Config struct {
	Preset string

	Width  int
	Height int

	Seed     int64
	MaxSteps int
	Scale    int
	FPS      int

	Params Params
}

// DefaultConfig returns the plain coalescence configuration.
func DefaultConfig() Config {
	return Config{
		Preset:   PresetCoalescence,
		Width:    20,
		Height:   20,
		Seed:     1337,
		MaxSteps: 10000,
		Scale:    30,
		FPS:      10,
		Params: Params{
			InitialOccupancy:     0.3,
			InitialSizeMean:      5,
			InitialSizeStddev:    2,
			SizeFloor:            core.DefaultFloor,
			MediumThreshold:      6,
			MediumLargeThreshold: 15,
			LargeThreshold:       20,
			SmallPattern:         core.Four,
			MediumPattern:        core.Four,
			LargePattern:         core.Four,
			Fallback:             FallbackStay,
			AddChance:            0.05,
			BirthMode:            BirthEmptyCells,
			BirthSize:            3,
			RemoveChance:         0.03,
			RemoveThreshold:      20,
			SplitChance:          0.02,
			SplitThreshold:       10,
			SplitPattern:         core.Eight,
			Order:                []string{RuleMove},
		},
	}
}

// Presets lists the registered preset names.
func Presets() []string {
	return []string{PresetCoalescence, PresetSteady, PresetSplit, PresetRain, PresetRainfall, PresetDownpour}
}

// Preset returns the configuration for a named preset.
func Preset(name string) (Config, error) {
	c := DefaultConfig()
	c.Preset = name
	switch name {
	case PresetCoalescence:
	case PresetSteady:
		c.Params.Order = []string{RuleMove, RuleBirth, RuleRemove}
	case PresetSplit:
		c.Scale = 40
		c.Params.Order = []string{RuleMove, RuleSplit}
	case PresetRain:
		c.Width, c.Height = 40, 40
		c.Scale = 20
		c.MaxSteps = 400
		c.Params.InitialOccupancy = 0.4
		c.Params.SmallPattern = core.DownwardFan
		c.Params.MediumPattern = core.DownwardFan
		c.Params.LargePattern = core.DownOnly
		c.Params.Fallback = FallbackVanish
		c.Params.Order = []string{RuleMove, RuleBirth}
	case PresetRainfall, PresetDownpour:
		c.Width, c.Height = 50, 50
		c.Scale = 15
		c.MaxSteps = 500
		c.Params.MediumThreshold = 5
		c.Params.MediumLargeThreshold = 10
		if name == PresetDownpour {
			c.Params.MediumLargeThreshold = 15
		}
		c.Params.GroundRow = true
		c.Params.SmallPattern = core.Eight
		c.Params.MediumPattern = core.DownwardFan
		c.Params.LargePattern = core.DownOnly
		c.Params.Fallback = FallbackVanish
		c.Params.BirthMode = BirthTopRow
		c.Params.BirthSizeStddev = 1
		c.Params.Order = []string{RuleBirth, RuleMove}
	default:
		return Config{}, fmt.Errorf("unknown droplet preset %q: %w", name, core.ErrInvalidConfig)
	}
	return c, nil
}

// Keys lists the parameter keys FromMap understands, besides core.RunKeys.
var Keys = []string{
	"initial_occupancy", "initial_size_mean", "initial_size_stddev", "size_floor",
	"medium_threshold", "medium_large_threshold", "large_threshold",
	"small_pattern", "medium_pattern", "large_pattern", "fallback",
	"p_add", "birth_mode", "birth_size", "birth_size_stddev",
	"p_remove", "remove_threshold", "p_split", "split_threshold", "split_pattern",
	"order", "ground_row",
}

// FromMap starts from the named preset and applies flag-style overrides.
func FromMap(preset string, cfg map[string]string) (Config, error) {
	c, err := Preset(preset)
	if err != nil {
		return Config{}, err
	}
	if cfg == nil {
		return c, c.Validate()
	}
	p := &c.Params
	errs := []error{
		core.RejectUnknown(cfg, Keys),
		core.ParseInt(cfg, "w", &c.Width),
		core.ParseInt(cfg, "h", &c.Height),
		core.ParseInt64(cfg, "seed", &c.Seed),
		core.ParseInt(cfg, "steps", &c.MaxSteps),
		core.ParseInt(cfg, "scale", &c.Scale),
		core.ParseInt(cfg, "fps", &c.FPS),
		core.ParseFloat(cfg, "initial_occupancy", &p.InitialOccupancy),
		core.ParseFloat(cfg, "initial_size_mean", &p.InitialSizeMean),
		core.ParseFloat(cfg, "initial_size_stddev", &p.InitialSizeStddev),
		core.ParseFloat(cfg, "size_floor", &p.SizeFloor),
		core.ParseFloat(cfg, "medium_threshold", &p.MediumThreshold),
		core.ParseFloat(cfg, "medium_large_threshold", &p.MediumLargeThreshold),
		core.ParseFloat(cfg, "large_threshold", &p.LargeThreshold),
		core.ParsePatternKey(cfg, "small_pattern", &p.SmallPattern),
		core.ParsePatternKey(cfg, "medium_pattern", &p.MediumPattern),
		core.ParsePatternKey(cfg, "large_pattern", &p.LargePattern),
		core.ParseFloat(cfg, "p_add", &p.AddChance),
		core.ParseFloat(cfg, "birth_size", &p.BirthSize),
		core.ParseFloat(cfg, "birth_size_stddev", &p.BirthSizeStddev),
		core.ParseFloat(cfg, "p_remove", &p.RemoveChance),
		core.ParseFloat(cfg, "remove_threshold", &p.RemoveThreshold),
		core.ParseFloat(cfg, "p_split", &p.SplitChance),
		core.ParseFloat(cfg, "split_threshold", &p.SplitThreshold),
		core.ParsePatternKey(cfg, "split_pattern", &p.SplitPattern),
		parseFallback(cfg, &p.Fallback),
		parseBirthMode(cfg, &p.BirthMode),
		core.ParseBool(cfg, "ground_row", &p.GroundRow),
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	core.ParseList(cfg, "order", &p.Order)
	return c, c.Validate()
}

// Validate rejects configurations that cannot produce a meaningful run.
func (c Config) Validate() error {
	p := c.Params
	errs := []error{
		core.ValidateDimensions(c.Width, c.Height),
		core.ValidateProbability("initial_occupancy", p.InitialOccupancy),
		core.ValidateProbability("p_add", p.AddChance),
		core.ValidateProbability("p_remove", p.RemoveChance),
		core.ValidateProbability("p_split", p.SplitChance),
	}
	if c.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("steps=%d must not be negative: %w", c.MaxSteps, core.ErrInvalidConfig))
	}
	positive := []struct {
		key string
		v   float64
	}{
		{"size_floor", p.SizeFloor},
		{"large_threshold", p.LargeThreshold},
		{"birth_size", p.BirthSize},
		{"initial_size_mean", p.InitialSizeMean},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			errs = append(errs, fmt.Errorf("%s=%v must be positive: %w", f.key, f.v, core.ErrInvalidConfig))
		}
	}
	if p.InitialSizeStddev < 0 || p.BirthSizeStddev < 0 {
		errs = append(errs, fmt.Errorf("stddev must not be negative: %w", core.ErrInvalidConfig))
	}
	if p.MediumThreshold > p.MediumLargeThreshold {
		errs = append(errs, fmt.Errorf("medium_threshold=%v exceeds medium_large_threshold=%v: %w",
			p.MediumThreshold, p.MediumLargeThreshold, core.ErrInvalidConfig))
	}
	for _, name := range p.Order {
		switch name {
		case RuleMove, RuleBirth, RuleRemove, RuleSplit:
		default:
			errs = append(errs, fmt.Errorf("order: unknown rule %q: %w", name, core.ErrInvalidConfig))
		}
	}
	return errors.Join(errs...)
}

func parseFallback(cfg map[string]string, dst *Fallback) error {
	v, ok := cfg["fallback"]
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "stay":
		*dst = FallbackStay
	case "vanish":
		*dst = FallbackVanish
	default:
		return fmt.Errorf("fallback=%q: %w", v, core.ErrInvalidConfig)
	}
	return nil
}

func parseBirthMode(cfg map[string]string, dst *BirthMode) error {
	v, ok := cfg["birth_mode"]
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "empty":
		*dst = BirthEmptyCells
	case "top":
		*dst = BirthTopRow
	default:
		return fmt.Errorf("birth_mode=%q: %w", v, core.ErrInvalidConfig)
	}
	return nil
}
