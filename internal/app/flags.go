package app

import (
	"flag"
	"fmt"
	"strings"

	"cloud-ca/internal/core"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Steps int
	Plots string

	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults. Scale, TPS and
// Steps at zero defer to the sim's own configuration.
func NewConfig() *Config {
	return &Config{Sim: "coalescence"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("simulation to run %v", core.SimNames()))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier (0 uses the sim default)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 uses the sim default)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 uses the sim default)")
	fs.IntVar(&c.Steps, "steps", c.Steps, "maximum number of steps (0 uses the sim default)")
	fs.StringVar(&c.Plots, "plots", c.Plots, "directory for PNG charts written after the run")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// SimConfig merges the explicit flags into the key/value overrides passed to
// the sim factory. Flags win over -set entries for the same key.
func (c *Config) SimConfig() (map[string]string, error) {
	cfg, err := c.Overrides.Map()
	if err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		cfg["seed"] = fmt.Sprint(c.Seed)
	}
	if c.Steps > 0 {
		cfg["steps"] = fmt.Sprint(c.Steps)
	}
	if c.Scale > 0 {
		cfg["scale"] = fmt.Sprint(c.Scale)
	}
	if c.TPS > 0 {
		cfg["fps"] = fmt.Sprint(c.TPS)
	}
	return cfg, nil
}

// NewSim builds the selected sim from the merged configuration.
func (c *Config) NewSim() (core.Sim, map[string]string, error) {
	cfg, err := c.SimConfig()
	if err != nil {
		return nil, nil, err
	}
	sim, err := core.NewSim(c.Sim, cfg)
	if err != nil {
		return nil, nil, err
	}
	return sim, cfg, nil
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not key=value: %w", value, core.ErrInvalidConfig)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the overrides as a map; later entries win.
func (l KVList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q is not key=value: %w", kv, core.ErrInvalidConfig)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
