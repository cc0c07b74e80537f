package droplets

import (
	"math"
	"strings"

	"cloud-ca/internal/core"
)

// Parameters describes the active configuration for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.StringParam("preset", "Preset", w.cfg.Preset),
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("steps", "Max steps", w.cfg.MaxSteps),
				core.StringParam("order", "Rule order", strings.Join(p.Order, ",")),
				core.BoolParam("ground_row", "Ground row", p.GroundRow),
			},
		},
		{
			Name: "Initial State",
			Params: []core.Parameter{
				core.FloatParam("initial_occupancy", "Occupancy", p.InitialOccupancy),
				core.FloatParam("initial_size_mean", "Size mean", p.InitialSizeMean),
				core.FloatParam("initial_size_stddev", "Size stddev", p.InitialSizeStddev),
				core.FloatParam("size_floor", "Size floor", p.SizeFloor),
			},
		},
		{
			Name: "Movement",
			Params: []core.Parameter{
				core.FloatParam("medium_threshold", "Medium threshold", p.MediumThreshold),
				core.FloatParam("medium_large_threshold", "Medium-large threshold", p.MediumLargeThreshold),
				core.FloatParam("large_threshold", "Large threshold", p.LargeThreshold),
				core.StringParam("small_pattern", "Small pattern", p.SmallPattern.String()),
				core.StringParam("medium_pattern", "Medium pattern", p.MediumPattern.String()),
				core.StringParam("large_pattern", "Large pattern", p.LargePattern.String()),
				core.StringParam("fallback", "Fallback", p.Fallback.String()),
			},
		},
		{
			Name: "Birth & Removal",
			Params: []core.Parameter{
				core.FloatParam("p_add", "Birth chance", p.AddChance),
				core.StringParam("birth_mode", "Birth mode", p.BirthMode.String()),
				core.FloatParam("birth_size", "Birth size", p.BirthSize),
				core.FloatParam("birth_size_stddev", "Birth size stddev", p.BirthSizeStddev),
				core.FloatParam("p_remove", "Removal chance", p.RemoveChance),
				core.FloatParam("remove_threshold", "Removal threshold", p.RemoveThreshold),
			},
		},
		{
			Name: "Split",
			Params: []core.Parameter{
				core.FloatParam("p_split", "Split chance", p.SplitChance),
				core.FloatParam("split_threshold", "Split threshold", p.SplitThreshold),
				core.StringParam("split_pattern", "Split pattern", p.SplitPattern.String()),
			},
		},
	}}
}

// ParameterControls lists the probabilities adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		core.ProbabilityControl("p_add", "Birth chance", 0.01),
		core.ProbabilityControl("p_remove", "Removal chance", 0.01),
		core.ProbabilityControl("p_split", "Split chance", 0.01),
	}
}

// SetFloatParameter updates a probability, clamped to [0, 1], and rebuilds
// the pipeline. It reports whether key is adjustable.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	value = math.Max(0, math.Min(1, value))
	switch key {
	case "p_add":
		w.cfg.Params.AddChance = value
	case "p_remove":
		w.cfg.Params.RemoveChance = value
	case "p_split":
		w.cfg.Params.SplitChance = value
	default:
		return false
	}
	w.engine = NewEngine(w.cfg.Params)
	return true
}
