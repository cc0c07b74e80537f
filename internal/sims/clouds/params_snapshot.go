package clouds

import (
	"math"

	"cloud-ca/internal/core"
)

// Parameters describes the active configuration for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("steps", "Max steps", w.cfg.MaxSteps),
				core.IntParam("seed_radius", "Humidity seed radius", p.SeedRadius),
				core.FloatParam("seed_humidity", "Humidity seed chance", p.SeedHumidity),
			},
		},
		{
			Name: "Automaton",
			Params: []core.Parameter{
				core.FloatParam("p_extinction", "Extinction chance", p.ExtinctionChance),
				core.FloatParam("p_act", "Activation chance", p.ActivationChance),
				core.FloatParam("p_diffuse", "Diffusion chance", p.DiffusionChance),
				core.StringParam("pattern", "Neighbourhood", p.Pattern.String()),
				core.BoolParam("cloud_self_seed", "Active cells seed cloud", p.SelfSeed),
				core.BoolParam("local_humidity", "Neighbour humidity activates", p.LocalHumidity),
			},
		},
	}}
}

// ParameterControls lists the probabilities adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		core.ProbabilityControl("p_extinction", "Extinction", 0.01),
		core.ProbabilityControl("p_act", "Activation", 0.01),
		core.ProbabilityControl("p_diffuse", "Diffusion", 0.05),
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
	case "p_extinction":
		w.cfg.Params.ExtinctionChance = value
	case "p_act":
		w.cfg.Params.ActivationChance = value
	case "p_diffuse":
		w.cfg.Params.DiffusionChance = value
	default:
		return false
	}
	w.engine = NewEngine(w.cfg.Params)
	return true
}
