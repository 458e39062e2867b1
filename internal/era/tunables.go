package era

import "fmt"

// Tunable is a named handle onto a single float64 leaf inside an Era,
// exposed for calibration sweeps that want to nudge one knob at a time
// without hand-rolling a field path each time (spec §4.1: "a tunable
// registry with apply-updates, relative or absolute").
type Tunable struct {
	Name string
	Get  func(*Era) float64
	Set  func(*Era, float64)
}

// Registry lists every tunable the engine exposes. Keyed by Name for
// lookup from cmd/inspect and calibration tooling.
var Registry = buildRegistry()

func buildRegistry() map[string]Tunable {
	reg := map[string]Tunable{}
	add := func(t Tunable) { reg[t.Name] = t }

	add(Tunable{"prob_model.orb_base",
		func(e *Era) float64 { return e.ProbModel.ORBBase },
		func(e *Era, v float64) { e.ProbModel.ORBBase = v }})
	add(Tunable{"prob_model.ft_base",
		func(e *Era) float64 { return e.ProbModel.FTBase },
		func(e *Era, v float64) { e.ProbModel.FTBase = v }})
	add(Tunable{"prob_model.ft_range",
		func(e *Era) float64 { return e.ProbModel.FTRange },
		func(e *Era, v float64) { e.ProbModel.FTRange = v }})
	add(Tunable{"prob_model.shot_scale",
		func(e *Era) float64 { return e.ProbModel.ShotScale },
		func(e *Era, v float64) { e.ProbModel.ShotScale = v }})
	add(Tunable{"prob_model.pass_scale",
		func(e *Era) float64 { return e.ProbModel.PassScale },
		func(e *Era, v float64) { e.ProbModel.PassScale = v }})
	add(Tunable{"prob_model.rebound_scale",
		func(e *Era) float64 { return e.ProbModel.ReboundScale },
		func(e *Era, v float64) { e.ProbModel.ReboundScale = v }})

	add(Tunable{"variance_params.logit_noise_std",
		func(e *Era) float64 { return e.VarianceParams.LogitNoiseStd },
		func(e *Era, v float64) { e.VarianceParams.LogitNoiseStd = v }})
	add(Tunable{"variance_params.team_mult_lo",
		func(e *Era) float64 { return e.VarianceParams.TeamMultLo },
		func(e *Era, v float64) { e.VarianceParams.TeamMultLo = v }})
	add(Tunable{"variance_params.team_mult_hi",
		func(e *Era) float64 { return e.VarianceParams.TeamMultHi },
		func(e *Era, v float64) { e.VarianceParams.TeamMultHi = v }})

	add(Tunable{"role_fit_default_strength",
		func(e *Era) float64 { return e.RoleFitDefaultStrength },
		func(e *Era, v float64) { e.RoleFitDefaultStrength = v }})

	add(Tunable{"rules.fatigue_thresholds.sub_out",
		func(e *Era) float64 { return e.Rules.FatigueThreshold.SubOut },
		func(e *Era, v float64) { e.Rules.FatigueThreshold.SubOut = v }})
	add(Tunable{"rules.fatigue_thresholds.sub_in",
		func(e *Era) float64 { return e.Rules.FatigueThreshold.SubIn },
		func(e *Era, v float64) { e.Rules.FatigueThreshold.SubIn = v }})
	add(Tunable{"rules.fatigue_effects.def_mult_min",
		func(e *Era) float64 { return e.Rules.FatigueEffects.DefMultMin },
		func(e *Era, v float64) { e.Rules.FatigueEffects.DefMultMin = v }})
	add(Tunable{"rules.fatigue_effects.logit_delta_max",
		func(e *Era) float64 { return e.Rules.FatigueEffects.LogitDeltaMax },
		func(e *Era, v float64) { e.Rules.FatigueEffects.LogitDeltaMax = v }})

	return reg
}

// Update is one calibration nudge: either an absolute replacement or a
// relative delta added to the tunable's current value.
type Update struct {
	Name     string
	Value    float64
	Relative bool
}

// ApplyUpdates mutates e in place per each Update, in order, and returns an
// error naming the first unknown tunable encountered (callers that want a
// partial-apply-then-report semantics should pre-validate names against
// Registry themselves).
func ApplyUpdates(e *Era, updates []Update) error {
	for _, u := range updates {
		t, ok := Registry[u.Name]
		if !ok {
			return fmt.Errorf("unknown tunable %q", u.Name)
		}
		if u.Relative {
			t.Set(e, t.Get(e)+u.Value)
		} else {
			t.Set(e, u.Value)
		}
	}
	return nil
}
