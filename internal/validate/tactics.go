package validate

import "github.com/kibbyd/courtsim/internal/engine"

const (
	multLo = 0.70
	multHi = 1.40
)

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SanitizeTacticsConfig clamps every scalar knob to [mult_lo, mult_hi],
// drops multiplier-map keys outside allowed, clamps kept values, and
// clamps ROLE_FIT_STRENGTH to [0,1] (spec §4.2, §3 invariants). Mutates t
// in place and records warnings on rep.
func SanitizeTacticsConfig(t *engine.TacticsConfig, allowed *AllowedSets, rep *Report) {
	t.SchemeWeightSharpness = clampKnob(rep, "scheme_weight_sharpness", t.SchemeWeightSharpness)
	t.DefSchemeWeightSharpness = clampKnob(rep, "def_scheme_weight_sharpness", t.DefSchemeWeightSharpness)
	t.SchemeOutcomeStrength = clampKnob(rep, "scheme_outcome_strength", t.SchemeOutcomeStrength)
	t.DefSchemeOutcomeStrength = clampKnob(rep, "def_scheme_outcome_strength", t.DefSchemeOutcomeStrength)

	sanitizeActionMap(t.ActionWeightMult, allowed, rep, "action_weight_mult")
	sanitizeActionMap(t.DefActionWeightMult, allowed, rep, "def_action_weight_mult")
	sanitizeActionMap(t.OppActionWeightMult, allowed, rep, "opp_action_weight_mult")

	sanitizeOutcomeMap(t.OutcomeGlobalMult, allowed, rep, "outcome_global_mult")
	sanitizeOutcomeMap(t.OppOutcomeGlobalMult, allowed, rep, "opp_outcome_global_mult")

	for a, m := range t.OutcomeByActionMult {
		sanitizeOutcomeMap(m, allowed, rep, "outcome_by_action_mult["+string(a)+"]")
	}
	for a, m := range t.OppOutcomeByActionMult {
		sanitizeOutcomeMap(m, allowed, rep, "opp_outcome_by_action_mult["+string(a)+"]")
	}

	sanitizeContext(t, rep)
}

func clampKnob(rep *Report, name string, v float64) float64 {
	c := clampf(v, multLo, multHi)
	if c != v {
		rep.Warnf("tactics knob %s=%.4f out of [%.2f,%.2f], clamped to %.4f", name, v, multLo, multHi, c)
	}
	return c
}

func sanitizeActionMap(m map[engine.Action]float64, allowed *AllowedSets, rep *Report, name string) {
	for a, v := range m {
		if !allowed.Actions[string(a)] {
			rep.Warnf("%s: unknown action key %q dropped", name, a)
			delete(m, a)
			continue
		}
		c := clampf(v, multLo, multHi)
		if c != v {
			rep.Warnf("%s[%s]=%.4f out of range, clamped to %.4f", name, a, v, c)
			m[a] = c
		}
	}
}

func sanitizeOutcomeMap(m map[engine.Outcome]float64, allowed *AllowedSets, rep *Report, name string) {
	for o, v := range m {
		if !allowed.Outcomes[string(o)] {
			rep.Warnf("%s: unknown outcome key %q dropped", name, o)
			delete(m, o)
			continue
		}
		c := clampf(v, multLo, multHi)
		if c != v {
			rep.Warnf("%s[%s]=%.4f out of range, clamped to %.4f", name, o, v, c)
			m[o] = c
		}
	}
}

func sanitizeContext(t *engine.TacticsConfig, rep *Report) {
	for k, v := range t.Context {
		if !engine.RecognizedContextKeys[k] {
			rep.Warnf("context: unrecognized key %q dropped", k)
			delete(t.Context, k)
			continue
		}
		if k == engine.CtxRoleFitStrength {
			c := clampf(v, 0, 1)
			if c != v {
				rep.Warnf("context[ROLE_FIT_STRENGTH]=%.4f out of [0,1], clamped to %.4f", v, c)
				t.Context[k] = c
			}
		}
	}
}
