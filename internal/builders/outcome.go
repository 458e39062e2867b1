package builders

import (
	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
)

// EffectiveSchemeMultiplier renders a base scheme-table multiplier m at
// the given strength: 1 + (m-1)*clamp(strength, 0.70, 1.40) (spec §4.4
// step 5).
func EffectiveSchemeMultiplier(m, strength float64) float64 {
	return 1 + (m-1)*clampf(strength, 0.70, 1.40)
}

func normalizeOutcomes(w map[engine.Outcome]float64) map[engine.Outcome]float64 {
	out := map[engine.Outcome]float64{}
	var sum float64
	for o, v := range w {
		if v <= 0 {
			continue
		}
		out[o] = v
		sum += v
	}
	if sum <= 0 {
		return out
	}
	for o := range out {
		out[o] /= sum
	}
	return out
}

// Tags carries the possession-level context flags the conditional tweaks
// in step 8 read (spec §4.4, §4.7).
type Tags struct {
	InTransition bool
	IsSidePnR    bool
}

// BuildOutcomePriors runs the full outcome-prior pipeline for action a
// given both teams' tactics and the possession's context tags (spec
// §4.4).
func BuildOutcomePriors(e *era.Era, a engine.Action, off, def *engine.TacticsConfig, tags Tags) map[engine.Outcome]float64 {
	baseAction := e.GetActionBase(a)

	priors := e.ActionOutcomePriors[baseAction]
	if priors == nil {
		priors = e.ActionOutcomePriors[engine.ActionSpotUp]
	}
	w := map[engine.Outcome]float64{}
	for o, v := range priors {
		w[o] = v
	}

	applyOutcomeGlobalMult(w, off.OutcomeGlobalMult)
	applyOutcomeByActionMult(w, off.OutcomeByActionMult[a])
	applyOutcomeByActionMult(w, off.OutcomeByActionMult[baseAction])

	applySchemeDistortion(w, e.OffenseSchemeMult[off.OffenseScheme], a, baseAction, off.SchemeOutcomeStrength)

	if def != nil {
		applyOutcomeGlobalMult(w, def.OppOutcomeGlobalMult)
		applyOutcomeByActionMult(w, def.OppOutcomeByActionMult[a])
		applyOutcomeByActionMult(w, def.OppOutcomeByActionMult[baseAction])
		applySchemeDistortion(w, e.DefenseSchemeMult[def.DefenseScheme], a, baseAction, def.DefSchemeOutcomeStrength)
	}

	applyConditionalTweaks(w, def, a, baseAction, tags)

	return normalizeOutcomes(w)
}

func applyOutcomeGlobalMult(w map[engine.Outcome]float64, mult map[engine.Outcome]float64) {
	for o := range w {
		if m, ok := mult[o]; ok {
			w[o] *= m
		}
	}
}

func applyOutcomeByActionMult(w map[engine.Outcome]float64, mult map[engine.Outcome]float64) {
	if mult == nil {
		return
	}
	for o := range w {
		if m, ok := mult[o]; ok {
			w[o] *= m
		}
	}
}

func applySchemeDistortion(w map[engine.Outcome]float64, byAction map[engine.Action]map[engine.Outcome]float64, a, baseAction engine.Action, strength float64) {
	if byAction == nil {
		return
	}
	apply := func(mult map[engine.Outcome]float64) {
		for o, m := range mult {
			if _, ok := w[o]; ok {
				w[o] *= EffectiveSchemeMultiplier(m, strength)
			}
		}
	}
	if mult, ok := byAction[a]; ok {
		apply(mult)
	}
	if a != baseAction {
		if mult, ok := byAction[baseAction]; ok {
			apply(mult)
		}
	}
}

// applyConditionalTweaks implements spec §4.4 step 8's three named
// adjustments.
func applyConditionalTweaks(w map[engine.Outcome]float64, def *engine.TacticsConfig, a, baseAction engine.Action, tags Tags) {
	if def != nil && def.DefenseScheme == engine.DefSchemeICESidePnR && !tags.IsSidePnR {
		bumpIfPresent(w, engine.OutcomeResetResreen, 1.03)
		bumpIfPresent(w, engine.OutcomePassKickout, 1.03)
	}

	if tags.InTransition {
		for _, o := range []engine.Outcome{
			engine.OutcomeTOBadPass, engine.OutcomeTOHandleLoss, engine.OutcomeTOCharge,
			engine.OutcomeResetHub, engine.OutcomeResetResreen,
		} {
			bumpIfPresent(w, o, 0.92)
		}
	}

	if def != nil && def.DefenseScheme == engine.DefSchemeBlitzTrapPnR && baseAction == engine.ActionPnR {
		if v, ok := w[engine.OutcomePassShortroll]; !ok || v < 0.10 {
			w[engine.OutcomePassShortroll] = 0.10
		}
		w[engine.OutcomeFoulReachTrap] += 0.02
	}
}

func bumpIfPresent(w map[engine.Outcome]float64, o engine.Outcome, mult float64) {
	if v, ok := w[o]; ok {
		w[o] = v * mult
	}
}
