// Package builders composes the per-possession action distribution and
// per-action outcome prior from scheme tables, UI multiplier maps, and
// defensive overlays (spec §4.4).
package builders

import (
	"math"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
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

func normalize(w map[engine.Action]float64) map[engine.Action]float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		// Runtime guard (spec §7): zero-sum weight maps fall back to uniform.
		out := make(map[engine.Action]float64, len(w))
		if len(w) == 0 {
			return out
		}
		u := 1.0 / float64(len(w))
		for a := range w {
			out[a] = u
		}
		return out
	}
	out := make(map[engine.Action]float64, len(w))
	for a, v := range w {
		out[a] = v / sum
	}
	return out
}

// BuildOffenseActionProbs runs the 5-step offense pipeline (spec §4.4).
func BuildOffenseActionProbs(e *era.Era, off *engine.TacticsConfig, def *engine.TacticsConfig) map[engine.Action]float64 {
	base := e.OffSchemeActionWeights[off.OffenseScheme]
	if base == nil {
		base = e.OffSchemeActionWeights[engine.OffSchemeSpreadHeavyPnR]
	}

	sharpness := clampf(off.SchemeWeightSharpness, 0.70, 1.40)
	w := map[engine.Action]float64{}
	for a, v := range base {
		w[a] = pow(v, sharpness)
	}

	for a := range w {
		mult, ok := off.ActionWeightMult[a]
		if !ok {
			mult = 0.5
		}
		w[a] *= mult
	}

	if def != nil {
		for a := range w {
			if mult, ok := def.OppActionWeightMult[a]; ok {
				w[a] *= mult
			}
		}
	}

	return normalize(w)
}

// BuildDefenseActionProbs runs the same pipeline on the defensive table,
// for logging/feel — it doesn't directly gate outcomes (spec §4.4).
func BuildDefenseActionProbs(e *era.Era, def *engine.TacticsConfig) map[engine.Action]float64 {
	base := e.DefSchemeActionWeights[def.DefenseScheme]
	if base == nil {
		base = e.DefSchemeActionWeights[engine.DefSchemeDrop]
	}

	sharpness := clampf(def.DefSchemeWeightSharpness, 0.70, 1.40)
	w := map[engine.Action]float64{}
	for a, v := range base {
		w[a] = pow(v, sharpness)
	}

	for a := range w {
		mult, ok := def.DefActionWeightMult[a]
		if !ok {
			mult = 0.5
		}
		w[a] *= mult
	}

	return normalize(w)
}

func pow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}
