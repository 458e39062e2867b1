// Package prob implements the probability kernel (spec §4.3): the single
// logistic mapping every resolution call routes through.
package prob

import (
	"math"
	"math/rand"

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

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Scores holds the weighted ability dot-products for the acting and
// defending participants against an outcome's coefficient vectors (spec
// §4.3: "weighted dot products... coefficients summing to 1, missing
// ability treated as 50").
type Scores struct {
	Off float64
	Def float64
}

// FromScores computes the final resolution probability p = σ(logit(base_p)
// + (OffScore-DefScore)*sensitivity + role_logit_delta + fatigue_logit_delta
// + noise), per spec §4.3. rng == nil disables the noise term entirely
// (used for the rebound model, per spec §9's "design contract").
func FromScores(rng *rand.Rand, e *era.Era, kind engine.OutcomeKind, basePIn float64, scores Scores, roleLogitDelta, fatigueLogitDelta, teamVarianceMult float64) float64 {
	pm := e.ProbModel
	basePClamped := clampf(basePIn, pm.BasePMin, pm.BasePMax)

	lp := e.LogisticFor(kind)
	x := logit(basePClamped) + (scores.Off-scores.Def)*lp.Sensitivity + roleLogitDelta + fatigueLogitDelta

	if rng != nil {
		vp := e.VarianceParams
		kindMult, ok := vp.KindMult[kind]
		if !ok {
			kindMult = 1.0
		}
		teamMult := clampf(teamVarianceMult, vp.TeamMultLo, vp.TeamMultHi)
		stdEff := vp.LogitNoiseStd * kindMult * teamMult
		if stdEff > 0 {
			x += rng.NormFloat64() * stdEff
		}
	}

	p := sigmoid(x)
	return clampf(p, pm.ProbMin, pm.ProbMax)
}

// DotAgainst computes Σ weight_k·ability_k for a participant's
// fatigue-sensitive abilities against a per-outcome coefficient vector,
// treating a missing ability as 50 (spec §4.3).
func DotAgainst(p *engine.Player, weights map[engine.Ability]float64) float64 {
	var sum float64
	for k, w := range weights {
		sum += w * p.Get(k, true)
	}
	return sum
}
