// Package possession drives the action -> outcome -> resolve cycle for a
// single possession (spec §4.7): the state machine that samples an
// action, builds and distorts its outcome prior, applies role-fit, and
// dispatches to the Resolution Engine, looping on RESET/MISS-ORB/CONTINUE
// until a terminal event, a shot-clock violation, or max_steps.
package possession

import (
	"math/rand"
	"sort"

	"github.com/kibbyd/courtsim/internal/engine"
)

// sampleAction draws one action from probs. Keys are sorted before
// accumulating so the draw is deterministic given rng's state (Go map
// iteration order is randomized per-process; the RNG stream is the only
// thing allowed to vary the result, per spec §5's replay-determinism
// guarantee).
func sampleAction(rng *rand.Rand, probs map[engine.Action]float64) engine.Action {
	if len(probs) == 0 {
		return engine.ActionSpotUp
	}
	keys := make([]engine.Action, 0, len(probs))
	for a := range probs {
		keys = append(keys, a)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	r := rng.Float64()
	var acc float64
	for _, a := range keys {
		acc += probs[a]
		if r <= acc {
			return a
		}
	}
	return keys[len(keys)-1]
}

func sampleOutcome(rng *rand.Rand, probs map[engine.Outcome]float64) engine.Outcome {
	if len(probs) == 0 {
		return engine.OutcomeResetHub
	}
	keys := make([]engine.Outcome, 0, len(probs))
	for o := range probs {
		keys = append(keys, o)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	r := rng.Float64()
	var acc float64
	for _, o := range keys {
		acc += probs[o]
		if r <= acc {
			return o
		}
	}
	return keys[len(keys)-1]
}
