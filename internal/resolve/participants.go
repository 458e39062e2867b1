// Package resolve implements the Resolution Engine (spec §4.6): participant
// selection, fatigue cost, and the shot/pass/turnover/foul/reset/rebound
// dispatch that turns a sampled outcome into a scored event.
package resolve

import (
	"math"
	"math/rand"

	"github.com/kibbyd/courtsim/internal/engine"
)

// ChooseWeightedPlayer picks among candidates with probability proportional
// to max(ability, 1.0)^power (spec §4.6, ported from participants.py).
func ChooseWeightedPlayer(rng *rand.Rand, candidates []*engine.Player, key engine.Ability, power float64, fatigueSensitive bool) *engine.Player {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	weights := make([]float64, len(candidates))
	var total float64
	for i, p := range candidates {
		v := p.Get(key, fatigueSensitive)
		if v < 1.0 {
			v = 1.0
		}
		weights[i] = math.Pow(v, power)
		total += weights[i]
	}
	if total <= 0 {
		return candidates[rng.Intn(len(candidates))]
	}
	r := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if r <= acc {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

// topN returns the top n candidates ranked descending by key.
func topN(candidates []*engine.Player, key engine.Ability, n int, fatigueSensitive bool) []*engine.Player {
	ranked := append([]*engine.Player{}, candidates...)
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && ranked[j-1].Get(key, fatigueSensitive) < ranked[j].Get(key, fatigueSensitive) {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
			j--
		}
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func dedupe(players ...*engine.Player) []*engine.Player {
	seen := map[string]bool{}
	out := make([]*engine.Player, 0, len(players))
	for _, p := range players {
		if p == nil || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// ChooseShooterForThree picks among the top-3 SHOT_3_CS lineup members,
// power 1.35.
func ChooseShooterForThree(rng *rand.Rand, lineup []*engine.Player) *engine.Player {
	return ChooseWeightedPlayer(rng, topN(lineup, engine.AbilShot3CS, 3, true), engine.AbilShot3CS, 1.35, true)
}

// ChooseShooterForMid picks among the top-3 SHOT_MID_CS lineup members,
// power 1.25.
func ChooseShooterForMid(rng *rand.Rand, lineup []*engine.Player) *engine.Player {
	return ChooseWeightedPlayer(rng, topN(lineup, engine.AbilShotMidCS, 3, true), engine.AbilShotMidCS, 1.25, true)
}

// ChooseCreatorForPulloff weighs {ball_handler, secondary_handler} on
// SHOT_3_OD (outcome is the off-dribble three) or SHOT_MID_PU otherwise,
// power 1.20.
func ChooseCreatorForPulloff(rng *rand.Rand, ballHandler, secondaryHandler *engine.Player, outcome engine.Outcome) *engine.Player {
	key := engine.AbilShotMidPU
	if outcome == engine.OutcomeShot3OD {
		key = engine.AbilShot3OD
	}
	candidates := dedupe(ballHandler, secondaryHandler)
	return ChooseWeightedPlayer(rng, candidates, key, 1.20, true)
}

// ChooseFinisherRim weighs {ball_handler, rim_runner, screener, cutter} on
// FIN_DUNK when dunkBias else FIN_RIM, power 1.15.
func ChooseFinisherRim(rng *rand.Rand, ballHandler, rimRunner, screener, cutter *engine.Player, dunkBias bool) *engine.Player {
	key := engine.AbilFinRim
	if dunkBias {
		key = engine.AbilFinDunk
	}
	candidates := dedupe(ballHandler, rimRunner, screener, cutter)
	return ChooseWeightedPlayer(rng, candidates, key, 1.15, true)
}

// ChoosePostTarget returns the assigned post player.
func ChoosePostTarget(post *engine.Player) *engine.Player {
	return post
}

// ChoosePasser resolves the passer per action family: HornsSet aliased to
// a PnR base -> screener, post-up base -> post, drive base -> weighted
// choice between ball_handler and the best DRIVE_CREATE candidate on
// PASS_CREATE (power 1.10), else ball_handler. Short-roll passes are given
// to the screener by resolvePass before this is called.
func ChoosePasser(rng *rand.Rand, action, baseAction engine.Action, ballHandler, screener, post, bestDriver *engine.Player) *engine.Player {
	switch {
	case action == engine.ActionHornsSet && baseAction == engine.ActionPnR && screener != nil:
		return screener
	case baseAction == engine.ActionPostUp:
		return post
	case baseAction == engine.ActionDrive:
		candidates := dedupe(ballHandler, bestDriver)
		return ChooseWeightedPlayer(rng, candidates, engine.AbilPassCreate, 1.10, true)
	default:
		return ballHandler
	}
}
