// Package game implements the Game Loop (spec §4.8): quarters, rotations,
// fatigue decay, substitutions, foul-out, per-quarter team foul reset,
// and clutch/garbage context.
package game

import (
	"math/rand"
	"sort"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
)

// InitTargets builds the minute-target map for a team's lineup: the first
// 5 get starter_sec, the next 3 rotation_sec, the rest bench_sec (spec
// §4.8, ported from sim.py's _init_targets).
func InitTargets(lineup []*engine.Player, ft era.FatigueTargets) map[string]int {
	targets := map[string]int{}
	for idx, p := range lineup {
		switch {
		case idx < 5:
			targets[p.ID] = int(ft.StarterSec)
		case idx < 8:
			targets[p.ID] = int(ft.RotationSec)
		default:
			targets[p.ID] = int(ft.BenchSec)
		}
	}
	return targets
}

// Intensity flags the per-team context modifiers fatigue loss reads.
type Intensity struct {
	TransitionEmphasis bool
	HeavyPnR           bool
}

func fatigueLossForRole(role string, fl era.FatigueLoss) float64 {
	switch role {
	case "handler":
		return fl.Handler
	case "big":
		return fl.Big
	default:
		return fl.Wing
	}
}

// ApplyFreshnessDecay subtracts the per-possession freshness loss for
// every on-court player (spec §4.8: "handler 0.012, wing 0.010, big
// 0.009... plus 0.001 if TRANSITION_EMPHASIS, plus 0.001 for
// handler/big under HEAVY_PNR"). Note this is GameState.Freshness, not
// Player.Fatigue — the two decay mechanisms are independent.
func ApplyFreshnessDecay(team *engine.TeamState, onCourt []string, gs *engine.GameState, fl era.FatigueLoss, intensity Intensity) {
	for _, pid := range onCourt {
		role := roleForPlayer(team, pid)
		loss := fatigueLossForRole(role, fl)
		if intensity.TransitionEmphasis {
			loss += fl.TransitionEmphasis
		}
		if intensity.HeavyPnR && (role == "handler" || role == "big") {
			loss += fl.HeavyPnR
		}
		cur := gs.Freshness[pid]
		if _, ok := gs.Freshness[pid]; !ok {
			cur = 1.0
		}
		gs.Freshness[pid] = clampf(cur-loss, 0, 1)
	}
}

func roleForPlayer(team *engine.TeamState, pid string) string {
	role := "wing"
	if team.Roles[engine.RoleBallHandler] == pid || team.Roles[engine.RoleSecondaryHandler] == pid {
		role = "handler"
	} else if team.Roles[engine.RoleScreener] == pid || team.Roles[engine.RolePost] == pid {
		role = "big"
	}
	if p := team.FindPlayer(pid); p != nil && (p.Position == engine.PosCenter || p.Position == engine.PosForward) {
		role = "big"
	}
	return role
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PerformRotation swaps out up to 2 tired/fouled-out/over-minutes players
// for the best-available bench players, in place on gs's on-court list
// for team (spec §4.8, ported from sim.py's _perform_rotation).
func PerformRotation(rng *rand.Rand, team, home *engine.TeamState, gs *engine.GameState, rules era.Rules, isGarbage bool) {
	onCourt := gs.OnCourt(team, home)
	targets := gs.Targets(team, home)
	fouledOut := rules.FoulOut

	bench := []string{}
	for _, p := range team.Lineup {
		if containsStr(onCourt, p.ID) {
			continue
		}
		if gs.PlayerFouls[p.ID] >= fouledOut {
			continue
		}
		bench = append(bench, p.ID)
	}

	fatigueOf := func(pid string) float64 {
		if v, ok := gs.Freshness[pid]; ok {
			return v
		}
		return 1.0
	}
	minutesOf := func(pid string) int { return gs.MinutesPlayedSec[pid] }

	var outCandidates []string
	for _, pid := range onCourt {
		tired := fatigueOf(pid) < rules.FatigueThreshold.SubOut || gs.PlayerFouls[pid] >= fouledOut
		overTarget := minutesOf(pid) > targets[pid]+120
		switch {
		case tired || overTarget:
			outCandidates = append(outCandidates, pid)
		case isGarbage && len(onCourt) > 0 && targets[pid] >= targets[onCourt[0]]:
			outCandidates = append(outCandidates, pid)
		}
	}

	var inCandidates []string
	for _, pid := range bench {
		if fatigueOf(pid) > rules.FatigueThreshold.SubIn && minutesOf(pid) <= targets[pid]+240 {
			inCandidates = append(inCandidates, pid)
		}
	}

	sort.SliceStable(outCandidates, func(i, j int) bool {
		return fatigueOf(outCandidates[i]) < fatigueOf(outCandidates[j])
	})

	next := append([]string{}, onCourt...)
	swaps := 0
	for _, pidOut := range outCandidates {
		if swaps >= 2 || len(inCandidates) == 0 {
			break
		}
		bestIdx := 0
		bestScore := targets[inCandidates[0]] - minutesOf(inCandidates[0])
		bestFatigue := fatigueOf(inCandidates[0])
		for i := 1; i < len(inCandidates); i++ {
			score := targets[inCandidates[i]] - minutesOf(inCandidates[i])
			fat := fatigueOf(inCandidates[i])
			if score > bestScore || (score == bestScore && fat > bestFatigue) {
				bestIdx, bestScore, bestFatigue = i, score, fat
			}
		}
		pidIn := inCandidates[bestIdx]
		inCandidates = append(inCandidates[:bestIdx], inCandidates[bestIdx+1:]...)

		for i, pid := range next {
			if pid == pidOut {
				next[i] = pidIn
				swaps++
				break
			}
		}
	}

	if len(next) > 5 {
		next = next[:5]
	}
	gs.SetOnCourt(team, home, next)
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
