package game

import (
	"math/rand"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/possession"
)

// Config bundles the knobs the game loop reads off the active era and the
// two teams' tactics context bags (spec §4.8).
type Config struct {
	ClutchScoreDiff   int     // |score_diff| <= this and inside clutch window
	ClutchClockSec    float64 // quarter clock remaining, last quarter only
	GarbageScoreDiff  int
	GarbageMinQuarter int
	GarbageClockSec   float64 // quarter clock remaining, garbage quarter only
}

// DefaultConfig mirrors sim.py's literal clutch/garbage thresholds.
func DefaultConfig() Config {
	return Config{
		ClutchScoreDiff:   8,
		ClutchClockSec:    120,
		GarbageScoreDiff:  20,
		GarbageMinQuarter: 4,
		GarbageClockSec:   360,
	}
}

// Sink receives per-possession events; possession.Sink is embedded so a
// single implementation can serve both layers.
type Sink = possession.Sink

// Play runs a full four-quarter game to completion and returns the final
// GameState, mutating home/away's TeamState aggregates in place (spec
// §4.8, ported from sim.py's simulate_game possession/quarter loop).
func Play(rng *rand.Rand, e *era.Era, home, away *engine.TeamState, cfg Config, sink Sink) *engine.GameState {
	targetsHome := InitTargets(home.Lineup, e.Rules.FatigueTargets)
	targetsAway := InitTargets(away.Lineup, e.Rules.FatigueTargets)
	gs := engine.NewGameState(home, away, targetsHome, targetsAway)

	totalPossessions := 0

	for q := 1; q <= e.Rules.Quarters; q++ {
		gs.Quarter = q
		gs.ClockSec = e.Rules.QuarterLength
		gs.TeamFouls[home.Name] = 0
		gs.TeamFouls[away.Name] = 0

		for gs.ClockSec > 0 {
			offenseIsHome := totalPossessions%2 == 0
			offense, defense := away, home
			if offenseIsHome {
				offense, defense = home, away
			}

			gs.ShotClockSec = e.Rules.ShotClock

			offOnCourtIDs := gs.OnCourt(offense, home)
			defOnCourtIDs := gs.OnCourt(defense, home)
			offOnCourt := resolvePlayers(offense, offOnCourtIDs)
			defOnCourt := resolvePlayers(defense, defOnCourtIDs)

			avgDefFresh := meanFreshness(gs, defOnCourtIDs)

			scoreDiff := offense.PTS - defense.PTS
			if !offenseIsHome {
				scoreDiff = -scoreDiff
			}
			isClutch, isGarbage := clutchAndGarbage(q, e.Rules.Quarters, gs.ClockSec, scoreDiff, cfg)

			varianceMult := offense.Tactics.ContextFloat(engine.CtxVarianceMult, 1.0)
			switch {
			case isClutch:
				varianceMult *= 0.80
			case isGarbage:
				varianceMult *= 1.25
			}
			tempoMult := offense.Tactics.ContextFloat(engine.CtxPaceMult, 1.0)
			if isGarbage {
				tempoMult /= 1.08
			}
			orbMult := offense.Tactics.ContextFloat(engine.CtxORBMult, 1.0)
			drbMult := defense.Tactics.ContextFloat(engine.CtxDRBMult, 1.0)
			defEffMult := e.Rules.FatigueEffects.DefMultMin + 0.10*avgDefFresh

			setupCost := e.Rules.TimeCosts["possession_setup"] * tempoMult
			gs.ClockSec -= setupCost
			gs.ShotClockSec -= setupCost
			if gs.ShotClockSec <= 0 {
				offense.Possessions++
				commitShotClockTurnover(offense, offOnCourtIDs)
				totalPossessions++
				continue
			}
			if gs.ClockSec <= 0 {
				totalPossessions++
				continue
			}

			pctx := possession.Context{
				VarianceMult: varianceMult,
				DefEffMult:   defEffMult,
				TempoMult:    tempoMult,
				ORBMult:      orbMult,
				DRBMult:      drbMult,
				InTransition: false,
			}
			before := gs.ClockSec
			possession.Simulate(rng, e, offense, defense, gs, offOnCourt, defOnCourt, pctx, sink, totalPossessions)
			elapsed := before - gs.ClockSec
			if elapsed < 0 {
				elapsed = 0
			}

			updateMinutes(gs, offOnCourtIDs, elapsed)
			updateMinutes(gs, defOnCourtIDs, elapsed)

			offIntensity := Intensity{
				TransitionEmphasis: offense.Tactics.ContextBool(engine.CtxTransitionEmphasis),
				HeavyPnR:           offense.Tactics.ContextBool(engine.CtxHeavyPnR) || offense.Tactics.OffenseScheme == engine.OffSchemeSpreadHeavyPnR,
			}
			defIntensity := Intensity{
				TransitionEmphasis: defense.Tactics.ContextBool(engine.CtxTransitionEmphasis),
				HeavyPnR:           defense.Tactics.ContextBool(engine.CtxHeavyPnR),
			}
			ApplyFreshnessDecay(offense, offOnCourtIDs, gs, e.Rules.FatigueLoss, offIntensity)
			ApplyFreshnessDecay(defense, defOnCourtIDs, gs, e.Rules.FatigueLoss, defIntensity)

			PerformRotation(rng, offense, home, gs, e.Rules, isGarbage)
			PerformRotation(rng, defense, home, gs, e.Rules, isGarbage)

			totalPossessions++
			gs.Possession = totalPossessions
			gs.ScoreHome = home.PTS
			gs.ScoreAway = away.PTS
		}
	}

	return gs
}

func resolvePlayers(team *engine.TeamState, ids []string) []*engine.Player {
	out := make([]*engine.Player, 0, len(ids))
	for _, id := range ids {
		if p := team.FindPlayer(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func meanFreshness(gs *engine.GameState, ids []string) float64 {
	if len(ids) == 0 {
		return 1.0
	}
	var sum float64
	for _, id := range ids {
		if v, ok := gs.Freshness[id]; ok {
			sum += v
		} else {
			sum += 1.0
		}
	}
	return sum / float64(len(ids))
}

func updateMinutes(gs *engine.GameState, ids []string, elapsedSec float64) {
	for _, id := range ids {
		gs.MinutesPlayedSec[id] += int(elapsedSec)
	}
}

// commitShotClockTurnover books a possession that expired before any
// action was even sampled (the pre-possession setup charge alone burned
// the shot clock) — credited to the ball handler, same as an in-loop
// TO_SHOTCLOCK (spec §4.7, ported from sim.py's commit_shot_clock_turnover).
func commitShotClockTurnover(offense *engine.TeamState, onCourtIDs []string) {
	offense.TOV++
	offense.OutcomeCounts[engine.OutcomeTOShotclock]++
	if len(onCourtIDs) > 0 {
		if bh := offense.GetRolePlayer(engine.RoleBallHandler, engine.AbilPnRRead); bh != nil {
			offense.AddPlayerStat(bh.ID, func(b *engine.PlayerBox) { b.TOV++ })
		}
	}
}

// clutchAndGarbage flags the last-quarter close-game window and the
// blowout window that slows the clock and widens variance (sim.py's
// is_clutch/is_garbage, spec §4.8).
func clutchAndGarbage(q, totalQuarters int, clockSec float64, scoreDiff int, cfg Config) (isClutch, isGarbage bool) {
	isClutch = q >= totalQuarters && clockSec <= cfg.ClutchClockSec && absInt(scoreDiff) <= cfg.ClutchScoreDiff
	isGarbage = q >= cfg.GarbageMinQuarter && clockSec <= cfg.GarbageClockSec && absInt(scoreDiff) >= cfg.GarbageScoreDiff
	return isClutch, isGarbage
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
