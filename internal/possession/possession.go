package possession

import (
	"math/rand"

	"github.com/kibbyd/courtsim/internal/builders"
	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/resolve"
	"github.com/kibbyd/courtsim/internal/rolefit"
)

// Context carries the per-possession values the game loop derives from
// clock/score state (spec §4.8) that the possession loop itself doesn't
// compute.
type Context struct {
	VarianceMult float64
	DefEffMult   float64
	TempoMult    float64
	ORBMult      float64
	DRBMult      float64
	InTransition bool
	MaxSteps     int // default 7
}

// Sink is the optional off-by-default diagnostic callback (spec §5: "no
// I/O occurs during a possession except optional replay event emission,
// callback pattern, off by default").
type Sink interface {
	OnStep(possessionIdx int, action engine.Action, outcome engine.Outcome, terminal engine.Terminal)
}

// Result is what the game loop needs after one possession resolves.
type Result struct {
	Terminal engine.Terminal
	Steps    int
}

// Simulate runs one possession to a terminal state. gs.ShotClockSec must
// already be set by the caller (24 at a fresh possession). offenseOnCourt
// and defenseOnCourt are the five-player slices currently on the floor.
func Simulate(rng *rand.Rand, e *era.Era, offense, defense *engine.TeamState, gs *engine.GameState, offenseOnCourt, defenseOnCourt []*engine.Player, ctx Context, sink Sink, possessionIdx int) Result {
	offense.Possessions++

	maxSteps := ctx.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 7
	}

	passChain := 0
	inTransition := ctx.InTransition
	var forced engine.Action
	haveForced := false

	for steps := 0; steps < maxSteps; steps++ {
		var action engine.Action
		if haveForced {
			action = forced
			haveForced = false
		} else {
			offProbs := builders.BuildOffenseActionProbs(e, offense.Tactics, defense.Tactics)
			action = sampleAction(rng, offProbs)

			defProbs := builders.BuildDefenseActionProbs(e, defense.Tactics)
			defAction := sampleAction(rng, defProbs)
			defense.DefActionCounts[defAction]++
		}

		offense.OffActionCounts[action]++
		if action == engine.ActionTransitionEarly {
			inTransition = true
		}
		isSidePnR := action == engine.ActionSideAnglePnR
		baseAction := e.GetActionBase(action)

		cost := e.Rules.TimeCosts[string(action)] * ctx.TempoMult
		gs.ClockSec -= cost
		gs.ShotClockSec -= cost
		if gs.ShotClockSec <= 0 {
			rctx := &resolve.Context{Rng: rng, Era: e, VarianceMult: ctx.VarianceMult, DefEffMult: ctx.DefEffMult, InTransition: inTransition}
			res := resolve.ResolveOutcome(rctx, engine.OutcomeTOShotclock, action, baseAction, offense, defense, gs, offenseOnCourt, defenseOnCourt)
			offense.OutcomeCounts[engine.OutcomeTOShotclock]++
			if sink != nil {
				sink.OnStep(possessionIdx, action, engine.OutcomeTOShotclock, res.Terminal)
			}
			return Result{Terminal: res.Terminal, Steps: steps + 1}
		}
		if gs.ClockSec <= 0 {
			return Result{Terminal: engine.TermReset, Steps: steps + 1}
		}

		priors := builders.BuildOutcomePriors(e, action, offense.Tactics, defense.Tactics, builders.Tags{
			InTransition: inTransition,
			IsSidePnR:    isSidePnR,
		})

		pp := resolve.RoleParticipants(offense)
		family, hasFamily := rolefit.Families[baseAction]
		grade := rolefit.GradeB
		roleLogitDelta := 0.0
		if hasFamily {
			parts := participantsForFamily(baseAction, offense, pp)
			res := rolefit.Score(family, parts)
			grade = res.Grade

			strength := offense.Tactics.ContextFloat(engine.CtxRoleFitStrength, e.RoleFitDefaultStrength)
			rolefit.ApplyPriorDistortion(priors, grade, strength)
			roleLogitDelta = rolefit.LogitShift(grade, strength)

			offense.RoleFitGradeCounts[string(grade)]++
			for _, role := range family.Roles {
				offense.RoleFitRoleCounts[roleNameToRole(role.Name)]++
			}
		}

		outcome := sampleOutcome(rng, priors)
		offense.OutcomeCounts[outcome]++

		resolve.ApplyFatigueCost(offenseOnCourt, defenseOnCourt, inTransition)

		rctx := &resolve.Context{
			Rng:            rng,
			Era:            e,
			VarianceMult:   ctx.VarianceMult,
			DefEffMult:     ctx.DefEffMult,
			InTransition:   inTransition,
			RoleLogitDelta: roleLogitDelta,
			RoleFitApplied: hasFamily,
			RoleFitGrade:   string(grade),
		}
		res := resolve.ResolveOutcome(rctx, outcome, action, baseAction, offense, defense, gs, offenseOnCourt, defenseOnCourt)

		if hasFamily && (outcome.IsTurnover() || outcome.IsReset()) {
			bucket := "RESET"
			if outcome.IsTurnover() {
				bucket = "TO"
			}
			offense.RoleFitBadTotals[bucket]++
			if offense.RoleFitBadByGrade[string(grade)] == nil {
				offense.RoleFitBadByGrade[string(grade)] = map[string]int{}
			}
			offense.RoleFitBadByGrade[string(grade)][bucket]++
		}

		if sink != nil {
			sink.OnStep(possessionIdx, action, outcome, res.Terminal)
		}

		switch res.Terminal {
		case engine.TermScore, engine.TermTurnover, engine.TermFoul:
			return Result{Terminal: res.Terminal, Steps: steps + 1}

		case engine.TermMiss:
			pOrb := resolve.ReboundORBProbability(e, offenseOnCourt, defenseOnCourt, ctx.ORBMult, ctx.DRBMult)
			if rng.Float64() < pOrb {
				offense.ORB++
				if rebounder := resolve.ChooseORBRebounder(rng, offenseOnCourt); rebounder != nil {
					offense.AddPlayerStat(rebounder.ID, func(b *engine.PlayerBox) { b.ORB++ })
				}
				gs.ShotClockSec = e.Rules.ORBReset
				if rng.Float64() < 0.55 {
					forced, haveForced = engine.ActionKickout, true
				} else {
					forced, haveForced = engine.ActionDrive, true
				}
				continue
			}
			defense.DRB++
			if rebounder := resolve.ChooseDRBRebounder(rng, defenseOnCourt); rebounder != nil {
				defense.AddPlayerStat(rebounder.ID, func(b *engine.PlayerBox) { b.DRB++ })
			}
			return Result{Terminal: engine.TermMiss, Steps: steps + 1}

		case engine.TermReset:
			// Charge the Reset time cost, then re-enter action selection; a
			// shot clock this leaves at or below zero is booked by the next
			// step's shot-clock check.
			resetCost := e.Rules.TimeCosts["Reset"] * ctx.TempoMult
			gs.ClockSec -= resetCost
			gs.ShotClockSec -= resetCost
			continue

		case engine.TermContinue:
			passChain++
			if passChain >= 3 {
				forced, haveForced = engine.ActionSpotUp, true
			} else if outcome == engine.OutcomePassShortroll {
				if rng.Float64() < 0.55 {
					forced, haveForced = engine.ActionDrive, true
				} else {
					forced, haveForced = engine.ActionKickout, true
				}
			} else {
				if rng.Float64() < 0.72 {
					forced, haveForced = engine.ActionSpotUp, true
				} else {
					forced, haveForced = engine.ActionExtraPass, true
				}
			}
			continue
		}
	}

	return Result{Terminal: engine.TermTurnover, Steps: maxSteps}
}

// roleNameToRole maps a rolefit.ParticipantRole.Name to the closest
// engine.Role bucket for the game-level role-assignment counters (spec
// §4.5: "role assignment counts").
func roleNameToRole(name string) engine.Role {
	switch name {
	case "PrimaryHandler", "TransitionBallHandler":
		return engine.RoleBallHandler
	case "SecondaryHandler":
		return engine.RoleSecondaryHandler
	case "RollOrShortRoll":
		return engine.RoleScreener
	case "Post":
		return engine.RolePost
	case "Shooter":
		return engine.RoleShooter
	case "Cutter":
		return engine.RoleCutter
	case "Finisher":
		return engine.RoleRimRunner
	default:
		return engine.RoleBallHandler
	}
}

// participantsForFamily maps an action's fixed role list onto the actual
// players occupying those roles, in the same order as
// rolefit.Families[action].Roles (spec §4.5).
func participantsForFamily(baseAction engine.Action, offense *engine.TeamState, pp resolve.Participants) []*engine.Player {
	switch baseAction {
	case engine.ActionPnR, engine.ActionSideAnglePnR:
		return []*engine.Player{pp.BallHandler, pp.SecondaryHandler, pp.Screener}
	case engine.ActionDragScreen:
		return []*engine.Player{pp.BallHandler, pp.Screener}
	case engine.ActionDHO:
		return []*engine.Player{pp.BallHandler, offense.GetRolePlayer(engine.RoleShooter, engine.AbilShot3CS)}
	case engine.ActionDrive:
		return []*engine.Player{pp.BallHandler}
	case engine.ActionPostUp:
		return []*engine.Player{pp.Post}
	case engine.ActionHornsSet:
		return []*engine.Player{pp.BallHandler, pp.Screener, pp.Post}
	case engine.ActionSpotUp, engine.ActionKickout:
		return []*engine.Player{offense.GetRolePlayer(engine.RoleShooter, engine.AbilShot3CS)}
	case engine.ActionCut:
		return []*engine.Player{pp.Cutter, pp.RimRunner}
	case engine.ActionTransitionEarly:
		return []*engine.Player{pp.BallHandler}
	case engine.ActionExtraPass:
		return []*engine.Player{pp.SecondaryHandler, offense.GetRolePlayer(engine.RoleShooter, engine.AbilShot3CS)}
	default:
		return []*engine.Player{pp.BallHandler}
	}
}
