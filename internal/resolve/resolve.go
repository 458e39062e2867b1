package resolve

import (
	"math"
	"math/rand"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/prob"
)

// Context threads the per-possession state that doesn't belong on either
// team: the RNG, the active era, and the context-derived multipliers
// computed by the game loop (spec §4.6, §4.8).
type Context struct {
	Rng          *rand.Rand
	Era          *era.Era
	VarianceMult float64 // team_variance_mult(offense) * possession variance_mult
	DefEffMult   float64
	InTransition bool

	// Role-fit carryover from builders/rolefit applied to this step.
	RoleLogitDelta float64
	RoleFitApplied bool
	RoleFitGrade   string
}

// Result is what ResolveOutcome hands back to the possession loop.
type Result struct {
	Terminal   engine.Terminal
	ExtendPass bool // true on CONTINUE: pass_chain should increment
}

// ApplyFatigueCost charges every on-court player on both sides the
// per-step fatigue cost (spec §4.6: "Every on-court player... offense
// takes 0.42/0.58, defense 0.40/0.54").
func ApplyFatigueCost(offenseOnCourt, defenseOnCourt []*engine.Player, inTransition bool) {
	offCost, defCost := 0.42, 0.40
	if inTransition {
		offCost, defCost = 0.58, 0.54
	}
	for _, p := range offenseOnCourt {
		p.AddFatigue(offCost)
	}
	for _, p := range defenseOnCourt {
		p.AddFatigue(defCost)
	}
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

func freshnessOf(gs *engine.GameState, pid string) float64 {
	if v, ok := gs.Freshness[pid]; ok {
		return v
	}
	return 1.0
}

func fatigueLogitDelta(e *era.Era, gs *engine.GameState, pid string) float64 {
	return (1 - freshnessOf(gs, pid)) * e.Rules.FatigueEffects.LogitDeltaMax
}

// participants bundles the role-resolved players a resolution step might
// need, fetched once per possession step by the caller.
type Participants struct {
	BallHandler      *engine.Player
	SecondaryHandler *engine.Player
	Screener         *engine.Player
	Post             *engine.Player
	RimRunner        *engine.Player
	Cutter           *engine.Player
}

func RoleParticipants(t *engine.TeamState) Participants {
	return Participants{
		BallHandler:      t.GetRolePlayer(engine.RoleBallHandler, engine.AbilPnRRead),
		SecondaryHandler: t.GetRolePlayer(engine.RoleSecondaryHandler, engine.AbilPassCreate),
		Screener:         t.GetRolePlayer(engine.RoleScreener, engine.AbilShortrollPlay),
		Post:             t.GetRolePlayer(engine.RolePost, engine.AbilPostScore),
		RimRunner:        t.GetRolePlayer(engine.RoleRimRunner, engine.AbilFinDunk),
		Cutter:           t.GetRolePlayer(engine.RoleCutter, engine.AbilFirstStep),
	}
}

func selectShotOrPassActor(ctx *Context, outcome engine.Outcome, offense *engine.TeamState, pp Participants) *engine.Player {
	switch outcome {
	case engine.OutcomeShot3CS, engine.OutcomeShotMidCS:
		key := engine.AbilShot3CS
		power := 1.35
		if outcome == engine.OutcomeShotMidCS {
			key, power = engine.AbilShotMidCS, 1.25
		}
		return ChooseWeightedPlayer(ctx.Rng, topN(offense.Lineup, key, 3, true), key, power, true)
	case engine.OutcomeShot3OD, engine.OutcomeShotMidPU:
		return ChooseCreatorForPulloff(ctx.Rng, pp.BallHandler, pp.SecondaryHandler, outcome)
	case engine.OutcomeShotPost:
		return ChoosePostTarget(pp.Post)
	case engine.OutcomeShotRimDunk:
		return ChooseFinisherRim(ctx.Rng, pp.BallHandler, pp.RimRunner, pp.Screener, pp.Cutter, true)
	case engine.OutcomeShotRimLayup, engine.OutcomeShotRimContact, engine.OutcomeShotTouchFloater:
		return ChooseFinisherRim(ctx.Rng, pp.BallHandler, pp.RimRunner, pp.Screener, pp.Cutter, false)
	case engine.OutcomePassShortroll:
		if pp.Screener != nil {
			return pp.Screener
		}
		return pp.BallHandler
	default:
		return pp.BallHandler
	}
}

// ResolveOutcome dispatches outcome to its shot/pass/turnover/foul/reset
// branch, mutating offense/defense/gs in place, per spec §4.6. action and
// baseAction are the sampled action and its alias base, used only by the
// passer-selection dispatch.
func ResolveOutcome(ctx *Context, outcome engine.Outcome, action, baseAction engine.Action, offense, defense *engine.TeamState, gs *engine.GameState, offenseOnCourt, defenseOnCourt []*engine.Player) Result {
	pp := RoleParticipants(offense)

	if outcome == engine.OutcomeTOShotclock {
		actor := pp.BallHandler
		offense.TOV++
		if actor != nil {
			offense.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) { b.TOV++ })
		}
		return Result{Terminal: engine.TermTurnover}
	}

	switch {
	case outcome.IsShot():
		return resolveShot(ctx, outcome, offense, defense, gs, defenseOnCourt, pp)
	case outcome.IsPass():
		return resolvePass(ctx, outcome, action, baseAction, offense, defense, gs, defenseOnCourt, pp)
	case outcome.IsTurnover():
		actor := pp.BallHandler
		offense.TOV++
		if actor != nil {
			offense.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) { b.TOV++ })
		}
		return Result{Terminal: engine.TermTurnover}
	case outcome.IsFoul():
		return resolveFoul(ctx, outcome, offense, defense, gs, defenseOnCourt, pp)
	case outcome.IsReset():
		return Result{Terminal: engine.TermReset}
	default:
		// Runtime guard (spec §7): missing outcome profile -> RESET.
		return Result{Terminal: engine.TermReset}
	}
}

func resolveShot(ctx *Context, outcome engine.Outcome, offense, defense *engine.TeamState, gs *engine.GameState, defenseOnCourt []*engine.Player, pp Participants) Result {
	actor := selectShotOrPassActor(ctx, outcome, offense, pp)
	kind := engine.ShotKind(outcome)

	offScore := OffScore(kind, actor)
	defSnap := TeamDefSnapshot(defenseOnCourt)
	defScore := DefScore(kind, defSnap) * ctx.DefEffMult

	basePMake := ctx.Era.ShotBase[outcome]
	var fld float64
	if actor != nil {
		fld = fatigueLogitDelta(ctx.Era, gs, actor.ID)
	}
	pMake := prob.FromScores(ctx.Rng, ctx.Era, kind, basePMake, prob.Scores{Off: offScore, Def: defScore}, ctx.RoleLogitDelta, fld, ctx.VarianceMult)

	offense.FGA++
	zone := outcome.ShotZone()
	if zone != "" {
		offense.ShotZones[zone]++
	}
	isThree := outcome.Points() == 3
	if isThree {
		offense.TPA++
	}
	if actor != nil {
		offense.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) {
			b.FGA++
			if isThree {
				b.TPA++
			}
		})
	}

	made := ctx.Rng.Float64() < pMake
	if !made {
		return Result{Terminal: engine.TermMiss}
	}

	offense.FGM++
	offense.PTS += outcome.Points()
	if isThree {
		offense.TPM++
	}
	if actor != nil {
		offense.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) {
			b.FGM++
			b.PTS += outcome.Points()
			if isThree {
				b.TPM++
			}
		})
	}
	return Result{Terminal: engine.TermScore}
}

func resolvePass(ctx *Context, outcome engine.Outcome, action, baseAction engine.Action, offense, defense *engine.TeamState, gs *engine.GameState, defenseOnCourt []*engine.Player, pp Participants) Result {
	var bestDriver *engine.Player
	if top := topN(offense.Lineup, engine.AbilDriveCreate, 1, true); len(top) > 0 {
		bestDriver = top[0]
	}
	var actor *engine.Player
	if outcome == engine.OutcomePassShortroll && pp.Screener != nil {
		actor = pp.Screener
	} else {
		actor = ChoosePasser(ctx.Rng, action, baseAction, pp.BallHandler, pp.Screener, pp.Post, bestDriver)
	}
	if actor == nil {
		actor = selectShotOrPassActor(ctx, outcome, offense, pp)
	}

	kind := engine.KindPass
	offScore := OffScore(kind, actor)
	defSnap := TeamDefSnapshot(defenseOnCourt)
	defScore := DefScore(kind, defSnap) * ctx.DefEffMult

	basePOK := ctx.Era.PassBaseSuccess[outcome]
	var fld float64
	if actor != nil {
		fld = fatigueLogitDelta(ctx.Era, gs, actor.ID)
	}
	pOK := prob.FromScores(ctx.Rng, ctx.Era, kind, basePOK, prob.Scores{Off: offScore, Def: defScore}, ctx.RoleLogitDelta, fld, ctx.VarianceMult)

	if ctx.Rng.Float64() < pOK {
		return Result{Terminal: engine.TermContinue, ExtendPass: true}
	}
	// Pass failure is never an automatic turnover (spec §9 resolved open
	// question): it returns RESET, not TURNOVER.
	return Result{Terminal: engine.TermReset}
}

func resolveFoul(ctx *Context, outcome engine.Outcome, offense, defense *engine.TeamState, gs *engine.GameState, defenseOnCourt []*engine.Player, pp Participants) Result {
	if len(defenseOnCourt) == 0 {
		return Result{Terminal: engine.TermFoul}
	}
	fouler := defenseOnCourt[ctx.Rng.Intn(len(defenseOnCourt))]
	gs.PlayerFouls[fouler.ID]++
	gs.TeamFouls[defense.Name]++

	var shotOutcome engine.Outcome
	jumper := false
	switch outcome {
	case engine.OutcomeFoulDrawJumper:
		shotOutcome, jumper = engine.OutcomeShot3OD, true
	case engine.OutcomeFoulDrawPost:
		shotOutcome = engine.OutcomeShotPost
	default: // FOUL_DRAW_RIM, FOUL_REACH_TRAP
		shotOutcome = engine.OutcomeShotRimDunk
	}

	actor := selectShotOrPassActor(ctx, shotOutcome, offense, pp)
	kind := engine.ShotKind(shotOutcome)
	offScore := OffScore(kind, actor)
	defSnap := TeamDefSnapshot(defenseOnCourt)
	defScore := DefScore(kind, defSnap) * ctx.DefEffMult
	basePMake := ctx.Era.ShotBase[shotOutcome]
	var fld float64
	if actor != nil {
		fld = fatigueLogitDelta(ctx.Era, gs, actor.ID)
	}
	pMake := prob.FromScores(ctx.Rng, ctx.Era, kind, basePMake, prob.Scores{Off: offScore, Def: defScore}, ctx.RoleLogitDelta, fld, ctx.VarianceMult)
	andOne := ctx.Rng.Float64() < pMake

	nfts := 2
	if jumper {
		nfts = 3
	}
	if andOne {
		nfts++
	}
	ResolveFreeThrows(ctx, actor, offense, nfts)

	if gs.PlayerFouls[fouler.ID] >= ctx.Era.Rules.FoulOut {
		gs.Freshness[fouler.ID] = 0
	}
	return Result{Terminal: engine.TermFoul}
}

// ResolveFreeThrows rolls nfts free throws for actor, crediting team and
// player boxes (spec §4.6: "p = clamp(ft_base + SHOT_FT/100*ft_range,
// ft_min, ft_max)").
func ResolveFreeThrows(ctx *Context, actor *engine.Player, team *engine.TeamState, nfts int) {
	if actor == nil || nfts <= 0 {
		return
	}
	pm := ctx.Era.ProbModel
	ft := actor.Get(engine.AbilShotFT, false)
	p := clampf(pm.FTBase+ft/100*pm.FTRange, pm.FTMin, pm.FTMax)

	team.FTA += nfts
	team.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) { b.FTA += nfts })
	for i := 0; i < nfts; i++ {
		if ctx.Rng.Float64() < p {
			team.FTM++
			team.PTS++
			team.AddPlayerStat(actor.ID, func(b *engine.PlayerBox) { b.FTM++; b.PTS++ })
		}
	}
}

// ReboundORBProbability computes the offensive-rebound probability with no
// variance noise (spec §9 design contract: "drawn without variance
// noise").
func ReboundORBProbability(e *era.Era, offenseOnCourt, defenseOnCourt []*engine.Player, orbMult, drbMult float64) float64 {
	basePOrb := e.ProbModel.ORBBase
	offMean := meanAbility(offenseOnCourt, engine.AbilRebOR, true) * orbMult
	defMean := meanAbility(defenseOnCourt, engine.AbilRebDR, true) * drbMult
	return prob.FromScores(nil, e, engine.KindRebound, basePOrb, prob.Scores{Off: offMean, Def: defMean}, 0, 0, 1.0)
}

func meanAbility(players []*engine.Player, key engine.Ability, fatigueSensitive bool) float64 {
	if len(players) == 0 {
		return engine.DefaultAbility
	}
	var sum float64
	for _, p := range players {
		sum += p.Get(key, fatigueSensitive)
	}
	return sum / float64(len(players))
}

// reboundCompositeKey returns REB_OR/REB_DR + 0.20*PHYSICAL, the composite
// ranking key resolve.py uses for rebounder selection.
func reboundCompositeKey(p *engine.Player, reb engine.Ability) float64 {
	return p.Get(reb, true) + 0.20*p.Get(engine.AbilPhysical, true)
}

func chooseRebounder(rng *rand.Rand, candidates []*engine.Player, reb engine.Ability, power float64) *engine.Player {
	if len(candidates) == 0 {
		return nil
	}
	ranked := append([]*engine.Player{}, candidates...)
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && reboundCompositeKey(ranked[j-1], reb) < reboundCompositeKey(ranked[j], reb) {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
			j--
		}
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	weights := make([]float64, len(ranked))
	var total float64
	for i, p := range ranked {
		v := reboundCompositeKey(p, reb)
		if v < 1.0 {
			v = 1.0
		}
		weights[i] = math.Pow(v, power)
		total += weights[i]
	}
	if total <= 0 {
		return ranked[rng.Intn(len(ranked))]
	}
	r := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if r <= acc {
			return ranked[i]
		}
	}
	return ranked[len(ranked)-1]
}

// ChooseORBRebounder picks the offensive rebounder, top-3 by REB_OR
// composite, power 1.15.
func ChooseORBRebounder(rng *rand.Rand, offenseOnCourt []*engine.Player) *engine.Player {
	return chooseRebounder(rng, offenseOnCourt, engine.AbilRebOR, 1.15)
}

// ChooseDRBRebounder picks the defensive rebounder, top-3 by REB_DR
// composite, power 1.10.
func ChooseDRBRebounder(rng *rand.Rand, defenseOnCourt []*engine.Player) *engine.Player {
	return chooseRebounder(rng, defenseOnCourt, engine.AbilRebDR, 1.10)
}
