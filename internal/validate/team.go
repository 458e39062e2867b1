package validate

import (
	"math"

	"github.com/kibbyd/courtsim/internal/engine"
)

// MissingDerivedPolicy controls how a player missing a required ability
// key is handled (spec §4.2: "either errors or fills with default (50.0)
// per missing_derived_policy").
type MissingDerivedPolicy int

const (
	FillMissingDerived MissingDerivedPolicy = iota
	ErrorMissingDerived
)

// RequiredAbilities is the full set every player must carry, the closed
// ability enum from internal/engine.
var RequiredAbilities = []engine.Ability{
	engine.AbilFinRim, engine.AbilFinDunk, engine.AbilFinContact, engine.AbilFinTouch,
	engine.AbilShot3CS, engine.AbilShot3OD, engine.AbilShotMidCS, engine.AbilShotMidPU, engine.AbilShotFT, engine.AbilShotPost,
	engine.AbilDriveCreate, engine.AbilPnRRead, engine.AbilFirstStep, engine.AbilShortrollPlay,
	engine.AbilPassCreate, engine.AbilPassVision, engine.AbilPassSkipIQ,
	engine.AbilPostScore, engine.AbilPostFootwork, engine.AbilPostStrength,
	engine.AbilDefPOA, engine.AbilDefRim, engine.AbilDefSteal, engine.AbilDefHelp, engine.AbilDefPost,
	engine.AbilRebOR, engine.AbilRebDR,
	engine.AbilPhysical, engine.AbilSpeed, engine.AbilVerticality, engine.AbilEndurance,
	engine.AbilLatQuick, engine.AbilContestedFin, engine.AbilOffballMove,
	engine.AbilCutIQ, engine.AbilScreenSet, engine.AbilHandleSecur, engine.AbilDrawFoul,
	engine.AbilTransitionIQ, engine.AbilRotationIQ,
}

// ValidateAndSanitizePlayer checks required ability keys, drops
// non-finite values, and clamps to [0,100] (spec §4.2). Mutates p.Derived
// in place.
func ValidateAndSanitizePlayer(p *engine.Player, policy MissingDerivedPolicy, clampOutOfRange bool, rep *Report) {
	if p.Derived == nil {
		p.Derived = map[engine.Ability]float64{}
	}
	for a, v := range p.Derived {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			rep.Warnf("player %s: ability %s is non-finite, dropped", p.ID, a)
			delete(p.Derived, a)
			continue
		}
		if clampOutOfRange {
			c := clampf(v, 0, 100)
			if c != v {
				rep.Warnf("player %s: ability %s=%.2f out of [0,100], clamped to %.2f", p.ID, a, v, c)
				p.Derived[a] = c
			}
		}
	}
	for _, a := range RequiredAbilities {
		if _, ok := p.Derived[a]; ok {
			continue
		}
		switch policy {
		case ErrorMissingDerived:
			rep.Errorf("player %s: missing required ability %s", p.ID, a)
		default:
			rep.Warnf("player %s: missing required ability %s, filled with default", p.ID, a)
			p.Derived[a] = engine.DefaultAbility
		}
	}
}

// ValidateAndSanitizeTeam runs the full team-level validator: lineup size
// and uniqueness, per-player ability sanitization, role-map membership,
// and tactics sanitization (spec §4.2).
func ValidateAndSanitizeTeam(t *engine.TeamState, allowed *AllowedSets, policy MissingDerivedPolicy, clampOutOfRange bool) *Report {
	rep := &Report{}

	if len(t.Lineup) == 0 {
		rep.Errorf("team %s: lineup is empty", t.Name)
		return rep
	}

	seen := map[string]bool{}
	for _, p := range t.Lineup {
		if seen[p.ID] {
			rep.Errorf("team %s: duplicate player id %q", t.Name, p.ID)
			continue
		}
		seen[p.ID] = true
		ValidateAndSanitizePlayer(p, policy, clampOutOfRange, rep)
	}

	if len(t.Lineup) != 12 {
		rep.Warnf("team %s: lineup has %d players, expected 12", t.Name, len(t.Lineup))
	}
	if len(t.Lineup) < 5 {
		rep.Warnf("team %s: lineup has only %d players, fewer than the 5 needed on court", t.Name, len(t.Lineup))
	}

	for role, pid := range t.Roles {
		if t.FindPlayer(pid) == nil {
			rep.Warnf("team %s: role %s points to missing player %q, dropped (falls back to ability rank)", t.Name, role, pid)
			delete(t.Roles, role)
		}
	}

	if t.Tactics != nil {
		SanitizeTacticsConfig(t.Tactics, allowed, rep)
	}

	return rep
}
