package resolve

import "github.com/kibbyd/courtsim/internal/engine"

// OffenseProfile gives each outcome kind a weighted ability vector for the
// acting participant (spec §4.3: "coefficients summing to 1").
var OffenseProfile = map[engine.OutcomeKind]map[engine.Ability]float64{
	engine.KindShotRim: {
		engine.AbilFinRim: 0.45, engine.AbilContestedFin: 0.30, engine.AbilFirstStep: 0.25,
	},
	engine.KindShotMid: {
		engine.AbilShotMidCS: 0.50, engine.AbilShotMidPU: 0.30, engine.AbilOffballMove: 0.20,
	},
	engine.KindShot3: {
		engine.AbilShot3CS: 0.55, engine.AbilShot3OD: 0.30, engine.AbilOffballMove: 0.15,
	},
	engine.KindShotPost: {
		engine.AbilPostScore: 0.50, engine.AbilPostFootwork: 0.30, engine.AbilPostStrength: 0.20,
	},
	engine.KindPass: {
		engine.AbilPassCreate: 0.40, engine.AbilPassVision: 0.35, engine.AbilPassSkipIQ: 0.25,
	},
	engine.KindTurnover: {
		engine.AbilHandleSecur: 0.60, engine.AbilDriveCreate: 0.40,
	},
	engine.KindRebound: {
		engine.AbilRebOR: 0.70, engine.AbilPhysical: 0.30,
	},
	engine.KindDefault: {
		engine.AbilDriveCreate: 0.50, engine.AbilPhysical: 0.50,
	},
}

// defenseWeights is the weighted combination of DefSnapshot fields per
// outcome kind.
type defenseWeights struct {
	OnBall, Rim, Help, Physical, Post float64
}

var DefenseProfile = map[engine.OutcomeKind]defenseWeights{
	engine.KindShotRim:  {Rim: 0.55, Physical: 0.25, Help: 0.20},
	engine.KindShotMid:  {OnBall: 0.55, Help: 0.25, Physical: 0.20},
	engine.KindShot3:    {OnBall: 0.70, Help: 0.30},
	engine.KindShotPost: {Post: 0.60, Physical: 0.40},
	engine.KindPass:     {Help: 0.60, OnBall: 0.40},
	engine.KindTurnover: {OnBall: 0.50, Help: 0.50},
	engine.KindRebound:  {Physical: 0.60, Help: 0.40},
	engine.KindDefault:  {OnBall: 0.50, Physical: 0.50},
}

// DefScore computes the weighted defensive score for kind against snap.
func DefScore(kind engine.OutcomeKind, snap DefSnapshot) float64 {
	w, ok := DefenseProfile[kind]
	if !ok {
		w = DefenseProfile[engine.KindDefault]
	}
	return w.OnBall*snap.OnBall + w.Rim*snap.Rim + w.Help*snap.Help + w.Physical*snap.Physical + w.Post*snap.Post
}

// OffScore computes the weighted offensive score for kind from actor.
func OffScore(kind engine.OutcomeKind, actor *engine.Player) float64 {
	weights, ok := OffenseProfile[kind]
	if !ok {
		weights = OffenseProfile[engine.KindDefault]
	}
	var sum float64
	for k, w := range weights {
		sum += w * actor.Get(k, true)
	}
	return sum
}
