package era

import "github.com/kibbyd/courtsim/internal/engine"

// DefaultEra returns the built-in tuning set every era JSON file is merged
// onto (spec §4.1: "Merges the loaded record onto a built-in default").
// Values are grounded on the Python original's DEFAULT_PROB_MODEL /
// DEFAULT_LOGISTIC_PARAMS / DEFAULT_VARIANCE_PARAMS / rules constants
// (era.py, sim.py) and the action/outcome/scheme vocabulary named in
// spec.md §9 Design Notes.
func DefaultEra() *Era {
	return &Era{
		Name:    "builtin_default",
		Version: "1.0",

		MultLo: 0.70,
		MultHi: 1.40,

		ProbModel: ProbModel{
			BasePMin: 0.02, BasePMax: 0.98,
			ProbMin: 0.03, ProbMax: 0.97,
			ShotScale: 18.0, PassScale: 20.0, ReboundScale: 22.0,
			ORBBase: 0.26,
			FTBase:  0.45, FTRange: 0.47, FTMin: 0.40, FTMax: 0.95,
		},

		LogisticParams: map[engine.OutcomeKind]LogisticParam{
			engine.KindDefault:  {Scale: 18.0, Sensitivity: 1.0 / 18.0},
			engine.KindShot3:    {Scale: 30.0, Sensitivity: 1.0 / 30.0},
			engine.KindShotMid:  {Scale: 24.0, Sensitivity: 1.0 / 24.0},
			engine.KindShotRim:  {Scale: 18.0, Sensitivity: 1.0 / 18.0},
			engine.KindShotPost: {Scale: 20.0, Sensitivity: 1.0 / 20.0},
			engine.KindPass:     {Scale: 28.0, Sensitivity: 1.0 / 28.0},
			engine.KindRebound:  {Scale: 22.0, Sensitivity: 1.0 / 22.0},
			engine.KindTurnover: {Scale: 24.0, Sensitivity: 1.0 / 24.0},
		},

		VarianceParams: VarianceParams{
			LogitNoiseStd: 0.18,
			KindMult: map[engine.OutcomeKind]float64{
				engine.KindShot3:    1.15,
				engine.KindShotMid:  1.05,
				engine.KindShotRim:  0.95,
				engine.KindShotPost: 1.00,
				engine.KindPass:     0.85,
				engine.KindRebound:  0.60,
			},
			TeamMultLo: 0.70,
			TeamMultHi: 1.40,
		},

		Rules: Rules{
			Quarters:       4,
			QuarterLength:  720,
			ShotClock:      24,
			FoulOut:        6,
			BonusThreshold: 5,
			ORBReset:       14,
			TimeCosts: map[string]float64{
				"PnR": 7, "DHO": 6, "Drive": 5, "PostUp": 7, "HornsSet": 6,
				"SpotUp": 4, "Cut": 4, "TransitionEarly": 4,
				"Kickout": 2, "ExtraPass": 2,
				"Reset": 4, "possession_setup": 2,
			},
			FatigueTargets: FatigueTargets{StarterSec: 32 * 60, RotationSec: 16 * 60, BenchSec: 8 * 60},
			FatigueLoss: FatigueLoss{
				Handler: 0.012, Big: 0.009, Wing: 0.010,
				TransitionEmphasis: 0.001, HeavyPnR: 0.001,
			},
			FatigueThreshold: FatigueThreshold{SubOut: 0.35, SubIn: 0.70},
			FatigueEffects: FatigueEffects{
				DefMultMin: 0.90, BadMultMax: 1.12, BadCritical: 0.25,
				BadBonus: 0.08, BadCap: 1.20, LogitDeltaMax: -0.25,
			},
		},

		RoleFitDefaultStrength: 0.65,

		ShotBase: map[engine.Outcome]float64{
			engine.OutcomeShotRimLayup:     0.58,
			engine.OutcomeShotRimDunk:      0.72,
			engine.OutcomeShotRimContact:   0.50,
			engine.OutcomeShotTouchFloater: 0.44,
			engine.OutcomeShotMidCS:        0.43,
			engine.OutcomeShotMidPU:        0.40,
			engine.OutcomeShot3CS:          0.37,
			engine.OutcomeShot3OD:          0.33,
			engine.OutcomeShotPost:         0.48,
		},

		PassBaseSuccess: map[engine.Outcome]float64{
			engine.OutcomePassKickout:   0.94,
			engine.OutcomePassExtra:     0.92,
			engine.OutcomePassSkip:      0.88,
			engine.OutcomePassShortroll: 0.90,
		},

		ActionOutcomePriors: defaultActionOutcomePriors(),
		ActionAliases: map[engine.Action]engine.Action{
			engine.ActionDragScreen:   engine.ActionPnR,
			engine.ActionSideAnglePnR: engine.ActionPnR,
		},

		OffSchemeActionWeights: map[engine.OffScheme]map[engine.Action]float64{
			engine.OffSchemeSpreadHeavyPnR: {
				engine.ActionPnR: 0.32, engine.ActionDrive: 0.18, engine.ActionSpotUp: 0.20,
				engine.ActionKickout: 0.06, engine.ActionDHO: 0.08, engine.ActionCut: 0.06,
				engine.ActionTransitionEarly: 0.06, engine.ActionHornsSet: 0.02, engine.ActionPostUp: 0.02,
			},
			engine.OffSchemeMotionDrive: {
				engine.ActionDrive: 0.30, engine.ActionCut: 0.18, engine.ActionSpotUp: 0.16,
				engine.ActionDHO: 0.14, engine.ActionPnR: 0.12, engine.ActionKickout: 0.04,
				engine.ActionTransitionEarly: 0.04, engine.ActionHornsSet: 0.01, engine.ActionPostUp: 0.01,
			},
			engine.OffSchemePostUpBrutal: {
				engine.ActionPostUp: 0.34, engine.ActionSpotUp: 0.18, engine.ActionDrive: 0.14,
				engine.ActionPnR: 0.14, engine.ActionKickout: 0.06, engine.ActionCut: 0.06,
				engine.ActionDHO: 0.04, engine.ActionHornsSet: 0.02, engine.ActionTransitionEarly: 0.02,
			},
			engine.OffSchemePaceTransition: {
				engine.ActionTransitionEarly: 0.30, engine.ActionDrive: 0.18, engine.ActionSpotUp: 0.18,
				engine.ActionPnR: 0.14, engine.ActionKickout: 0.08, engine.ActionCut: 0.06,
				engine.ActionDHO: 0.04, engine.ActionHornsSet: 0.01, engine.ActionPostUp: 0.01,
			},
		},

		DefSchemeActionWeights: map[engine.DefScheme]map[engine.Action]float64{
			engine.DefSchemeDrop: {
				engine.ActionPnR: 0.30, engine.ActionDrive: 0.20, engine.ActionSpotUp: 0.20,
				engine.ActionCut: 0.10, engine.ActionDHO: 0.10, engine.ActionPostUp: 0.05,
				engine.ActionKickout: 0.03, engine.ActionHornsSet: 0.01, engine.ActionTransitionEarly: 0.01,
			},
			engine.DefSchemeICESidePnR: {
				engine.ActionPnR: 0.35, engine.ActionDrive: 0.18, engine.ActionSpotUp: 0.18,
				engine.ActionCut: 0.09, engine.ActionDHO: 0.09, engine.ActionPostUp: 0.05,
				engine.ActionKickout: 0.03, engine.ActionHornsSet: 0.02, engine.ActionTransitionEarly: 0.01,
			},
			engine.DefSchemeBlitzTrapPnR: {
				engine.ActionPnR: 0.40, engine.ActionDrive: 0.16, engine.ActionSpotUp: 0.16,
				engine.ActionCut: 0.08, engine.ActionDHO: 0.08, engine.ActionPostUp: 0.05,
				engine.ActionKickout: 0.04, engine.ActionHornsSet: 0.02, engine.ActionTransitionEarly: 0.01,
			},
			engine.DefSchemeSwitchEverything: {
				engine.ActionPnR: 0.28, engine.ActionDrive: 0.22, engine.ActionSpotUp: 0.18,
				engine.ActionCut: 0.10, engine.ActionDHO: 0.10, engine.ActionPostUp: 0.06,
				engine.ActionKickout: 0.03, engine.ActionHornsSet: 0.02, engine.ActionTransitionEarly: 0.01,
			},
		},

		OffenseSchemeMult: defaultOffenseSchemeMult(),
		DefenseSchemeMult: defaultDefenseSchemeMult(),
	}
}

// defaultActionOutcomePriors gives every action a non-degenerate prior over
// a plausible outcome subset. SpotUp is the fallback action per spec §4.4
// step 2, so it must exist.
func defaultActionOutcomePriors() map[engine.Action]map[engine.Outcome]float64 {
	return map[engine.Action]map[engine.Outcome]float64{
		engine.ActionSpotUp: {
			engine.OutcomeShot3CS: 0.52, engine.OutcomeShotMidCS: 0.18,
			engine.OutcomePassExtra: 0.14, engine.OutcomeResetHub: 0.10,
			engine.OutcomeTOBadPass: 0.04, engine.OutcomeFoulDrawJumper: 0.02,
		},
		engine.ActionPnR: {
			engine.OutcomeShotRimLayup: 0.16, engine.OutcomeShotMidPU: 0.12,
			engine.OutcomeShot3OD: 0.10, engine.OutcomePassShortroll: 0.16,
			engine.OutcomePassKickout: 0.18, engine.OutcomeResetResreen: 0.10,
			engine.OutcomeTOHandleLoss: 0.08, engine.OutcomeTOCharge: 0.03,
			engine.OutcomeFoulReachTrap: 0.04, engine.OutcomeFoulDrawRim: 0.03,
		},
		engine.ActionDHO: {
			engine.OutcomeShot3OD: 0.16, engine.OutcomeShotMidPU: 0.14,
			engine.OutcomePassKickout: 0.20, engine.OutcomePassExtra: 0.14,
			engine.OutcomeResetRedoDHO: 0.16, engine.OutcomeTOHandleLoss: 0.10,
			engine.OutcomeTOBadPass: 0.06, engine.OutcomeFoulDrawJumper: 0.04,
		},
		engine.ActionDrive: {
			engine.OutcomeShotRimLayup: 0.22, engine.OutcomeShotRimContact: 0.12,
			engine.OutcomeShotTouchFloater: 0.10, engine.OutcomePassKickout: 0.20,
			engine.OutcomePassSkip: 0.08, engine.OutcomeResetHub: 0.08,
			engine.OutcomeTOHandleLoss: 0.08, engine.OutcomeTOCharge: 0.06,
			engine.OutcomeFoulDrawRim: 0.06,
		},
		engine.ActionPostUp: {
			engine.OutcomeShotPost: 0.38, engine.OutcomePassKickout: 0.14,
			engine.OutcomePassExtra: 0.10, engine.OutcomeResetPostOut: 0.18,
			engine.OutcomeTOBadPass: 0.08, engine.OutcomeTOHandleLoss: 0.04,
			engine.OutcomeFoulDrawPost: 0.08,
		},
		engine.ActionHornsSet: {
			engine.OutcomeShotMidPU: 0.14, engine.OutcomeShot3OD: 0.12,
			engine.OutcomePassShortroll: 0.14, engine.OutcomePassKickout: 0.20,
			engine.OutcomePassExtra: 0.14, engine.OutcomeResetHub: 0.16,
			engine.OutcomeTOBadPass: 0.06, engine.OutcomeFoulReachTrap: 0.04,
		},
		engine.ActionCut: {
			engine.OutcomeShotRimLayup: 0.30, engine.OutcomeShotRimContact: 0.10,
			engine.OutcomePassExtra: 0.20, engine.OutcomeResetHub: 0.22,
			engine.OutcomeTOBadPass: 0.10, engine.OutcomeFoulDrawRim: 0.08,
		},
		engine.ActionTransitionEarly: {
			engine.OutcomeShotRimLayup: 0.26, engine.OutcomeShotRimDunk: 0.12,
			engine.OutcomeShot3CS: 0.18, engine.OutcomePassExtra: 0.16,
			engine.OutcomeResetHub: 0.10, engine.OutcomeTOHandleLoss: 0.10,
			engine.OutcomeTOBadPass: 0.04, engine.OutcomeFoulDrawRim: 0.04,
		},
		engine.ActionKickout: {
			engine.OutcomeShot3CS: 0.46, engine.OutcomeShotMidCS: 0.14,
			engine.OutcomePassExtra: 0.20, engine.OutcomeResetHub: 0.14,
			engine.OutcomeTOBadPass: 0.04, engine.OutcomeFoulDrawJumper: 0.02,
		},
		engine.ActionExtraPass: {
			engine.OutcomeShot3CS: 0.40, engine.OutcomeShotMidCS: 0.16,
			engine.OutcomePassExtra: 0.16, engine.OutcomeResetHub: 0.18,
			engine.OutcomeTOBadPass: 0.06, engine.OutcomeFoulDrawJumper: 0.04,
		},
	}
}

func defaultOffenseSchemeMult() SchemeOutcomeMult[engine.OffScheme] {
	return SchemeOutcomeMult[engine.OffScheme]{
		engine.OffSchemeSpreadHeavyPnR: {
			engine.ActionPnR: {engine.OutcomeShot3OD: 1.10, engine.OutcomePassShortroll: 1.08},
			engine.ActionSpotUp: {engine.OutcomeShot3CS: 1.12},
		},
		engine.OffSchemeMotionDrive: {
			engine.ActionDrive: {engine.OutcomeShotRimLayup: 1.10, engine.OutcomePassKickout: 1.06},
			engine.ActionCut:   {engine.OutcomeShotRimLayup: 1.08},
		},
		engine.OffSchemePostUpBrutal: {
			engine.ActionPostUp: {engine.OutcomeShotPost: 1.15, engine.OutcomeFoulDrawPost: 1.12},
		},
		engine.OffSchemePaceTransition: {
			engine.ActionTransitionEarly: {engine.OutcomeShot3CS: 1.10, engine.OutcomeShotRimDunk: 1.12},
		},
	}
}

func defaultDefenseSchemeMult() SchemeOutcomeMult[engine.DefScheme] {
	return SchemeOutcomeMult[engine.DefScheme]{
		engine.DefSchemeDrop: {
			engine.ActionPnR: {engine.OutcomeShotMidPU: 1.08, engine.OutcomeShot3OD: 0.94},
		},
		engine.DefSchemeICESidePnR: {
			engine.ActionPnR: {engine.OutcomeShot3OD: 0.88, engine.OutcomeResetResreen: 1.10},
		},
		engine.DefSchemeBlitzTrapPnR: {
			engine.ActionPnR: {engine.OutcomeTOHandleLoss: 1.18, engine.OutcomePassShortroll: 1.05},
		},
		engine.DefSchemeSwitchEverything: {
			engine.ActionPostUp: {engine.OutcomeShotPost: 0.92},
			engine.ActionDrive:  {engine.OutcomeShotRimLayup: 0.94},
		},
	}
}
