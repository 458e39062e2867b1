package rolefit

import "github.com/kibbyd/courtsim/internal/engine"

// cutoffs builds a standard S>A>B>C cutoff ladder from a single top score,
// spaced 10 points apart, floor D below the C cutoff.
func cutoffs(top float64) map[Grade]float64 {
	return map[Grade]float64{
		GradeS: top,
		GradeA: top - 10,
		GradeB: top - 20,
		GradeC: top - 30,
	}
}

var handlerRole = ParticipantRole{
	Name: "PrimaryHandler",
	Weights: map[engine.Ability]float64{
		engine.AbilPnRRead:     0.35,
		engine.AbilDriveCreate: 0.30,
		engine.AbilHandleSecur: 0.20,
		engine.AbilFirstStep:   0.15,
	},
	Cutoffs: cutoffs(78),
}

var secondaryHandlerRole = ParticipantRole{
	Name: "SecondaryHandler",
	Weights: map[engine.Ability]float64{
		engine.AbilPassCreate: 0.40,
		engine.AbilPassVision: 0.35,
		engine.AbilHandleSecur: 0.25,
	},
	Cutoffs: cutoffs(74),
}

var rollShortRollRole = ParticipantRole{
	Name: "RollOrShortRoll",
	Weights: map[engine.Ability]float64{
		engine.AbilShortrollPlay: 0.40,
		engine.AbilFinDunk:       0.30,
		engine.AbilScreenSet:     0.30,
	},
	Cutoffs: cutoffs(76),
}

var shooterRole = ParticipantRole{
	Name: "Shooter",
	Weights: map[engine.Ability]float64{
		engine.AbilShot3CS:     0.55,
		engine.AbilOffballMove: 0.25,
		engine.AbilShot3OD:     0.20,
	},
	Cutoffs: cutoffs(80),
}

var postRole = ParticipantRole{
	Name: "Post",
	Weights: map[engine.Ability]float64{
		engine.AbilPostScore:    0.40,
		engine.AbilPostFootwork: 0.30,
		engine.AbilPostStrength: 0.30,
	},
	Cutoffs: cutoffs(76),
}

var finisherRole = ParticipantRole{
	Name: "Finisher",
	Weights: map[engine.Ability]float64{
		engine.AbilFinRim:       0.40,
		engine.AbilContestedFin: 0.30,
		engine.AbilFirstStep:    0.30,
	},
	Cutoffs: cutoffs(78),
}

var cutterRole = ParticipantRole{
	Name: "Cutter",
	Weights: map[engine.Ability]float64{
		engine.AbilCutIQ:        0.45,
		engine.AbilOffballMove:  0.30,
		engine.AbilFinRim:       0.25,
	},
	Cutoffs: cutoffs(76),
}

var transitionRole = ParticipantRole{
	Name: "TransitionBallHandler",
	Weights: map[engine.Ability]float64{
		engine.AbilTransitionIQ: 0.40,
		engine.AbilSpeed:        0.35,
		engine.AbilDriveCreate:  0.25,
	},
	Cutoffs: cutoffs(76),
}

// Families maps each action to its fixed participant-role list (spec
// §4.5). Actions with no meaningful distinct roster (Kickout, ExtraPass)
// reuse the shooter/secondary-handler pairing their post-pass steering
// actually resolves into.
var Families = map[engine.Action]Family{
	engine.ActionPnR:           {Roles: []ParticipantRole{handlerRole, secondaryHandlerRole, rollShortRollRole}},
	engine.ActionSideAnglePnR:  {Roles: []ParticipantRole{handlerRole, secondaryHandlerRole, rollShortRollRole}},
	engine.ActionDragScreen:    {Roles: []ParticipantRole{handlerRole, rollShortRollRole}},
	engine.ActionDHO:           {Roles: []ParticipantRole{handlerRole, shooterRole}},
	engine.ActionDrive:         {Roles: []ParticipantRole{handlerRole}},
	engine.ActionPostUp:        {Roles: []ParticipantRole{postRole}},
	engine.ActionHornsSet:      {Roles: []ParticipantRole{handlerRole, rollShortRollRole, postRole}},
	engine.ActionSpotUp:        {Roles: []ParticipantRole{shooterRole}},
	engine.ActionCut:           {Roles: []ParticipantRole{cutterRole, finisherRole}},
	engine.ActionTransitionEarly: {Roles: []ParticipantRole{transitionRole}},
	engine.ActionKickout:       {Roles: []ParticipantRole{shooterRole}},
	engine.ActionExtraPass:     {Roles: []ParticipantRole{secondaryHandlerRole, shooterRole}},
}
