// Package rolefit implements the Role-Fit Engine (spec §4.5): grading how
// well the players chosen for an action's participant roles match the
// role's weighted ability profile, then distorting outcome priors and
// shifting the resolution logit accordingly.
package rolefit

import "github.com/kibbyd/courtsim/internal/engine"

// Grade is one of S,A,B,C,D, worst-across-participants wins.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

var gradeOrder = map[Grade]int{GradeS: 4, GradeA: 3, GradeB: 2, GradeC: 1, GradeD: 0}

func worstGrade(a, b Grade) Grade {
	if gradeOrder[a] <= gradeOrder[b] {
		return a
	}
	return b
}

// rawMult[grade][category] per spec §4.5's prior-distortion table.
type multPair struct{ good, bad float64 }

var rawMult = map[Grade]multPair{
	GradeS: {1.06, 0.94},
	GradeA: {1.03, 0.97},
	GradeB: {1.00, 1.00},
	GradeC: {0.93, 1.10},
	GradeD: {0.85, 1.25},
}

// rawDelta[grade] per spec §4.5's logit-shift table.
var rawDelta = map[Grade]float64{
	GradeS: 0.18,
	GradeA: 0.10,
	GradeB: 0,
	GradeC: -0.18,
	GradeD: -0.35,
}

// ParticipantRole is one named slot in an action family's role list.
type ParticipantRole struct {
	Name    string
	Weights map[engine.Ability]float64
	// Cutoffs is the ascending score threshold for each grade: a score
	// >= Cutoffs[g] earns grade g or better. D is the floor.
	Cutoffs map[Grade]float64
}

// Family groups the fixed role list for one action, e.g. PnR ->
// {PrimaryHandler, SecondaryHandler, RollOrShortRoll}.
type Family struct {
	Roles []ParticipantRole
}

func dotClamped(p *engine.Player, weights map[engine.Ability]float64) float64 {
	v := 0.0
	for k, w := range weights {
		v += w * p.Get(k, true)
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func gradeFor(role ParticipantRole, score float64) Grade {
	best := GradeD
	for _, g := range []Grade{GradeS, GradeA, GradeB, GradeC} {
		if score >= role.Cutoffs[g] {
			best = g
			break
		}
	}
	return best
}

// Result is the outcome of grading one action's participant set.
type Result struct {
	FitEff float64
	Grade  Grade
}

// Score grades a chosen participant set (one player per role in
// family.Roles, same order) per spec §4.5: fit_eff = 0.70*min(fits) +
// 0.30*mean(fits) for multi-participant families; single-participant
// families use the fit directly. Grade is the worst across participants.
func Score(family Family, participants []*engine.Player) Result {
	if len(participants) == 0 || len(family.Roles) == 0 {
		return Result{FitEff: 50, Grade: GradeB}
	}

	fits := make([]float64, len(family.Roles))
	for i, role := range family.Roles {
		if i >= len(participants) || participants[i] == nil {
			continue
		}
		fits[i] = dotClamped(participants[i], role.Weights)
	}

	var fitEff float64
	if len(fits) == 1 {
		fitEff = fits[0]
	} else {
		min, sum := fits[0], 0.0
		for _, f := range fits {
			if f < min {
				min = f
			}
			sum += f
		}
		mean := sum / float64(len(fits))
		fitEff = 0.70*min + 0.30*mean
	}

	grade := GradeS
	for _, role := range family.Roles {
		grade = worstGrade(grade, gradeFor(role, fitEff))
	}

	return Result{FitEff: fitEff, Grade: grade}
}

// category classifies an outcome as GOOD (SHOT_*/PASS_*) or BAD
// (TO_*/RESET_*); FOUL_* is untouched (spec §4.5).
func category(o engine.Outcome) (isGood, isBad bool) {
	switch {
	case o.IsShot(), o.IsPass():
		return true, false
	case o.IsTurnover(), o.IsReset():
		return false, true
	default:
		return false, false
	}
}

// ApplyPriorDistortion mutates priors in place per spec §4.5's 60%-weight
// rule, then renormalizes.
func ApplyPriorDistortion(priors map[engine.Outcome]float64, grade Grade, strength float64) {
	mp := rawMult[grade]
	var sum float64
	for o, v := range priors {
		good, bad := category(o)
		switch {
		case good:
			v *= 1 + 0.60*strength*(mp.good-1)
		case bad:
			v *= 1 + 0.60*strength*(mp.bad-1)
		}
		if v < 0 {
			v = 0
		}
		priors[o] = v
		sum += v
	}
	if sum <= 0 {
		return
	}
	for o := range priors {
		priors[o] /= sum
	}
}

// LogitShift returns the 40%-weight logit delta for grade at strength
// (spec §4.5).
func LogitShift(grade Grade, strength float64) float64 {
	return 0.40 * strength * rawDelta[grade]
}
