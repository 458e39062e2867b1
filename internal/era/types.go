// Package era implements the tunable-parameter registry (spec §4.1): it
// loads, validates, merges, and process-wide activates the tables every
// later stage of the pipeline reads from.
package era

import "github.com/kibbyd/courtsim/internal/engine"

// ProbModel holds the generic success-probability clamps and scale/offset
// constants shared by the shot/pass/rebound/FT models.
type ProbModel struct {
	BasePMin float64 `json:"base_p_min"`
	BasePMax float64 `json:"base_p_max"`
	ProbMin  float64 `json:"prob_min"`
	ProbMax  float64 `json:"prob_max"`

	ShotScale    float64 `json:"shot_scale"`
	PassScale    float64 `json:"pass_scale"`
	ReboundScale float64 `json:"rebound_scale"`

	ORBBase float64 `json:"orb_base"`

	FTBase  float64 `json:"ft_base"`
	FTRange float64 `json:"ft_range"`
	FTMin   float64 `json:"ft_min"`
	FTMax   float64 `json:"ft_max"`
}

// LogisticParam is the {scale, sensitivity} pair for one outcome kind
// (spec §4.3). Sensitivity is 1/scale when only scale is supplied.
type LogisticParam struct {
	Scale       float64 `json:"scale"`
	Sensitivity float64 `json:"sensitivity"`
}

// VarianceParams controls the logit-space Gaussian noise added at
// resolution time.
type VarianceParams struct {
	LogitNoiseStd float64                        `json:"logit_noise_std"`
	KindMult      map[engine.OutcomeKind]float64 `json:"kind_mult"`
	TeamMultLo    float64                        `json:"team_mult_lo"`
	TeamMultHi    float64                        `json:"team_mult_hi"`
}

// Rules holds game-structure constants: quarter length, shot clock, foul
// rules, rebound reset, and the rotation/fatigue tuning tables (spec §4.7,
// §4.8, and the SUPPLEMENTED FEATURES section of SPEC_FULL.md).
type Rules struct {
	Quarters        int     `json:"quarters"`
	QuarterLength   float64 `json:"quarter_length"`
	ShotClock       float64 `json:"shot_clock"`
	FoulOut         int     `json:"foul_out"`
	BonusThreshold  int     `json:"bonus_threshold"`
	ORBReset        float64 `json:"orb_reset"`

	TimeCosts map[string]float64 `json:"time_costs"`

	FatigueTargets   FatigueTargets   `json:"fatigue_targets"`
	FatigueLoss      FatigueLoss      `json:"fatigue_loss"`
	FatigueThreshold FatigueThreshold `json:"fatigue_thresholds"`
	FatigueEffects   FatigueEffects   `json:"fatigue_effects"`
}

type FatigueTargets struct {
	StarterSec  float64 `json:"starter_sec"`
	RotationSec float64 `json:"rotation_sec"`
	BenchSec    float64 `json:"bench_sec"`
}

type FatigueLoss struct {
	Handler            float64 `json:"handler"`
	Big                float64 `json:"big"`
	Wing               float64 `json:"wing"`
	TransitionEmphasis float64 `json:"transition_emphasis"`
	HeavyPnR           float64 `json:"heavy_pnr"`
}

type FatigueThreshold struct {
	SubOut float64 `json:"sub_out"`
	SubIn  float64 `json:"sub_in"`
}

type FatigueEffects struct {
	DefMultMin    float64 `json:"def_mult_min"`
	BadMultMax    float64 `json:"bad_mult_max"`
	BadCritical   float64 `json:"bad_critical"`
	BadBonus      float64 `json:"bad_bonus"`
	BadCap        float64 `json:"bad_cap"`
	LogitDeltaMax float64 `json:"logit_delta_max"`
}

// SchemeOutcomeMult is "scheme -> action -> outcome -> multiplier", the
// nested table spec §9 Design Notes suggests collapsing into a sparse
// 3-D map; unknown action/outcome pairs carry multiplier 1.0 implicitly
// (a missing map entry).
type SchemeOutcomeMult[S comparable] map[S]map[engine.Action]map[engine.Outcome]float64

// Era is the full, immutable-after-activation set of tunable tables the
// engine reads from. A zero value is never valid; use DefaultEra or Load.
type Era struct {
	Name    string
	Version string

	MultLo float64
	MultHi float64

	ProbModel      ProbModel
	LogisticParams map[engine.OutcomeKind]LogisticParam
	VarianceParams VarianceParams
	Rules          Rules

	RoleFitDefaultStrength float64

	ShotBase        map[engine.Outcome]float64
	PassBaseSuccess map[engine.Outcome]float64

	ActionOutcomePriors map[engine.Action]map[engine.Outcome]float64
	ActionAliases       map[engine.Action]engine.Action

	OffSchemeActionWeights map[engine.OffScheme]map[engine.Action]float64
	DefSchemeActionWeights map[engine.DefScheme]map[engine.Action]float64

	OffenseSchemeMult SchemeOutcomeMult[engine.OffScheme]
	DefenseSchemeMult SchemeOutcomeMult[engine.DefScheme]
}

// GetActionBase resolves an action to its alias base, or itself if
// unaliased.
func (e *Era) GetActionBase(a engine.Action) engine.Action {
	if base, ok := e.ActionAliases[a]; ok {
		return base
	}
	return a
}

// LogisticFor returns the logistic params for kind, falling back to the
// "default" row, and computing Sensitivity from Scale when it was left
// zero (spec §4.3: "if only scale is provided, sensitivity = 1/scale").
func (e *Era) LogisticFor(kind engine.OutcomeKind) LogisticParam {
	lp, ok := e.LogisticParams[kind]
	if !ok {
		lp = e.LogisticParams[engine.KindDefault]
	}
	if lp.Sensitivity == 0 && lp.Scale != 0 {
		lp.Sensitivity = 1.0 / lp.Scale
	}
	return lp
}
