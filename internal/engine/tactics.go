package engine

// ContextKey is one of the recognized free-form tactics context options
// (spec §3: "a free-form context bag holding recognized options only").
// Unrecognized keys are dropped by the validator.
type ContextKey string

const (
	CtxPaceMult           ContextKey = "PACE_MULT"
	CtxORBMult            ContextKey = "ORB_MULT"
	CtxDRBMult            ContextKey = "DRB_MULT"
	CtxVarianceMult       ContextKey = "VARIANCE_MULT"
	CtxRoleFitStrength    ContextKey = "ROLE_FIT_STRENGTH"
	CtxTransitionEmphasis ContextKey = "TRANSITION_EMPHASIS"
	CtxHeavyPnR           ContextKey = "HEAVY_PNR"
)

// RecognizedContextKeys is the full allow-list the validator checks the
// context bag against.
var RecognizedContextKeys = map[ContextKey]bool{
	CtxPaceMult:           true,
	CtxORBMult:            true,
	CtxDRBMult:            true,
	CtxVarianceMult:       true,
	CtxRoleFitStrength:    true,
	CtxTransitionEmphasis: true,
	CtxHeavyPnR:           true,
}

// TacticsConfig is the full set of dials a caller sets for one team: chosen
// schemes, sharpness/strength knobs, UI multiplier maps, opponent-distortion
// maps, and the free-form context bag.
type TacticsConfig struct {
	OffenseScheme OffScheme
	DefenseScheme DefScheme

	// Scalar knobs, clamped to [mult_lo, mult_hi] (default [0.70, 1.40]).
	SchemeWeightSharpness    float64
	DefSchemeWeightSharpness float64
	SchemeOutcomeStrength    float64
	DefSchemeOutcomeStrength float64

	// Multiplier maps. Missing keys default to weight 0.5 for action maps
	// and multiplier 1.0 for outcome maps (spec §4.4).
	ActionWeightMult    map[Action]float64
	OutcomeGlobalMult   map[Outcome]float64
	OutcomeByActionMult map[Action]map[Outcome]float64
	DefActionWeightMult map[Action]float64

	// Opponent distortion: this team's defense can push the opponent's
	// offensive choices around.
	OppActionWeightMult    map[Action]float64
	OppOutcomeGlobalMult   map[Outcome]float64
	OppOutcomeByActionMult map[Action]map[Outcome]float64

	Context map[ContextKey]float64
	// Boolean-flavored context entries are stored as 0/1 in Context but
	// read through these helpers for clarity at call sites.
}

// NewTacticsConfig returns a config with every knob at its neutral (1.0)
// value and every map initialized empty.
func NewTacticsConfig(off OffScheme, def DefScheme) *TacticsConfig {
	return &TacticsConfig{
		OffenseScheme:            off,
		DefenseScheme:            def,
		SchemeWeightSharpness:    1.0,
		DefSchemeWeightSharpness: 1.0,
		SchemeOutcomeStrength:    1.0,
		DefSchemeOutcomeStrength: 1.0,
		ActionWeightMult:         map[Action]float64{},
		OutcomeGlobalMult:        map[Outcome]float64{},
		OutcomeByActionMult:      map[Action]map[Outcome]float64{},
		DefActionWeightMult:      map[Action]float64{},
		OppActionWeightMult:      map[Action]float64{},
		OppOutcomeGlobalMult:     map[Outcome]float64{},
		OppOutcomeByActionMult:   map[Action]map[Outcome]float64{},
		Context:                  map[ContextKey]float64{},
	}
}

// ContextFloat reads a numeric context entry, defaulting to def if absent.
func (t *TacticsConfig) ContextFloat(key ContextKey, def float64) float64 {
	if v, ok := t.Context[key]; ok {
		return v
	}
	return def
}

// ContextBool reads a boolean-flavored context entry (nonzero == true).
func (t *TacticsConfig) ContextBool(key ContextKey) bool {
	return t.Context[key] != 0
}
