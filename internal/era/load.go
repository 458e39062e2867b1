package era

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Report accumulates warnings (missing block, filled from default) and
// errors (wrong-typed block, fallback to default) produced while merging a
// loaded era file onto DefaultEra (spec §4.1 / §7).
type Report struct {
	Warnings []string
	Errors   []string
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether the merge produced no errors (warnings alone don't
// block activation).
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// rawEra mirrors Era's JSON shape loosely: every block is present as
// json.RawMessage so we can detect "missing" vs "wrong type" independently
// per block, per era.py's validate_and_fill_era_dict.
type rawEra struct {
	Name                   json.RawMessage `json:"name"`
	Version                json.RawMessage `json:"version"`
	MultLo                 json.RawMessage `json:"mult_lo"`
	MultHi                 json.RawMessage `json:"mult_hi"`
	ProbModel              json.RawMessage `json:"prob_model"`
	LogisticParams         json.RawMessage `json:"logistic_params"`
	VarianceParams         json.RawMessage `json:"variance_params"`
	Rules                  json.RawMessage `json:"rules"`
	RoleFitDefaultStrength json.RawMessage `json:"role_fit_default_strength"`
	ShotBase               json.RawMessage `json:"shot_base"`
	PassBaseSuccess        json.RawMessage `json:"pass_base_success"`
	ActionOutcomePriors    json.RawMessage `json:"action_outcome_priors"`
	ActionAliases          json.RawMessage `json:"action_aliases"`
	OffSchemeActionWeights json.RawMessage `json:"off_scheme_action_weights"`
	DefSchemeActionWeights json.RawMessage `json:"def_scheme_action_weights"`
	OffenseSchemeMult      json.RawMessage `json:"offense_scheme_mult"`
	DefenseSchemeMult      json.RawMessage `json:"defense_scheme_mult"`
}

// requiredBlocks mirrors era.py's required_blocks list: these produce a
// warning (and get filled from default) when absent from the file.
var requiredBlocks = []string{
	"shot_base", "pass_base_success", "action_outcome_priors", "action_aliases",
	"off_scheme_action_weights", "def_scheme_action_weights",
	"offense_scheme_mult", "defense_scheme_mult",
	"prob_model", "rules", "logistic_params", "variance_params",
}

// LoadFromFile resolves name to a file path (direct path, "era_<name>.json",
// "eras/era_<name>.json", and the same two with a lowercased name), reads
// and merges it onto DefaultEra, and returns the merged Era plus a Report
// of what was filled or rejected. A name that resolves to no file at all is
// a single error entry; the returned Era is then just the default.
func LoadFromFile(name string) (*Era, *Report) {
	rep := &Report{}
	path := resolvePath(name)
	if path == "" {
		rep.fail("era %q: no matching file found (tried direct path, era_%s.json, eras/era_%s.json)", name, name, name)
		return DefaultEra(), rep
	}
	data, err := os.ReadFile(path)
	if err != nil {
		rep.fail("era %q: read %s: %v", name, path, err)
		return DefaultEra(), rep
	}
	return mergeOnto(DefaultEra(), data, rep), rep
}

func resolvePath(name string) string {
	candidates := []string{
		name,
		fmt.Sprintf("era_%s.json", name),
		filepath.Join("eras", fmt.Sprintf("era_%s.json", name)),
		fmt.Sprintf("era_%s.json", strings.ToLower(name)),
		filepath.Join("eras", fmt.Sprintf("era_%s.json", strings.ToLower(name))),
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	return ""
}

// mergeOnto decodes raw onto base, block by block: a missing block is a
// warning and the default stands; a block present but malformed is an
// error and the default stands; a block present and well-formed is decoded
// onto the default, so struct fields and top-level map keys the file leaves
// out keep their default values, while each map entry the file does give
// replaces the default entry whole.
func mergeOnto(base *Era, data []byte, rep *Report) *Era {
	var raw rawEra
	if err := json.Unmarshal(data, &raw); err != nil {
		rep.fail("era file is not a valid JSON object: %v", err)
		return base
	}

	if len(raw.Name) > 0 {
		_ = json.Unmarshal(raw.Name, &base.Name)
	}
	if len(raw.Version) > 0 {
		_ = json.Unmarshal(raw.Version, &base.Version)
	}

	decodeBlock(rep, "mult_lo", raw.MultLo, &base.MultLo)
	decodeBlock(rep, "mult_hi", raw.MultHi, &base.MultHi)
	decodeBlock(rep, "prob_model", raw.ProbModel, &base.ProbModel)
	decodeBlock(rep, "logistic_params", raw.LogisticParams, &base.LogisticParams)
	decodeBlock(rep, "variance_params", raw.VarianceParams, &base.VarianceParams)
	decodeBlock(rep, "rules", raw.Rules, &base.Rules)
	decodeBlock(rep, "role_fit_default_strength", raw.RoleFitDefaultStrength, &base.RoleFitDefaultStrength)
	decodeBlock(rep, "shot_base", raw.ShotBase, &base.ShotBase)
	decodeBlock(rep, "pass_base_success", raw.PassBaseSuccess, &base.PassBaseSuccess)
	decodeBlock(rep, "action_outcome_priors", raw.ActionOutcomePriors, &base.ActionOutcomePriors)
	decodeBlock(rep, "action_aliases", raw.ActionAliases, &base.ActionAliases)
	decodeBlock(rep, "off_scheme_action_weights", raw.OffSchemeActionWeights, &base.OffSchemeActionWeights)
	decodeBlock(rep, "def_scheme_action_weights", raw.DefSchemeActionWeights, &base.DefSchemeActionWeights)
	decodeBlock(rep, "offense_scheme_mult", raw.OffenseSchemeMult, &base.OffenseSchemeMult)
	decodeBlock(rep, "defense_scheme_mult", raw.DefenseSchemeMult, &base.DefenseSchemeMult)

	return base
}

func isRequired(block string) bool {
	for _, b := range requiredBlocks {
		if b == block {
			return true
		}
	}
	return false
}

// decodeBlock unmarshals raw into dst (a pointer) when raw is non-empty.
// On failure it records an error and leaves dst (the default) untouched.
// A required block that's simply absent is a warning, not an error.
func decodeBlock(rep *Report, name string, raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		if isRequired(name) {
			rep.warn("era block %q missing, using default", name)
		}
		return
	}
	// Probe-decode into a fresh value first: json.Unmarshal can leave a
	// partial decode behind on a type error, which must not reach dst.
	probe := reflect.New(reflect.TypeOf(dst).Elem()).Interface()
	if err := json.Unmarshal(raw, probe); err != nil {
		rep.fail("era block %q malformed, using default: %v", name, err)
		return
	}
	_ = json.Unmarshal(raw, dst)
}
