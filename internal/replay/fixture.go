// Package replay implements the deterministic JSON-fixture harness spec
// §8's "Scenarios (literal)" list is built on: load a fixture (teams, era
// override, seed, assertions), run it, compare against expectations.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kibbyd/courtsim/internal/engine"
)

// Fixture is the top-level JSON structure for a replay scenario.
type Fixture struct {
	Description string          `json:"description"`
	Seed        int64           `json:"seed"`
	Possessions int             `json:"possessions,omitempty"` // 0 = run a full game
	EraOverride json.RawMessage `json:"era_override,omitempty"`
	Home        FixtureTeam     `json:"home"`
	Away        FixtureTeam     `json:"away"`
	Expect      FixtureExpect   `json:"expect"`
}

// FixturePlayer is a JSON-serializable player definition.
type FixturePlayer struct {
	ID       string                    `json:"id"`
	Position string                    `json:"position"`
	Derived  map[engine.Ability]float64 `json:"derived"`
}

// FixtureTeam is a JSON-serializable team definition.
type FixtureTeam struct {
	Name          string            `json:"name"`
	Lineup        []FixturePlayer   `json:"lineup"`
	Roles         map[string]string `json:"roles"`
	OffenseScheme string            `json:"offense_scheme"`
	DefenseScheme string            `json:"defense_scheme"`
}

// FixtureExpect captures the assertions a scenario checks after running.
type FixtureExpect struct {
	MinShotclockTORate float64 `json:"min_shotclock_to_rate,omitempty"`
	MaxFGA             int     `json:"max_fga,omitempty"`
	ThreePARatioMin    float64 `json:"three_pa_ratio_min,omitempty"`
	ThreePARatioMax    float64 `json:"three_pa_ratio_max,omitempty"`
	ThreePctMin        float64 `json:"three_pct_min,omitempty"`
	ThreePctMax        float64 `json:"three_pct_max,omitempty"`
}

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToPlayer converts a FixturePlayer to a domain *engine.Player.
func (fp FixturePlayer) ToPlayer() *engine.Player {
	derived := make(map[engine.Ability]float64, len(fp.Derived))
	for k, v := range fp.Derived {
		derived[k] = v
	}
	return &engine.Player{
		ID:       fp.ID,
		Name:     fp.ID,
		Position: engine.Position(fp.Position),
		Derived:  derived,
	}
}

// ToTeamState converts a FixtureTeam to a domain *engine.TeamState.
func (ft FixtureTeam) ToTeamState() *engine.TeamState {
	lineup := make([]*engine.Player, len(ft.Lineup))
	for i, fp := range ft.Lineup {
		lineup[i] = fp.ToPlayer()
	}
	roles := make(map[engine.Role]string, len(ft.Roles))
	for k, v := range ft.Roles {
		roles[engine.Role(k)] = v
	}
	tactics := engine.NewTacticsConfig(engine.OffScheme(ft.OffenseScheme), engine.DefScheme(ft.DefenseScheme))
	return engine.NewTeamState(ft.Name, lineup, roles, tactics)
}
