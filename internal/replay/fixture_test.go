package replay

import (
	"encoding/json"
	"testing"

	"github.com/kibbyd/courtsim/internal/engine"
)

func TestFixtureTeam_ToTeamState(t *testing.T) {
	raw := `{
		"name": "home",
		"offense_scheme": "Spread_HeavyPnR",
		"defense_scheme": "Drop",
		"roles": {"ball_handler": "p1"},
		"lineup": [
			{"id": "p1", "position": "G", "derived": {"SHOT_3_CS": 70}},
			{"id": "p2", "position": "F", "derived": {}}
		]
	}`
	var ft FixtureTeam
	if err := json.Unmarshal([]byte(raw), &ft); err != nil {
		t.Fatalf("unmarshal fixture team: %v", err)
	}

	team := ft.ToTeamState()
	if len(team.Lineup) != 2 {
		t.Fatalf("expected 2 players, got %d", len(team.Lineup))
	}
	if team.Roles[engine.RoleBallHandler] != "p1" {
		t.Error("ball_handler role should resolve to p1")
	}
	if team.Lineup[0].Get(engine.AbilShot3CS, false) != 70 {
		t.Error("derived ability should round-trip from JSON")
	}
}
