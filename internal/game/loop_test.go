package game

import (
	"math/rand"
	"testing"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
)

func buildTeam(name string, off engine.OffScheme, def engine.DefScheme) *engine.TeamState {
	lineup := make([]*engine.Player, 10)
	for i := range lineup {
		pos := engine.PosGuard
		if i%5 == 3 {
			pos = engine.PosForward
		}
		if i%5 == 4 {
			pos = engine.PosCenter
		}
		lineup[i] = &engine.Player{
			ID:       name + "_p" + string(rune('A'+i)),
			Name:     "Player",
			Position: pos,
			Derived:  map[engine.Ability]float64{},
		}
	}
	roles := map[engine.Role]string{
		engine.RoleBallHandler:      lineup[0].ID,
		engine.RoleSecondaryHandler: lineup[1].ID,
		engine.RoleScreener:         lineup[4].ID,
		engine.RolePost:             lineup[4].ID,
		engine.RoleShooter:          lineup[2].ID,
		engine.RoleCutter:           lineup[3].ID,
		engine.RoleRimRunner:        lineup[3].ID,
	}
	tactics := engine.NewTacticsConfig(off, def)
	return engine.NewTeamState(name, lineup, roles, tactics)
}

func TestPlay_CompletesFourQuarters(t *testing.T) {
	e := era.DefaultEra()
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	away := buildTeam("away", engine.OffSchemeMotionDrive, engine.DefSchemeSwitchEverything)
	rng := rand.New(rand.NewSource(7))

	gs := Play(rng, e, home, away, DefaultConfig(), nil)

	if gs.Quarter != e.Rules.Quarters {
		t.Fatalf("expected final quarter %d, got %d", e.Rules.Quarters, gs.Quarter)
	}
	if home.Possessions == 0 || away.Possessions == 0 {
		t.Error("expected both teams to have recorded possessions")
	}
	if gs.ScoreHome != home.PTS || gs.ScoreAway != away.PTS {
		t.Error("game state score should track team point totals")
	}
}

func TestPlay_IsDeterministicGivenSameSeed(t *testing.T) {
	e := era.DefaultEra()

	run := func(seed int64) (int, int) {
		home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
		away := buildTeam("away", engine.OffSchemeMotionDrive, engine.DefSchemeSwitchEverything)
		rng := rand.New(rand.NewSource(seed))
		Play(rng, e, home, away, DefaultConfig(), nil)
		return home.PTS, away.PTS
	}

	h1, a1 := run(42)
	h2, a2 := run(42)
	if h1 != h2 || a1 != a2 {
		t.Errorf("replay mismatch for identical seed: (%d,%d) vs (%d,%d)", h1, a1, h2, a2)
	}
}

func TestClutchAndGarbage_Thresholds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name        string
		q           int
		clockSec    float64
		scoreDiff   int
		wantClutch  bool
		wantGarbage bool
	}{
		{"clutch window", 4, 100, 6, true, false},
		{"not clutch outside clock window", 4, 121, 6, false, false},
		{"not clutch outside score window", 4, 100, 9, false, false},
		{"not clutch before last quarter", 3, 100, 6, false, false},
		{"garbage window", 4, 200, 25, false, true},
		{"not garbage outside clock window", 4, 361, 25, false, false},
		{"not garbage outside score window", 4, 200, 19, false, false},
		{"not garbage before garbage quarter", 3, 200, 25, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotClutch, gotGarbage := clutchAndGarbage(c.q, 4, c.clockSec, c.scoreDiff, cfg)
			if gotClutch != c.wantClutch {
				t.Errorf("isClutch = %v, want %v", gotClutch, c.wantClutch)
			}
			if gotGarbage != c.wantGarbage {
				t.Errorf("isGarbage = %v, want %v", gotGarbage, c.wantGarbage)
			}
		})
	}
}

func TestInitTargets_AssignsByDepthTier(t *testing.T) {
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	targets := InitTargets(home.Lineup, era.DefaultEra().Rules.FatigueTargets)

	if targets[home.Lineup[0].ID] != int(era.DefaultEra().Rules.FatigueTargets.StarterSec) {
		t.Error("first 5 players should get starter minutes target")
	}
	if targets[home.Lineup[9].ID] != int(era.DefaultEra().Rules.FatigueTargets.BenchSec) {
		t.Error("last player should get bench minutes target")
	}
}

func TestApplyFreshnessDecay_ClampsToZero(t *testing.T) {
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	gs := engine.NewGameState(home, home, map[string]int{}, map[string]int{})
	gs.Freshness[home.Lineup[0].ID] = 0.001

	fl := era.FatigueLoss{Handler: 0.5, Big: 0.5, Wing: 0.5}
	ApplyFreshnessDecay(home, []string{home.Lineup[0].ID}, gs, fl, Intensity{})

	if gs.Freshness[home.Lineup[0].ID] < 0 {
		t.Error("freshness should never go negative")
	}
}
