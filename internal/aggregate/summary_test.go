package aggregate

import (
	"math/rand"
	"testing"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/game"
)

func buildTeam(name string, off engine.OffScheme, def engine.DefScheme) *engine.TeamState {
	lineup := make([]*engine.Player, 10)
	for i := range lineup {
		lineup[i] = &engine.Player{
			ID:       name + "_p" + string(rune('A'+i)),
			Name:     "Player",
			Position: engine.PosGuard,
			Derived:  map[engine.Ability]float64{},
		}
	}
	roles := map[engine.Role]string{
		engine.RoleBallHandler: lineup[0].ID,
		engine.RoleShooter:     lineup[2].ID,
	}
	return engine.NewTeamState(name, lineup, roles, engine.NewTacticsConfig(off, def))
}

func TestSummarize_PointsMatchShootingSplits(t *testing.T) {
	e := era.DefaultEra()
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	away := buildTeam("away", engine.OffSchemeMotionDrive, engine.DefSchemeSwitchEverything)
	rng := rand.New(rand.NewSource(11))

	game.Play(rng, e, home, away, game.DefaultConfig(), nil)

	sum := Summarize(home)
	want := 2*(sum.FGM-sum.TPM) + 3*sum.TPM + sum.FTM
	if sum.PTS != want {
		t.Errorf("PTS %d != 2*(FGM-3PM)+3*3PM+FTM (%d)", sum.PTS, want)
	}
	if sum.FGM > sum.FGA {
		t.Error("FGM must not exceed FGA")
	}
	if sum.TPM > sum.TPA || sum.TPA > sum.FGA {
		t.Error("3PM <= 3PA <= FGA must hold")
	}
}

func TestSummarize_ShotZonesSumToFGA(t *testing.T) {
	e := era.DefaultEra()
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	away := buildTeam("away", engine.OffSchemeMotionDrive, engine.DefSchemeSwitchEverything)
	rng := rand.New(rand.NewSource(5))

	game.Play(rng, e, home, away, game.DefaultConfig(), nil)
	sum := Summarize(home)

	total := 0
	for _, z := range sum.ShotZones {
		total += z.Count
	}
	if total != sum.FGA {
		t.Errorf("sum of shot zones %d != FGA %d", total, sum.FGA)
	}
}

func TestReplayToken_DeterministicForIdenticalInputs(t *testing.T) {
	home := buildTeam("home", engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop)
	away := buildTeam("away", engine.OffSchemeMotionDrive, engine.DefSchemeSwitchEverything)

	t1 := ReplayToken("1.0", "builtin_default", "1.0", 42, 1000, home, away)
	t2 := ReplayToken("1.0", "builtin_default", "1.0", 42, 1000, home, away)
	if t1 != t2 {
		t.Error("replay token should be deterministic for identical inputs")
	}

	t3 := ReplayToken("1.0", "builtin_default", "1.0", 43, 1000, home, away)
	if t1 == t3 {
		t.Error("replay token should differ when seed differs")
	}
}
