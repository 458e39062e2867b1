package replay

import (
	"testing"

	"github.com/kibbyd/courtsim/internal/aggregate"
	"github.com/kibbyd/courtsim/internal/engine"
)

func TestScenario1_ShotClockTOOnForcedReset(t *testing.T) {
	res := Scenario1ShotClockTO(1, 25)
	if !res.Pass {
		t.Fatalf("scenario 1 failed: %s", res.Message)
	}
}

func TestScenario2_ThreePointDiet(t *testing.T) {
	res := Scenario2ThreePointDiet(2, 200)
	if !res.Pass {
		t.Fatalf("scenario 2 failed: %s", res.Message)
	}
}

func TestScenario3_FoulOutSubstitution(t *testing.T) {
	res := Scenario3FoulOut(5)
	if !res.Pass {
		t.Fatalf("scenario 3 failed: %s", res.Message)
	}
}

func TestScenario5_ReboundMassBalance(t *testing.T) {
	res := Scenario5ReboundMassBalance(3)
	if !res.Pass {
		t.Fatalf("scenario 5 failed: %s", res.Message)
	}
}

func TestScenario6_ReplayTokenStability(t *testing.T) {
	res := Scenario6ReplayTokenStability(4, func(delta float64) string {
		home := buildUniformTeam("home", 10)
		away := buildUniformTeam("away", 10)
		home.Lineup[0].Derived[engine.AbilShot3CS] = 60 + delta
		return aggregate.ReplayToken("courtsim-test", "builtin_default", "1", 4, 0, home, away)
	})
	if !res.Pass {
		t.Fatalf("scenario 6 failed: %s", res.Message)
	}
}
