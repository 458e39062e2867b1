package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/game"
	"github.com/kibbyd/courtsim/internal/replay"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	homePath := flag.String("home", "", "path to home team JSON (FixtureTeam shape)")
	awayPath := flag.String("away", "", "path to away team JSON (FixtureTeam shape)")
	seed := flag.Int64("seed", 1, "RNG seed to bake into the fixture")
	description := flag.String("description", "", "free-text description stored in the fixture")
	margin := flag.Float64("margin", 0.05, "slack added around observed ratios when deriving expect bounds")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *homePath == "" || *awayPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --home team.json --away team.json --out path/to/fixture.json [--seed S] [--description text]")
		os.Exit(2)
	}

	if err := run(*homePath, *awayPath, *seed, *description, *margin, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(homePath, awayPath string, seed int64, description string, margin float64, outPath string) error {
	homeFixture, err := loadTeamFixture(homePath)
	if err != nil {
		return fmt.Errorf("load home team: %w", err)
	}
	awayFixture, err := loadTeamFixture(awayPath)
	if err != nil {
		return fmt.Errorf("load away team: %w", err)
	}

	home := homeFixture.ToTeamState()
	away := awayFixture.ToTeamState()

	rng := rand.New(rand.NewSource(seed))
	game.Play(rng, era.Active(), home, away, game.DefaultConfig(), nil)

	fixture := buildFixture(homeFixture, awayFixture, seed, description, margin, home)

	return writeFixture(fixture, outPath)
}

func loadTeamFixture(path string) (replay.FixtureTeam, error) {
	var ft replay.FixtureTeam
	data, err := os.ReadFile(path)
	if err != nil {
		return ft, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &ft); err != nil {
		return ft, fmt.Errorf("parse %s: %w", path, err)
	}
	return ft, nil
}

// #endregion run

// #region build

// buildFixture derives expect bounds from the observed home-team box: a
// ratio observed at r gets a [r-margin, r+margin] window, clamped to
// [0,1], so re-running the same seed later catches real drift without
// hard-coding exact floats that would break on any engine tweak.
func buildFixture(homeFixture, awayFixture replay.FixtureTeam, seed int64, description string, margin float64, home *engine.TeamState) replay.Fixture {
	expect := replay.FixtureExpect{
		MaxFGA: home.FGA + home.FGA/10 + 1,
	}
	if home.FGA > 0 {
		threePARatio := float64(home.TPA) / float64(home.FGA)
		expect.ThreePARatioMin = clamp01(threePARatio - margin)
		expect.ThreePARatioMax = clamp01(threePARatio + margin)
	}
	if home.TPA > 0 {
		threePct := float64(home.TPM) / float64(home.TPA)
		expect.ThreePctMin = clamp01(threePct - margin)
		expect.ThreePctMax = clamp01(threePct + margin)
	}

	if description == "" {
		description = fmt.Sprintf("exported run: %s vs %s, seed %d", homeFixture.Name, awayFixture.Name, seed)
	}

	return replay.Fixture{
		Description: description,
		Seed:        seed,
		Home:        homeFixture,
		Away:        awayFixture,
		Expect:      expect,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion build

// #region output

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote fixture to %s (%d bytes)\n", outPath, len(data))
	return nil
}

// #endregion output
