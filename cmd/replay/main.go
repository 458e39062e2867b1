package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kibbyd/courtsim/internal/aggregate"
	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/game"
	"github.com/kibbyd/courtsim/internal/replay"
	"github.com/kibbyd/courtsim/internal/validate"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a replay fixture JSON (fixture mode)")
	dbPath := flag.String("db", "", "path to a diagnostics sqlite db (db mode)")
	gameID := flag.String("game_id", "", "game_id row to re-run and compare (db mode)")
	homePath := flag.String("home", "", "path to the home team JSON the logged game used (db mode)")
	awayPath := flag.String("away", "", "path to the away team JSON the logged game used (db mode)")
	flag.Parse()

	if (*fixturePath == "") == (*dbPath == "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/diagnostics.db --game_id ID --home team.json --away team.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *gameID, *homePath, *awayPath)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	res := replay.Run(f)
	fmt.Printf("%-40s  %s\n", f.Description, passLabel(res.Pass))
	if !res.Pass {
		fmt.Printf("  %s\n", res.Message)
		return 1
	}
	return 0
}

func passLabel(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

// #endregion fixture-mode

// #region db-mode

// gameLogRow mirrors the columns diagnostics.Store writes into game_log.
type gameLogRow struct {
	Era         string
	Seed        int64
	ReplayToken string
}

func runDBMode(dbPath, gameID, homePath, awayPath string) int {
	if gameID == "" || homePath == "" || awayPath == "" {
		fmt.Fprintln(os.Stderr, "db mode requires --game_id, --home, and --away")
		return 2
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer db.Close()

	var row gameLogRow
	err = db.QueryRow(
		`SELECT era, seed, COALESCE(replay_token, '') FROM game_log WHERE game_id = ?`, gameID,
	).Scan(&row.Era, &row.Seed, &row.ReplayToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "find game %s: %v\n", gameID, err)
		return 2
	}
	if row.Era != era.Active().Name {
		era.LoadAndActivate(row.Era)
	}

	var loggedSteps int
	if err := db.QueryRow(`SELECT COUNT(*) FROM possession_log WHERE game_id = ?`, gameID).Scan(&loggedSteps); err != nil {
		fmt.Fprintf(os.Stderr, "count possession_log: %v\n", err)
		return 2
	}

	homeFixture, err := loadTeamFixture(homePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load home team: %v\n", err)
		return 2
	}
	awayFixture, err := loadTeamFixture(awayPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load away team: %v\n", err)
		return 2
	}

	home := homeFixture.ToTeamState()
	away := awayFixture.ToTeamState()
	allowed := validate.RefreshAllowedSets(era.Active())
	rep := validate.ValidateAndSanitizeTeam(home, allowed, validate.FillMissingDerived, true)
	rep.Merge(validate.ValidateAndSanitizeTeam(away, allowed, validate.FillMissingDerived, true))

	counting := engine.NewCountingSource(row.Seed)
	rng := rand.New(counting)
	gs := game.Play(rng, era.Active(), home, away, game.DefaultConfig(), nil)

	freshToken := aggregate.ReplayToken("courtsim-0.1.0", era.Active().Name, era.Active().Version, row.Seed, counting.Draws, home, away)

	fmt.Printf("game_id:             %s\n", gameID)
	fmt.Printf("logged steps:        %d\n", loggedSteps)
	fmt.Printf("re-run possessions:  %d\n", gs.Possession)
	fmt.Printf("logged token:        %s\n", row.ReplayToken)
	fmt.Printf("re-run token:        %s\n", freshToken)

	if row.ReplayToken != "" && row.ReplayToken != freshToken {
		fmt.Println("MISMATCH: re-run diverged from the logged game")
		return 1
	}
	fmt.Println("MATCH")
	return 0
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

// #endregion db-mode
