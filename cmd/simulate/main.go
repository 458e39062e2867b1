package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/kibbyd/courtsim/internal/actiongraph"
	"github.com/kibbyd/courtsim/internal/aggregate"
	"github.com/kibbyd/courtsim/internal/diagnostics"
	"github.com/kibbyd/courtsim/internal/engine"
	"github.com/kibbyd/courtsim/internal/era"
	"github.com/kibbyd/courtsim/internal/game"
	"github.com/kibbyd/courtsim/internal/replay"
	"github.com/kibbyd/courtsim/internal/validate"
	_ "modernc.org/sqlite"
)

// engineVersion is stamped into every output record's meta block (spec
// §6). Bump on any change that could shift possession-level behavior.
const engineVersion = "courtsim-0.1.0"

// styleSchemes maps the calibration harness's coarse --style knob onto a
// concrete (offense, defense) scheme pair (spec: "--style
// {modern|motion|post|pace}").
var styleSchemes = map[string]struct {
	Off engine.OffScheme
	Def engine.DefScheme
}{
	"modern": {engine.OffSchemeSpreadHeavyPnR, engine.DefSchemeDrop},
	"motion": {engine.OffSchemeMotionDrive, engine.DefSchemeICESidePnR},
	"post":   {engine.OffSchemePostUpBrutal, engine.DefSchemeSwitchEverything},
	"pace":   {engine.OffSchemePaceTransition, engine.DefSchemeBlitzTrapPnR},
}

// #region main

func main() {
	homePath := flag.String("home", "", "path to home team JSON (FixtureTeam shape)")
	awayPath := flag.String("away", "", "path to away team JSON (FixtureTeam shape)")
	nGames := flag.Int("n_games", 1, "number of games to simulate")
	seed := flag.Int64("seed", 1, "base RNG seed; game i uses seed+i")
	style := flag.String("style", "", "modern|motion|post|pace: overrides both teams' schemes")
	eraName := flag.String("era", "", "era name to load (blank = built-in default)")
	strict := flag.Bool("strict", false, "fail fast on any team validation error")
	storePerGame := flag.String("store_per_game", "", "sqlite path to log every possession event (blank = off)")
	graphPath := flag.String("action_graph", "", "sqlite path to accrue the action->outcome transition graph (blank = off)")
	verifyReplay := flag.Bool("replay", false, "re-run game 0 with the same seed and verify the replay token matches")
	outPath := flag.String("out", "", "output path for the JSON aggregate (blank = stdout)")
	flag.Parse()

	if *homePath == "" || *awayPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate --home team.json --away team.json [--n_games N] [--seed S] [--style modern|motion|post|pace] [--era name] [--strict] [--out path]")
		os.Exit(2)
	}

	homeFixture, err := loadTeamFixture(*homePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load home team: %v\n", err)
		os.Exit(1)
	}
	awayFixture, err := loadTeamFixture(*awayPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load away team: %v\n", err)
		os.Exit(1)
	}

	if *eraName != "" {
		rep := era.LoadAndActivate(*eraName)
		if !rep.OK() {
			fmt.Fprintf(os.Stderr, "era %q loaded with errors, falling back to default for affected blocks\n", *eraName)
		}
	}
	activeEra := era.Active()
	allowed := validate.RefreshAllowedSets(activeEra)

	var graphSink *actiongraph.Sink
	if *graphPath != "" {
		db, err := openSQLite(*graphPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open action graph db: %v\n", err)
			os.Exit(1)
		}
		store, err := actiongraph.NewStore(db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init action graph: %v\n", err)
			os.Exit(1)
		}
		graphSink = &actiongraph.Sink{Store: store}
	}

	var diagStore *diagnostics.Store
	if *storePerGame != "" {
		diagStore, err = diagnostics.NewStore(*storePerGame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "init diagnostics store: %v\n", err)
			os.Exit(1)
		}
		defer diagStore.Close()
	}

	records := make([]aggregate.OutputRecord, 0, *nGames)
	for i := 0; i < *nGames; i++ {
		gameSeed := *seed + int64(i)
		rec, err := runOneGame(gameSeed, homeFixture, awayFixture, *style, activeEra, allowed, *strict, diagStore, graphSink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "game %d: %v\n", i, err)
			os.Exit(1)
		}
		records = append(records, rec)
	}

	if *verifyReplay && len(records) > 0 {
		again, err := runOneGame(*seed, homeFixture, awayFixture, *style, activeEra, allowed, *strict, nil, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay verification: %v\n", err)
			os.Exit(1)
		}
		if again.Meta.ReplayToken != records[0].Meta.ReplayToken {
			fmt.Fprintf(os.Stderr, "replay mismatch: seed %d produced token %s the first time, %s on replay\n",
				*seed, records[0].Meta.ReplayToken, again.Meta.ReplayToken)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "replay verification OK: token stable under re-run")
	}

	if err := writeOut(records, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region game-run

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	return db, nil
}

func loadTeamFixture(path string) (replay.FixtureTeam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return replay.FixtureTeam{}, fmt.Errorf("read %s: %w", path, err)
	}
	var ft replay.FixtureTeam
	if err := json.Unmarshal(data, &ft); err != nil {
		return replay.FixtureTeam{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ft, nil
}

func runOneGame(
	seed int64,
	homeFixture, awayFixture replay.FixtureTeam,
	style string,
	activeEra *era.Era,
	allowed *validate.AllowedSets,
	strict bool,
	diagStore *diagnostics.Store,
	graphSink *actiongraph.Sink,
) (aggregate.OutputRecord, error) {
	home := homeFixture.ToTeamState()
	away := awayFixture.ToTeamState()

	if scheme, ok := styleSchemes[style]; ok {
		home.Tactics.OffenseScheme = scheme.Off
		home.Tactics.DefenseScheme = scheme.Def
		away.Tactics.OffenseScheme = scheme.Off
		away.Tactics.DefenseScheme = scheme.Def
	}

	rep := validate.ValidateAndSanitizeTeam(home, allowed, validate.FillMissingDerived, true)
	awayRep := validate.ValidateAndSanitizeTeam(away, allowed, validate.FillMissingDerived, true)
	rep.Merge(awayRep)

	if strict {
		if err := validate.NewStrictError(rep); err != nil {
			return aggregate.OutputRecord{}, err
		}
	}

	counting := engine.NewCountingSource(seed)
	rng := rand.New(counting)

	var sink game.Sink
	gameID := aggregate.NewGameID()
	if diagStore != nil {
		if err := diagStore.StartGame(gameID, activeEra.Name, seed); err != nil {
			return aggregate.OutputRecord{}, err
		}
		sink = diagnostics.Sink{Store: diagStore, GameID: gameID}
	}
	if graphSink != nil {
		sink = combineSinks(sink, *graphSink)
	}

	gs := game.Play(rng, activeEra, home, away, game.DefaultConfig(), sink)

	token := aggregate.ReplayToken(engineVersion, activeEra.Name, activeEra.Version, seed, counting.Draws, home, away)
	if diagStore != nil {
		_ = diagStore.FinishGame(gameID, token)
	}

	return aggregate.Build(engineVersion, activeEra.Name, activeEra.Version, rep, home, away, gs, token), nil
}

// combineSinks fans one possession step out to both a and b, skipping
// either when nil (diagnostics and the action graph are independently
// optional).
func combineSinks(a, b game.Sink) game.Sink {
	return multiSink{a, b}
}

type multiSink struct {
	a, b game.Sink
}

func (m multiSink) OnStep(possessionIdx int, action engine.Action, outcome engine.Outcome, terminal engine.Terminal) {
	if m.a != nil {
		m.a.OnStep(possessionIdx, action, outcome, terminal)
	}
	if m.b != nil {
		m.b.OnStep(possessionIdx, action, outcome, terminal)
	}
}

// #endregion game-run

// #region output

func writeOut(records []aggregate.OutputRecord, outPath string) error {
	var out any = records
	if len(records) == 1 {
		out = records[0]
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %d game record(s) to %s (%d bytes)\n", len(records), outPath, len(data))
	return nil
}

// #endregion output
