// Package diagnostics implements the optional, off-by-default replay/
// provenance sink (spec §5: "no I/O occurs during a possession except
// optional replay event emission, callback pattern, off by default").
package diagnostics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kibbyd/courtsim/internal/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id       TEXT NOT NULL UNIQUE,
	created_at    TEXT NOT NULL,
	era           TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	replay_token  TEXT
);

CREATE TABLE IF NOT EXISTS possession_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id        TEXT NOT NULL,
	possession_idx INTEGER NOT NULL,
	action         TEXT NOT NULL,
	outcome        TEXT NOT NULL,
	terminal       TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	FOREIGN KEY (game_id) REFERENCES game_log(game_id)
);
`

// Store is a SQLite-backed sink for per-possession step events and the
// per-game record that frames them.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// StartGame records the per-game header row. Call once before the first
// possession.
func (s *Store) StartGame(gameID, era string, seed int64) error {
	_, err := s.db.Exec(
		`INSERT INTO game_log (game_id, created_at, era, seed) VALUES (?, ?, ?, ?)`,
		gameID, time.Now().UTC().Format(time.RFC3339Nano), era, seed,
	)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// FinishGame back-fills the replay token once the game is summarized.
func (s *Store) FinishGame(gameID, replayToken string) error {
	_, err := s.db.Exec(`UPDATE game_log SET replay_token = ? WHERE game_id = ?`, replayToken, gameID)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	return nil
}

// Sink implements possession.Sink/game.Sink against a Store, scoped to a
// single game id.
type Sink struct {
	Store  *Store
	GameID string
}

// OnStep logs a single possession step. Errors are swallowed by design —
// diagnostics logging must never perturb the simulation it observes.
func (s Sink) OnStep(possessionIdx int, action engine.Action, outcome engine.Outcome, terminal engine.Terminal) {
	_, _ = s.Store.db.Exec(
		`INSERT INTO possession_log (game_id, possession_idx, action, outcome, terminal, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.GameID, possessionIdx, string(action), string(outcome), string(terminal),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
}

// EventJSON mirrors the teacher's GateRecord shape: a single struct
// capturing exact runtime signals for deterministic replay inspection
// (spec §5), here scoped to one possession step.
type EventJSON struct {
	GameID        string `json:"game_id"`
	PossessionIdx int    `json:"possession_idx"`
	Action        string `json:"action"`
	Outcome       string `json:"outcome"`
	Terminal      string `json:"terminal"`
}

// MarshalEvent is a convenience for callers that want the JSON form of a
// step without writing it to the store (e.g. streaming to a replay file).
func MarshalEvent(gameID string, possessionIdx int, action engine.Action, outcome engine.Outcome, terminal engine.Terminal) ([]byte, error) {
	return json.Marshal(EventJSON{
		GameID:        gameID,
		PossessionIdx: possessionIdx,
		Action:        string(action),
		Outcome:       string(outcome),
		Terminal:      string(terminal),
	})
}
