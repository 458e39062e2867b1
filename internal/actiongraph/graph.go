// Package actiongraph tracks a decaying, weighted action -> outcome
// transition graph across simulated possessions — a calibration-facing
// side channel, never consulted by the possession loop itself (spec §9's
// Open Questions note a learned transition model as future work; this is
// the observational half of that: record what happened, let a calibration
// harness read it back).
package actiongraph

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kibbyd/courtsim/internal/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_edges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	action      TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	weight      REAL NOT NULL DEFAULT 0.1,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE(action, outcome)
);
CREATE INDEX IF NOT EXISTS idx_action_edges_action ON action_edges(action);
`

// Edge is one observed (action, outcome) transition with its accumulated,
// capped-at-1.0 weight.
type Edge struct {
	Action    string
	Outcome   string
	Weight    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store manages the action_edges table.
type Store struct {
	db *sql.DB
}

// NewStore opens (or attaches to) db and ensures the schema exists.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("actiongraph schema: %w", err)
	}
	return &Store{db: db}, nil
}

// IncrementEdge raises the (action, outcome) edge's weight by delta,
// capped at 1.0, creating it at weight=delta if absent.
func (s *Store) IncrementEdge(action, outcome string, delta float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO action_edges (action, outcome, weight, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(action, outcome) DO UPDATE SET
		   weight = MIN(1.0, action_edges.weight + ?),
		   updated_at = ?`,
		action, outcome, delta, now, now,
		delta, now,
	)
	return err
}

// Neighbors returns every outcome edge observed for action with weight >=
// minWeight, ordered by weight descending. A blank action matches every
// action (a full-graph dump).
func (s *Store) Neighbors(action string, minWeight float64) ([]Edge, error) {
	query := `SELECT action, outcome, weight, created_at, updated_at
		 FROM action_edges WHERE weight >= ?
		 ORDER BY action, weight DESC`
	args := []any{minWeight}
	if action != "" {
		query = `SELECT action, outcome, weight, created_at, updated_at
		 FROM action_edges WHERE action = ? AND weight >= ?
		 ORDER BY weight DESC`
		args = []any{action, minWeight}
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		var createdAt, updatedAt string
		if err := rows.Scan(&e.Action, &e.Outcome, &e.Weight, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// DecayAll applies exponential half-life decay to every edge weight,
// deleting edges that decay below 0.01. Returns the number deleted.
func (s *Store) DecayAll(halfLifeHours float64) (int64, error) {
	now := time.Now().UTC()
	halfLifeSec := halfLifeHours * 3600.0

	rows, err := s.db.Query(`SELECT id, weight, updated_at FROM action_edges`)
	if err != nil {
		return 0, err
	}

	type decayItem struct {
		id        int64
		newWeight float64
	}
	var updates []decayItem
	var deletes []int64

	for rows.Next() {
		var id int64
		var weight float64
		var updatedAt string
		if err := rows.Scan(&id, &weight, &updatedAt); err != nil {
			rows.Close()
			return 0, err
		}
		t, _ := time.Parse(time.RFC3339, updatedAt)
		ageSec := now.Sub(t).Seconds()
		if ageSec <= 0 {
			continue
		}
		decayed := weight * math.Exp(-ageSec*math.Ln2/halfLifeSec)
		if decayed < 0.01 {
			deletes = append(deletes, id)
		} else {
			updates = append(updates, decayItem{id, decayed})
		}
	}
	rows.Close()

	nowStr := now.Format(time.RFC3339)
	for _, u := range updates {
		if _, err := s.db.Exec(`UPDATE action_edges SET weight = ?, updated_at = ? WHERE id = ?`, u.newWeight, nowStr, u.id); err != nil {
			return 0, err
		}
	}
	for _, id := range deletes {
		if _, err := s.db.Exec(`DELETE FROM action_edges WHERE id = ?`, id); err != nil {
			return 0, err
		}
	}
	return int64(len(deletes)), nil
}

// Sink implements possession.Sink, feeding every observed (action,
// outcome) pair into the graph at a fixed increment.
type Sink struct {
	Store     *Store
	Increment float64 // default 0.05 if zero
}

func (s Sink) OnStep(possessionIdx int, action engine.Action, outcome engine.Outcome, terminal engine.Terminal) {
	inc := s.Increment
	if inc == 0 {
		inc = 0.05
	}
	_ = s.Store.IncrementEdge(string(action), string(outcome), inc)
}
