package era

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS era_cache (
	name         TEXT PRIMARY KEY,
	merged_json  TEXT NOT NULL,
	warnings     TEXT,
	errors       TEXT,
	cached_at    TEXT NOT NULL
);
`

// #endregion schema

// Store caches parsed-and-merged eras in SQLite so a long-running
// calibration sweep that re-loads the same era name many times pays the
// JSON-parse-and-merge cost once (spec §4.1's registry is described as
// read-heavy; this mirrors the teacher's state.Store persistence idiom
// without touching the hot possession loop, which always reads through
// Active() instead).
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the era cache database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the cached merged era for name, if present.
func (s *Store) Get(name string) (*Era, bool, error) {
	var mergedJSON string
	err := s.db.QueryRow(`SELECT merged_json FROM era_cache WHERE name = ?`, name).Scan(&mergedJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached era %s: %w", name, err)
	}
	e := &Era{}
	if err := json.Unmarshal([]byte(mergedJSON), e); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached era %s: %w", name, err)
	}
	return e, true, nil
}

// Put inserts or replaces the cache entry for name with e and rep.
func (s *Store) Put(name string, e *Era, rep *Report) error {
	mergedJSON, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal era %s: %w", name, err)
	}
	warnJSON, _ := json.Marshal(rep.Warnings)
	errJSON, _ := json.Marshal(rep.Errors)

	_, err = s.db.Exec(
		`INSERT INTO era_cache (name, merged_json, warnings, errors, cached_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			merged_json = excluded.merged_json,
			warnings    = excluded.warnings,
			errors      = excluded.errors,
			cached_at   = excluded.cached_at`,
		name, string(mergedJSON), string(warnJSON), string(errJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put cached era %s: %w", name, err)
	}
	return nil
}

// LoadCached loads name through the cache: a hit returns immediately, a
// miss falls through to LoadFromFile and populates the cache for next
// time.
func (s *Store) LoadCached(name string) (*Era, *Report, error) {
	if e, ok, err := s.Get(name); err != nil {
		return nil, nil, err
	} else if ok {
		return e, &Report{}, nil
	}
	e, rep := LoadFromFile(name)
	if err := s.Put(name, e, rep); err != nil {
		return nil, nil, err
	}
	return e, rep, nil
}
