// Package journal records refresh runs and per-painter fetch outcomes
// in a small SQLite database, so a partial run can be inspected after
// the fact without re-reading logs.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at   INTEGER NOT NULL,
	finished_at  INTEGER,
	records      INTEGER NOT NULL DEFAULT 0,
	failed       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS fetches (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id    INTEGER NOT NULL REFERENCES runs(id),
	painter   TEXT NOT NULL,
	status    TEXT NOT NULL,
	rows      INTEGER NOT NULL DEFAULT 0,
	error     TEXT NOT NULL DEFAULT '',
	at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fetches_run ON fetches(run_id);
`

// Store persists run and fetch entries.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path and
// applies the usual production pragmas. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun opens a new run entry and returns its ID.
func (s *Store) BeginRun(startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO runs (started_at) VALUES (?)`, startedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("journal: begin run: %w", err)
	}
	return res.LastInsertId()
}

// RecordFetch logs one per-painter attempt. fetchErr nil means success.
func (s *Store) RecordFetch(runID int64, painter string, rows int, fetchErr error) error {
	status, errText := "ok", ""
	if fetchErr != nil {
		status = "failed"
		errText = fetchErr.Error()
	}
	_, err := s.db.Exec(
		`INSERT INTO fetches (run_id, painter, status, rows, error, at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, painter, status, rows, errText, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("journal: record fetch: %w", err)
	}
	return nil
}

// FinishRun closes a run entry with its final tallies.
func (s *Store) FinishRun(runID int64, records, failed int, finishedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, records = ?, failed = ? WHERE id = ?`,
		finishedAt.Unix(), records, failed, runID)
	if err != nil {
		return fmt.Errorf("journal: finish run: %w", err)
	}
	return nil
}

// Run summarises one refresh run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Records    int
	Failed     int
}

// LastRun returns the most recent finished run, or nil when none exists.
func (s *Store) LastRun() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, records, failed
		FROM runs WHERE finished_at IS NOT NULL
		ORDER BY id DESC LIMIT 1`)
	var r Run
	var started, finished int64
	if err := row.Scan(&r.ID, &started, &finished, &r.Records, &r.Failed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("journal: last run: %w", err)
	}
	r.StartedAt = time.Unix(started, 0).UTC()
	r.FinishedAt = time.Unix(finished, 0).UTC()
	return &r, nil
}
