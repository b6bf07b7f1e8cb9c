// Package store handles SQLite persistence of search runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tenboard/internal/board"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/metric"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run summarizes one persisted search run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	Policy      string
	CorpusName  string
	Alphabet    int
	Rounds      int
	Evaluations int
	BestScore   float64
	SeedScore   float64
	Stopped     string
	RandSeed    int64
}

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			policy TEXT NOT NULL,
			corpus_name TEXT NOT NULL,
			alphabet_size INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			best_score REAL NOT NULL,
			seed_score REAL NOT NULL,
			stopped TEXT NOT NULL,
			rand_seed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_metrics (
			run_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			higher_is_better INTEGER NOT NULL,
			PRIMARY KEY (run_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS run_assignments (
			run_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			chord_mask INTEGER NOT NULL,
			PRIMARY KEY (run_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run with its metric vector and the best
// layout's full assignment.
func (s *Store) InsertRun(ctx context.Context, run Run, metrics []metric.Result, best *layout.Layout) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, policy, corpus_name, alphabet_size, rounds, evaluations, best_score, seed_score, stopped, rand_seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Policy,
		run.CorpusName,
		run.Alphabet,
		run.Rounds,
		run.Evaluations,
		run.BestScore,
		run.SeedScore,
		run.Stopped,
		run.RandSeed,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(metrics) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_metrics (run_id, name, value, higher_is_better) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, m := range metrics {
			higher := 0
			if m.Direction == metric.HigherIsBetter {
				higher = 1
			}
			if _, err := stmt.ExecContext(ctx, id, m.Name, m.Value, higher); err != nil {
				return 0, err
			}
		}
	}

	if best != nil {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_assignments (run_id, char, chord_mask) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for ch, chord := range best.Assignment() {
			if _, err := stmt.ExecContext(ctx, id, string(ch), chord.Mask()); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, policy, corpus_name, alphabet_size, rounds, evaluations, best_score, seed_score, stopped, rand_seed
		 FROM runs ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Run
	for rows.Next() {
		var run Run
		var started, ended string
		if err := rows.Scan(&run.ID, &started, &ended, &run.Policy, &run.CorpusName,
			&run.Alphabet, &run.Rounds, &run.Evaluations, &run.BestScore,
			&run.SeedScore, &run.Stopped, &run.RandSeed); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("failed to parse run start time: %w", err)
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, fmt.Errorf("failed to parse run end time: %w", err)
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RunMetrics returns the persisted metric vector of a run.
func (s *Store) RunMetrics(ctx context.Context, runID int64) ([]metric.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value, higher_is_better FROM run_metrics WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []metric.Result
	for rows.Next() {
		var m metric.Result
		var higher int
		if err := rows.Scan(&m.Name, &m.Value, &higher); err != nil {
			return nil, err
		}
		if higher != 0 {
			m.Direction = metric.HigherIsBetter
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RunLayout restores the best layout persisted for a run.
func (s *Store) RunLayout(ctx context.Context, runID int64) (*layout.Layout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT char, chord_mask FROM run_assignments WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	assignment := make(map[rune]board.Chord)
	for rows.Next() {
		var ch string
		var mask uint16
		if err := rows.Scan(&ch, &mask); err != nil {
			return nil, err
		}
		runes := []rune(ch)
		if len(runes) != 1 {
			return nil, fmt.Errorf("run %d has malformed char %q", runID, ch)
		}
		chord, err := board.ChordFromMask(mask)
		if err != nil {
			return nil, fmt.Errorf("run %d has malformed chord for %q: %w", runID, ch, err)
		}
		assignment[runes[0]] = chord
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(assignment) == 0 {
		return nil, fmt.Errorf("run %d has no stored layout", runID)
	}
	l, err := layout.Build(assignment)
	if err != nil {
		return nil, fmt.Errorf("run %d stored an invalid layout: %w", runID, err)
	}
	return l, nil
}
