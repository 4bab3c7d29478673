// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so that created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one stored evaluation of a scenario.
type Run struct {
	ID          string
	Scenario    string
	Fingerprint string
	Seed        uint64
	CreatedAt   time.Time
	Results     []Result
}

// Result is one statistic of a run. A result with OK false has no value.
type Result struct {
	Position int
	Kind     string
	Params   json.RawMessage
	Value    float64
	OK       bool
	Elapsed  time.Duration
}

// NewRunID returns a fresh time-ordered run ID.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SaveRun writes run and its results atomically and returns the run ID.
// An empty ID is replaced by NewRunID; a zero CreatedAt by the current time.
func (s *Store) SaveRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// go-sqlite3 rejects uint64 values with the high bit set; store the bits.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO runs (id, scenario, fingerprint, seed, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, run.Scenario, run.Fingerprint, int64(run.Seed), run.CreatedAt.UTC().Format(timeLayout)); err != nil {
			return err
		}
		for _, r := range run.Results {
			params := string(r.Params)
			if params == "" {
				params = "{}"
			}
			value := sql.NullFloat64{Float64: r.Value, Valid: r.OK && !math.IsNaN(r.Value)}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO results (run_id, position, kind, params_json, value, ok, elapsed_ms)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, run.ID, r.Position, r.Kind, params, value, r.OK, r.Elapsed.Milliseconds()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	return run.ID, nil
}

// ListRuns returns up to limit runs, newest first, without their results.
// limit ≤ 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, fingerprint, seed, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// GetRun returns the run with the given ID and its results.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, fingerprint, seed, created_at
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	if run.Results, err = s.Results(ctx, id); err != nil {
		return Run{}, err
	}

	return run, nil
}

// Results returns the results of a run in position order.
func (s *Store) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, kind, params_json, value, ok, elapsed_ms
		FROM results WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r       Result
			params  string
			value   sql.NullFloat64
			elapsed int64
		)
		if err := rows.Scan(&r.Position, &r.Kind, &params, &value, &r.OK, &elapsed); err != nil {
			return nil, fmt.Errorf("read results: %w", err)
		}
		r.Params = json.RawMessage(params)
		r.Elapsed = time.Duration(elapsed) * time.Millisecond
		switch {
		case value.Valid:
			r.Value = value.Float64
		case r.OK:
			r.Value = math.NaN()
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		seed    int64
		created string
	)
	if err := sc.Scan(&run.ID, &run.Scenario, &run.Fingerprint, &seed, &created); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	run.Seed = uint64(seed)
	run.CreatedAt = t

	return run, nil
}
