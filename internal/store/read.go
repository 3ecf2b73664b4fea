package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// RunInfo summarizes one stored run for listings.
type RunInfo struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	CreatedAt    string `json:"created_at"`
	AnyFalsified bool   `json:"any_falsified"`
}

// Verdict is one stored analysis outcome belonging to a run.
// Evidence carries the full result struct exactly as it was recorded.
type Verdict struct {
	TestID    string          `json:"test_id"`
	Falsified bool            `json:"falsified"`
	Evidence  json.RawMessage `json:"evidence"`
}

// ListRuns returns all stored runs, newest first.
// Returns an empty slice (not nil) if the store has no runs.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.label, r.created_at,
		       COALESCE(MAX(v.falsified), 0)
		FROM runs r
		LEFT JOIN verdicts v ON v.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		var falsified int
		if err := rows.Scan(&info.ID, &info.Label, &info.CreatedAt, &falsified); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.AnyFalsified = falsified != 0
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadRun returns a run's metadata, its stored configuration JSON, and
// its verdicts ordered by test ID. Returns sql.ErrNoRows when the run
// does not exist.
func (s *Store) ReadRun(ctx context.Context, runID string) (RunInfo, []byte, []Verdict, error) {
	var info RunInfo
	var config string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, config
		FROM runs
		WHERE id = ?
	`, runID).Scan(&info.ID, &info.Label, &info.CreatedAt, &config)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunInfo{}, nil, nil, err
		}
		return RunInfo{}, nil, nil, fmt.Errorf("query run %s: %w", runID, err)
	}

	verdicts, err := s.readVerdicts(ctx, runID)
	if err != nil {
		return RunInfo{}, nil, nil, err
	}

	for _, v := range verdicts {
		if v.Falsified {
			info.AnyFalsified = true
		}
	}

	return info, []byte(config), verdicts, nil
}

// readVerdicts returns all verdicts for a run with deterministic ordering.
func (s *Store) readVerdicts(ctx context.Context, runID string) ([]Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT test_id, falsified, evidence
		FROM verdicts
		WHERE run_id = ?
		ORDER BY test_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	verdicts := []Verdict{}
	for rows.Next() {
		var v Verdict
		var falsified int
		var evidence string
		if err := rows.Scan(&v.TestID, &falsified, &evidence); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Falsified = falsified != 0
		v.Evidence = json.RawMessage(evidence)
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}

	return verdicts, nil
}
