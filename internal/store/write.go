package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
)

// SaveRun persists one suite execution: a run row plus one verdict row
// per result in the summary. Returns the generated run ID.
//
// Labels are normalized to Unicode NFC before storage so lookups do not
// depend on how the terminal composed accented characters. Run IDs are
// UUIDv7, which sort in creation order.
//
// The whole write happens in a single transaction: a run either appears
// with all its verdicts or not at all.
func (s *Store) SaveRun(ctx context.Context, label string, config []byte, summary *falsify.Summary) (string, error) {
	if summary == nil || len(summary.Results) == 0 {
		return "", fmt.Errorf("save run: summary has no results")
	}

	runID := uuid.Must(uuid.NewV7()).String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save run: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, config)
		VALUES (?, ?, ?, ?)
	`,
		runID,
		norm.NFC.String(label),
		createdAt,
		string(config),
	)
	if err != nil {
		return "", fmt.Errorf("save run: insert run: %w", err)
	}

	for _, res := range summary.Results {
		evidence, err := json.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("save run: marshal %s evidence: %w", res.TestID(), err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO verdicts (run_id, test_id, falsified, evidence)
			VALUES (?, ?, ?, ?)
		`,
			runID,
			res.TestID(),
			boolToInt(res.IsFalsified()),
			string(evidence),
		)
		if err != nil {
			return "", fmt.Errorf("save run: insert verdict %s: %w", res.TestID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save run: commit: %w", err)
	}

	return runID, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
