package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSummary() *falsify.Summary {
	s := &falsify.Summary{}
	s.Add(falsify.F1Result{Falsified: false, UniqueStates: 42, Transitions: 42})
	s.Add(falsify.F4Result{Falsified: true, ScalingExponent: 1.0})
	return s
}

func TestOpen_Pragmas(t *testing.T) {
	s := setupTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestSaveRun_Roundtrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	cfgJSON := []byte(`{"Label":"nightly"}`)
	runID, err := s.SaveRun(ctx, "nightly", cfgJSON, testSummary())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	info, config, verdicts, err := s.ReadRun(ctx, runID)
	require.NoError(t, err)

	assert.Equal(t, runID, info.ID)
	assert.Equal(t, "nightly", info.Label)
	assert.NotEmpty(t, info.CreatedAt)
	assert.True(t, info.AnyFalsified)
	assert.JSONEq(t, string(cfgJSON), string(config))

	require.Len(t, verdicts, 2)
	// Verdicts come back ordered by test ID.
	assert.Equal(t, "F1", verdicts[0].TestID)
	assert.False(t, verdicts[0].Falsified)
	assert.Equal(t, "F4", verdicts[1].TestID)
	assert.True(t, verdicts[1].Falsified)

	// Evidence preserves the full result struct.
	var f1 falsify.F1Result
	require.NoError(t, json.Unmarshal(verdicts[0].Evidence, &f1))
	assert.Equal(t, 42, f1.UniqueStates)
}

func TestSaveRun_NormalizesLabel(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Decomposed e + combining acute accent, NFD form of "é".
	runID, err := s.SaveRun(ctx, "café", []byte("{}"), testSummary())
	require.NoError(t, err)

	info, _, _, err := s.ReadRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "café", info.Label)
}

func TestSaveRun_EmptySummaryRejected(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.SaveRun(context.Background(), "x", []byte("{}"), &falsify.Summary{})
	assert.Error(t, err)

	_, err = s.SaveRun(context.Background(), "x", []byte("{}"), nil)
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NotNil(t, runs)

	id1, err := s.SaveRun(ctx, "first", []byte("{}"), testSummary())
	require.NoError(t, err)

	clean := &falsify.Summary{}
	clean.Add(falsify.F1Result{Falsified: false})
	id2, err := s.SaveRun(ctx, "second", []byte("{}"), clean)
	require.NoError(t, err)

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first; UUIDv7 ids break created_at ties in insertion order.
	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, id1, runs[1].ID)
	assert.False(t, runs[0].AnyFalsified)
	assert.True(t, runs[1].AnyFalsified)
}

func TestReadRun_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, _, _, err := s.ReadRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
