package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/store"
)

// seedRunDB writes one recorded run and returns the db path and run ID.
func seedRunDB(t *testing.T) (string, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	summary := &falsify.Summary{}
	summary.Add(falsify.F1Result{Falsified: false, UniqueStates: 10})
	summary.Add(falsify.F4Result{Falsified: true, ScalingExponent: 1.0})

	runID, err := st.SaveRun(context.Background(), "seeded", []byte(`{"Label":"seeded"}`), summary)
	require.NoError(t, err)
	return dbPath, runID
}

func TestReport_MissingDatabase(t *testing.T) {
	_, _, err := executeCommand(t, "report", "--db", "/no/such/runs.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}

func TestReport_ListText(t *testing.T) {
	dbPath, runID := seedRunDB(t)

	stdout, _, err := executeCommand(t, "report", "--db", dbPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, runID)
	assert.Contains(t, stdout, "seeded")
	assert.Contains(t, stdout, "FALSIFIED")
}

func TestReport_ListJSON(t *testing.T) {
	dbPath, runID := seedRunDB(t)

	stdout, _, err := executeCommand(t, "report", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Runs  []store.RunInfo `json:"runs"`
			Count int             `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Count)
	require.Len(t, resp.Data.Runs, 1)
	assert.Equal(t, runID, resp.Data.Runs[0].ID)
	assert.True(t, resp.Data.Runs[0].AnyFalsified)
}

func TestReport_ShowRun(t *testing.T) {
	dbPath, runID := seedRunDB(t)

	stdout, _, err := executeCommand(t, "report", "--db", dbPath, "--run", runID)
	require.NoError(t, err)

	assert.Contains(t, stdout, runID)
	assert.Contains(t, stdout, "F1   | NOT FALSIFIED")
	assert.Contains(t, stdout, "F4   | FALSIFIED")
	assert.Contains(t, stdout, "Verdict: FALSIFIED")
}

func TestReport_ShowRunVerboseEvidence(t *testing.T) {
	dbPath, runID := seedRunDB(t)

	stdout, _, err := executeCommand(t, "report", "--db", dbPath, "--run", runID, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Evidence:")
	assert.Contains(t, stdout, `"unique_states":10`)
}

func TestReport_ShowRunJSON(t *testing.T) {
	dbPath, runID := seedRunDB(t)

	stdout, _, err := executeCommand(t, "report", "--db", dbPath, "--run", runID, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReportOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, runID, resp.Data.Run.ID)
	require.Len(t, resp.Data.Verdicts, 2)

	var f4 falsify.F4Result
	require.NoError(t, json.Unmarshal(resp.Data.Verdicts[1].Evidence, &f4))
	assert.Equal(t, 1.0, f4.ScalingExponent)
}

func TestReport_RunNotFound(t *testing.T) {
	dbPath, _ := seedRunDB(t)

	_, _, err := executeCommand(t, "report", "--db", dbPath, "--run", "no-such-id")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found")
}
