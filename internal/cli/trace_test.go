package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_Text(t *testing.T) {
	stdout, _, err := executeCommand(t, "trace", "--steps", "5", "--seed", "42")
	require.NoError(t, err)

	assert.Contains(t, stdout, "step")
	assert.Contains(t, stdout, "coherence")
	assert.Contains(t, stdout, "coupling")
}

func TestTrace_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t,
		"trace", "--steps", "3", "--seed", "42", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(42), resp.Data.Seed)
	assert.Equal(t, "adaptive", resp.Data.Policy)
	require.Len(t, resp.Data.Samples, 3)
	assert.Len(t, resp.Data.Samples[0].Phases, 16)
}

func TestTrace_Deterministic(t *testing.T) {
	a, _, err := executeCommand(t, "trace", "--steps", "20", "--seed", "7", "--format", "json")
	require.NoError(t, err)
	b, _, err := executeCommand(t, "trace", "--steps", "20", "--seed", "7", "--format", "json")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestTrace_ForcedPolicy(t *testing.T) {
	stdout, _, err := executeCommand(t,
		"trace", "--steps", "2", "--policy", "forced", "--k", "0.8", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data TraceOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "forced(0.8)", resp.Data.Policy)
	assert.Equal(t, 0.8, resp.Data.Samples[1].Coupling)
}

func TestTrace_InvalidPolicy(t *testing.T) {
	_, _, err := executeCommand(t, "trace", "--policy", "random")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid policy")
}

func TestTrace_ForcedOutOfRange(t *testing.T) {
	_, _, err := executeCommand(t, "trace", "--policy", "forced", "--k", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
