package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quickConfig returns a config with step counts small enough for unit tests.
func quickConfig() Config {
	cfg := DefaultConfig()
	cfg.F1.NumSteps = 100
	cfg.F2.NumSteps = 50
	cfg.F2.NumTrials = 2
	cfg.F3.NumSteps = 50
	cfg.F3.NumTrials = 2
	cfg.F3K.NumSteps = 50
	cfg.F3K.NumKValues = 5
	return cfg
}

func TestRunner_RunAll(t *testing.T) {
	r := NewRunner(quickConfig(), nil)

	summary, err := r.Run()
	require.NoError(t, err)
	require.Len(t, summary.Results, len(TestIDs))

	for i, id := range TestIDs {
		assert.Equal(t, id, summary.Results[i].TestID())
	}
}

func TestRunner_Selection(t *testing.T) {
	r := NewRunner(quickConfig(), nil)

	summary, err := r.Run("F4", "F1")
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)

	// Selection order is preserved.
	assert.Equal(t, "F4", summary.Results[0].TestID())
	assert.Equal(t, "F1", summary.Results[1].TestID())
}

func TestRunner_UnknownTest(t *testing.T) {
	r := NewRunner(quickConfig(), nil)

	_, err := r.Run("F9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown falsification test")
}

func TestRunner_PropagatesConfigError(t *testing.T) {
	cfg := quickConfig()
	cfg.F1.NumSteps = 0

	r := NewRunner(cfg, nil)
	_, err := r.Run("F1")
	require.Error(t, err)
}
