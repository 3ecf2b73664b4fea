package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "default", cfg.Label)
	assert.Equal(t, 10000, cfg.F1.NumSteps)
	assert.Equal(t, 8, cfg.F1.PrecisionBits)
	assert.Equal(t, int64(12345), cfg.F1.Seed)
	assert.Equal(t, []float64{0.0, 0.1, 0.3, 0.5, 1.0}, cfg.F1.InputLevels)

	assert.Equal(t, 500, cfg.F2.NumSteps)
	assert.Equal(t, 10, cfg.F2.NumTrials)
	assert.Equal(t, 0.01, cfg.F2.Threshold)

	assert.Equal(t, 20, cfg.F3.NumTrials)
	assert.Equal(t, 0.1, cfg.F3.DivergenceThreshold)
	assert.Equal(t, 0.9, cfg.F3.CorrelationThreshold)

	assert.Equal(t, 50, cfg.F3K.NumKValues)
	assert.Equal(t, 0.95, cfg.F3K.RatioThreshold)

	assert.Equal(t, []int{4, 8, 16, 32, 64}, cfg.F4.NRange)
}

func TestParseConfig_OverridesMergeOverDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
label: nightly
parallelism: 2
f1:
  num_steps: 2000
f3k:
  num_k_values: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "nightly", cfg.Label)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, 2000, cfg.F1.NumSteps)
	assert.Equal(t, 10, cfg.F3K.NumKValues)

	// Untouched fields keep their defaults.
	assert.Equal(t, 8, cfg.F1.PrecisionBits)
	assert.Equal(t, 500, cfg.F2.NumSteps)
}

func TestParseConfig_EmptyDocumentIsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_RejectsUnknownField(t *testing.T) {
	_, err := ParseConfig([]byte(`
f1:
  presicion_bits: 8
`))
	require.Error(t, err)
}

func TestParseConfig_SchemaRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero steps", "f1:\n  num_steps: 0\n"},
		{"precision too high", "f1:\n  precision_bits: 20\n"},
		{"one-point grid", "f3k:\n  num_k_values: 1\n"},
		{"correlation above one", "f3:\n  correlation_threshold: 1.5\n"},
		{"negative n", "f4:\n  n_range: [4, -8]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid suite config")
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("label: from-file\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Label)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
