package falsify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparability_SmallRun(t *testing.T) {
	cfg := F2Config{
		NumSteps:  100,
		NumTrials: 4,
		BaseSeed:  12345,
		Threshold: 0.01,
	}

	res, err := Separability(cfg)
	require.NoError(t, err)

	assert.Equal(t, "F2", res.TestID())
	assert.Equal(t, 0.01, res.Threshold)
	assert.GreaterOrEqual(t, res.AvgCoherenceDiff, 0.0)
	assert.GreaterOrEqual(t, res.AvgCouplingDiff, 0.0)
	assert.Equal(t, res.Falsified,
		res.AvgCoherenceDiff < cfg.Threshold && res.AvgCouplingDiff < cfg.Threshold)
}

func TestSeparability_ParallelMatchesSerial(t *testing.T) {
	cfg := F2Config{
		NumSteps:  80,
		NumTrials: 6,
		BaseSeed:  99,
		Threshold: 0.01,
	}

	serial := cfg
	serial.Parallelism = 1
	parallel := cfg
	parallel.Parallelism = 4

	a, err := Separability(serial)
	require.NoError(t, err)
	b, err := Separability(parallel)
	require.NoError(t, err)

	assert.Equal(t, a, b, "trial results must not depend on worker count")
}

func TestSeparability_ConfigErrors(t *testing.T) {
	base := DefaultF2Config()

	bad := base
	bad.NumSteps = 0
	_, err := Separability(bad)
	assert.Error(t, err)

	bad = base
	bad.NumTrials = 0
	_, err = Separability(bad)
	assert.Error(t, err)

	bad = base
	bad.Threshold = 0
	_, err = Separability(bad)
	assert.Error(t, err)
}
