package falsify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalingAnalysis_ExactCounts(t *testing.T) {
	res, err := ScalingAnalysis(F4Config{NRange: []int{4, 8}})
	require.NoError(t, err)

	assert.Equal(t, "F4", res.TestID())
	require.Len(t, res.Points, 2)

	p := res.Points[0]
	assert.Equal(t, 4, p.N)
	assert.Equal(t, 22, p.PhysicalOps)     // 5n + 2
	assert.Equal(t, 24, p.SimulationOps)   // 6n
	assert.Equal(t, 36, p.FullKuramotoOps) // 5n + n²
	assert.InDelta(t, 24.0/22.0, p.OverheadRatio, 1e-15)
	assert.InDelta(t, 36.0/22.0, p.KuramotoRatio, 1e-15)

	p = res.Points[1]
	assert.Equal(t, 8, p.N)
	assert.Equal(t, 42, p.PhysicalOps)
	assert.Equal(t, 48, p.SimulationOps)
	assert.Equal(t, 104, p.FullKuramotoOps)
}

func TestScalingAnalysis_LinearExponent(t *testing.T) {
	// Simulation cost is 6n, exactly linear, so the fitted log-log slope is
	// 1 and the sub-quadratic condition fires.
	res, err := ScalingAnalysis(DefaultF4Config())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.ScalingExponent, 1e-9)
	assert.True(t, res.Falsified)
}

func TestScalingAnalysis_ConfigErrors(t *testing.T) {
	_, err := ScalingAnalysis(F4Config{NRange: nil})
	assert.Error(t, err)

	_, err = ScalingAnalysis(F4Config{NRange: []int{4}})
	assert.Error(t, err)

	_, err = ScalingAnalysis(F4Config{NRange: []int{4, 0}})
	assert.Error(t, err)

	_, err = ScalingAnalysis(F4Config{NRange: []int{4, -8}})
	assert.Error(t, err)
}
