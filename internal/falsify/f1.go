package falsify

import (
	"fmt"
	"math"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/oscillator"
)

// F1Config parameterizes the reducibility test.
type F1Config struct {
	// NumSteps is the total step budget, divided evenly (integer division)
	// across the input levels. A budget smaller than the level count runs
	// zero steps per level and yields the degenerate vacuous pass: an empty
	// transition map equals its own size and sits below any positive bound.
	NumSteps int

	// PrecisionBits is the quantization precision for state fingerprints.
	PrecisionBits int

	// Seed constructs the engine; each input level restarts from a fresh
	// engine with this same seed so the levels explore from identical
	// initial conditions.
	Seed int64

	// InputLevels are the constant input energies used to explore the state
	// space.
	InputLevels []float64
}

// DefaultF1Config returns the reference parameters.
func DefaultF1Config() F1Config {
	return F1Config{
		NumSteps:      10000,
		PrecisionBits: 8,
		Seed:          12345,
		InputLevels:   []float64{0.0, 0.1, 0.3, 0.5, 1.0},
	}
}

// Reducibility asks whether the oscillator dynamics can be replaced by a
// polynomial-size lookup table. It drives a fresh engine per constant input
// level, recording the quantized state before and after every step as a
// (state → next-state) mapping.
//
// FALSIFIED when the number of distinct visited states is below the
// polynomial bound n³ × 2^precisionBits AND every visited state maps to
// exactly one next-state. A revisited state that maps to a different
// next-state is treated as floating-point noise: it is counted in the
// evidence but never against determinism.
func Reducibility(cfg F1Config) (F1Result, error) {
	if cfg.NumSteps <= 0 {
		return F1Result{}, fmt.Errorf("falsify F1: step count must be positive, got %d", cfg.NumSteps)
	}
	if len(cfg.InputLevels) == 0 {
		return F1Result{}, fmt.Errorf("falsify F1: at least one input level is required")
	}
	if cfg.PrecisionBits < 1 || cfg.PrecisionBits > oscillator.MaxPrecisionBits {
		return F1Result{}, fmt.Errorf("falsify F1: precision must be in [1, %d], got %d",
			oscillator.MaxPrecisionBits, cfg.PrecisionBits)
	}

	visited := make(map[oscillator.StateKey]struct{})
	transitions := make(map[oscillator.StateKey]oscillator.StateKey)
	contradictions := 0

	stepsPerLevel := cfg.NumSteps / len(cfg.InputLevels)

	var n int
	for _, level := range cfg.InputLevels {
		eng, err := oscillator.New(cfg.Seed)
		if err != nil {
			return F1Result{}, fmt.Errorf("falsify F1: %w", err)
		}
		n = eng.OscillatorCount()

		for step := 0; step < stepsPerLevel; step++ {
			state, err := eng.StateHash(cfg.PrecisionBits)
			if err != nil {
				return F1Result{}, fmt.Errorf("falsify F1: %w", err)
			}
			visited[state] = struct{}{}

			if err := eng.EvolveStep(level, oscillator.Adaptive()); err != nil {
				return F1Result{}, fmt.Errorf("falsify F1: %w", err)
			}

			next, err := eng.StateHash(cfg.PrecisionBits)
			if err != nil {
				return F1Result{}, fmt.Errorf("falsify F1: %w", err)
			}

			if prev, seen := transitions[state]; seen {
				if prev != next {
					contradictions++
				}
			} else {
				transitions[state] = next
			}
		}
	}

	bins := 1 << cfg.PrecisionBits
	bound := n * n * n * bins
	theoreticalMax := math.Pow(float64(bins), float64(2*n+1))

	unique := len(visited)
	falsified := unique < bound && len(transitions) == unique

	return F1Result{
		Falsified:       falsified,
		UniqueStates:    unique,
		Transitions:     len(transitions),
		PolynomialBound: bound,
		TheoreticalMax:  theoreticalMax,
		Coverage:        float64(unique) / theoreticalMax,
		Contradictions:  contradictions,
	}, nil
}
