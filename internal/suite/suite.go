// Package suite orchestrates the full falsification run: it maps a validated
// Config onto the five analyses, executes them in order, and aggregates
// their verdict records into a falsify.Summary.
//
// The suite itself holds no simulation state - each analysis constructs and
// discards its own engines - so a Runner can be reused across runs.
package suite

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
)

// Runner executes the configured falsification suite.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger discards all output (the pattern
// tests use).
func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, logger: logger}
}

// TestIDs lists the suite's tests in execution order.
var TestIDs = []string{"F1", "F2", "F3", "F3K", "F4"}

// Run executes the selected tests in order and returns the aggregated
// summary. An empty selection means all tests. Any analysis error aborts the
// run and propagates unmodified.
func (r *Runner) Run(selection ...string) (*falsify.Summary, error) {
	if len(selection) == 0 {
		selection = TestIDs
	}

	summary := &falsify.Summary{}
	for _, id := range selection {
		r.logger.Info("falsification test starting", "test", id)

		result, err := r.runOne(id)
		if err != nil {
			return nil, err
		}

		r.logger.Info("falsification test finished",
			"test", id,
			"falsified", result.IsFalsified(),
		)
		summary.Add(result)
	}
	return summary, nil
}

func (r *Runner) runOne(id string) (falsify.Result, error) {
	switch id {
	case "F1":
		return falsify.Reducibility(falsify.F1Config{
			NumSteps:      r.cfg.F1.NumSteps,
			PrecisionBits: r.cfg.F1.PrecisionBits,
			Seed:          r.cfg.F1.Seed,
			InputLevels:   r.cfg.F1.InputLevels,
		})
	case "F2":
		return falsify.Separability(falsify.F2Config{
			NumSteps:    r.cfg.F2.NumSteps,
			NumTrials:   r.cfg.F2.NumTrials,
			BaseSeed:    r.cfg.F2.BaseSeed,
			Threshold:   r.cfg.F2.Threshold,
			Parallelism: r.cfg.Parallelism,
		})
	case "F3":
		return falsify.PhaseCausality(falsify.F3PhaseConfig{
			NumTrials:            r.cfg.F3.NumTrials,
			NumSteps:             r.cfg.F3.NumSteps,
			DivergenceThreshold:  r.cfg.F3.DivergenceThreshold,
			CorrelationThreshold: r.cfg.F3.CorrelationThreshold,
			Parallelism:          r.cfg.Parallelism,
		})
	case "F3K":
		return falsify.ConstantCoupling(falsify.F3ConstantConfig{
			NumSteps:       r.cfg.F3K.NumSteps,
			NumKValues:     r.cfg.F3K.NumKValues,
			Seed:           r.cfg.F3K.Seed,
			RatioThreshold: r.cfg.F3K.RatioThreshold,
			Parallelism:    r.cfg.Parallelism,
		})
	case "F4":
		return falsify.ScalingAnalysis(falsify.F4Config{
			NRange: r.cfg.F4.NRange,
		})
	default:
		return nil, fmt.Errorf("unknown falsification test %q (valid: %v)", id, TestIDs)
	}
}
