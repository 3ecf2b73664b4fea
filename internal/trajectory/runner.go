// Package trajectory drives an oscillator engine through a fixed number of
// steps under a caller-supplied input-energy schedule, collecting a per-step
// record of coherence, coupling, and phases.
//
// The runner owns no state of its own: it mutates the engine it is given and
// returns an immutable trajectory. Any error from the engine propagates
// unmodified - there are no retries.
package trajectory

import (
	"fmt"
	"math"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/oscillator"
)

// Sample is one step of a trajectory. Phases is a copy and never aliases
// engine state; a Sample is read-only after Run returns.
type Sample struct {
	Coherence float64   `json:"coherence"`
	Coupling  float64   `json:"coupling"`
	Phases    []float64 `json:"phases"`
}

// InputFn supplies the input energy for a step index. It must be a pure
// function of the index (e.g. a sinusoid); Run calls it exactly once per step
// in order.
type InputFn func(step int) float64

// Run calls EvolveStep exactly steps times, feeding inputFn(i) as the per-step
// energy, and records a Sample after each step. A non-positive step count is
// a caller error.
func Run(eng *oscillator.Engine, steps int, inputFn InputFn, policy oscillator.CouplingPolicy) ([]Sample, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("trajectory: step count must be positive, got %d", steps)
	}
	if inputFn == nil {
		return nil, fmt.Errorf("trajectory: input function is required")
	}

	samples := make([]Sample, 0, steps)
	for i := 0; i < steps; i++ {
		if err := eng.EvolveStep(inputFn(i), policy); err != nil {
			return nil, fmt.Errorf("trajectory: step %d: %w", i, err)
		}
		samples = append(samples, Sample{
			Coherence: eng.Coherence(),
			Coupling:  eng.Coupling(),
			Phases:    eng.Phases(),
		})
	}
	return samples, nil
}

// Sinusoid returns the input schedule offset + amplitude × sin(step × freq),
// clipped at zero. The reference drive signals are all of this form.
//
// Negative lobes are clipped rather than rejected: an input of zero means
// "no injection", which is exactly what the negative half-cycle of a drive
// signal should do.
func Sinusoid(amplitude, freq, offset float64) InputFn {
	return func(step int) float64 {
		v := offset + amplitude*math.Sin(float64(step)*freq)
		if v < 0 {
			return 0
		}
		return v
	}
}
