package falsify

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/oscillator"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/trajectory"
)

// F2Config parameterizes the separability test.
type F2Config struct {
	NumSteps  int
	NumTrials int

	// BaseSeed seeds trial t with BaseSeed + t; the coupled and separated
	// runs of a trial share the same seed so they start bit-identical.
	BaseSeed int64

	// Threshold is the falsification cutoff for both averaged differences.
	Threshold float64

	// Parallelism bounds the trial worker pool; 0 means NumCPU. Trials are
	// independent and each owns its engines, so parallel execution cannot
	// change per-trial results.
	Parallelism int
}

// DefaultF2Config returns the reference parameters.
func DefaultF2Config() F2Config {
	return F2Config{
		NumSteps:  500,
		NumTrials: 10,
		BaseSeed:  12345,
		Threshold: 0.01,
	}
}

type f2Trial struct {
	coherenceDiff float64
	couplingDiff  float64
}

// Separability asks whether the discrete coupling feedback can be factored
// apart from the continuous evolution. Each trial runs two trajectories from
// the same seed under the same sinusoidal drive:
//
//   - coupled: true per-step adaptive feedback inside EvolveStep
//   - separated: frozen evolution, with the same threshold/decay/growth/clip
//     rule re-applied externally using the PREVIOUS step's coherence
//
// FALSIFIED when both the averaged mean |Δcoherence| and mean |Δcoupling|
// fall below the threshold - i.e. one step of feedback delay changes nothing,
// so the interaction is trivially separable.
func Separability(cfg F2Config) (F2Result, error) {
	if cfg.NumSteps <= 0 {
		return F2Result{}, fmt.Errorf("falsify F2: step count must be positive, got %d", cfg.NumSteps)
	}
	if cfg.NumTrials <= 0 {
		return F2Result{}, fmt.Errorf("falsify F2: trial count must be positive, got %d", cfg.NumTrials)
	}
	if cfg.Threshold <= 0 {
		return F2Result{}, fmt.Errorf("falsify F2: threshold must be positive, got %g", cfg.Threshold)
	}

	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Results land in a slice indexed by trial so pool scheduling cannot
	// reorder them.
	trials := make([]f2Trial, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)

	p := pool.New().WithMaxGoroutines(workers)
	for t := 0; t < cfg.NumTrials; t++ {
		t := t
		p.Go(func() {
			trials[t], errs[t] = runSeparabilityTrial(cfg.BaseSeed+int64(t), cfg.NumSteps)
		})
	}
	p.Wait()

	for _, err := range errs {
		if err != nil {
			return F2Result{}, err
		}
	}

	var sumCoherence, sumCoupling float64
	for _, tr := range trials {
		sumCoherence += tr.coherenceDiff
		sumCoupling += tr.couplingDiff
	}
	avgCoherence := sumCoherence / float64(cfg.NumTrials)
	avgCoupling := sumCoupling / float64(cfg.NumTrials)

	return F2Result{
		Falsified:        avgCoherence < cfg.Threshold && avgCoupling < cfg.Threshold,
		AvgCoherenceDiff: avgCoherence,
		AvgCouplingDiff:  avgCoupling,
		Threshold:        cfg.Threshold,
	}, nil
}

func runSeparabilityTrial(seed int64, steps int) (f2Trial, error) {
	drive := trajectory.Sinusoid(0.3, 0.1, 0)

	// Coupled run: real per-step feedback.
	coupledEng, err := oscillator.New(seed)
	if err != nil {
		return f2Trial{}, fmt.Errorf("falsify F2: %w", err)
	}
	coupled, err := trajectory.Run(coupledEng, steps, drive, oscillator.Adaptive())
	if err != nil {
		return f2Trial{}, fmt.Errorf("falsify F2: %w", err)
	}

	// Separated run: evolve frozen, then re-apply the feedback rule from the
	// previous step's coherence, and only then read the current coherence.
	sepEng, err := oscillator.New(seed)
	if err != nil {
		return f2Trial{}, fmt.Errorf("falsify F2: %w", err)
	}

	prevCoherence := sepEng.Coherence()
	var sumCoherenceDiff, sumCouplingDiff float64
	for step := 0; step < steps; step++ {
		if err := sepEng.EvolveStep(drive(step), oscillator.Frozen()); err != nil {
			return f2Trial{}, fmt.Errorf("falsify F2: step %d: %w", step, err)
		}

		k := sepEng.Coupling()
		if prevCoherence > oscillator.CoherenceHigh {
			k *= oscillator.CouplingDecay
		} else if prevCoherence < oscillator.CoherenceLow {
			k *= oscillator.CouplingGrowth
		}
		sepEng.SetCoupling(k) // clips exactly as the adaptive update does

		current := sepEng.Coherence()
		sumCoherenceDiff += math.Abs(coupled[step].Coherence - current)
		sumCouplingDiff += math.Abs(coupled[step].Coupling - sepEng.Coupling())
		prevCoherence = current
	}

	n := float64(steps)
	return f2Trial{
		coherenceDiff: sumCoherenceDiff / n,
		couplingDiff:  sumCouplingDiff / n,
	}, nil
}
