package falsify

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/oscillator"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/trajectory"
)

// The two F3 variants probe the same claim - "the adaptive feedback is
// decorative" - from different directions and are NOT interchangeable:
// PhaseCausality checks whether continuous state (phase) causally reaches
// discrete state (K); ConstantCoupling checks whether a tuned constant K
// matches the adaptive rule. Both are kept.

// F3PhaseConfig parameterizes the phase-causality variant.
type F3PhaseConfig struct {
	NumTrials int
	NumSteps  int

	// DivergenceThreshold and CorrelationThreshold define the falsification
	// condition: phases are shown NOT to matter when the coupling
	// trajectories stay close AND track each other.
	DivergenceThreshold  float64
	CorrelationThreshold float64

	// Parallelism bounds the trial worker pool; 0 means NumCPU.
	Parallelism int
}

// DefaultF3PhaseConfig returns the reference parameters.
func DefaultF3PhaseConfig() F3PhaseConfig {
	return F3PhaseConfig{
		NumTrials:            20,
		NumSteps:             500,
		DivergenceThreshold:  0.1,
		CorrelationThreshold: 0.9,
	}
}

type f3PhaseTrial struct {
	finalDivergence float64
	correlation     float64
}

// PhaseCausality drives pairs of engines seeded differently (seeds 2t and
// 2t+1, so their initial phases differ) through the same input sequence and
// measures the final-step |ΔK| plus the Pearson correlation of the two
// coupling trajectories, averaged across trials.
//
// FALSIFIED when average divergence < DivergenceThreshold AND average
// correlation > CorrelationThreshold: different phases led to the same
// discrete outcome, so phase would be decorative rather than computational.
func PhaseCausality(cfg F3PhaseConfig) (F3PhaseResult, error) {
	if cfg.NumSteps <= 0 {
		return F3PhaseResult{}, fmt.Errorf("falsify F3: step count must be positive, got %d", cfg.NumSteps)
	}
	if cfg.NumTrials <= 0 {
		return F3PhaseResult{}, fmt.Errorf("falsify F3: trial count must be positive, got %d", cfg.NumTrials)
	}

	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	trials := make([]f3PhaseTrial, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)

	p := pool.New().WithMaxGoroutines(workers)
	for t := 0; t < cfg.NumTrials; t++ {
		t := t
		p.Go(func() {
			trials[t], errs[t] = runPhaseCausalityTrial(int64(2*t), int64(2*t+1), cfg.NumSteps)
		})
	}
	p.Wait()

	for _, err := range errs {
		if err != nil {
			return F3PhaseResult{}, err
		}
	}

	var sumDiv, sumCorr float64
	for _, tr := range trials {
		sumDiv += tr.finalDivergence
		sumCorr += tr.correlation
	}
	avgDiv := sumDiv / float64(cfg.NumTrials)
	avgCorr := sumCorr / float64(cfg.NumTrials)

	return F3PhaseResult{
		Falsified:      avgDiv < cfg.DivergenceThreshold && avgCorr > cfg.CorrelationThreshold,
		AvgDivergence:  avgDiv,
		AvgCorrelation: avgCorr,
	}, nil
}

func runPhaseCausalityTrial(seedA, seedB int64, steps int) (f3PhaseTrial, error) {
	drive := trajectory.Sinusoid(0.3, 0.1, 0.3)

	engA, err := oscillator.New(seedA)
	if err != nil {
		return f3PhaseTrial{}, fmt.Errorf("falsify F3: %w", err)
	}
	engB, err := oscillator.New(seedB)
	if err != nil {
		return f3PhaseTrial{}, fmt.Errorf("falsify F3: %w", err)
	}

	couplingsA := make([]float64, steps)
	couplingsB := make([]float64, steps)
	for step := 0; step < steps; step++ {
		input := drive(step)
		if err := engA.EvolveStep(input, oscillator.Adaptive()); err != nil {
			return f3PhaseTrial{}, fmt.Errorf("falsify F3: step %d: %w", step, err)
		}
		if err := engB.EvolveStep(input, oscillator.Adaptive()); err != nil {
			return f3PhaseTrial{}, fmt.Errorf("falsify F3: step %d: %w", step, err)
		}
		couplingsA[step] = engA.Coupling()
		couplingsB[step] = engB.Coupling()
	}

	return f3PhaseTrial{
		finalDivergence: math.Abs(couplingsA[steps-1] - couplingsB[steps-1]),
		correlation:     pearson(couplingsA, couplingsB),
	}, nil
}

// F3ConstantConfig parameterizes the constant-coupling variant.
type F3ConstantConfig struct {
	NumSteps int

	// NumKValues is the grid resolution over [CouplingMin, CouplingMax];
	// at least two points are needed to span the interval.
	NumKValues int

	// Seed constructs every engine - the dynamic run and each grid run start
	// from identical initial conditions.
	Seed int64

	// RatioThreshold is the falsification cutoff on
	// bestConstantScore / dynamicScore.
	RatioThreshold float64

	// Parallelism bounds the grid worker pool; 0 means NumCPU.
	Parallelism int
}

// DefaultF3ConstantConfig returns the reference parameters.
func DefaultF3ConstantConfig() F3ConstantConfig {
	return F3ConstantConfig{
		NumSteps:       500,
		NumKValues:     50,
		Seed:           12345,
		RatioThreshold: 0.95,
	}
}

// scoreWindow is the trailing-step window the score is computed over. Runs
// shorter than the window are scored over all their steps.
const scoreWindow = 100

// ConstantCoupling scores one adaptive run, then oracle grid-searches
// constant coupling values in [CouplingMin, CouplingMax] from the same seed,
// scoring each identically.
//
// The score rewards stable, intermediate coherence over the trailing window:
// stability = 1/(σ+0.01) (the fixed offset avoids dividing by exactly zero),
// quality = 1 − 2|mean − 0.5|, score = quality × stability.
//
// FALSIFIED when the best constant reaches RatioThreshold of the dynamic
// score - the feedback would then be mere tuning, replaceable by a constant.
func ConstantCoupling(cfg F3ConstantConfig) (F3ConstantResult, error) {
	if cfg.NumSteps <= 0 {
		return F3ConstantResult{}, fmt.Errorf("falsify F3K: step count must be positive, got %d", cfg.NumSteps)
	}
	if cfg.NumKValues < 2 {
		return F3ConstantResult{}, fmt.Errorf("falsify F3K: grid needs at least 2 points, got %d", cfg.NumKValues)
	}

	dynamicEng, err := oscillator.New(cfg.Seed)
	if err != nil {
		return F3ConstantResult{}, fmt.Errorf("falsify F3K: %w", err)
	}
	dynamicScore, err := runAndScore(dynamicEng, cfg.NumSteps, oscillator.Adaptive())
	if err != nil {
		return F3ConstantResult{}, err
	}

	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scores := make([]float64, cfg.NumKValues)
	errs := make([]error, cfg.NumKValues)
	step := (oscillator.CouplingMax - oscillator.CouplingMin) / float64(cfg.NumKValues-1)

	p := pool.New().WithMaxGoroutines(workers)
	for i := 0; i < cfg.NumKValues; i++ {
		i := i
		p.Go(func() {
			k := oscillator.CouplingMin + float64(i)*step
			eng, err := oscillator.New(cfg.Seed)
			if err != nil {
				errs[i] = fmt.Errorf("falsify F3K: %w", err)
				return
			}
			scores[i], errs[i] = runAndScore(eng, cfg.NumSteps, oscillator.Forced(k))
		})
	}
	p.Wait()

	for _, err := range errs {
		if err != nil {
			return F3ConstantResult{}, err
		}
	}

	// First strictly-better point wins, so grid ties resolve toward lower K
	// regardless of pool scheduling.
	bestScore := scores[0]
	bestK := oscillator.CouplingMin
	for i := 1; i < cfg.NumKValues; i++ {
		if scores[i] > bestScore {
			bestScore = scores[i]
			bestK = oscillator.CouplingMin + float64(i)*step
		}
	}

	ratio := bestScore / dynamicScore

	return F3ConstantResult{
		Falsified:         ratio >= cfg.RatioThreshold,
		DynamicScore:      dynamicScore,
		BestConstantScore: bestScore,
		BestConstantK:     bestK,
		ScoreRatio:        ratio,
	}, nil
}

// runAndScore drives the engine under the standard sinusoidal input and
// scores the trailing coherence window.
func runAndScore(eng *oscillator.Engine, steps int, policy oscillator.CouplingPolicy) (float64, error) {
	samples, err := trajectory.Run(eng, steps, trajectory.Sinusoid(0.3, 0.1, 0), policy)
	if err != nil {
		return 0, fmt.Errorf("falsify F3K: %w", err)
	}

	window := scoreWindow
	if len(samples) < window {
		window = len(samples)
	}
	trailing := make([]float64, window)
	for i := 0; i < window; i++ {
		trailing[i] = samples[len(samples)-window+i].Coherence
	}

	m := mean(trailing)
	stability := 1.0 / (stddev(trailing) + 0.01)
	quality := 1.0 - math.Abs(m-0.5)*2
	return quality * stability, nil
}
