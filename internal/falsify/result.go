package falsify

// Result is the common read surface of the per-test verdict records.
// Records are immutable once produced and are aggregated only by
// concatenation (see Summary).
type Result interface {
	// TestID returns the stable test identifier ("F1", "F2", "F3", "F3K", "F4").
	TestID() string

	// IsFalsified reports whether the test's disproof condition was met.
	IsFalsified() bool
}

// F1Result is the evidence record of the reducibility test.
type F1Result struct {
	Falsified bool `json:"falsified"`

	// UniqueStates is the number of distinct quantized states visited.
	UniqueStates int `json:"unique_states"`

	// Transitions is the number of recorded state → next-state entries.
	// A map keyed by state can never exceed UniqueStates.
	Transitions int `json:"transitions"`

	// PolynomialBound is oscillatorCount³ × 2^precisionBits.
	PolynomialBound int `json:"polynomial_bound"`

	// TheoreticalMax is the exponential state-space size
	// (2^precisionBits)^(2n+1), and Coverage is UniqueStates over it.
	TheoreticalMax float64 `json:"theoretical_max"`
	Coverage       float64 `json:"coverage"`

	// Contradictions counts revisited states that mapped to a different
	// next-state. These are attributed to floating-point noise and ignored
	// by the verdict, never counted against determinism.
	Contradictions int `json:"contradictions"`
}

func (F1Result) TestID() string      { return "F1" }
func (r F1Result) IsFalsified() bool { return r.Falsified }

// F2Result is the evidence record of the separability test.
type F2Result struct {
	Falsified bool `json:"falsified"`

	// AvgCoherenceDiff and AvgCouplingDiff are the per-step mean absolute
	// differences between the coupled and separated trajectories, averaged
	// across trials.
	AvgCoherenceDiff float64 `json:"avg_coherence_diff"`
	AvgCouplingDiff  float64 `json:"avg_coupling_diff"`
	Threshold        float64 `json:"threshold"`
}

func (F2Result) TestID() string      { return "F2" }
func (r F2Result) IsFalsified() bool { return r.Falsified }

// F3PhaseResult is the evidence record of the phase-causality test.
type F3PhaseResult struct {
	Falsified bool `json:"falsified"`

	// AvgDivergence is the final-step |ΔK| between differently-seeded
	// engines; AvgCorrelation is the Pearson correlation of their coupling
	// trajectories. Both averaged across trials.
	AvgDivergence  float64 `json:"avg_divergence"`
	AvgCorrelation float64 `json:"avg_correlation"`
}

func (F3PhaseResult) TestID() string      { return "F3" }
func (r F3PhaseResult) IsFalsified() bool { return r.Falsified }

// F3ConstantResult is the evidence record of the constant-coupling test.
type F3ConstantResult struct {
	Falsified bool `json:"falsified"`

	DynamicScore      float64 `json:"dynamic_score"`
	BestConstantScore float64 `json:"best_constant_score"`
	BestConstantK     float64 `json:"best_constant_k"`

	// ScoreRatio is BestConstantScore / DynamicScore; the test falsifies
	// when the best constant reaches 95% of the dynamic score.
	ScoreRatio float64 `json:"score_ratio"`
}

func (F3ConstantResult) TestID() string      { return "F3K" }
func (r F3ConstantResult) IsFalsified() bool { return r.Falsified }

// F4Point is the closed-form operation count for one oscillator count.
type F4Point struct {
	N               int     `json:"n"`
	PhysicalOps     int     `json:"physical_ops"`
	SimulationOps   int     `json:"simulation_ops"`
	FullKuramotoOps int     `json:"full_kuramoto_ops"`
	OverheadRatio   float64 `json:"overhead_ratio"`
	KuramotoRatio   float64 `json:"kuramoto_ratio"`
}

// F4Result is the evidence record of the asymptotic-scaling test.
type F4Result struct {
	Falsified bool `json:"falsified"`

	// ScalingExponent is the log-log least-squares slope of simulation ops
	// against oscillator count.
	ScalingExponent float64 `json:"scaling_exponent"`

	Points []F4Point `json:"points"`
}

func (F4Result) TestID() string      { return "F4" }
func (r F4Result) IsFalsified() bool { return r.Falsified }
