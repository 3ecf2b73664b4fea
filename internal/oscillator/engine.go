package oscillator

import (
	"math"
	"math/rand"
)

// Dynamics constants. These mirror the band-local oscillator model exactly;
// the falsification analyses depend on them, so changing any of them changes
// every long-run trajectory.
const (
	// CouplingMin and CouplingMax bound the shared coupling K. K is clipped
	// into this range after every adaptive update, and forced values outside
	// it are rejected.
	CouplingMin = 0.01
	CouplingMax = 2.0

	// CoherenceHigh and CoherenceLow are the adaptive feedback thresholds.
	CoherenceHigh = 0.6
	CoherenceLow  = 0.25

	// CouplingDecay and CouplingGrowth are the multiplicative feedback factors.
	CouplingDecay  = 0.995
	CouplingGrowth = 1.005

	// dt is the fixed integration step for rotation and phase pulls.
	dt = 0.1

	// injectionGate is the magnitude below which an oscillator accepts energy;
	// injectionRate scales the injected amount. Oscillators at or above the
	// gate are unaffected, a self-limiting floor rather than a clamp.
	injectionGate = 0.5
	injectionRate = 0.1

	// coherenceFloor excludes near-dead oscillators from the order parameter.
	coherenceFloor = 0.01

	initialMagnitude = 0.9
	initialCoupling  = 0.5
)

const twoPi = 2 * math.Pi

// Engine owns the phase/magnitude/coupling state for one oscillator bank.
//
// All computation is synchronous and single-threaded. An Engine must not be
// shared across goroutines; analyses that parallelize across trials give each
// trial its own Engine.
type Engine struct {
	bands          []Band
	neuronsPerBand int

	// phase[b][n] in [0, 2π); magnitude[b][n] >= 0, no upper clamp.
	phase     [][]float64
	magnitude [][]float64

	// coupling is the single scalar K shared across the bank,
	// always in [CouplingMin, CouplingMax].
	coupling float64
}

// Option configures engine construction.
type Option func(*config)

type config struct {
	bands          []Band
	neuronsPerBand int
}

// WithBands replaces the default band table. The slice is copied so later
// mutation by the caller cannot reach the engine.
func WithBands(bands []Band) Option {
	return func(c *config) {
		c.bands = make([]Band, len(bands))
		copy(c.bands, bands)
	}
}

// WithNeuronsPerBand sets the per-band neuron count (default 4).
func WithNeuronsPerBand(n int) Option {
	return func(c *config) {
		c.neuronsPerBand = n
	}
}

// New constructs a seeded engine.
//
// Phases are drawn independently and uniformly from [0, 2π) using a generator
// owned by this engine and seeded from the explicit seed argument - never a
// process-wide stream - so identical seeds produce bit-identical initial
// state regardless of construction order or concurrency. Magnitudes start at
// 0.9, coupling at 0.5.
//
// Non-positive band or neuron counts and bands with decay outside (0, 1] are
// caller errors and fail fast.
func New(seed int64, opts ...Option) (*Engine, error) {
	cfg := config{
		bands:          DefaultBands(),
		neuronsPerBand: 4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(cfg.bands) == 0 {
		return nil, newConfigError(ErrCodeBadGrid, "bands", "at least one band is required")
	}
	if cfg.neuronsPerBand <= 0 {
		return nil, newConfigError(ErrCodeBadGrid, "neuronsPerBand",
			"neuron count must be positive, got %d", cfg.neuronsPerBand)
	}
	for i, b := range cfg.bands {
		if b.Decay <= 0 || b.Decay > 1 {
			return nil, newConfigError(ErrCodeBadBand, "bands",
				"band %d (%s) decay %g outside (0, 1]", i, b.Name, b.Decay)
		}
	}

	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		bands:          cfg.bands,
		neuronsPerBand: cfg.neuronsPerBand,
		phase:          make([][]float64, len(cfg.bands)),
		magnitude:      make([][]float64, len(cfg.bands)),
		coupling:       initialCoupling,
	}
	for b := range e.bands {
		e.phase[b] = make([]float64, cfg.neuronsPerBand)
		e.magnitude[b] = make([]float64, cfg.neuronsPerBand)
		for n := 0; n < cfg.neuronsPerBand; n++ {
			e.phase[b][n] = rng.Float64() * twoPi
			e.magnitude[b][n] = initialMagnitude
		}
	}

	return e, nil
}

// EvolveStep performs one discrete-time update:
//
//  1. Energy injection: every oscillator with magnitude < 0.5 gains
//     injectionRate × inputEnergy (only when inputEnergy > 0).
//  2. Rotate and decay per band, then re-wrap phases into [0, 2π).
//  3. Cross-band Kuramoto pulls, skipped when the effective K < CouplingMin.
//     All pair terms are computed from the phases as they stood at the start
//     of this stage, then applied, then phases are re-wrapped once.
//  4. Coupling update per policy (see CouplingPolicy).
//
// EvolveStep is deterministic given its arguments and the current state.
// A negative inputEnergy or an invalid policy is a caller error; on error no
// state is mutated.
func (e *Engine) EvolveStep(inputEnergy float64, policy CouplingPolicy) error {
	if err := policy.validate(); err != nil {
		return err
	}
	if inputEnergy < 0 {
		return newConfigError(ErrCodeBadEnergy, "inputEnergy",
			"input energy must be non-negative, got %g", inputEnergy)
	}

	// 1. Energy injection.
	if inputEnergy > 0 {
		for b := range e.magnitude {
			for n, m := range e.magnitude[b] {
				if m < injectionGate {
					e.magnitude[b][n] = m + injectionRate*inputEnergy
				}
			}
		}
	}

	// 2. Rotate and decay.
	for b, band := range e.bands {
		for n := range e.phase[b] {
			e.phase[b][n] = wrapPhase(e.phase[b][n] + band.Freq*dt)
			e.magnitude[b][n] *= band.Decay
		}
	}

	// 3. Cross-band coupling.
	k := e.coupling
	if policy.mode == modeForced {
		k = policy.fixed
	}
	if k >= CouplingMin {
		e.applyCoupling(k)
	}

	// 4. Coupling update.
	switch policy.mode {
	case modeAdaptive:
		coherence := e.Coherence()
		if coherence > CoherenceHigh {
			e.coupling *= CouplingDecay
		} else if coherence < CoherenceLow {
			e.coupling *= CouplingGrowth
		}
		e.coupling = clip(e.coupling, CouplingMin, CouplingMax)
	case modeForced:
		// The forced value persists so a later Frozen/Adaptive step sees it.
		e.coupling = policy.fixed
	case modeFrozen:
		// K untouched.
	}

	return nil
}

// applyCoupling pulls every destination band toward every other band by the
// Kuramoto term: the mean over neurons of sin(phase[src] − phase[dst]),
// scaled by K × dt and applied uniformly to all of dst's neurons.
//
// Every pair term is computed from the snapshot taken here, so the result
// does not depend on pair iteration order.
func (e *Engine) applyCoupling(k float64) {
	snapshot := make([][]float64, len(e.phase))
	for b := range e.phase {
		snapshot[b] = make([]float64, len(e.phase[b]))
		copy(snapshot[b], e.phase[b])
	}

	for src := range e.bands {
		for dst := range e.bands {
			if src == dst {
				continue
			}
			var sum float64
			for n := 0; n < e.neuronsPerBand; n++ {
				sum += math.Sin(snapshot[src][n] - snapshot[dst][n])
			}
			pull := k * (sum / float64(e.neuronsPerBand)) * dt
			for n := range e.phase[dst] {
				e.phase[dst][n] += pull
			}
		}
	}

	for b := range e.phase {
		for n := range e.phase[b] {
			e.phase[b][n] = wrapPhase(e.phase[b][n])
		}
	}
}

// Coherence returns the Kuramoto order parameter: the magnitude of the mean
// unit phasor over oscillators with magnitude above coherenceFloor. Returns 0
// when no oscillator qualifies - by definition, not as an error.
func (e *Engine) Coherence() float64 {
	var sumCos, sumSin float64
	count := 0
	for b := range e.phase {
		for n, p := range e.phase[b] {
			if e.magnitude[b][n] > coherenceFloor {
				sumCos += math.Cos(p)
				sumSin += math.Sin(p)
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	fc := float64(count)
	return math.Hypot(sumCos/fc, sumSin/fc)
}

// Coupling returns the current shared coupling K.
func (e *Engine) Coupling() float64 {
	return e.coupling
}

// SetCoupling overwrites K, clipping into [CouplingMin, CouplingMax] exactly
// as the adaptive update does. Used by callers that re-apply the feedback
// rule externally (e.g. with a one-step delay); the clip preserves the
// coupling invariant under any input.
func (e *Engine) SetCoupling(k float64) {
	e.coupling = clip(k, CouplingMin, CouplingMax)
}

// Phases returns a flattened row-major copy of the phase grid. The copy never
// aliases engine state.
func (e *Engine) Phases() []float64 {
	out := make([]float64, 0, e.OscillatorCount())
	for b := range e.phase {
		out = append(out, e.phase[b]...)
	}
	return out
}

// Magnitudes returns a flattened row-major copy of the magnitude grid.
func (e *Engine) Magnitudes() []float64 {
	out := make([]float64, 0, e.OscillatorCount())
	for b := range e.magnitude {
		out = append(out, e.magnitude[b]...)
	}
	return out
}

// BandMeanMagnitudes returns the mean magnitude of each band, in band order.
func (e *Engine) BandMeanMagnitudes() []float64 {
	out := make([]float64, len(e.bands))
	for b := range e.magnitude {
		var sum float64
		for _, m := range e.magnitude[b] {
			sum += m
		}
		out[b] = sum / float64(e.neuronsPerBand)
	}
	return out
}

// Bands returns a copy of the band table.
func (e *Engine) Bands() []Band {
	out := make([]Band, len(e.bands))
	copy(out, e.bands)
	return out
}

// NumBands returns the band count.
func (e *Engine) NumBands() int {
	return len(e.bands)
}

// NeuronsPerBand returns the per-band neuron count.
func (e *Engine) NeuronsPerBand() int {
	return e.neuronsPerBand
}

// OscillatorCount returns bands × neuronsPerBand.
func (e *Engine) OscillatorCount() int {
	return len(e.bands) * e.neuronsPerBand
}

// wrapPhase maps x into [0, 2π). math.Mod keeps the sign of x, so negative
// results are shifted up once.
func wrapPhase(x float64) float64 {
	x = math.Mod(x, twoPi)
	if x < 0 {
		x += twoPi
	}
	return x
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
