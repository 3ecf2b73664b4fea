// Package oscillator implements a bank of band-structured phase oscillators
// with adaptive cross-band coupling.
//
// The bank is a fixed bands × neurons grid. Each band carries its own decay
// factor and angular frequency; all oscillators share a single scalar
// coupling strength K. Evolution is discrete-time: energy injection, per-band
// rotation and decay, cross-band Kuramoto phase pulls, and a coupling update
// governed by a CouplingPolicy (adaptive feedback, frozen, or forced).
//
// Everything after construction is deterministic: the only randomness is the
// seed-derived initial phase draw, and each engine owns its own generator so
// concurrent construction cannot perturb results.
//
// INVARIANTS (hold after every EvolveStep):
//   - every phase lies in [0, 2π)
//   - coupling lies in [CouplingMin, CouplingMax]
//   - magnitudes are non-negative and have no upper clamp; only the sub-0.5
//     injection gate limits growth indirectly
package oscillator
