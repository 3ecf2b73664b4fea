// Package falsify implements five statistical procedures that each try to
// DISPROVE a structural claim about the oscillator bank's computational
// power:
//
//   - F1 (reducibility): can the dynamics be replaced by a polynomial-size
//     lookup table over quantized states?
//   - F2 (separability): can the discrete coupling feedback be factored
//     apart from the continuous evolution with a one-step delay?
//   - F3 (phase causality): do different initial phases actually cause
//     divergent coupling trajectories?
//   - F3K (constant coupling): does the adaptive feedback beat the best
//     constant coupling found by oracle grid search?
//   - F4 (scaling): does simulating the band-local dynamics cost more than
//     polynomially in the oscillator count?
//
// Each analysis constructs its own engines from explicit seeds, shares no
// state with the others, and returns an immutable result record. A test
// reports FALSIFIED only when its specific disproof condition is met; an
// analysis either completes with a full record or propagates the originating
// error unmodified.
package falsify
