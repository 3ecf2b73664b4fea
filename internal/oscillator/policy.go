package oscillator

import "fmt"

// couplingMode discriminates the three coupling update behaviors.
type couplingMode uint8

const (
	// modeUnset is the zero value. Passing a zero CouplingPolicy is a caller
	// error - the choice between adaptive and forced coupling is semantic and
	// must be explicit.
	modeUnset couplingMode = iota
	modeAdaptive
	modeFrozen
	modeForced
)

// CouplingPolicy selects how EvolveStep updates the engine's coupling K.
//
// The policy is a tagged value rather than a (useFeedback, fixedCoupling)
// argument pair: "compute a new coupling" and "accept an externally supplied
// coupling" are distinct contracts and conflating them via optional arguments
// invites silent misuse.
type CouplingPolicy struct {
	mode  couplingMode
	fixed float64
}

// Adaptive returns the feedback policy: after rotation and coupling, the
// coherence is measured and K is multiplied by CouplingDecay above
// CoherenceHigh, by CouplingGrowth below CoherenceLow, then clipped to
// [CouplingMin, CouplingMax].
func Adaptive() CouplingPolicy {
	return CouplingPolicy{mode: modeAdaptive}
}

// Frozen returns the no-update policy: the engine's current K drives the
// phase pulls and is left untouched afterward. Callers that manage coupling
// externally (the separability analysis re-applies the feedback rule with a
// one-step delay) evolve under Frozen and then call SetCoupling.
func Frozen() CouplingPolicy {
	return CouplingPolicy{mode: modeFrozen}
}

// Forced returns the forced-value policy: k drives the phase pulls for this
// step AND overwrites the engine's persistent coupling, so a subsequent
// Frozen or Adaptive step starts from the forced value. k must lie in
// [CouplingMin, CouplingMax]; EvolveStep rejects anything else.
func Forced(k float64) CouplingPolicy {
	return CouplingPolicy{mode: modeForced, fixed: k}
}

// String returns the policy name for diagnostics.
func (p CouplingPolicy) String() string {
	switch p.mode {
	case modeAdaptive:
		return "adaptive"
	case modeFrozen:
		return "frozen"
	case modeForced:
		return fmt.Sprintf("forced(%g)", p.fixed)
	default:
		return "unset"
	}
}

// validate checks the policy before any state is mutated.
func (p CouplingPolicy) validate() error {
	switch p.mode {
	case modeAdaptive, modeFrozen:
		return nil
	case modeForced:
		if p.fixed < CouplingMin || p.fixed > CouplingMax {
			return newConfigError(ErrCodeBadCoupling, "policy",
				"forced coupling %g outside [%g, %g]", p.fixed, CouplingMin, CouplingMax)
		}
		return nil
	default:
		return newConfigError(ErrCodeBadPolicy, "policy",
			"coupling policy must be Adaptive, Frozen, or Forced")
	}
}
