package oscillator

import (
	"strconv"
	"strings"
)

// MaxPrecisionBits bounds StateHash precision. Beyond this the quantization
// bins are finer than float64 noise and the fingerprint stops being useful
// for lookup comparison.
const MaxPrecisionBits = 16

// StateKey is a discretized fingerprint of the full continuous state. It is
// comparable (usable as a map key) and used only for equality and lookup -
// never for numeric computation.
type StateKey string

// StateHash quantizes the current state into 2^precisionBits bins per
// dimension: phases into angular bins (mod bin count), magnitudes into
// amplitude bins clipped to [0, bins−1], and coupling into the same bin
// width. The result is a pure function of the continuous state; nothing is
// memoized across calls.
//
// precisionBits outside [1, MaxPrecisionBits] is a caller error.
func (e *Engine) StateHash(precisionBits int) (StateKey, error) {
	if precisionBits < 1 || precisionBits > MaxPrecisionBits {
		return "", newConfigError(ErrCodeBadPrecision, "precisionBits",
			"precision must be in [1, %d], got %d", MaxPrecisionBits, precisionBits)
	}

	bins := 1 << precisionBits
	fbins := float64(bins)

	var sb strings.Builder
	sb.WriteString("b")
	sb.WriteString(strconv.Itoa(precisionBits))

	sb.WriteString("|p:")
	for b := range e.phase {
		for n, p := range e.phase[b] {
			if b > 0 || n > 0 {
				sb.WriteByte(',')
			}
			q := int(p*fbins/twoPi) % bins
			sb.WriteString(strconv.Itoa(q))
		}
	}

	sb.WriteString("|m:")
	for b := range e.magnitude {
		for n, m := range e.magnitude[b] {
			if b > 0 || n > 0 {
				sb.WriteByte(',')
			}
			q := int(m * fbins)
			if q < 0 {
				q = 0
			} else if q > bins-1 {
				q = bins - 1
			}
			sb.WriteString(strconv.Itoa(q))
		}
	}

	sb.WriteString("|k:")
	sb.WriteString(strconv.Itoa(int(e.coupling * fbins)))

	return StateKey(sb.String()), nil
}
