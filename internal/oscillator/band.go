package oscillator

// Band describes one frequency regime of the bank. Decay is the per-step
// magnitude multiplier in (0, 1]; Freq is the angular-frequency constant
// advanced by Freq × dt each step.
//
// Band values are copied into the engine at construction and never mutated
// afterward, so a shared band table cannot be corrupted by one engine.
type Band struct {
	Name  string
	Decay float64
	Freq  float64
}

// DefaultBands returns the canonical four-band table.
//
// The ordering is significant: decay factors are strictly decreasing, which
// gives the monotone long-run magnitude ordering Delta > Theta > Alpha > Gamma
// under zero input.
func DefaultBands() []Band {
	return []Band{
		{Name: "Delta", Decay: 0.98, Freq: 0.1},
		{Name: "Theta", Decay: 0.90, Freq: 0.3},
		{Name: "Alpha", Decay: 0.70, Freq: 1.0},
		{Name: "Gamma", Decay: 0.30, Freq: 3.0},
	}
}
