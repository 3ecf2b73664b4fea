package falsify

import (
	"fmt"
	"io"
)

// Summary aggregates the per-test verdict records. It holds no behavior of
// its own beyond concatenation and rendering; the records stay immutable.
type Summary struct {
	Results []Result
}

// Add appends a result record.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
}

// AnyFalsified reports whether at least one falsification condition was met.
func (s *Summary) AnyFalsified() bool {
	for _, r := range s.Results {
		if r.IsFalsified() {
			return true
		}
	}
	return false
}

// verdictLabel renders a verdict the way the summary table prints it.
func verdictLabel(falsified bool) string {
	if falsified {
		return "FALSIFIED"
	}
	return "NOT FALSIFIED"
}

// RenderText writes the human-readable falsification summary.
func (s *Summary) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "FALSIFICATION SUMMARY"); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Test | Result")
	fmt.Fprintln(w, "  -----+--------------")
	for _, r := range s.Results {
		fmt.Fprintf(w, "  %-4s | %s\n", r.TestID(), verdictLabel(r.IsFalsified()))
	}
	fmt.Fprintln(w)

	if s.AnyFalsified() {
		fmt.Fprintln(w, "Verdict: claim weakened - one or more falsification conditions were met.")
	} else {
		fmt.Fprintln(w, "Verdict: claim survives - all falsification attempts failed.")
	}
	return nil
}

// entry is the wire form of one result for JSON output.
type entry struct {
	Test      string `json:"test"`
	Falsified bool   `json:"falsified"`
	Evidence  Result `json:"evidence"`
}

// JSONReport is the encodable form of a Summary.
type JSONReport struct {
	Results       []entry `json:"results"`
	AnyFalsified  bool    `json:"any_falsified"`
	ClaimSurvives bool    `json:"claim_survives"`
}

// ToJSONReport converts the summary into its encodable form.
func (s *Summary) ToJSONReport() JSONReport {
	rep := JSONReport{Results: make([]entry, 0, len(s.Results))}
	for _, r := range s.Results {
		rep.Results = append(rep.Results, entry{
			Test:      r.TestID(),
			Falsified: r.IsFalsified(),
			Evidence:  r,
		})
	}
	rep.AnyFalsified = s.AnyFalsified()
	rep.ClaimSurvives = !rep.AnyFalsified
	return rep
}

// RenderF4Table writes the per-n operation-count table and the fitted
// scaling exponent. The output is fully deterministic (closed-form counts),
// which is what the golden test pins.
func RenderF4Table(w io.Writer, r F4Result) error {
	if _, err := fmt.Fprintf(w, "%6s | %10s | %12s | %14s | %10s\n",
		"n", "Physical", "Simulation", "Full Kuramoto", "Overhead"); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s-+-%s-+-%s-+-%s-+-%s\n",
		dashes(6), dashes(10), dashes(12), dashes(14), dashes(10))
	for _, p := range r.Points {
		fmt.Fprintf(w, "%6d | %10d | %12d | %14d | %9.2fx\n",
			p.N, p.PhysicalOps, p.SimulationOps, p.FullKuramotoOps, p.OverheadRatio)
	}
	fmt.Fprintf(w, "\nSimulation ops ~ O(n^%.2f)\n", r.ScalingExponent)
	fmt.Fprintf(w, "Verdict: %s\n", verdictLabel(r.Falsified))
	return nil
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
