package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/oscillator"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/trajectory"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Steps  int
	Seed   int64
	Input  float64
	Policy string  // "adaptive" | "frozen" | "forced"
	K      float64 // coupling for --policy forced
}

// TraceOutput is the JSON payload of a trace run.
type TraceOutput struct {
	Seed    int64               `json:"seed"`
	Steps   int                 `json:"steps"`
	Policy  string              `json:"policy"`
	Samples []trajectory.Sample `json:"samples"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Dump a raw simulation trajectory",
		Long: `Evolve one oscillator bank under constant input and dump the
per-step coherence, coupling, and phases.

Useful for eyeballing dynamics and for feeding external analysis
tools (use --format json).

Examples:
  pulselab trace --steps 100 --seed 42
  pulselab trace --steps 500 --input 0.3 --policy forced --k 0.8 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Steps, "steps", 100, "number of evolution steps")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 12345, "engine seed")
	cmd.Flags().Float64Var(&opts.Input, "input", 0.3, "constant input energy")
	cmd.Flags().StringVar(&opts.Policy, "policy", "adaptive", "coupling policy (adaptive|frozen|forced)")
	cmd.Flags().Float64Var(&opts.K, "k", oscillator.CouplingMax/2, "coupling strength for --policy forced")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	policy, err := parsePolicy(opts.Policy, opts.K)
	if err != nil {
		return WrapExitError(ExitCommandError, "trace", err)
	}

	eng, err := oscillator.New(opts.Seed)
	if err != nil {
		return WrapExitError(ExitCommandError, "trace", err)
	}

	samples, err := trajectory.Run(eng, opts.Steps,
		func(int) float64 { return opts.Input }, policy)
	if err != nil {
		return WrapExitError(ExitCommandError, "trace", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(TraceOutput{
			Seed:    opts.Seed,
			Steps:   opts.Steps,
			Policy:  policy.String(),
			Samples: samples,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%6s | %9s | %8s\n", "step", "coherence", "coupling")
	fmt.Fprintf(w, "-------+-----------+---------\n")
	for i, s := range samples {
		fmt.Fprintf(w, "%6d | %9.4f | %8.4f\n", i, s.Coherence, s.Coupling)
	}
	return nil
}

// parsePolicy maps the flag value onto a coupling policy.
func parsePolicy(name string, k float64) (oscillator.CouplingPolicy, error) {
	switch name {
	case "adaptive":
		return oscillator.Adaptive(), nil
	case "frozen":
		return oscillator.Frozen(), nil
	case "forced":
		return oscillator.Forced(k), nil
	default:
		return oscillator.CouplingPolicy{}, fmt.Errorf("invalid policy %q: must be adaptive, frozen, or forced", name)
	}
}
