package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/falsify"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/store"
	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/suite"
)

// FalsifyOptions holds flags for the falsify command.
type FalsifyOptions struct {
	*RootOptions
	ConfigPath string   // YAML config file (empty = reference defaults)
	Tests      []string // subset of tests to run (empty = all)
	SavePath   string   // SQLite database to record the run in
	Label      string   // overrides the config's run label
}

// FalsifyOutput is the JSON payload of a falsify run.
type FalsifyOutput struct {
	Report falsify.JSONReport `json:"report"`
	RunID  string             `json:"run_id,omitempty"`
}

// NewFalsifyCommand creates the falsify command.
func NewFalsifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FalsifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "falsify",
		Short: "Run the falsification suite",
		Long: `Run the falsification suite against the oscillator bank.

Each test attempts to falsify the claim that the bank computes anything
beyond coupled-oscillator dynamics: F1 reduces it to a finite lookup
table, F2 separates the bands from the feedback controller, F3 and F3K
probe whether adaptive coupling matters, and F4 fits the simulation's
scaling exponent.

Exit codes:
  0 - Suite ran, no falsification condition was met
  1 - One or more tests falsified the claim
  2 - Command error (bad config, invalid test name, etc.)

Examples:
  pulselab falsify
  pulselab falsify --test F1 --test F4
  pulselab falsify --config suite.yaml --save runs.db --label nightly
  pulselab falsify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFalsify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML suite config (default: reference parameters)")
	cmd.Flags().StringSliceVar(&opts.Tests, "test", nil, "test to run, repeatable (F1, F2, F3, F3K, F4; default all)")
	cmd.Flags().StringVar(&opts.SavePath, "save", "", "SQLite database to record the run in")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the recorded run (overrides config)")

	return cmd
}

func runFalsify(opts *FalsifyOptions, cmd *cobra.Command) error {
	cfg := suite.DefaultConfig()
	if opts.ConfigPath != "" {
		var err error
		cfg, err = suite.LoadConfig(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load config", err)
		}
	}
	if opts.Label != "" {
		cfg.Label = opts.Label
	}

	var logger *slog.Logger
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	runner := suite.NewRunner(cfg, logger)
	summary, err := runner.Run(opts.Tests...)
	if err != nil {
		return WrapExitError(ExitCommandError, "falsification suite", err)
	}

	var runID string
	if opts.SavePath != "" {
		runID, err = saveRun(cmd.Context(), opts.SavePath, cfg, summary)
		if err != nil {
			return WrapExitError(ExitCommandError, "save run", err)
		}
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		if err := formatter.Success(FalsifyOutput{
			Report: summary.ToJSONReport(),
			RunID:  runID,
		}); err != nil {
			return err
		}
	} else {
		if err := renderFalsifyText(cmd, summary, runID); err != nil {
			return err
		}
	}

	if summary.AnyFalsified() {
		return NewExitError(ExitFailure, "one or more falsification conditions were met")
	}
	return nil
}

// renderFalsifyText writes the summary table, plus the scaling table when
// the run included the scaling analysis.
func renderFalsifyText(cmd *cobra.Command, summary *falsify.Summary, runID string) error {
	w := cmd.OutOrStdout()

	if err := summary.RenderText(w); err != nil {
		return err
	}

	for _, r := range summary.Results {
		if f4, ok := r.(falsify.F4Result); ok {
			fmt.Fprintln(w)
			if err := falsify.RenderF4Table(w, f4); err != nil {
				return err
			}
		}
	}

	if runID != "" {
		fmt.Fprintf(w, "\nRun recorded: %s\n", runID)
	}
	return nil
}

// saveRun persists the summary along with the resolved config.
func saveRun(ctx context.Context, path string, cfg suite.Config, summary *falsify.Summary) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	return st.SaveRun(ctx, cfg.Label, cfgJSON, summary)
}
