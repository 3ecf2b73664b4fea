package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EntroMorphic/pulse-arithmetic-lab/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	DBPath string
	RunID  string
}

// ReportOutput is the JSON payload when rendering a single run.
type ReportOutput struct {
	Run      store.RunInfo   `json:"run"`
	Config   json.RawMessage `json:"config"`
	Verdicts []store.Verdict `json:"verdicts"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List and inspect recorded suite runs",
		Long: `Read runs recorded with 'falsify --save'.

Without --run, lists all recorded runs newest first. With --run,
renders that run's verdicts and the configuration it was executed
with.

Examples:
  pulselab report --db runs.db
  pulselab report --db runs.db --run 0190a7e2-...
  pulselab report --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database written by falsify --save (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to render (default: list all runs)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.DBPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DBPath))
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer st.Close()

	if opts.RunID == "" {
		return listRuns(opts, st, cmd)
	}
	return showRun(opts, st, cmd)
}

// listRuns renders the run index.
func listRuns(opts *ReportOptions, st *store.Store, cmd *cobra.Command) error {
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(map[string]any{
			"runs":  runs,
			"count": len(runs),
		})
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %-13s  %s\n",
			r.ID, r.CreatedAt, verdictWord(r.AnyFalsified), r.Label)
	}
	return nil
}

// showRun renders one run's verdicts and stored config.
func showRun(opts *ReportOptions, st *store.Store, cmd *cobra.Command) error {
	info, config, verdicts, err := st.ReadRun(cmd.Context(), opts.RunID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
		}
		return WrapExitError(ExitCommandError, "read run", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(ReportOutput{
			Run:      info,
			Config:   json.RawMessage(config),
			Verdicts: verdicts,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run:     %s\n", info.ID)
	fmt.Fprintf(w, "Label:   %s\n", info.Label)
	fmt.Fprintf(w, "Created: %s\n", info.CreatedAt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Test | Result")
	fmt.Fprintln(w, "  -----+--------------")
	for _, v := range verdicts {
		fmt.Fprintf(w, "  %-4s | %s\n", v.TestID, verdictWord(v.Falsified))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Verdict: %s\n", verdictWord(info.AnyFalsified))

	if opts.Verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Evidence:")
		for _, v := range verdicts {
			fmt.Fprintf(w, "  %s: %s\n", v.TestID, string(v.Evidence))
		}
	}
	return nil
}

func verdictWord(falsified bool) string {
	if falsified {
		return "FALSIFIED"
	}
	return "NOT FALSIFIED"
}
