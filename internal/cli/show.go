package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/origins/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a persisted run's region liveness relation",
		Long: `Read a previously persisted analysis run from the database and print
its final region_live_at relation.

Example:
  origins show --db ./origins.db 01920b5e-...-d5a1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func showRun(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	run, err := st.ReadRun(cmd.Context(), runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	rows, err := st.ReadRegionLiveAt(cmd.Context(), runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read region_live_at", err)
	}

	report := RegionReport{FactsDir: run.FactsDir, RunID: run.ID}
	report.Tuples = make([]RegionPair, 0, len(rows))
	for _, row := range rows {
		report.Tuples = append(report.Tuples, RegionPair{Origin: row.Origin, Point: row.Point})
	}

	if err := WriteReport(cmd.OutOrStdout(), opts.Format, report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}
	return nil
}
