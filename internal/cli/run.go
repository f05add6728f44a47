package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/origins/internal/facts"
	"github.com/roach88/origins/internal/ir"
	"github.com/roach88/origins/internal/liveness"
	"github.com/roach88/origins/internal/relation"
	"github.com/roach88/origins/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigPath string
	Database   string
	Dump       bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <facts-dir>",
		Short: "Solve region liveness for a facts directory",
		Long: `Validate and load the fact files for one analyzed body, run the
liveness solver to fixpoint, and print the final region_live_at
relation. With --db, the run and its relation (and, with --dump, the
per-point liveness lists) are persisted for later inspection.

Example:
  origins run ./nll-facts/main
  origins run --db ./origins.db --dump ./nll-facts/main`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to origins.yaml")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for persisting results")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "collect and persist per-point liveness lists")

	return cmd
}

func runSolve(opts *RunOptions, factsDir string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	// Start from the config file, let explicit flags override.
	cfg := &Config{}
	if opts.ConfigPath != "" {
		loaded, err := LoadConfig(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("db") {
		cfg.Database = opts.Database
	}
	if cmd.Flags().Changed("dump") {
		cfg.Dump = opts.Dump
	}
	format := opts.Format
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}

	slog.Info("validating facts directory", "dir", factsDir)
	if err := facts.ValidateDir(factsDir); err != nil {
		return WrapExitError(ExitFailure, "facts validation failed", err)
	}

	tables := facts.NewTables()
	set, err := facts.Load(tables, factsDir)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load facts", err)
	}
	slog.Info("facts loaded",
		"points", tables.Points.Len(),
		"variables", tables.Variables.Len(),
		"origins", tables.Origins.Len(),
	)

	dump := liveness.NewDump[ir.Variable, ir.Point](cfg.Dump)
	result := liveness.LiveRegions(set, dump)

	report := RegionReport{FactsDir: factsDir}
	report.Tuples, err = unternPairs(tables, result)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve atom names", err)
	}

	if cfg.Database != "" {
		runID := uuid.Must(uuid.NewV7()).String()
		report.RunID = runID
		if err := persistRun(cmd, cfg.Database, runID, factsDir, tables, report.Tuples, dump); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		slog.Info("run persisted", "run_id", runID, "db", cfg.Database)
	}

	if err := WriteReport(cmd.OutOrStdout(), format, report); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}
	return nil
}

// unternPairs resolves identifier pairs back to atom names, ordered by
// (origin, point) name for stable reports.
func unternPairs(tables *facts.Tables, pairs []relation.Pair[ir.Origin, ir.Point]) ([]RegionPair, error) {
	out := make([]RegionPair, 0, len(pairs))
	for _, pair := range pairs {
		origin, err := tables.Origins.Untern(pair.First)
		if err != nil {
			return nil, err
		}
		point, err := tables.Points.Untern(pair.Second)
		if err != nil {
			return nil, err
		}
		out = append(out, RegionPair{Origin: origin, Point: point})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Point < out[j].Point
	})
	return out, nil
}

func persistRun(
	cmd *cobra.Command,
	dbPath, runID, factsDir string,
	tables *facts.Tables,
	tuples []RegionPair,
	dump *liveness.Dump[ir.Variable, ir.Point],
) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	region := make([]store.RegionRow, 0, len(tuples))
	for _, pair := range tuples {
		region = append(region, store.RegionRow{Origin: pair.Origin, Point: pair.Point})
	}

	var dumpRows []store.LivenessRow
	if dump != nil && dump.Enabled {
		dumpRows, err = unternDump(tables, dump)
		if err != nil {
			return fmt.Errorf("resolve dump names: %w", err)
		}
	}

	run := store.Run{
		ID:        runID,
		FactsDir:  factsDir,
		CreatedAt: time.Now(),
		Tuples:    len(region),
	}
	return st.WriteAnalysis(cmd.Context(), run, region, dumpRows)
}

func unternDump(tables *facts.Tables, dump *liveness.Dump[ir.Variable, ir.Point]) ([]store.LivenessRow, error) {
	var out []store.LivenessRow
	appendRows := func(m map[ir.Point][]ir.Variable, dropLive bool) error {
		for point, vars := range m {
			pointName, err := tables.Points.Untern(point)
			if err != nil {
				return err
			}
			for _, v := range vars {
				varName, err := tables.Variables.Untern(v)
				if err != nil {
					return err
				}
				out = append(out, store.LivenessRow{Point: pointName, Variable: varName, DropLive: dropLive})
			}
		}
		return nil
	}
	if err := appendRows(dump.VarLiveAt, false); err != nil {
		return nil, err
	}
	if err := appendRows(dump.VarDropLiveAt, true); err != nil {
		return nil, err
	}
	return out, nil
}
