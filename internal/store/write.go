package store

import (
	"context"
	"fmt"
	"time"
)

// Run is the metadata record for one persisted analysis.
type Run struct {
	ID        string    // UUIDv7, assigned by the caller
	FactsDir  string    // directory the facts were loaded from
	CreatedAt time.Time // wall-clock time of the run
	Tuples    int       // size of the final region_live_at relation
}

// RegionRow is one (origin, point) pair of the final relation, with
// unterned atom names.
type RegionRow struct {
	Origin string
	Point  string
}

// LivenessRow is one dumped (point, variable) liveness entry.
// DropLive distinguishes the drop-liveness dump from the plain one.
type LivenessRow struct {
	Point    string
	Variable string
	DropLive bool
}

// WriteAnalysis persists a run, its final relation, and its optional
// liveness dump in a single transaction: either all rows land or none
// do, so a crashed write never leaves a run without its tuples.
//
// Re-writing the same run ID is idempotent for the tuple tables
// (ON CONFLICT IGNORE) but an error for the runs table.
func (s *Store) WriteAnalysis(ctx context.Context, run Run, region []RegionRow, dump []LivenessRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write analysis: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, facts_dir, created_at, tuples)
		VALUES (?, ?, ?, ?)
	`,
		run.ID,
		run.FactsDir,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Tuples,
	)
	if err != nil {
		return fmt.Errorf("write analysis: insert run %s: %w", run.ID, err)
	}

	regionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO region_live_at (run_id, origin, point)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write analysis: prepare region insert: %w", err)
	}
	defer regionStmt.Close()

	for _, row := range region {
		if _, err := regionStmt.ExecContext(ctx, run.ID, row.Origin, row.Point); err != nil {
			return fmt.Errorf("write analysis: insert region row (%s, %s): %w", row.Origin, row.Point, err)
		}
	}

	if len(dump) > 0 {
		dumpStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO var_live_at (run_id, point, variable, drop_live)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("write analysis: prepare dump insert: %w", err)
		}
		defer dumpStmt.Close()

		for _, row := range dump {
			if _, err := dumpStmt.ExecContext(ctx, run.ID, row.Point, row.Variable, row.DropLive); err != nil {
				return fmt.Errorf("write analysis: insert dump row (%s, %s): %w", row.Point, row.Variable, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write analysis: commit: %w", err)
	}
	return nil
}
