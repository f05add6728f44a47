package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID has no record.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the metadata record for a run.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var run Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, facts_dir, created_at, tuples
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.FactsDir, &createdAt, &run.Tuples)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: parse created_at: %w", id, err)
	}
	return run, nil
}

// ReadRegionLiveAt returns the persisted final relation for a run,
// ordered by (origin, point) for deterministic output.
func (s *Store) ReadRegionLiveAt(ctx context.Context, runID string) ([]RegionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT origin, point
		FROM region_live_at
		WHERE run_id = ?
		ORDER BY origin, point
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read region_live_at for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []RegionRow
	for rows.Next() {
		var row RegionRow
		if err := rows.Scan(&row.Origin, &row.Point); err != nil {
			return nil, fmt.Errorf("read region_live_at for %s: scan: %w", runID, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read region_live_at for %s: %w", runID, err)
	}
	return out, nil
}

// ReadLivenessDump returns the persisted liveness dump for a run,
// ordered by (point, variable, drop_live).
func (s *Store) ReadLivenessDump(ctx context.Context, runID string) ([]LivenessRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT point, variable, drop_live
		FROM var_live_at
		WHERE run_id = ?
		ORDER BY point, variable, drop_live
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read liveness dump for %s: %w", runID, err)
	}
	defer rows.Close()

	var out []LivenessRow
	for rows.Next() {
		var row LivenessRow
		if err := rows.Scan(&row.Point, &row.Variable, &row.DropLive); err != nil {
			return nil, fmt.Errorf("read liveness dump for %s: scan: %w", runID, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read liveness dump for %s: %w", runID, err)
	}
	return out, nil
}
