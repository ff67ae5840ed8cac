package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// RecordRun persists one build run with its warnings.
func (s *runStore) RecordRun(ctx context.Context, run *domain.BuildRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO build_runs (id, source, started_at, ended_at, success, error, rows_read, listings, regions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.EndedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.Success),
		nullString(run.Error),
		run.RowsRead, run.Listings, run.Regions)
	if err != nil {
		return fmt.Errorf("inserting build run: %w", err)
	}

	for _, w := range run.Warnings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_warnings (run_id, row_index, reason)
			VALUES (?, ?, ?)
		`, run.ID, w.RowIndex, w.Reason)
		if err != nil {
			return fmt.Errorf("inserting run warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing build run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.BuildRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source, started_at, ended_at, success, error, rows_read, listings, regions
		FROM build_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying build runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.BuildRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanBuildRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating build runs: %w", err)
	}

	for i := range runs {
		warnings, err := s.loadWarnings(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Warnings = warnings
	}

	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, runID string) (*domain.BuildRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source, started_at, ended_at, success, error, rows_read, listings, regions
		FROM build_runs WHERE id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying build run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying build run: %w", err)
		}
		return nil, domain.ErrNotFound
	}

	run, err := scanBuildRun(rows)
	if err != nil {
		return nil, err
	}

	warnings, err := s.loadWarnings(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Warnings = warnings

	return run, nil
}

// PruneRuns removes old runs beyond the retention limit.
// Keeps the most recent 'keep' runs; warnings cascade.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM build_runs
		WHERE id NOT IN (
			SELECT id FROM build_runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning build runs: %w", err)
	}
	return nil
}

// loadWarnings fetches the warnings recorded for a run.
func (s *runStore) loadWarnings(ctx context.Context, runID string) ([]domain.RowWarning, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT row_index, reason FROM run_warnings
		WHERE run_id = ?
		ORDER BY row_index ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run warnings: %w", err)
	}
	defer rows.Close()

	var warnings []domain.RowWarning //nolint:prealloc // size unknown from query
	for rows.Next() {
		var w domain.RowWarning
		if err := rows.Scan(&w.RowIndex, &w.Reason); err != nil {
			return nil, fmt.Errorf("scanning run warning: %w", err)
		}
		warnings = append(warnings, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run warnings: %w", err)
	}

	return warnings, nil
}

// ==================== Helper Functions ====================

// scanBuildRun scans a build run from *sql.Rows.
func scanBuildRun(rows *sql.Rows) (*domain.BuildRun, error) {
	var run domain.BuildRun
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&run.ID, &run.Source, &startedAt, &endedAt,
		&success, &errMsg, &run.RowsRead, &run.Listings, &run.Regions); err != nil {
		return nil, fmt.Errorf("scanning build run: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		run.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, endedAt); err == nil {
		run.EndedAt = t
	}
	run.Success = success == 1
	if errMsg.Valid {
		run.Error = errMsg.String
	}

	return &run, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
