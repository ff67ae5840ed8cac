package driven

import (
	"context"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

// RunStore records build run history, including row-level warnings.
type RunStore interface {
	// RecordRun persists one build run with its warnings.
	RecordRun(ctx context.Context, run *domain.BuildRun) error

	// ListRuns returns recent runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.BuildRun, error)

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, runID string) (*domain.BuildRun, error)

	// PruneRuns removes old runs beyond the retention limit,
	// keeping the most recent 'keep' runs.
	PruneRuns(ctx context.Context, keep int) error
}
