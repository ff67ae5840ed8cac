// Package driving defines the interfaces through which outer adapters
// (CLI commands) drive the core pipeline.
package driving

import (
	"context"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

// BuildOrchestrator runs the synthesis pipeline: fetch rows, validate,
// synthesize the directory dataset and emit the artifact.
type BuildOrchestrator interface {
	// Build executes one full pipeline run and returns its summary.
	// Row-level problems are collected as warnings on the summary;
	// fetch and write failures abort the run with an error.
	Build(ctx context.Context) (*BuildSummary, error)

	// Pages enumerates page descriptors from the current artifact,
	// one per region slug in ascending order.
	Pages(ctx context.Context) ([]domain.PageDescriptor, error)
}

// BuildSummary reports the outcome of one pipeline run.
type BuildSummary struct {
	// RunID is the unique identifier assigned to the run.
	RunID string

	// RowsRead is the count of raw rows fetched from the source.
	RowsRead int

	// Listings is the count of rows that survived validation.
	Listings int

	// Regions is the count of region directories synthesized.
	Regions int

	// Warnings holds the row-level validation warnings.
	Warnings []domain.RowWarning

	// ArtifactPath is where the dataset was written.
	ArtifactPath string
}
