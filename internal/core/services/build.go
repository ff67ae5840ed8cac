package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
	"github.com/townpages/townpages-cli/internal/core/ports/driving"
	"github.com/townpages/townpages-cli/internal/logger"
)

// Ensure BuildOrchestrator implements the interface.
var _ driving.BuildOrchestrator = (*BuildOrchestrator)(nil)

// BuildOrchestrator coordinates one pipeline run: fetch rows from the
// source, validate them, synthesize the directory dataset and emit the
// artifact. The in-progress dataset is private single-writer state for
// the duration of a run; exactly one run is in flight at a time.
type BuildOrchestrator struct {
	source    driven.RowSource
	artifacts driven.ArtifactStore
	regionRef driven.RegionReference
	runs      driven.RunStore
}

// NewBuildOrchestrator creates a new build orchestrator.
// regionRef and runs are optional - if nil, display names are derived
// from slugs and run history is not recorded. source may also be nil
// for artifact-only use (Pages); Build then fails with an error.
func NewBuildOrchestrator(
	source driven.RowSource,
	artifacts driven.ArtifactStore,
	regionRef driven.RegionReference,
	runs driven.RunStore,
) *BuildOrchestrator {
	return &BuildOrchestrator{
		source:    source,
		artifacts: artifacts,
		regionRef: regionRef,
		runs:      runs,
	}
}

// Build executes one full pipeline run.
//
// Row-level problems never escalate to run-level failure; a fetch or
// write failure always does, and on write failure the previous
// artifact is left intact.
func (o *BuildOrchestrator) Build(ctx context.Context) (*driving.BuildSummary, error) {
	if o.source == nil {
		return nil, errors.New("no row source configured")
	}

	run := domain.BuildRun{
		ID:        uuid.NewString(),
		Source:    o.source.Type(),
		StartedAt: time.Now(),
	}

	summary, err := o.build(ctx, &run)

	run.EndedAt = time.Now()
	run.Success = err == nil
	if err != nil {
		run.Error = err.Error()
	}
	o.recordRun(ctx, &run)

	if err != nil {
		return nil, err
	}
	summary.RunID = run.ID
	return summary, nil
}

func (o *BuildOrchestrator) build(ctx context.Context, run *domain.BuildRun) (*driving.BuildSummary, error) {
	// 1. Validate the source configuration before fetching.
	caps := o.source.Capabilities()
	if caps.SupportsValidation {
		if err := o.source.Validate(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceValidation, err)
		}
	}

	// 2. Fetch the complete row set. A partial fetch never reaches
	// synthesis; FetchRows returns an error instead.
	logger.Section("Fetch")
	rows, err := o.source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	run.RowsRead = len(rows)
	logger.Info("Fetched %d rows from %s source", len(rows), o.source.Type())

	// 3. Validate rows, collecting warnings.
	logger.Section("Validate")
	listings, warnings := ValidateRows(rows)
	run.Listings = len(listings)
	run.Warnings = warnings
	logger.Info("Validated %d listings (%s)", len(listings), warningSummary(warnings))

	// 4. Synthesize the dataset.
	logger.Section("Synthesize")
	dataset := Synthesize(listings, o.regionRef)
	run.Regions = len(dataset)
	logger.Info("Synthesized %d region directories", len(dataset))

	// 5. Emit the artifact atomically.
	logger.Section("Emit")
	if err := o.artifacts.Save(ctx, dataset); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWrite, err)
	}
	logger.Info("Wrote artifact to %s", o.artifacts.Path())

	return &driving.BuildSummary{
		RowsRead:     len(rows),
		Listings:     len(listings),
		Regions:      len(dataset),
		Warnings:     warnings,
		ArtifactPath: o.artifacts.Path(),
	}, nil
}

// Pages enumerates page descriptors from the current artifact.
func (o *BuildOrchestrator) Pages(ctx context.Context) ([]domain.PageDescriptor, error) {
	dataset, err := o.artifacts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	return EnumeratePages(dataset), nil
}

// recordRun persists the run to the history store, best effort.
func (o *BuildOrchestrator) recordRun(ctx context.Context, run *domain.BuildRun) {
	if o.runs == nil {
		return
	}
	if err := o.runs.RecordRun(ctx, run); err != nil {
		logger.Warn("Failed to record run %s: %v", run.ID, err)
	}
}
