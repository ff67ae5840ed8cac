package domain

import "time"

// BuildRun records one execution of the synthesis pipeline for the run
// history store. Failed runs are recorded too, with their error.
type BuildRun struct {
	// ID is the unique identifier for the run.
	ID string

	// Source identifies the row source ("sheets", "csv").
	Source string

	StartedAt time.Time
	EndedAt   time.Time

	// Success is false when the run aborted on a fatal error.
	Success bool

	// Error holds the fatal error message for failed runs.
	Error string

	// RowsRead is the number of raw rows fetched from the source.
	RowsRead int

	// Listings is the number of rows that survived validation.
	Listings int

	// Regions is the number of region directories synthesized.
	Regions int

	// Warnings holds the row-level validation warnings of the run.
	Warnings []RowWarning
}
