package driven

import (
	"context"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

// RowSource fetches raw directory rows from a tabular data source.
// Each source type (google-sheets, csv file) implements this interface.
type RowSource interface {
	// Type returns the source type identifier.
	Type() string

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Validate checks if the source is properly configured and reachable.
	// For API sources this makes a lightweight test call; for file
	// sources it checks the path exists and is readable.
	Validate(ctx context.Context) error

	// FetchRows retrieves the complete row set for one build run.
	// Implementations may fetch pages concurrently, but the returned
	// slice is always the full set in stable source order; a partial
	// fetch returns an error and no rows, so an incomplete dataset
	// never reaches synthesis.
	FetchRows(ctx context.Context) ([]domain.RawRow, error)

	// Watch signals when the underlying source changes.
	// Only available if SupportsWatch is true. The channel closes when
	// the context is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}

// SourceCapabilities describes what a row source supports.
type SourceCapabilities struct {
	// SupportsWatch indicates the source can push change events.
	SupportsWatch bool

	// RequiresAuth indicates the source needs credentials.
	RequiresAuth bool

	// SupportsValidation indicates Validate() performs a real check.
	SupportsValidation bool

	// SupportsPagination indicates the source fetches in pages.
	// Pagination is handled internally; this is informational.
	SupportsPagination bool
}
