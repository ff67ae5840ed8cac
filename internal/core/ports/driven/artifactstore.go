package driven

import (
	"context"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

// ArtifactStore persists the canonical directory dataset.
type ArtifactStore interface {
	// Save writes the dataset atomically: a concurrent reader sees
	// either the previous artifact or the new one, never a partial
	// write. On failure the previous artifact is left intact.
	Save(ctx context.Context, dataset domain.DirectoryDataset) error

	// Load reads the current artifact.
	// Returns domain.ErrNoArtifact if none has been built yet.
	Load(ctx context.Context) (domain.DirectoryDataset, error)

	// Path returns the artifact file path.
	Path() string
}

// RegionReference resolves human-curated display names for region
// slugs. Absence of an entry is not an error; callers fall back to a
// name derived from the slug.
type RegionReference interface {
	// DisplayName returns the curated display name for a slug.
	DisplayName(slug string) (string, bool)
}
