package services

import (
	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
)

// Synthesize groups validated listings into the directory dataset:
// one RegionDirectory per region slug, one category bucket per exact
// category name, listings deduplicated and sorted.
//
// Display names resolve through the optional region reference; a slug
// without an entry gets a name derived from the slug itself. ref may
// be nil.
//
// The result is deterministic for a given listing sequence: insertion
// is order-independent up to the documented row-order tie-break, and
// bucket sorting is stable.
func Synthesize(listings []domain.Listing, ref driven.RegionReference) domain.DirectoryDataset {
	dataset := domain.DirectoryDataset{}

	for _, listing := range listings {
		for _, slug := range listing.Regions {
			dir := dataset.Region(slug, resolveDisplayName(slug, ref))
			dir.Insert(listing)
		}
	}

	dataset.SortBuckets()
	return dataset
}

// resolveDisplayName looks the slug up in the region reference,
// falling back to a derived title.
func resolveDisplayName(slug string, ref driven.RegionReference) string {
	if ref != nil {
		if name, ok := ref.DisplayName(slug); ok {
			return name
		}
	}
	return domain.DisplayNameFromSlug(slug)
}
