package domain

import (
	"sort"
	"strings"
)

// RegionDirectory is one region's slice of the directory: a display
// name plus category buckets. Category names are exact-match keys; no
// casing or whitespace normalization is applied across categories.
type RegionDirectory struct {
	DisplayName string `json:"displayName"`

	// Categories maps a category name to its ordered bucket of
	// listings. Buckets are sorted by SortBuckets before the
	// dataset is emitted.
	Categories map[string][]Listing `json:"categories"`
}

// DirectoryDataset is the canonical synthesized artifact: region slug
// to RegionDirectory. Every region slug referenced by any placed
// listing exists as a key; each pipeline run fully replaces the
// dataset.
//
// encoding/json marshals map keys in ascending order, which gives the
// artifact its fixed region and category ordering for free.
type DirectoryDataset map[string]*RegionDirectory

// Region returns the directory for a slug, creating it on first
// reference with the given display name.
func (d DirectoryDataset) Region(slug, displayName string) *RegionDirectory {
	if dir, ok := d[slug]; ok {
		return dir
	}
	dir := &RegionDirectory{
		DisplayName: displayName,
		Categories:  make(map[string][]Listing),
	}
	d[slug] = dir
	return dir
}

// Insert places a listing into the bucket for its category, skipping
// it when a listing with the same name is already present. Identity in
// a bucket is the company name: category and region are fixed per
// bucket, so (name, category, region) duplicates collapse into the
// first occurrence.
func (r *RegionDirectory) Insert(listing Listing) {
	bucket := r.Categories[listing.Category]
	for _, existing := range bucket {
		if existing.Name == listing.Name {
			return
		}
	}
	r.Categories[listing.Category] = append(bucket, listing)
}

// SortBuckets orders every category bucket: featured listings first,
// then non-featured; within each group ascending by company name,
// case-insensitive; ties broken by original row order.
func (d DirectoryDataset) SortBuckets() {
	for _, dir := range d {
		for _, bucket := range dir.Categories {
			sort.SliceStable(bucket, func(i, j int) bool {
				a, b := bucket[i], bucket[j]
				if a.Featured != b.Featured {
					return a.Featured
				}
				an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
				if an != bn {
					return an < bn
				}
				return a.RowIndex < b.RowIndex
			})
		}
	}
}

// Slugs returns the region slugs in ascending order.
func (d DirectoryDataset) Slugs() []string {
	slugs := make([]string, 0, len(d))
	for slug := range d {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// PageDescriptor describes one region page for the downstream page
// generation layer: the slug the page is keyed by, the resolved
// display name and the region's category buckets.
type PageDescriptor struct {
	Slug        string               `json:"slug"`
	DisplayName string               `json:"displayName"`
	Categories  map[string][]Listing `json:"categories"`
}
