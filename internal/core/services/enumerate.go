package services

import "github.com/townpages/townpages-cli/internal/core/domain"

// EnumeratePages produces one page descriptor per region slug in
// ascending order. Pure: no network or disk access; the page
// generation layer consumes the result.
func EnumeratePages(dataset domain.DirectoryDataset) []domain.PageDescriptor {
	slugs := dataset.Slugs()
	pages := make([]domain.PageDescriptor, 0, len(slugs))
	for _, slug := range slugs {
		dir := dataset[slug]
		pages = append(pages, domain.PageDescriptor{
			Slug:        slug,
			DisplayName: dir.DisplayName,
			Categories:  dir.Categories,
		})
	}
	return pages
}
