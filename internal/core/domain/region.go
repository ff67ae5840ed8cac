package domain

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug trims and lowercases a raw region value. Returns the
// normalized slug and true, or "" and false when the value is empty or
// does not form a URL-safe slug.
func NormalizeSlug(raw string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" || !slugPattern.MatchString(slug) {
		return "", false
	}
	return slug, true
}

// ParseRegions splits a multiselect regions field on commas and
// normalizes each segment. Empty and malformed segments are dropped;
// duplicates are collapsed preserving first occurrence order.
//
// A spreadsheet stores region membership as a single loosely-typed
// string ("reeves-county-texas, loving-county-texas"), so this is the
// one place that turns it into slugs.
func ParseRegions(raw string) []string {
	parts := strings.Split(raw, ",")
	slugs := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		slug, ok := NormalizeSlug(part)
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	return slugs
}

// DisplayNameFromSlug derives a human-readable region name from its
// slug: hyphen-separated words, each capitalized. Used when the region
// reference has no entry for the slug, so a region page never renders
// with a blank title.
func DisplayNameFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
