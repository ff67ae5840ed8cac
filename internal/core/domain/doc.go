// Package domain contains the core entities of the townpages pipeline:
// raw spreadsheet rows, validated listings, region slugs and the
// synthesized directory dataset. It has no dependencies on adapters
// or external services.
package domain
