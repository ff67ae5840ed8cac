// Package sheets implements the Google Sheets row source. The
// spreadsheet holds one listing per row with a header row naming the
// columns: Company Name, Category, Description, Featured, Email,
// Phone, Website, Regions.
package sheets

import (
	"errors"
)

// Config holds Google Sheets source configuration.
type Config struct {
	// SpreadsheetID is the spreadsheet document ID.
	SpreadsheetID string

	// SheetName is the tab to read. Empty means the first sheet.
	SheetName string

	// PageSize is the number of data rows fetched per value-range
	// request.
	PageSize int64

	// MaxConcurrency caps how many page requests run at once.
	MaxConcurrency int
}

// DefaultPageSize is the window size for paginated row fetches.
const DefaultPageSize = 500

// DefaultMaxConcurrency caps concurrent page fetches.
const DefaultMaxConcurrency = 4

// withDefaults fills unset fields with defaults.
func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	return c
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return errors.New("spreadsheet ID is required")
	}
	return nil
}
