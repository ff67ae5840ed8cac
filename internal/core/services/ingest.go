package services

import (
	"fmt"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/logger"
)

// ValidateRows turns raw rows into validated listings plus per-row
// warnings. A row needs a non-empty company name, category and at
// least one valid region slug; a row failing any of these is skipped
// and recorded, never fatal.
func ValidateRows(rows []domain.RawRow) ([]domain.Listing, []domain.RowWarning) {
	listings := make([]domain.Listing, 0, len(rows))
	var warnings []domain.RowWarning

	for _, row := range rows {
		if reason := validateRow(row); reason != "" {
			logger.Warn("row %d skipped: %s", row.Index, reason)
			warnings = append(warnings, domain.RowWarning{RowIndex: row.Index, Reason: reason})
			continue
		}

		regions := domain.ParseRegions(row.Regions)
		if len(regions) == 0 {
			reason := "regions field has no valid region slugs"
			logger.Warn("row %d skipped: %s", row.Index, reason)
			warnings = append(warnings, domain.RowWarning{RowIndex: row.Index, Reason: reason})
			continue
		}

		listings = append(listings, domain.Listing{
			Name:        row.Name,
			Category:    row.Category,
			Description: row.Description,
			Featured:    row.Featured,
			Email:       row.Email,
			Phone:       row.Phone,
			Website:     row.Website,
			Regions:     regions,
			RowIndex:    row.Index,
		})
	}

	return listings, warnings
}

// validateRow checks the required fields of a raw row.
// Returns a warning reason, or "" when the row is acceptable.
func validateRow(row domain.RawRow) string {
	switch {
	case row.Name == "":
		return "missing company name"
	case row.Category == "":
		return "missing category"
	case row.Regions == "":
		return "missing regions field"
	default:
		return ""
	}
}

// warningSummary formats a short count for log output.
func warningSummary(warnings []domain.RowWarning) string {
	if len(warnings) == 0 {
		return "no warnings"
	}
	return fmt.Sprintf("%d rows skipped", len(warnings))
}
