package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

// TestValidateRows tests row validation and warning collection
func TestValidateRows(t *testing.T) {
	t.Run("valid row becomes listing", func(t *testing.T) {
		rows := []domain.RawRow{{
			Index:       1,
			Name:        "Accruit",
			Category:    "1031 Exchange Services",
			Description: "Qualified intermediary",
			Featured:    true,
			Email:       "info@accruit.example",
			Phone:       "555-0100",
			Website:     "https://accruit.example",
			Regions:     "reeves-county-texas, loving-county-texas",
		}}

		listings, warnings := ValidateRows(rows)

		require.Len(t, listings, 1)
		assert.Empty(t, warnings)
		assert.Equal(t, "Accruit", listings[0].Name)
		assert.Equal(t, []string{"reeves-county-texas", "loving-county-texas"}, listings[0].Regions)
		assert.True(t, listings[0].Featured)
		assert.Equal(t, 1, listings[0].RowIndex)
	})

	t.Run("missing company name is skipped with warning", func(t *testing.T) {
		rows := []domain.RawRow{
			{Index: 1, Category: "Services", Regions: "town"},
			{Index: 2, Name: "Valid Co", Category: "Services", Regions: "town"},
		}

		listings, warnings := ValidateRows(rows)

		require.Len(t, listings, 1)
		assert.Equal(t, "Valid Co", listings[0].Name)
		require.Len(t, warnings, 1)
		assert.Equal(t, 1, warnings[0].RowIndex)
		assert.Equal(t, "missing company name", warnings[0].Reason)
	})

	t.Run("missing category is skipped with warning", func(t *testing.T) {
		rows := []domain.RawRow{{Index: 3, Name: "No Cat", Regions: "town"}}

		listings, warnings := ValidateRows(rows)

		assert.Empty(t, listings)
		require.Len(t, warnings, 1)
		assert.Equal(t, "missing category", warnings[0].Reason)
	})

	t.Run("missing regions field is skipped with warning", func(t *testing.T) {
		rows := []domain.RawRow{{Index: 4, Name: "No Regions", Category: "Services"}}

		listings, warnings := ValidateRows(rows)

		assert.Empty(t, listings)
		require.Len(t, warnings, 1)
		assert.Equal(t, "missing regions field", warnings[0].Reason)
	})

	t.Run("regions parsing to empty set is skipped with warning", func(t *testing.T) {
		rows := []domain.RawRow{
			{Index: 5, Name: "Ghost Co", Category: "Services", Regions: " , ,"},
			{Index: 6, Name: "Real Co", Category: "Services", Regions: "town"},
		}

		listings, warnings := ValidateRows(rows)

		require.Len(t, listings, 1)
		assert.Equal(t, "Real Co", listings[0].Name)
		require.Len(t, warnings, 1)
		assert.Equal(t, 5, warnings[0].RowIndex)
		assert.Equal(t, "regions field has no valid region slugs", warnings[0].Reason)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		listings, warnings := ValidateRows(nil)

		assert.Empty(t, listings)
		assert.Empty(t, warnings)
	})
}
