package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

func TestPagesCmd_Use(t *testing.T) {
	assert.Equal(t, "pages", pagesCmd.Use)
}

func TestPagesCmd_ListsPages(t *testing.T) {
	cleanup := setupBuildTest(&mockBuildOrchestrator{
		pages: []domain.PageDescriptor{
			{
				Slug:        "loving-county-texas",
				DisplayName: "Loving County, Texas",
				Categories:  map[string][]domain.Listing{"Plumbers": {}},
			},
			{
				Slug:        "reeves-county-texas",
				DisplayName: "Reeves County, Texas",
				Categories:  map[string][]domain.Listing{"Plumbers": {}, "Bakeries": {}},
			},
		},
	})
	defer cleanup()

	out, err := execute(t, "pages")
	assert.NoError(t, err)
	assert.Contains(t, out, "loving-county-texas\tLoving County, Texas\t1 categories")
	assert.Contains(t, out, "reeves-county-texas\tReeves County, Texas\t2 categories")
}

func TestPagesCmd_JSONOutput(t *testing.T) {
	cleanup := setupBuildTest(&mockBuildOrchestrator{
		pages: []domain.PageDescriptor{
			{Slug: "reeves-county-texas", DisplayName: "Reeves County, Texas"},
		},
	})
	defer cleanup()
	defer func() { pagesJSON = false }()

	out, err := execute(t, "pages", "--json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "reeves-county-texas", decoded[0]["slug"])
}

func TestPagesCmd_EmptyArtifact(t *testing.T) {
	cleanup := setupBuildTest(&mockBuildOrchestrator{})
	defer cleanup()

	out, err := execute(t, "pages")
	assert.NoError(t, err)
	assert.Contains(t, out, "No pages")
}
