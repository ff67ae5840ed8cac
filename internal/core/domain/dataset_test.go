package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectoryDataset_Region tests region creation on first reference
func TestDirectoryDataset_Region(t *testing.T) {
	t.Run("creates region on first reference", func(t *testing.T) {
		ds := DirectoryDataset{}

		dir := ds.Region("reeves-county-texas", "Reeves County, TX")

		require.NotNil(t, dir)
		assert.Equal(t, "Reeves County, TX", dir.DisplayName)
		assert.NotNil(t, dir.Categories)
	})

	t.Run("returns existing region and keeps its display name", func(t *testing.T) {
		ds := DirectoryDataset{}
		first := ds.Region("austin", "Austin")

		second := ds.Region("austin", "Somewhere Else")

		assert.Same(t, first, second)
		assert.Equal(t, "Austin", second.DisplayName)
	})
}

// TestRegionDirectory_Insert tests bucket insertion and deduplication
func TestRegionDirectory_Insert(t *testing.T) {
	t.Run("creates category bucket on first insert", func(t *testing.T) {
		dir := &RegionDirectory{Categories: make(map[string][]Listing)}

		dir.Insert(Listing{Name: "Accruit", Category: "1031 Exchange Services"})

		require.Len(t, dir.Categories["1031 Exchange Services"], 1)
	})

	t.Run("duplicate name collapses into first", func(t *testing.T) {
		dir := &RegionDirectory{Categories: make(map[string][]Listing)}
		dir.Insert(Listing{Name: "Accruit", Category: "1031 Exchange Services", Description: "first"})
		dir.Insert(Listing{Name: "Accruit", Category: "1031 Exchange Services", Description: "second"})

		bucket := dir.Categories["1031 Exchange Services"]
		require.Len(t, bucket, 1)
		assert.Equal(t, "first", bucket[0].Description)
	})

	t.Run("same name in different category is distinct", func(t *testing.T) {
		dir := &RegionDirectory{Categories: make(map[string][]Listing)}
		dir.Insert(Listing{Name: "Accruit", Category: "1031 Exchange Services"})
		dir.Insert(Listing{Name: "Accruit", Category: "Title Companies"})

		assert.Len(t, dir.Categories["1031 Exchange Services"], 1)
		assert.Len(t, dir.Categories["Title Companies"], 1)
	})

	t.Run("category names are case-sensitive keys", func(t *testing.T) {
		dir := &RegionDirectory{Categories: make(map[string][]Listing)}
		dir.Insert(Listing{Name: "A", Category: "Mineral Buyers"})
		dir.Insert(Listing{Name: "B", Category: "mineral buyers"})

		assert.Len(t, dir.Categories, 2)
	})
}

// TestDirectoryDataset_SortBuckets tests the bucket ordering rules
func TestDirectoryDataset_SortBuckets(t *testing.T) {
	t.Run("featured precede non-featured", func(t *testing.T) {
		ds := DirectoryDataset{}
		dir := ds.Region("town", "Town")
		dir.Insert(Listing{Name: "Zeta Co", Category: "Services", RowIndex: 1})
		dir.Insert(Listing{Name: "Accruit", Category: "Services", Featured: true, RowIndex: 2})

		ds.SortBuckets()

		bucket := dir.Categories["Services"]
		require.Len(t, bucket, 2)
		assert.Equal(t, "Accruit", bucket[0].Name)
		assert.Equal(t, "Zeta Co", bucket[1].Name)
	})

	t.Run("name sort is case-insensitive", func(t *testing.T) {
		ds := DirectoryDataset{}
		dir := ds.Region("town", "Town")
		dir.Insert(Listing{Name: "beta", Category: "Services", RowIndex: 1})
		dir.Insert(Listing{Name: "Alpha", Category: "Services", RowIndex: 2})

		ds.SortBuckets()

		bucket := dir.Categories["Services"]
		assert.Equal(t, "Alpha", bucket[0].Name)
		assert.Equal(t, "beta", bucket[1].Name)
	})

	t.Run("equal names keep original row order", func(t *testing.T) {
		ds := DirectoryDataset{}
		dir := ds.Region("town", "Town")
		dir.Insert(Listing{Name: "Same", Category: "A", Description: "early", RowIndex: 3})
		dir.Insert(Listing{Name: "same", Category: "A", Description: "late", RowIndex: 7})

		ds.SortBuckets()

		bucket := dir.Categories["A"]
		require.Len(t, bucket, 2)
		assert.Equal(t, "early", bucket[0].Description)
	})
}

// TestDirectoryDataset_Slugs tests ascending slug enumeration
func TestDirectoryDataset_Slugs(t *testing.T) {
	ds := DirectoryDataset{}
	ds.Region("zavala", "Zavala")
	ds.Region("austin", "Austin")
	ds.Region("loving", "Loving")

	assert.Equal(t, []string{"austin", "loving", "zavala"}, ds.Slugs())
}
