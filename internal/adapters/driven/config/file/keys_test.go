package file

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()

	require.NotEmpty(t, keys)
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Contains(t, keys, KeySheetsSpreadsheetID)
	assert.Contains(t, keys, KeyServeOrigin)
	assert.Contains(t, keys, KeyCSVPath)
}

func TestIsKnownKey(t *testing.T) {
	assert.True(t, IsKnownKey(KeySourceType))
	assert.True(t, IsKnownKey(KeyBuildArtifactPath))
	assert.False(t, IsKnownKey("made.up_key"))
	assert.False(t, IsKnownKey(""))
}

func TestDescribeKey(t *testing.T) {
	for _, key := range KnownKeys() {
		assert.NotEmpty(t, DescribeKey(key), "key %s has no description", key)
	}
	assert.Empty(t, DescribeKey("made.up_key"))
}
