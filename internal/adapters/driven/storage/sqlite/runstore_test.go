package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, started time.Time) *domain.BuildRun {
	return &domain.BuildRun{
		ID:        id,
		Source:    "sheets",
		StartedAt: started,
		EndedAt:   started.Add(3 * time.Second),
		Success:   true,
		RowsRead:  120,
		Listings:  118,
		Regions:   14,
		Warnings: []domain.RowWarning{
			{RowIndex: 7, Reason: "missing company name"},
			{RowIndex: 42, Reason: "regions field has no valid region slugs"},
		},
	}
}

// TestRunStore_RecordAndGet tests run persistence with warnings
func TestRunStore_RecordAndGet(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	run := sampleRun("run-1", time.Now())
	require.NoError(t, runs.RecordRun(ctx, run))

	got, err := runs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "sheets", got.Source)
	assert.True(t, got.Success)
	assert.Equal(t, 120, got.RowsRead)
	assert.Equal(t, 118, got.Listings)
	assert.Equal(t, 14, got.Regions)
	require.Len(t, got.Warnings, 2)
	assert.Equal(t, 7, got.Warnings[0].RowIndex)
	assert.Equal(t, "missing company name", got.Warnings[0].Reason)
}

// TestRunStore_GetRun_NotFound tests the missing run sentinel
func TestRunStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RunStore().GetRun(context.Background(), "absent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRunStore_RecordRun_Invalid tests input validation
func TestRunStore_RecordRun_Invalid(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	assert.ErrorIs(t, runs.RecordRun(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, runs.RecordRun(ctx, &domain.BuildRun{}), domain.ErrInvalidInput)
}

// TestRunStore_RecordsFailedRuns tests failed run persistence
func TestRunStore_RecordsFailedRuns(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()

	run := &domain.BuildRun{
		ID:        "run-fail",
		Source:    "sheets",
		StartedAt: time.Now(),
		EndedAt:   time.Now(),
		Success:   false,
		Error:     "fetching rows failed: 401 unauthorised",
	}
	require.NoError(t, runs.RecordRun(ctx, run))

	got, err := runs.GetRun(ctx, "run-fail")
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Contains(t, got.Error, "401")
	assert.Empty(t, got.Warnings)
}

// TestRunStore_ListRuns tests ordering and limits
func TestRunStore_ListRuns(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, runs.RecordRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	listed, err := runs.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "run-c", listed[0].ID, "most recent first")
	assert.Equal(t, "run-b", listed[1].ID)
	assert.Len(t, listed[0].Warnings, 2)
}

// TestRunStore_PruneRuns tests retention
func TestRunStore_PruneRuns(t *testing.T) {
	store := newTestStore(t)
	runs := store.RunStore()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		run := sampleRun(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, runs.RecordRun(ctx, run))
	}

	require.NoError(t, runs.PruneRuns(ctx, 2))

	listed, err := runs.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
