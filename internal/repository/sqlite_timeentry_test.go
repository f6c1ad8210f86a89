package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntryCreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()

	entry := testutil.NewTestEntry("Write report")
	require.NoError(t, repo.Create(ctx, entry))
	require.NotZero(t, entry.ID)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Task)
	assert.True(t, got.StartTime.Equal(entry.StartTime))
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(*entry.EndTime))
	assert.Equal(t, int64(3600), got.DurationSec)
}

func TestTimeEntryGetByIDNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimeEntryCategoryJoin(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := NewSQLiteTimeEntryRepo(database)
	categories := NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	cat, err := categories.Create(ctx, "Deep Work", "#3366ff")
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		entry := testutil.NewTestEntry("Design doc", testutil.WithEntryCategory(cat.ID))
		require.NoError(t, entries.Create(ctx, entry))

		got, err := entries.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, cat.ID, *got.CategoryID)
		assert.Equal(t, "Deep Work", got.CategoryName)
		assert.Equal(t, "#3366ff", got.CategoryColor)
	})

	t.Run("by legacy name", func(t *testing.T) {
		entry := testutil.NewTestEntry("Old row", testutil.WithEntryLegacyCategory("Deep Work"))
		require.NoError(t, entries.Create(ctx, entry))

		got, err := entries.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got.CategoryID, "legacy name match should surface the resolved id")
		assert.Equal(t, cat.ID, *got.CategoryID)
		assert.Equal(t, "Deep Work", got.CategoryName)
	})

	t.Run("legacy name with no matching category", func(t *testing.T) {
		entry := testutil.NewTestEntry("Orphaned row", testutil.WithEntryLegacyCategory("Retired"))
		require.NoError(t, entries.Create(ctx, entry))

		got, err := entries.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.Empty(t, got.CategoryName)
	})
}

func TestTimeEntryListInRange(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()
	base := testutil.BaseTime()

	inside := testutil.NewTestEntry("inside",
		testutil.WithEntryRange(base.Add(time.Hour), base.Add(2*time.Hour)))
	straddlesStart := testutil.NewTestEntry("straddles start",
		testutil.WithEntryRange(base.Add(-30*time.Minute), base.Add(30*time.Minute)))
	touchesStart := testutil.NewTestEntry("touches start",
		testutil.WithEntryRange(base.Add(-time.Hour), base))
	after := testutil.NewTestEntry("after window",
		testutil.WithEntryRange(base.Add(30*time.Hour), base.Add(31*time.Hour)))
	inProgress := testutil.NewTestEntry("in progress",
		testutil.WithEntryInProgress(base.Add(time.Hour)))

	for _, e := range []*domain.TimeEntry{inside, straddlesStart, touchesStart, after, inProgress} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListInRange(ctx, base, base.Add(24*time.Hour))
	require.NoError(t, err)

	tasks := make([]string, 0, len(got))
	for _, e := range got {
		tasks = append(tasks, e.Task)
	}
	assert.Equal(t, []string{"straddles start", "inside"}, tasks,
		"window keeps strict overlaps, sorted by start, and excludes touching and incomplete rows")
}

func TestTimeEntryOffsetTimestampsNormalized(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()

	// 09:00-10:00 at +05:00 is 04:00-05:00 UTC. Storage normalizes the
	// offset away so the TEXT range comparison sees the same instant.
	zone := time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, zone)
	end := start.Add(time.Hour)
	entry := testutil.NewTestEntry("offset entry", testutil.WithEntryRange(start, end))
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.ListInRange(ctx,
		time.Date(2025, 3, 10, 4, 30, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 5, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].StartTime.Equal(start))

	// The reverse direction: a UTC row found through offset-bearing bounds.
	got, err = repo.ListInRange(ctx,
		time.Date(2025, 3, 10, 9, 30, 0, 0, zone),
		time.Date(2025, 3, 10, 10, 30, 0, 0, zone))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTimeEntryUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := NewSQLiteTimeEntryRepo(database)
	categories := NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	cat, err := categories.Create(ctx, "Admin", "")
	require.NoError(t, err)

	entry := testutil.NewTestEntry("Draft", testutil.WithEntryCategory(cat.ID))
	require.NoError(t, entries.Create(ctx, entry))

	t.Run("partial update leaves other columns alone", func(t *testing.T) {
		task := "Final draft"
		require.NoError(t, entries.Update(ctx, entry.ID, TimeEntryUpdate{Task: &task}))

		got, err := entries.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final draft", got.Task)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, cat.ID, *got.CategoryID)
	})

	t.Run("clearing the category", func(t *testing.T) {
		require.NoError(t, entries.Update(ctx, entry.ID, TimeEntryUpdate{CategorySet: true}))

		got, err := entries.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.Empty(t, got.Category, "legacy name column is cleared alongside the id")
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		require.NoError(t, entries.Update(ctx, entry.ID, TimeEntryUpdate{}))
	})

	t.Run("missing row", func(t *testing.T) {
		task := "x"
		err := entries.Update(ctx, 9999, TimeEntryUpdate{Task: &task})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTimeEntryDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()

	entry := testutil.NewTestEntry("Ephemeral")
	require.NoError(t, repo.Create(ctx, entry))
	require.NoError(t, repo.Delete(ctx, entry.ID))

	_, err := repo.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, entry.ID), ErrNotFound)
}
