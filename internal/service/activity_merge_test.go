package service

import (
	"context"
	"testing"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/repository"
	"github.com/mgreco/tempus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeFixture creates two overlapping manual entries: A 09:00-09:20
// tagged [x] and B 09:15-09:45 tagged [y].
func mergeFixture(t *testing.T, env *testEnv) (a, b *domain.TimeEntry, x, y *domain.Tag) {
	t.Helper()
	ctx := context.Background()
	base := testutil.BaseTime()

	var err error
	x, err = env.tags.CreateTag(ctx, "x", "")
	require.NoError(t, err)
	y, err = env.tags.CreateTag(ctx, "y", "")
	require.NoError(t, err)

	a = testutil.NewTestEntry("A",
		testutil.WithEntryRange(base, base.Add(20*time.Minute)))
	require.NoError(t, env.entries.Create(ctx, a))
	require.NoError(t, env.tags.SetTagsFor(ctx, a.ID, domain.SourceManual.SourceTable(), []int64{x.ID}))

	b = testutil.NewTestEntry("B",
		testutil.WithEntryRange(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	require.NoError(t, env.entries.Create(ctx, b))
	require.NoError(t, env.tags.SetTagsFor(ctx, b.ID, domain.SourceManual.SourceTable(), []int64{y.ID}))
	return a, b, x, y
}

func keysFor(source domain.SourceType, ids ...int64) []domain.ActivityKey {
	keys := make([]domain.ActivityKey, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, domain.ActivityKey{ID: id, SourceType: source})
	}
	return keys
}

func TestMergeLongestConservesRangeAndTags(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	base := testutil.BaseTime()
	a, b, x, y := mergeFixture(t, env)

	merged, err := env.svc.MergeActivities(ctx,
		keysFor(domain.SourceManual, a.ID, b.ID), domain.MergeLongest)
	require.NoError(t, err)

	// B is longer (30m vs 20m), so it survives; the merged range spans the
	// union and the duration is recomputed from it.
	assert.Equal(t, b.ID, merged.ID)
	assert.True(t, merged.StartTime.Equal(base))
	assert.True(t, merged.EndTime.Equal(base.Add(45*time.Minute)))
	assert.Equal(t, int64(2700), merged.DurationSec)
	assert.ElementsMatch(t, []int64{x.ID, y.ID}, merged.TagIDs())

	// The other input is gone.
	_, err = env.svc.Activity(ctx, a.ID, domain.SourceManual)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMergeEarliestAndLatest(t *testing.T) {
	t.Run("earliest keeps the first starter", func(t *testing.T) {
		env := setupService(t)
		a, b, _, _ := mergeFixture(t, env)

		merged, err := env.svc.MergeActivities(context.Background(),
			keysFor(domain.SourceManual, b.ID, a.ID), domain.MergeEarliest)
		require.NoError(t, err)
		assert.Equal(t, a.ID, merged.ID, "survivor is chosen by start order, not argument order")
		assert.Equal(t, int64(2700), merged.DurationSec)
	})

	t.Run("latest keeps the last starter", func(t *testing.T) {
		env := setupService(t)
		a, b, _, _ := mergeFixture(t, env)

		merged, err := env.svc.MergeActivities(context.Background(),
			keysFor(domain.SourceManual, a.ID, b.ID), domain.MergeLatest)
		require.NoError(t, err)
		assert.Equal(t, b.ID, merged.ID)
	})
}

func TestMergeDefaultsToLongest(t *testing.T) {
	env := setupService(t)
	a, b, _, _ := mergeFixture(t, env)

	merged, err := env.svc.MergeActivities(context.Background(),
		keysFor(domain.SourceManual, a.ID, b.ID), "")
	require.NoError(t, err)
	assert.Equal(t, b.ID, merged.ID)
}

func TestMergeRejectsUnknownStrategy(t *testing.T) {
	env := setupService(t)
	a, b, _, _ := mergeFixture(t, env)

	_, err := env.svc.MergeActivities(context.Background(),
		keysFor(domain.SourceManual, a.ID, b.ID), domain.MergeStrategy("newest"))
	assert.Error(t, err)
}

func TestMergeRejectsCrossSource(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	base := testutil.BaseTime()

	entry := testutil.NewTestEntry("Manual",
		testutil.WithEntryRange(base, base.Add(time.Hour)))
	require.NoError(t, env.entries.Create(ctx, entry))
	usage := testutil.NewTestUsage("Editor",
		testutil.WithUsageRange(base, base.Add(time.Hour)))
	require.NoError(t, env.usage.Create(ctx, usage))

	_, err := env.svc.MergeActivities(ctx, []domain.ActivityKey{
		{ID: entry.ID, SourceType: domain.SourceManual},
		{ID: usage.ID, SourceType: domain.SourceAutomatic},
	}, domain.MergeLongest)
	require.ErrorIs(t, err, domain.ErrCrossSourceMerge)

	// Both inputs survive a rejected merge.
	_, err = env.svc.Activity(ctx, entry.ID, domain.SourceManual)
	require.NoError(t, err)
	_, err = env.svc.Activity(ctx, usage.ID, domain.SourceAutomatic)
	require.NoError(t, err)
}

func TestMergeSkipsMissingInputs(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	a, b, _, _ := mergeFixture(t, env)

	merged, err := env.svc.MergeActivities(ctx,
		keysFor(domain.SourceManual, a.ID, 9999, b.ID), domain.MergeLongest)
	require.NoError(t, err, "vanished ids are skipped, not fatal")
	assert.Equal(t, b.ID, merged.ID)
}

func TestMergeIgnoresDuplicateKeys(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	a, b, _, _ := mergeFixture(t, env)

	// A repeated key counts once; the second delete of the same row must
	// not abort the transaction.
	merged, err := env.svc.MergeActivities(ctx,
		keysFor(domain.SourceManual, a.ID, b.ID, b.ID, a.ID), domain.MergeLongest)
	require.NoError(t, err)
	assert.Equal(t, b.ID, merged.ID)
	assert.Equal(t, int64(2700), merged.DurationSec)

	_, err = env.svc.Activity(ctx, a.ID, domain.SourceManual)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMergeSingleSurvivorIsReturnedUnchanged(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry("Lone")
	require.NoError(t, env.entries.Create(ctx, entry))

	merged, err := env.svc.MergeActivities(ctx,
		keysFor(domain.SourceManual, entry.ID, 9999), domain.MergeLongest)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, merged.ID)
	assert.Equal(t, "Lone", merged.Title)
}

func TestMergeNoActivities(t *testing.T) {
	env := setupService(t)

	_, err := env.svc.MergeActivities(context.Background(),
		keysFor(domain.SourceManual, 9998, 9999), domain.MergeLongest)
	assert.ErrorIs(t, err, domain.ErrNoActivities)
}

func TestMergeAutomaticMovesTimeFields(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	base := testutil.BaseTime()

	// Automatic captures forbid editing time fields, but the merge engine
	// writes the consolidated range below that policy.
	first := testutil.NewTestUsage("Editor",
		testutil.WithUsageRange(base, base.Add(20*time.Minute)))
	require.NoError(t, env.usage.Create(ctx, first))
	second := testutil.NewTestUsage("Editor",
		testutil.WithUsageRange(base.Add(10*time.Minute), base.Add(40*time.Minute)))
	require.NoError(t, env.usage.Create(ctx, second))

	merged, err := env.svc.MergeActivities(ctx,
		keysFor(domain.SourceAutomatic, first.ID, second.ID), domain.MergeLongest)
	require.NoError(t, err)
	assert.True(t, merged.StartTime.Equal(base))
	assert.True(t, merged.EndTime.Equal(base.Add(40*time.Minute)))
	assert.Equal(t, int64(2400), merged.DurationSec)
}
