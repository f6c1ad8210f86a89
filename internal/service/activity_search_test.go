package service

import (
	"context"
	"testing"
	"time"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchActivitiesLookback(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	recent := testutil.NewTestEntry("Quarterly report",
		testutil.WithEntryRange(now.AddDate(0, 0, -5), now.AddDate(0, 0, -5).Add(time.Hour)))
	require.NoError(t, env.entries.Create(ctx, recent))

	older := testutil.NewTestEntry("Quarterly planning",
		testutil.WithEntryRange(now.AddDate(0, 0, -60), now.AddDate(0, 0, -60).Add(time.Hour)))
	require.NoError(t, env.entries.Create(ctx, older))

	ancient := testutil.NewTestEntry("Quarterly retro",
		testutil.WithEntryRange(now.AddDate(0, 0, -120), now.AddDate(0, 0, -120).Add(time.Hour)))
	require.NoError(t, env.entries.Create(ctx, ancient))

	t.Run("empty query looks back 30 days", func(t *testing.T) {
		activities, err := env.svc.SearchActivities(ctx, "", nil)
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, "Quarterly report", activities[0].Title)
	})

	t.Run("query widens the lookback to 90 days", func(t *testing.T) {
		activities, err := env.svc.SearchActivities(ctx, "quarterly", nil)
		require.NoError(t, err)
		require.Len(t, activities, 2, "the 120-day-old entry stays outside even the wide window")
	})

	t.Run("query filters within the window", func(t *testing.T) {
		activities, err := env.svc.SearchActivities(ctx, "planning", nil)
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Equal(t, "Quarterly planning", activities[0].Title)
	})

	t.Run("additional filter predicates still apply", func(t *testing.T) {
		activities, err := env.svc.SearchActivities(ctx, "quarterly",
			&domain.ActivityFilter{SourceTypes: []domain.SourceType{domain.SourceAutomatic}})
		require.NoError(t, err)
		assert.Empty(t, activities)
	})

	t.Run("configured lookback overrides the defaults", func(t *testing.T) {
		narrow := NewActivityService(
			env.entries, env.usage, env.pomodoros, env.tags,
			testutil.NewTestUoW(env.db),
			WithSearchLookback(3, 70),
		)

		activities, err := narrow.SearchActivities(ctx, "", nil)
		require.NoError(t, err)
		assert.Empty(t, activities, "the 5-day-old entry falls outside a 3-day window")

		activities, err = narrow.SearchActivities(ctx, "quarterly", nil)
		require.NoError(t, err)
		require.Len(t, activities, 2)
	})
}
