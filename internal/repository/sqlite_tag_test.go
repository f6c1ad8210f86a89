package repository

import (
	"context"
	"testing"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreateAndLookup(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(database)
	ctx := context.Background()

	tag, err := repo.CreateTag(ctx, "deep-work", "#ff8800")
	require.NoError(t, err)
	assert.Equal(t, "deep-work", tag.Name)
	assert.Equal(t, "#ff8800", tag.Color)

	byName, err := repo.GetTagByName(ctx, "DEEP-WORK")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, byName.ID, "name lookup is case-insensitive")

	_, err = repo.GetTagByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTagsForReplacesAssociation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(database)
	ctx := context.Background()

	a, err := repo.CreateTag(ctx, "alpha", "")
	require.NoError(t, err)
	b, err := repo.CreateTag(ctx, "beta", "")
	require.NoError(t, err)
	c, err := repo.CreateTag(ctx, "gamma", "")
	require.NoError(t, err)

	table := domain.SourceManual.SourceTable()
	require.NoError(t, repo.SetTagsFor(ctx, 1, table, []int64{a.ID, b.ID}))

	tags, err := repo.TagsFor(ctx, 1, table)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	// A second set replaces the whole association, never appends.
	require.NoError(t, repo.SetTagsFor(ctx, 1, table, []int64{c.ID}))
	tags, err = repo.TagsFor(ctx, 1, table)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "gamma", tags[0].Name)

	// Empty list clears everything.
	require.NoError(t, repo.SetTagsFor(ctx, 1, table, nil))
	tags, err = repo.TagsFor(ctx, 1, table)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagAssociationsAreScopedBySourceTable(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(database)
	ctx := context.Background()

	tag, err := repo.CreateTag(ctx, "shared", "")
	require.NoError(t, err)

	// The same record id exists in two source tables; associations must
	// not bleed between them.
	require.NoError(t, repo.SetTagsFor(ctx, 1, domain.SourceManual.SourceTable(), []int64{tag.ID}))

	manual, err := repo.TagsFor(ctx, 1, domain.SourceManual.SourceTable())
	require.NoError(t, err)
	assert.Len(t, manual, 1)

	automatic, err := repo.TagsFor(ctx, 1, domain.SourceAutomatic.SourceTable())
	require.NoError(t, err)
	assert.Empty(t, automatic)

	require.NoError(t, repo.DeleteTagsFor(ctx, 1, domain.SourceManual.SourceTable()))
	manual, err = repo.TagsFor(ctx, 1, domain.SourceManual.SourceTable())
	require.NoError(t, err)
	assert.Empty(t, manual)
}

func TestListTagsOrderedByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTagRepo(database)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := repo.CreateTag(ctx, name, "")
		require.NoError(t, err)
	}

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "mid", tags[1].Name)
	assert.Equal(t, "zeta", tags[2].Name)
}
