package database

import (
	"context"
	"testing"

	"daybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDays(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.InsertDay(ctx, models.NewDay(100, "hiking in the mountains")))
	require.NoError(t, repo.InsertDay(ctx, models.NewDay(200, "quiet day at home")))
	require.NoError(t, repo.InsertDay(ctx, models.NewDay(300, "more hiking, new trail")))

	t.Run("Matches day summaries", func(t *testing.T) {
		days, err := repo.SearchDays(ctx, "hiking")
		require.NoError(t, err)
		require.Len(t, days, 2)
		// Newest first
		assert.Equal(t, int64(300), days[0].ID)
		assert.Equal(t, int64(100), days[1].ID)
	})

	t.Run("Matches tag entry content", func(t *testing.T) {
		tagID := insertTestTag(t, repo, "food")
		content := "amazing ramen place"
		require.NoError(t, repo.InsertTagEntry(ctx, &models.TagEntry{
			DayID: 200, TagID: tagID, Content: &content,
		}))

		days, err := repo.SearchDays(ctx, "ramen")
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, int64(200), days[0].ID)
	})

	t.Run("Index follows summary updates", func(t *testing.T) {
		day, err := repo.GetDay(ctx, 200)
		require.NoError(t, err)
		day.Summary = "went sailing instead"
		require.NoError(t, repo.UpdateDay(ctx, day))

		days, err := repo.SearchDays(ctx, "sailing")
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, int64(200), days[0].ID)

		days, err = repo.SearchDays(ctx, "quiet")
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("A day matching both sources appears once", func(t *testing.T) {
		tagID := insertTestTag(t, repo, "outdoors")
		content := "hiking gear held up"
		require.NoError(t, repo.InsertTagEntry(ctx, &models.TagEntry{
			DayID: 100, TagID: tagID, Content: &content,
		}))

		days, err := repo.SearchDays(ctx, "hiking")
		require.NoError(t, err)
		assert.Len(t, days, 2)
	})

	t.Run("Empty query returns empty result", func(t *testing.T) {
		days, err := repo.SearchDays(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, days)
	})
}

func TestObserveSearch(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.ObserveSearch(ctx, "birthday")
	assert.Empty(t, recv(t, stream))

	require.NoError(t, repo.InsertDay(ctx, models.NewDay(400, "birthday dinner")))

	days := recv(t, stream)
	require.Len(t, days, 1)
	assert.Equal(t, int64(400), days[0].ID)
}
