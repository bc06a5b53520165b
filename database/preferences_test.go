package database

import (
	"context"
	"fmt"
	"testing"

	"daybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentSearches(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Case-insensitive de-dup, most recent wins", func(t *testing.T) {
		require.NoError(t, repo.InsertRecentSearch(ctx, "Paris"))
		require.NoError(t, repo.InsertRecentSearch(ctx, "paris"))

		history, err := repo.GetRecentSearches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"paris"}, history)
	})

	t.Run("Capped at five, oldest evicted first", func(t *testing.T) {
		require.NoError(t, repo.ClearRecentSearches(ctx))

		for i := 1; i <= 6; i++ {
			require.NoError(t, repo.InsertRecentSearch(ctx, fmt.Sprintf("term-%d", i)))
		}

		history, err := repo.GetRecentSearches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"term-6", "term-5", "term-4", "term-3", "term-2"}, history)
	})

	t.Run("Blank terms are ignored", func(t *testing.T) {
		require.NoError(t, repo.ClearRecentSearches(ctx))
		require.NoError(t, repo.InsertRecentSearch(ctx, "   "))

		history, err := repo.GetRecentSearches(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestBackupPreferences(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Defaults before any write", func(t *testing.T) {
		prefs, err := repo.GetBackupPreferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultBackupPreferences(), prefs)
	})

	t.Run("Set then get round-trips", func(t *testing.T) {
		want := models.BackupPreferences{
			Enabled:       true,
			FrequencyDays: 3,
			TimeOfDay:     "04:30",
			AllowMetered:  true,
		}
		require.NoError(t, repo.SetBackupPreferences(ctx, want))

		got, err := repo.GetBackupPreferences(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestNotificationPreferences(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	prefs, err := repo.GetNotificationPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNotificationPreferences(), prefs)

	prefs.DailyReminderEnabled = true
	prefs.DailyReminderTime = "21:15"
	require.NoError(t, repo.SetNotificationPreferences(ctx, prefs))

	got, err := repo.GetNotificationPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestObserveBackupPreferences(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.ObserveBackupPreferences(ctx)
	assert.Equal(t, models.DefaultBackupPreferences(), recv(t, stream))

	updated := models.DefaultBackupPreferences()
	updated.Enabled = true
	require.NoError(t, repo.SetBackupPreferences(ctx, updated))

	assert.True(t, recv(t, stream).Enabled)
}
