package database

import (
	"context"
	"testing"
	"time"

	"daybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestDays(t *testing.T, repo *Repository, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.InsertDay(context.Background(), models.NewDay(id, "entry")))
	}
}

func TestLocationUniqueness(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	props := &models.LocationProperties{
		Lat: 48.8566, Lon: 2.3522, Name: "Paris", LastUsedAt: time.Now().Unix(),
	}
	id, err := repo.InsertLocationProperties(ctx, props)
	require.NoError(t, err)
	assert.Positive(t, id)

	t.Run("Duplicate coordinates fail with ErrConflict", func(t *testing.T) {
		_, err := repo.InsertLocationProperties(ctx, &models.LocationProperties{
			Lat: 48.8566, Lon: 2.3522, Name: "Paris again", LastUsedAt: time.Now().Unix(),
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Coordinates are stored at 6-decimal precision", func(t *testing.T) {
		// Differs only past the sixth decimal, so it collides after rounding
		_, err := repo.InsertLocationProperties(ctx, &models.LocationProperties{
			Lat: 48.8566000004, Lon: 2.3522000004, Name: "Rounded", LastUsedAt: time.Now().Unix(),
		})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestLocationEntryIdempotency(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	insertTestDays(t, repo, 1, 2, 3)
	locID, err := repo.InsertLocationProperties(ctx, &models.LocationProperties{
		Lat: 1, Lon: 2, Name: "Somewhere", LastUsedAt: time.Now().Unix(),
	})
	require.NoError(t, err)

	t.Run("Single-entry insert is a no-op on duplicate", func(t *testing.T) {
		require.NoError(t, repo.InsertLocationEntry(ctx, 1, locID))
		require.NoError(t, repo.InsertLocationEntry(ctx, 1, locID))

		loc, err := repo.GetLocation(ctx, locID)
		require.NoError(t, err)
		assert.Len(t, loc.Entries, 1)
	})

	t.Run("Batch insert fails whole batch on any duplicate", func(t *testing.T) {
		err := repo.InsertLocationEntries(ctx, []models.LocationEntry{
			{DayID: 2, LocationID: locID},
			{DayID: 1, LocationID: locID}, // duplicate
			{DayID: 3, LocationID: locID},
		})
		assert.ErrorIs(t, err, ErrConflict)

		// Atomic: nothing from the batch landed
		loc, err := repo.GetLocation(ctx, locID)
		require.NoError(t, err)
		assert.Len(t, loc.Entries, 1)
	})

	t.Run("Batch insert without duplicates succeeds", func(t *testing.T) {
		require.NoError(t, repo.InsertLocationEntries(ctx, []models.LocationEntry{
			{DayID: 2, LocationID: locID},
			{DayID: 3, LocationID: locID},
		}))

		loc, err := repo.GetLocation(ctx, locID)
		require.NoError(t, err)
		assert.Len(t, loc.Entries, 3)
	})
}

func TestLocationCascadeDelete(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	insertTestDays(t, repo, 10)
	locID, err := repo.InsertLocationProperties(ctx, &models.LocationProperties{
		Lat: 5, Lon: 6, Name: "Doomed", LastUsedAt: time.Now().Unix(),
	})
	require.NoError(t, err)
	require.NoError(t, repo.InsertLocationEntry(ctx, 10, locID))

	require.NoError(t, repo.DeleteLocation(ctx, locID))

	var entries int
	require.NoError(t, repo.db.QueryRow(
		"SELECT COUNT(*) FROM location_entries WHERE location_id = ?", locID).Scan(&entries))
	assert.Zero(t, entries)

	got, err := repo.GetLocation(ctx, locID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestObserveAllLocationProperties(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.ObserveAllLocationProperties(ctx)
	assert.Empty(t, recv(t, stream))

	_, err := repo.InsertLocationProperties(ctx, &models.LocationProperties{
		Lat: 1, Lon: 1, Name: "First", LastUsedAt: time.Now().Unix(),
	})
	require.NoError(t, err)

	locations := recv(t, stream)
	require.Len(t, locations, 1)
	assert.Equal(t, "First", locations[0].Name)
}
