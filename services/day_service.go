package services

import (
	"context"
	"errors"

	"daybook/database"
	"daybook/models"
)

// DayService handles business logic for journal entries
type DayService struct {
	repo DayRepository
}

// NewDayService creates a new day service
func NewDayService(repo DayRepository) *DayService {
	return &DayService{repo: repo}
}

// Get retrieves the entry for an epoch-day id
func (ds *DayService) Get(ctx context.Context, id int64) (*models.Day, error) {
	day, err := ds.repo.GetDay(ctx, id)
	if err != nil {
		return nil, err
	}

	// If the day doesn't exist, return an empty entry for that date
	if day == nil {
		return &models.Day{
			ID:   id,
			Date: models.DateOfEpochDay(id),
		}, nil
	}

	return day, nil
}

// Ensure creates an empty entry for the date if none exists yet. A
// concurrent or earlier insert of the same id is not an error: the
// duplicate conflict is caught and ignored here, the one write path with
// idempotent insert semantics for days.
func (ds *DayService) Ensure(ctx context.Context, id int64) error {
	err := ds.repo.InsertDay(ctx, models.NewDay(id, ""))
	if errors.Is(err, database.ErrConflict) {
		return nil
	}
	return err
}

// Save writes the summary and favorite flag for a date, creating the entry
// on first save and updating it afterwards.
func (ds *DayService) Save(ctx context.Context, id int64, summary string, isFavorite bool) (*models.Day, error) {
	existing, err := ds.repo.GetDay(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		day := models.NewDay(id, summary)
		day.IsFavorite = isFavorite
		if err := ds.repo.InsertDay(ctx, day); err != nil {
			return nil, err
		}
		return day, nil
	}

	existing.Summary = summary
	existing.IsFavorite = isFavorite
	if err := ds.repo.UpdateDay(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ToggleFavorite flips the favorite flag for an existing entry
func (ds *DayService) ToggleFavorite(ctx context.Context, id int64) (*models.Day, error) {
	day, err := ds.repo.GetDay(ctx, id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}

	day.IsFavorite = !day.IsFavorite
	if err := ds.repo.UpdateDay(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// Observe subscribes to a single entry
func (ds *DayService) Observe(ctx context.Context, id int64) <-chan *models.Day {
	return ds.repo.ObserveDay(ctx, id)
}

// ObserveRange subscribes to the entries between two epoch-day ids,
// inclusive, newest first
func (ds *DayService) ObserveRange(ctx context.Context, startID, endID int64) <-chan []models.Day {
	if startID > endID {
		startID, endID = endID, startID
	}
	return ds.repo.ObserveDayRange(ctx, startID, endID)
}

// OnThisDay subscribes to the entries sharing a calendar date across all
// years, newest first
func (ds *DayService) OnThisDay(ctx context.Context, month, dayOfMonth int) <-chan []models.Day {
	return ds.repo.ObserveDaysByCalendarDate(ctx, month, dayOfMonth)
}
