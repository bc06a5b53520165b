package services

import (
	"context"
	"time"

	"daybook/models"
)

// LocationService handles business logic for locations
type LocationService struct {
	repo LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Get retrieves a location with its day associations
func (ls *LocationService) Get(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := ls.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

// List returns every known location, most recently used first
func (ls *LocationService) List(ctx context.Context) ([]models.LocationProperties, error) {
	return ls.repo.GetAllLocationProperties(ctx)
}

// ObserveAll subscribes to the location list
func (ls *LocationService) ObserveAll(ctx context.Context) <-chan []models.LocationProperties {
	return ls.repo.ObserveAllLocationProperties(ctx)
}

// Create inserts a new location and returns its id
func (ls *LocationService) Create(ctx context.Context, props *models.LocationProperties) (int64, error) {
	if props.LastUsedAt == 0 {
		props.LastUsedAt = time.Now().Unix()
	}
	return ls.repo.InsertLocationProperties(ctx, props)
}

// Update rewrites a location's properties
func (ls *LocationService) Update(ctx context.Context, props *models.LocationProperties) error {
	return ls.repo.UpdateLocationProperties(ctx, props)
}

// Delete removes a location and all its day associations
func (ls *LocationService) Delete(ctx context.Context, id int64) error {
	return ls.repo.DeleteLocation(ctx, id)
}

// AttachToDay links a day to an existing location and refreshes the
// location's last-used timestamp. Re-attaching an already linked pair is a
// no-op.
func (ls *LocationService) AttachToDay(ctx context.Context, dayID, locationID int64) error {
	loc, err := ls.repo.GetLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return ErrLocationNotFound
	}

	if err := ls.repo.InsertLocationEntry(ctx, dayID, locationID); err != nil {
		return err
	}

	loc.LastUsedAt = time.Now().Unix()
	return ls.repo.UpdateLocationProperties(ctx, &loc.LocationProperties)
}

// DetachFromDay removes the link between a day and a location
func (ls *LocationService) DetachFromDay(ctx context.Context, dayID, locationID int64) error {
	return ls.repo.DeleteLocationEntry(ctx, dayID, locationID)
}

// AttachBatch links several day/location pairs atomically; the whole batch
// fails if any pair already exists
func (ls *LocationService) AttachBatch(ctx context.Context, entries []models.LocationEntry) error {
	return ls.repo.InsertLocationEntries(ctx, entries)
}
