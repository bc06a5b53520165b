package services

import (
	"context"

	"daybook/models"
)

// DayRepository defines the interface for day data access
type DayRepository interface {
	GetDay(ctx context.Context, id int64) (*models.Day, error)
	ObserveDay(ctx context.Context, id int64) <-chan *models.Day
	ObserveDayRange(ctx context.Context, startID, endID int64) <-chan []models.Day
	ObserveDaysByCalendarDate(ctx context.Context, month, dayOfMonth int) <-chan []models.Day
	InsertDay(ctx context.Context, day *models.Day) error
	UpdateDay(ctx context.Context, day *models.Day) error
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	GetAllLocationProperties(ctx context.Context) ([]models.LocationProperties, error)
	ObserveAllLocationProperties(ctx context.Context) <-chan []models.LocationProperties
	InsertLocationProperties(ctx context.Context, props *models.LocationProperties) (int64, error)
	UpdateLocationProperties(ctx context.Context, props *models.LocationProperties) error
	DeleteLocation(ctx context.Context, id int64) error
	InsertLocationEntry(ctx context.Context, dayID, locationID int64) error
	InsertLocationEntries(ctx context.Context, entries []models.LocationEntry) error
	DeleteLocationEntry(ctx context.Context, dayID, locationID int64) error
	DeleteLocationEntries(ctx context.Context, entries []models.LocationEntry) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
	GetTagPropertiesByName(ctx context.Context, name string) (*models.TagProperties, error)
	GetAllTagProperties(ctx context.Context) ([]models.TagProperties, error)
	ObserveAllTagProperties(ctx context.Context) <-chan []models.TagProperties
	InsertTagProperties(ctx context.Context, props *models.TagProperties) (int64, error)
	UpdateTagProperties(ctx context.Context, props *models.TagProperties) error
	DeleteTag(ctx context.Context, id int64) error
	InsertTagEntry(ctx context.Context, entry *models.TagEntry) error
	InsertTagEntries(ctx context.Context, entries []models.TagEntry) error
	UpdateTagEntry(ctx context.Context, entry *models.TagEntry) error
	UpdateTagEntries(ctx context.Context, entries []models.TagEntry) error
	DeleteTagEntry(ctx context.Context, dayID, tagID int64) error
	DeleteTagEntries(ctx context.Context, entries []models.TagEntry) error
}

// SearchRepository defines the interface for full-text search access
type SearchRepository interface {
	SearchDays(ctx context.Context, query string) ([]models.Day, error)
	ObserveSearch(ctx context.Context, query string) <-chan []models.Day
	GetRecentSearches(ctx context.Context) ([]string, error)
	ObserveRecentSearches(ctx context.Context) <-chan []string
	InsertRecentSearch(ctx context.Context, term string) error
	ClearRecentSearches(ctx context.Context) error
}

// PreferencesRepository defines the interface for settings access
type PreferencesRepository interface {
	GetBackupPreferences(ctx context.Context) (models.BackupPreferences, error)
	SetBackupPreferences(ctx context.Context, prefs models.BackupPreferences) error
	ObserveBackupPreferences(ctx context.Context) <-chan models.BackupPreferences
	GetNotificationPreferences(ctx context.Context) (models.NotificationPreferences, error)
	SetNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error
	ObserveNotificationPreferences(ctx context.Context) <-chan models.NotificationPreferences
}
