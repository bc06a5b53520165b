package models

// SaveDayRequest writes the summary and favorite flag for a date.
type SaveDayRequest struct {
	Summary    string `json:"summary" validate:"max=10000"`
	IsFavorite bool   `json:"is_favorite"`
}

// CreateLocationRequest registers a named coordinate pair.
type CreateLocationRequest struct {
	Lat  float64 `json:"lat" validate:"latitude"`
	Lon  float64 `json:"lon" validate:"longitude"`
	Name string  `json:"name" validate:"max=120"`
}

// CreateTagRequest registers a new tag name.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50,tagname"`
}

// TagEntryRequest links a day to a tag with optional content.
type TagEntryRequest struct {
	DayID   int64   `json:"day_id" validate:"required"`
	TagID   int64   `json:"tag_id" validate:"required"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=10000"`
}

// LocationEntryRequest links a day to a location.
type LocationEntryRequest struct {
	DayID      int64 `json:"day_id" validate:"required"`
	LocationID int64 `json:"location_id" validate:"required"`
}

// UpdateBackupPreferencesRequest rewrites the backup settings.
type UpdateBackupPreferencesRequest struct {
	Enabled       bool   `json:"enabled"`
	FrequencyDays int    `json:"frequency_days" validate:"gte=1,lte=90"`
	TimeOfDay     string `json:"time_of_day" validate:"timeofday"`
	AllowMetered  bool   `json:"allow_metered"`
}

// UpdateNotificationPreferencesRequest rewrites the notification settings.
type UpdateNotificationPreferencesRequest struct {
	Enabled              bool   `json:"enabled"`
	DailyReminderEnabled bool   `json:"daily_reminder_enabled"`
	DailyReminderTime    string `json:"daily_reminder_time" validate:"timeofday"`
	MemoriesEnabled      bool   `json:"memories_enabled"`
}
