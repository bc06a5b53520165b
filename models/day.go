package models

import "time"

// Day is a single journal entry. Its ID is the epoch day (days since
// 1970-01-01 UTC), so a calendar date maps to exactly one row.
type Day struct {
	ID             int64  `json:"id"`
	Summary        string `json:"summary"`
	IsFavorite     bool   `json:"is_favorite"`
	CreatedAt      int64  `json:"created_at"`
	LastModifiedAt int64  `json:"last_modified_at"`
	Date           Date   `json:"date"`

	// Hydrated on point lookups, empty on list queries.
	Tags     []TagEntry `json:"tags,omitempty"`
	Location *Location  `json:"location,omitempty"`
}

// Date is the calendar date of a Day, denormalized from the epoch-day id
// so month/day-of-month queries don't need date arithmetic in SQL.
type Date struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	DayOfMonth int `json:"day_of_month"`
}

// EpochDay converts a wall-clock time to its epoch-day id in UTC.
func EpochDay(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// DateOfEpochDay recovers the calendar date for an epoch-day id.
func DateOfEpochDay(id int64) Date {
	y, m, d := time.Unix(id*86400, 0).UTC().Date()
	return Date{Year: y, Month: int(m), DayOfMonth: d}
}

// NewDay builds a Day for the given epoch-day id with timestamps set to now.
func NewDay(id int64, summary string) *Day {
	now := time.Now().Unix()
	return &Day{
		ID:             id,
		Summary:        summary,
		CreatedAt:      now,
		LastModifiedAt: now,
		Date:           DateOfEpochDay(id),
	}
}
