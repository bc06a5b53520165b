package models

import "math"

// LocationProperties is the persisted identity of a location: a named
// coordinate pair. The (lat, lon) pair is unique across the store.
type LocationProperties struct {
	ID         int64   `json:"id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Name       string  `json:"name"`
	LastUsedAt int64   `json:"last_used_at"`
}

// Location is a location together with the day associations that use it.
type Location struct {
	LocationProperties
	Entries []LocationEntry `json:"entries"`
}

// LocationEntry links a Day to a Location.
type LocationEntry struct {
	DayID      int64 `json:"day_id"`
	LocationID int64 `json:"location_id"`
}

// RoundCoordinate truncates a coordinate to the 6-decimal precision the
// store keys locations by.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
