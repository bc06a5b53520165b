package models

// TagProperties is the persisted identity of a tag. Names are unique, but
// uniqueness is enforced by the service layer rather than an index.
type TagProperties struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LastUsedAt int64  `json:"last_used_at"`
}

// Tag is a tag together with the day associations that use it.
type Tag struct {
	TagProperties
	Entries []TagEntry `json:"entries"`
}

// TagEntry links a Day to a Tag, optionally carrying entry-specific note
// content. Content is mirrored into the full-text index.
type TagEntry struct {
	DayID   int64   `json:"day_id"`
	TagID   int64   `json:"tag_id"`
	Content *string `json:"content,omitempty"`
}
