package database

import (
	"context"
	"database/sql"
	"time"

	"daybook/models"
)

// ==================== DAY OPERATIONS ====================

// dayTables are the tables a hydrated Day depends on; a change to any of
// them re-emits day subscriptions.
var dayTables = []string{"days", "tag_entries", "location_entries", "locations"}

// GetDay retrieves a single day with its tag entries and location. Returns
// (nil, nil) when no entry exists for the id.
func (r *Repository) GetDay(ctx context.Context, id int64) (*models.Day, error) {
	day, err := r.getDayRow(ctx, id)
	if err != nil || day == nil {
		return day, err
	}
	if err := r.hydrateDay(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (r *Repository) getDayRow(ctx context.Context, id int64) (*models.Day, error) {
	var day models.Day
	err := r.db.QueryRowContext(ctx, `
		SELECT id, summary, is_favorite, created_at, last_modified_at,
		       year, month, day_of_month
		FROM days
		WHERE id = ?
	`, id).Scan(
		&day.ID, &day.Summary, &day.IsFavorite,
		&day.CreatedAt, &day.LastModifiedAt,
		&day.Date.Year, &day.Date.Month, &day.Date.DayOfMonth,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (r *Repository) hydrateDay(ctx context.Context, day *models.Day) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day_id, tag_id, content
		FROM tag_entries
		WHERE day_id = ?
		ORDER BY tag_id ASC
	`, day.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.TagEntry
		var content sql.NullString
		if err := rows.Scan(&entry.DayID, &entry.TagID, &content); err != nil {
			return err
		}
		if content.Valid {
			entry.Content = &content.String
		}
		day.Tags = append(day.Tags, entry)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var loc models.Location
	err = r.db.QueryRowContext(ctx, `
		SELECT l.id, l.lat, l.lon, l.name, l.last_used_at
		FROM locations l
		JOIN location_entries le ON le.location_id = l.id
		WHERE le.day_id = ?
		LIMIT 1
	`, day.ID).Scan(&loc.ID, &loc.Lat, &loc.Lon, &loc.Name, &loc.LastUsedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	day.Location = &loc
	return nil
}

// ObserveDay emits the hydrated day (or nil when absent) on subscription
// and again after every affecting change.
func (r *Repository) ObserveDay(ctx context.Context, id int64) <-chan *models.Day {
	return observe(ctx, r.notifier, dayTables, func(ctx context.Context) (*models.Day, error) {
		return r.GetDay(ctx, id)
	})
}

// ObserveDayRange emits all days with startID <= id <= endID, newest first.
func (r *Repository) ObserveDayRange(ctx context.Context, startID, endID int64) <-chan []models.Day {
	return observe(ctx, r.notifier, []string{"days"}, func(ctx context.Context) ([]models.Day, error) {
		return r.queryDays(ctx, `
			SELECT id, summary, is_favorite, created_at, last_modified_at,
			       year, month, day_of_month
			FROM days
			WHERE id >= ? AND id <= ?
			ORDER BY id DESC
		`, startID, endID)
	})
}

// ObserveDaysByCalendarDate emits the days matching a month/day-of-month
// pair across all years, newest first ("on this day" queries).
func (r *Repository) ObserveDaysByCalendarDate(ctx context.Context, month, dayOfMonth int) <-chan []models.Day {
	return observe(ctx, r.notifier, []string{"days"}, func(ctx context.Context) ([]models.Day, error) {
		return r.queryDays(ctx, `
			SELECT id, summary, is_favorite, created_at, last_modified_at,
			       year, month, day_of_month
			FROM days
			WHERE month = ? AND day_of_month = ?
			ORDER BY id DESC
		`, month, dayOfMonth)
	})
}

func (r *Repository) queryDays(ctx context.Context, query string, args ...any) ([]models.Day, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	days := make([]models.Day, 0)
	for rows.Next() {
		var day models.Day
		if err := rows.Scan(
			&day.ID, &day.Summary, &day.IsFavorite,
			&day.CreatedAt, &day.LastModifiedAt,
			&day.Date.Year, &day.Date.Month, &day.Date.DayOfMonth,
		); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// InsertDay creates a new day row. A duplicate id fails with ErrConflict;
// entries are never overwritten on insert, only via UpdateDay.
func (r *Repository) InsertDay(ctx context.Context, day *models.Day) error {
	date := models.DateOfEpochDay(day.ID)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO days (id, summary, is_favorite, created_at, last_modified_at,
			year, month, day_of_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		day.ID, day.Summary, day.IsFavorite,
		day.CreatedAt, day.LastModifiedAt,
		date.Year, date.Month, date.DayOfMonth,
	)
	if err != nil {
		return mapError(err)
	}

	day.Date = date
	r.notifier.Notify("days")
	return nil
}

// UpdateDay replaces the full row and bumps last_modified_at.
func (r *Repository) UpdateDay(ctx context.Context, day *models.Day) error {
	day.LastModifiedAt = time.Now().Unix()
	_, err := r.db.ExecContext(ctx, `
		UPDATE days SET
			summary = ?,
			is_favorite = ?,
			last_modified_at = ?
		WHERE id = ?
	`, day.Summary, day.IsFavorite, day.LastModifiedAt, day.ID)
	if err != nil {
		return err
	}

	r.notifier.Notify("days")
	return nil
}
