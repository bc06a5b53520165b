package database

import (
	"context"
	"database/sql"

	"daybook/models"
)

// ==================== LOCATION OPERATIONS ====================

// GetLocation retrieves a location with its day associations. Returns
// (nil, nil) when the id is unknown.
func (r *Repository) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	var loc models.Location
	err := r.db.QueryRowContext(ctx, `
		SELECT id, lat, lon, name, last_used_at
		FROM locations
		WHERE id = ?
	`, id).Scan(&loc.ID, &loc.Lat, &loc.Lon, &loc.Name, &loc.LastUsedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT day_id, location_id
		FROM location_entries
		WHERE location_id = ?
		ORDER BY day_id DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loc.Entries = make([]models.LocationEntry, 0)
	for rows.Next() {
		var entry models.LocationEntry
		if err := rows.Scan(&entry.DayID, &entry.LocationID); err != nil {
			return nil, err
		}
		loc.Entries = append(loc.Entries, entry)
	}

	return &loc, rows.Err()
}

// GetAllLocationProperties lists every location, most recently used first.
func (r *Repository) GetAllLocationProperties(ctx context.Context) ([]models.LocationProperties, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lat, lon, name, last_used_at
		FROM locations
		ORDER BY last_used_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	props := make([]models.LocationProperties, 0)
	for rows.Next() {
		var p models.LocationProperties
		if err := rows.Scan(&p.ID, &p.Lat, &p.Lon, &p.Name, &p.LastUsedAt); err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, rows.Err()
}

// ObserveAllLocationProperties is the live variant of GetAllLocationProperties.
func (r *Repository) ObserveAllLocationProperties(ctx context.Context) <-chan []models.LocationProperties {
	return observe(ctx, r.notifier, []string{"locations"}, r.GetAllLocationProperties)
}

// InsertLocationProperties creates a location and returns its generated id.
// Coordinates are stored at 6-decimal precision; a duplicate (lat, lon)
// pair fails with ErrConflict.
func (r *Repository) InsertLocationProperties(ctx context.Context, props *models.LocationProperties) (int64, error) {
	props.Lat = models.RoundCoordinate(props.Lat)
	props.Lon = models.RoundCoordinate(props.Lon)

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (lat, lon, name, last_used_at)
		VALUES (?, ?, ?, ?)
	`, props.Lat, props.Lon, props.Name, props.LastUsedAt)
	if err != nil {
		return 0, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	props.ID = id
	r.notifier.Notify("locations")
	return id, nil
}

func (r *Repository) UpdateLocationProperties(ctx context.Context, props *models.LocationProperties) error {
	props.Lat = models.RoundCoordinate(props.Lat)
	props.Lon = models.RoundCoordinate(props.Lon)

	_, err := r.db.ExecContext(ctx, `
		UPDATE locations SET
			lat = ?,
			lon = ?,
			name = ?,
			last_used_at = ?
		WHERE id = ?
	`, props.Lat, props.Lon, props.Name, props.LastUsedAt, props.ID)
	if err != nil {
		return mapError(err)
	}

	r.notifier.Notify("locations")
	return nil
}

// DeleteLocation removes a location; its join rows go with it (FK cascade).
func (r *Repository) DeleteLocation(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return err
	}

	r.notifier.Notify("locations", "location_entries")
	return nil
}

// InsertLocationEntry links a day to a location. Inserting an existing
// (dayID, locationID) pair is a no-op, not an error.
func (r *Repository) InsertLocationEntry(ctx context.Context, dayID, locationID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO location_entries (day_id, location_id)
		VALUES (?, ?)
	`, dayID, locationID)
	if err != nil {
		return mapError(err)
	}

	r.notifier.Notify("location_entries")
	return nil
}

// InsertLocationEntries inserts a batch in one transaction. Unlike the
// single-entry path, any duplicate pair fails the whole batch.
func (r *Repository) InsertLocationEntries(ctx context.Context, entries []models.LocationEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO location_entries (day_id, location_id)
			VALUES (?, ?)
		`, entry.DayID, entry.LocationID); err != nil {
			return mapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notifier.Notify("location_entries")
	return nil
}

func (r *Repository) DeleteLocationEntry(ctx context.Context, dayID, locationID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM location_entries
		WHERE day_id = ? AND location_id = ?
	`, dayID, locationID)
	if err != nil {
		return err
	}

	r.notifier.Notify("location_entries")
	return nil
}

func (r *Repository) DeleteLocationEntries(ctx context.Context, entries []models.LocationEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM location_entries
			WHERE day_id = ? AND location_id = ?
		`, entry.DayID, entry.LocationID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notifier.Notify("location_entries")
	return nil
}
