package database

import (
	"context"
	"database/sql"

	"daybook/models"
)

// ==================== TAG OPERATIONS ====================

// GetTag retrieves a tag with its day associations. Returns (nil, nil)
// when the id is unknown.
func (r *Repository) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, last_used_at
		FROM tags
		WHERE id = ?
	`, id).Scan(&tag.ID, &tag.Name, &tag.LastUsedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT day_id, tag_id, content
		FROM tag_entries
		WHERE tag_id = ?
		ORDER BY day_id DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tag.Entries = make([]models.TagEntry, 0)
	for rows.Next() {
		var entry models.TagEntry
		var content sql.NullString
		if err := rows.Scan(&entry.DayID, &entry.TagID, &content); err != nil {
			return nil, err
		}
		if content.Valid {
			entry.Content = &content.String
		}
		tag.Entries = append(tag.Entries, entry)
	}

	return &tag, rows.Err()
}

// GetTagPropertiesByName does a point lookup by exact name. Returns
// (nil, nil) when absent. The service layer uses this to keep names unique.
func (r *Repository) GetTagPropertiesByName(ctx context.Context, name string) (*models.TagProperties, error) {
	var props models.TagProperties
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, last_used_at
		FROM tags
		WHERE name = ?
	`, name).Scan(&props.ID, &props.Name, &props.LastUsedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &props, nil
}

// GetAllTagProperties lists every tag, most recently used first.
func (r *Repository) GetAllTagProperties(ctx context.Context) ([]models.TagProperties, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, last_used_at
		FROM tags
		ORDER BY last_used_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	props := make([]models.TagProperties, 0)
	for rows.Next() {
		var p models.TagProperties
		if err := rows.Scan(&p.ID, &p.Name, &p.LastUsedAt); err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, rows.Err()
}

// ObserveAllTagProperties is the live variant of GetAllTagProperties.
func (r *Repository) ObserveAllTagProperties(ctx context.Context) <-chan []models.TagProperties {
	return observe(ctx, r.notifier, []string{"tags"}, r.GetAllTagProperties)
}

// InsertTagProperties creates a tag and returns its generated id.
func (r *Repository) InsertTagProperties(ctx context.Context, props *models.TagProperties) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (name, last_used_at)
		VALUES (?, ?)
	`, props.Name, props.LastUsedAt)
	if err != nil {
		return 0, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	props.ID = id
	r.notifier.Notify("tags")
	return id, nil
}

func (r *Repository) UpdateTagProperties(ctx context.Context, props *models.TagProperties) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tags SET
			name = ?,
			last_used_at = ?
		WHERE id = ?
	`, props.Name, props.LastUsedAt, props.ID)
	if err != nil {
		return err
	}

	r.notifier.Notify("tags")
	return nil
}

// DeleteTag removes a tag; its join rows go with it (FK cascade).
func (r *Repository) DeleteTag(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return err
	}

	r.notifier.Notify("tags", "tag_entries")
	return nil
}

// InsertTagEntry links a day to a tag. Unlike location entries, a duplicate
// (dayID, tagID) pair fails with ErrConflict on this path too.
func (r *Repository) InsertTagEntry(ctx context.Context, entry *models.TagEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tag_entries (day_id, tag_id, content)
		VALUES (?, ?, ?)
	`, entry.DayID, entry.TagID, nullableContent(entry.Content))
	if err != nil {
		return mapError(err)
	}

	r.notifier.Notify("tag_entries")
	return nil
}

// InsertTagEntries inserts a batch in one transaction; any duplicate pair
// fails the whole batch.
func (r *Repository) InsertTagEntries(ctx context.Context, entries []models.TagEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tag_entries (day_id, tag_id, content)
			VALUES (?, ?, ?)
		`, entry.DayID, entry.TagID, nullableContent(entry.Content)); err != nil {
			return mapError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notifier.Notify("tag_entries")
	return nil
}

func (r *Repository) UpdateTagEntry(ctx context.Context, entry *models.TagEntry) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tag_entries SET
			content = ?
		WHERE day_id = ? AND tag_id = ?
	`, nullableContent(entry.Content), entry.DayID, entry.TagID)
	if err != nil {
		return err
	}

	r.notifier.Notify("tag_entries")
	return nil
}

func (r *Repository) UpdateTagEntries(ctx context.Context, entries []models.TagEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			UPDATE tag_entries SET
				content = ?
			WHERE day_id = ? AND tag_id = ?
		`, nullableContent(entry.Content), entry.DayID, entry.TagID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notifier.Notify("tag_entries")
	return nil
}

func (r *Repository) DeleteTagEntry(ctx context.Context, dayID, tagID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM tag_entries
		WHERE day_id = ? AND tag_id = ?
	`, dayID, tagID)
	if err != nil {
		return err
	}

	r.notifier.Notify("tag_entries")
	return nil
}

func (r *Repository) DeleteTagEntries(ctx context.Context, entries []models.TagEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM tag_entries
			WHERE day_id = ? AND tag_id = ?
		`, entry.DayID, entry.TagID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.notifier.Notify("tag_entries")
	return nil
}

func nullableContent(content *string) any {
	if content == nil {
		return nil
	}
	return *content
}
