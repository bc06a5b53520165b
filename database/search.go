package database

import (
	"context"

	"daybook/models"
)

// ==================== FULL-TEXT SEARCH ====================

// SearchDays matches the query against day summaries and tag entry content
// via the FTS shadow tables and returns the distinct matching days, newest
// first.
func (r *Repository) SearchDays(ctx context.Context, query string) ([]models.Day, error) {
	if query == "" {
		return make([]models.Day, 0), nil
	}

	return r.queryDays(ctx, `
		SELECT d.id, d.summary, d.is_favorite, d.created_at, d.last_modified_at,
		       d.year, d.month, d.day_of_month
		FROM days d
		WHERE d.id IN (
			SELECT day_id FROM day_summary_fts WHERE day_summary_fts MATCH ?
			UNION
			SELECT day_id FROM tag_entry_fts WHERE tag_entry_fts MATCH ?
		)
		ORDER BY d.id DESC
	`, query, query)
}

// ObserveSearch re-runs a search whenever summaries or tag entry content
// change.
func (r *Repository) ObserveSearch(ctx context.Context, query string) <-chan []models.Day {
	return observe(ctx, r.notifier, []string{"days", "tag_entries"}, func(ctx context.Context) ([]models.Day, error) {
		return r.SearchDays(ctx, query)
	})
}
