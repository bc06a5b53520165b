package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"daybook/models"
)

// ==================== PREFERENCES ====================

const (
	prefKeyBackup         = "backup"
	prefKeyNotifications  = "notifications"
	prefKeyRecentSearches = "recent_searches"

	// History keeps only the most recent searches.
	recentSearchLimit = 5
)

func (r *Repository) getPreference(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE key = ?", key,
	).Scan(&raw)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("corrupt preference %q: %w", key, err)
	}
	return true, nil
}

func (r *Repository) setPreference(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(raw))
	if err != nil {
		return err
	}

	r.notifier.Notify("preferences")
	return nil
}

// GetBackupPreferences returns the stored backup settings, or the defaults
// when none have been saved yet.
func (r *Repository) GetBackupPreferences(ctx context.Context) (models.BackupPreferences, error) {
	prefs := models.DefaultBackupPreferences()
	_, err := r.getPreference(ctx, prefKeyBackup, &prefs)
	return prefs, err
}

func (r *Repository) SetBackupPreferences(ctx context.Context, prefs models.BackupPreferences) error {
	return r.setPreference(ctx, prefKeyBackup, prefs)
}

func (r *Repository) ObserveBackupPreferences(ctx context.Context) <-chan models.BackupPreferences {
	return observe(ctx, r.notifier, []string{"preferences"}, r.GetBackupPreferences)
}

// GetNotificationPreferences returns the stored notification settings, or
// the defaults when none have been saved yet.
func (r *Repository) GetNotificationPreferences(ctx context.Context) (models.NotificationPreferences, error) {
	prefs := models.DefaultNotificationPreferences()
	_, err := r.getPreference(ctx, prefKeyNotifications, &prefs)
	return prefs, err
}

func (r *Repository) SetNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	return r.setPreference(ctx, prefKeyNotifications, prefs)
}

func (r *Repository) ObserveNotificationPreferences(ctx context.Context) <-chan models.NotificationPreferences {
	return observe(ctx, r.notifier, []string{"preferences"}, r.GetNotificationPreferences)
}

// GetRecentSearches returns the search history, newest first.
func (r *Repository) GetRecentSearches(ctx context.Context) ([]string, error) {
	searches := make([]string, 0)
	_, err := r.getPreference(ctx, prefKeyRecentSearches, &searches)
	return searches, err
}

func (r *Repository) ObserveRecentSearches(ctx context.Context) <-chan []string {
	return observe(ctx, r.notifier, []string{"preferences"}, r.GetRecentSearches)
}

// InsertRecentSearch records a search term: any case-insensitive duplicate
// is evicted first, the new term goes to the front, and the history is
// truncated to the most recent five.
func (r *Repository) InsertRecentSearch(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	history, err := r.GetRecentSearches(ctx)
	if err != nil {
		return err
	}

	updated := make([]string, 0, recentSearchLimit)
	updated = append(updated, term)
	for _, existing := range history {
		if strings.EqualFold(existing, term) {
			continue
		}
		updated = append(updated, existing)
		if len(updated) == recentSearchLimit {
			break
		}
	}

	return r.setPreference(ctx, prefKeyRecentSearches, updated)
}

// ClearRecentSearches wipes the search history.
func (r *Repository) ClearRecentSearches(ctx context.Context) error {
	return r.setPreference(ctx, prefKeyRecentSearches, []string{})
}
