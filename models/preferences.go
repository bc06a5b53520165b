package models

// BackupPreferences controls the scheduled cloud backup.
type BackupPreferences struct {
	Enabled       bool   `json:"enabled"`
	FrequencyDays int    `json:"frequency_days"`
	TimeOfDay     string `json:"time_of_day"` // "HH:MM", 24h
	AllowMetered  bool   `json:"allow_metered"`
}

// NotificationPreferences controls reminder delivery.
type NotificationPreferences struct {
	Enabled              bool   `json:"enabled"`
	DailyReminderEnabled bool   `json:"daily_reminder_enabled"`
	DailyReminderTime    string `json:"daily_reminder_time"` // "HH:MM", 24h
	MemoriesEnabled      bool   `json:"memories_enabled"`
}

// DefaultBackupPreferences returns the settings used before the user has
// configured anything.
func DefaultBackupPreferences() BackupPreferences {
	return BackupPreferences{
		Enabled:       false,
		FrequencyDays: 7,
		TimeOfDay:     "02:00",
		AllowMetered:  false,
	}
}

// DefaultNotificationPreferences returns the settings used before the user
// has configured anything.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Enabled:              true,
		DailyReminderEnabled: false,
		DailyReminderTime:    "20:00",
		MemoriesEnabled:      true,
	}
}
