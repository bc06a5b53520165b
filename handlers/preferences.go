package handlers

import (
	"daybook/models"

	"github.com/gofiber/fiber/v2"
)

// GetPreferences returns both settings groups
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	backup, err := h.Prefs.GetBackupPreferences(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to fetch preferences", err)
	}

	notifications, err := h.Prefs.GetNotificationPreferences(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to fetch preferences", err)
	}

	return success(c, fiber.Map{
		"backup":        backup,
		"notifications": notifications,
	})
}

// UpdateBackupPreferences rewrites the backup settings
func (h *Handlers) UpdateBackupPreferences(c *fiber.Ctx) error {
	var req models.UpdateBackupPreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	prefs := models.BackupPreferences{
		Enabled:       req.Enabled,
		FrequencyDays: req.FrequencyDays,
		TimeOfDay:     req.TimeOfDay,
		AllowMetered:  req.AllowMetered,
	}
	if err := h.Prefs.SetBackupPreferences(c.Context(), prefs); err != nil {
		return serverErrorWithDetails(c, "Failed to save preferences", err)
	}

	return success(c, fiber.Map{"backup": prefs})
}

// UpdateNotificationPreferences rewrites the notification settings
func (h *Handlers) UpdateNotificationPreferences(c *fiber.Ctx) error {
	var req models.UpdateNotificationPreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	prefs := models.NotificationPreferences{
		Enabled:              req.Enabled,
		DailyReminderEnabled: req.DailyReminderEnabled,
		DailyReminderTime:    req.DailyReminderTime,
		MemoriesEnabled:      req.MemoriesEnabled,
	}
	if err := h.Prefs.SetNotificationPreferences(c.Context(), prefs); err != nil {
		return serverErrorWithDetails(c, "Failed to save preferences", err)
	}

	return success(c, fiber.Map{"notifications": prefs})
}
