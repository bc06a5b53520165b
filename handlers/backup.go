package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BackupRunner is the backup surface the HTTP layer exposes. Nil when the
// server runs without Drive credentials.
type BackupRunner interface {
	LastBackupTime(ctx context.Context) (time.Time, bool, error)
	BackupDatabase(ctx context.Context, jobID string) error
	RestoreDatabase(ctx context.Context, jobID string) error
}

// BackupStatus reports when the last snapshot was written
func (h *Handlers) BackupStatus(c *fiber.Ctx) error {
	if h.Backup == nil {
		return success(c, fiber.Map{"configured": false})
	}

	last, ok, err := h.Backup.LastBackupTime(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to check backup status", err)
	}

	resp := fiber.Map{"configured": true, "has_backup": ok}
	if ok {
		resp["last_backup_at"] = last
	}
	return success(c, resp)
}

// RunBackup pushes a snapshot immediately
func (h *Handlers) RunBackup(c *fiber.Ctx) error {
	if h.Backup == nil {
		return badRequest(c, "backup is not configured")
	}

	jobID := uuid.New().String()
	if err := h.Backup.BackupDatabase(c.Context(), jobID); err != nil {
		return serverErrorWithDetails(c, "Backup failed", err)
	}

	return success(c, fiber.Map{"job_id": jobID})
}

// RunRestore pulls the newest snapshot over the local database. The server
// must be restarted afterwards so the store reopens the restored file.
func (h *Handlers) RunRestore(c *fiber.Ctx) error {
	if h.Backup == nil {
		return badRequest(c, "backup is not configured")
	}

	jobID := uuid.New().String()
	if err := h.Backup.RestoreDatabase(c.Context(), jobID); err != nil {
		return serverErrorWithDetails(c, "Restore failed", err)
	}

	return success(c, fiber.Map{"job_id": jobID, "restart_required": true})
}
