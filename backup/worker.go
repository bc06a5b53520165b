package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"daybook/models"

	"github.com/google/uuid"
)

// Backend is the backup surface the worker drives. Satisfied by *Service;
// tests substitute a fake.
type Backend interface {
	LastBackupTime(ctx context.Context) (time.Time, bool, error)
	BackupDatabase(ctx context.Context, jobID string) error
}

// PrefsSource provides the current backup settings
type PrefsSource interface {
	GetBackupPreferences(ctx context.Context) (models.BackupPreferences, error)
}

// Worker runs scheduled backups according to the user's backup
// preferences: at the configured time of day, no more often than every
// FrequencyDays days. A failed run is retried once; further retries wait
// for the next scheduled slot. Retry policy lives here, not in the
// repositories.
type Worker struct {
	backend     Backend
	prefs       PrefsSource
	checkPeriod time.Duration
	// MeteredNetwork reports whether the current connection is metered;
	// backups wait when it is and AllowMetered is off. Nil means never
	// metered.
	MeteredNetwork func() bool

	running  bool
	mu       sync.Mutex
	stopChan chan struct{}
	now      func() time.Time
}

// NewWorker creates a new backup worker
func NewWorker(backend Backend, prefs PrefsSource) *Worker {
	return &Worker{
		backend:     backend,
		prefs:       prefs,
		checkPeriod: time.Minute,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start begins the background backup worker
func (w *Worker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	slog.Info("starting backup worker")

	go w.run()
}

// Stop gracefully stops the background backup worker
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	slog.Info("stopping backup worker")
	close(w.stopChan)
	w.running = false
}

func (w *Worker) run() {
	ticker := time.NewTicker(w.checkPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(context.Background())
		case <-w.stopChan:
			return
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	prefs, err := w.prefs.GetBackupPreferences(ctx)
	if err != nil {
		slog.Error("backup worker: failed to read preferences", "error", err)
		return
	}

	due, err := w.isDue(ctx, prefs)
	if err != nil {
		slog.Error("backup worker: failed to check schedule", "error", err)
		return
	}
	if !due {
		return
	}

	if !prefs.AllowMetered && w.MeteredNetwork != nil && w.MeteredNetwork() {
		slog.Info("backup deferred: metered network")
		return
	}

	jobID := uuid.New().String()
	if err := w.backend.BackupDatabase(ctx, jobID); err != nil {
		slog.Warn("scheduled backup failed, retrying once", "job_id", jobID, "error", err)
		if err := w.backend.BackupDatabase(ctx, jobID); err != nil {
			slog.Error("scheduled backup failed after retry", "job_id", jobID, "error", err)
		}
	}
}

// isDue reports whether a scheduled backup should run now: backups enabled,
// the configured time of day has passed, and the last backup is at least
// FrequencyDays old.
func (w *Worker) isDue(ctx context.Context, prefs models.BackupPreferences) (bool, error) {
	if !prefs.Enabled {
		return false, nil
	}

	scheduled, err := timeOfDayToday(prefs.TimeOfDay, w.now())
	if err != nil {
		return false, fmt.Errorf("bad backup time %q: %w", prefs.TimeOfDay, err)
	}
	if w.now().Before(scheduled) {
		return false, nil
	}

	last, ok, err := w.backend.LastBackupTime(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	frequency := prefs.FrequencyDays
	if frequency < 1 {
		frequency = 1
	}
	return w.now().Sub(last) >= time.Duration(frequency)*24*time.Hour, nil
}

// timeOfDayToday resolves an "HH:MM" setting against ref's calendar date
func timeOfDayToday(hhmm string, ref time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}
