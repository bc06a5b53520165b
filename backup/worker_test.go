package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"daybook/models"

	"github.com/stretchr/testify/assert"
)

// ==================== FAKES ====================

type fakeBackend struct {
	last        time.Time
	hasLast     bool
	backupErr   error
	backupCalls int
}

func (f *fakeBackend) LastBackupTime(ctx context.Context) (time.Time, bool, error) {
	return f.last, f.hasLast, nil
}

func (f *fakeBackend) BackupDatabase(ctx context.Context, jobID string) error {
	f.backupCalls++
	return f.backupErr
}

type fakePrefs struct {
	prefs models.BackupPreferences
}

func (f *fakePrefs) GetBackupPreferences(ctx context.Context) (models.BackupPreferences, error) {
	return f.prefs, nil
}

func testWorker(backend *fakeBackend, prefs models.BackupPreferences, now time.Time) *Worker {
	w := NewWorker(backend, &fakePrefs{prefs: prefs})
	w.now = func() time.Time { return now }
	return w
}

// ==================== TESTS ====================

func TestWorkerIsDue(t *testing.T) {
	// A Tuesday afternoon
	now := time.Date(2025, 11, 4, 15, 0, 0, 0, time.UTC)

	enabled := models.BackupPreferences{
		Enabled:       true,
		FrequencyDays: 7,
		TimeOfDay:     "02:00",
	}

	tests := []struct {
		name    string
		prefs   models.BackupPreferences
		backend fakeBackend
		want    bool
	}{
		{
			name:    "Disabled backups are never due",
			prefs:   models.BackupPreferences{Enabled: false},
			backend: fakeBackend{},
			want:    false,
		},
		{
			name:    "Due when no backup exists and time has passed",
			prefs:   enabled,
			backend: fakeBackend{},
			want:    true,
		},
		{
			name:    "Not due before the scheduled time of day",
			prefs:   models.BackupPreferences{Enabled: true, FrequencyDays: 7, TimeOfDay: "23:30"},
			backend: fakeBackend{},
			want:    false,
		},
		{
			name:    "Not due when the last backup is recent",
			prefs:   enabled,
			backend: fakeBackend{last: now.Add(-24 * time.Hour), hasLast: true},
			want:    false,
		},
		{
			name:    "Due when the last backup is older than the frequency",
			prefs:   enabled,
			backend: fakeBackend{last: now.Add(-8 * 24 * time.Hour), hasLast: true},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorker(&tt.backend, tt.prefs, now)
			due, err := w.isDue(context.Background(), tt.prefs)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, due)
		})
	}
}

func TestWorkerRetriesOnce(t *testing.T) {
	now := time.Date(2025, 11, 4, 15, 0, 0, 0, time.UTC)
	backend := &fakeBackend{backupErr: errors.New("drive unavailable")}

	w := testWorker(backend, models.BackupPreferences{
		Enabled:       true,
		FrequencyDays: 1,
		TimeOfDay:     "02:00",
	}, now)

	w.tick(context.Background())

	// One attempt plus exactly one retry, then we wait for the next slot
	assert.Equal(t, 2, backend.backupCalls)
}

func TestWorkerMeteredGate(t *testing.T) {
	now := time.Date(2025, 11, 4, 15, 0, 0, 0, time.UTC)

	t.Run("Deferred on metered network when not allowed", func(t *testing.T) {
		backend := &fakeBackend{}
		w := testWorker(backend, models.BackupPreferences{
			Enabled:       true,
			FrequencyDays: 1,
			TimeOfDay:     "02:00",
			AllowMetered:  false,
		}, now)
		w.MeteredNetwork = func() bool { return true }

		w.tick(context.Background())
		assert.Zero(t, backend.backupCalls)
	})

	t.Run("Runs on metered network when allowed", func(t *testing.T) {
		backend := &fakeBackend{}
		w := testWorker(backend, models.BackupPreferences{
			Enabled:       true,
			FrequencyDays: 1,
			TimeOfDay:     "02:00",
			AllowMetered:  true,
		}, now)
		w.MeteredNetwork = func() bool { return true }

		w.tick(context.Background())
		assert.Equal(t, 1, backend.backupCalls)
	})
}

func TestWorkerStartStop(t *testing.T) {
	backend := &fakeBackend{}
	w := NewWorker(backend, &fakePrefs{})

	w.Start()
	w.Start() // second start is a no-op
	w.Stop()
	w.Stop() // second stop is a no-op
}
