package remind

import (
	"context"
	"testing"
	"time"

	"daybook/models"

	"github.com/stretchr/testify/assert"
)

type fakePrefs struct {
	prefs models.NotificationPreferences
}

func (f *fakePrefs) GetNotificationPreferences(ctx context.Context) (models.NotificationPreferences, error) {
	return f.prefs, nil
}

func testScheduler(prefs models.NotificationPreferences, now time.Time) (*Scheduler, *int) {
	fired := 0
	s := NewScheduler(&fakePrefs{prefs: prefs}, func() { fired++ })
	s.now = func() time.Time { return now }
	return s, &fired
}

func TestSchedulerFiresOncePerDay(t *testing.T) {
	prefs := models.NotificationPreferences{
		Enabled:              true,
		DailyReminderEnabled: true,
		DailyReminderTime:    "20:00",
	}
	now := time.Date(2025, 11, 4, 20, 5, 0, 0, time.UTC)

	s, fired := testScheduler(prefs, now)

	s.tick(context.Background())
	s.tick(context.Background())
	assert.Equal(t, 1, *fired)

	// Next day it fires again
	s.now = func() time.Time { return now.Add(24 * time.Hour) }
	s.tick(context.Background())
	assert.Equal(t, 2, *fired)
}

func TestSchedulerWaitsForScheduledTime(t *testing.T) {
	prefs := models.NotificationPreferences{
		Enabled:              true,
		DailyReminderEnabled: true,
		DailyReminderTime:    "20:00",
	}
	now := time.Date(2025, 11, 4, 19, 59, 0, 0, time.UTC)

	s, fired := testScheduler(prefs, now)
	s.tick(context.Background())
	assert.Zero(t, *fired)
}

func TestSchedulerHonorsToggles(t *testing.T) {
	now := time.Date(2025, 11, 4, 21, 0, 0, 0, time.UTC)

	t.Run("Master switch off", func(t *testing.T) {
		s, fired := testScheduler(models.NotificationPreferences{
			Enabled:              false,
			DailyReminderEnabled: true,
			DailyReminderTime:    "20:00",
		}, now)
		s.tick(context.Background())
		assert.Zero(t, *fired)
	})

	t.Run("Daily reminder off", func(t *testing.T) {
		s, fired := testScheduler(models.NotificationPreferences{
			Enabled:              true,
			DailyReminderEnabled: false,
			DailyReminderTime:    "20:00",
		}, now)
		s.tick(context.Background())
		assert.Zero(t, *fired)
	})
}

func TestSchedulerStartStop(t *testing.T) {
	s, _ := testScheduler(models.DefaultNotificationPreferences(), time.Now())
	s.Start()
	s.Start() // second start is a no-op
	s.Stop()
	s.Stop() // second stop is a no-op
}
