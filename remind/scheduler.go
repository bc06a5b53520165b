// Package remind fires the daily journal reminder. Delivery is best-effort
// and inexact: the scheduler polls on a coarse ticker and triggers once per
// calendar day after the configured time has passed.
package remind

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"daybook/models"
)

// PrefsSource provides the current notification settings
type PrefsSource interface {
	GetNotificationPreferences(ctx context.Context) (models.NotificationPreferences, error)
}

// Scheduler triggers the reminder callback once per day at the configured
// time while notifications and the daily reminder are both enabled.
type Scheduler struct {
	prefs       PrefsSource
	notify      func()
	checkPeriod time.Duration

	running   bool
	mu        sync.Mutex
	stopChan  chan struct{}
	now       func() time.Time
	lastFired string // "2006-01-02" of the last delivery
}

// NewScheduler creates a reminder scheduler; notify runs on each delivery
func NewScheduler(prefs PrefsSource, notify func()) *Scheduler {
	return &Scheduler{
		prefs:       prefs,
		notify:      notify,
		checkPeriod: 30 * time.Second,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start begins the reminder loop
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	slog.Info("starting reminder scheduler")

	go s.run()
}

// Stop gracefully stops the reminder loop
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	slog.Info("stopping reminder scheduler")
	close(s.stopChan)
	s.running = false
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.checkPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	prefs, err := s.prefs.GetNotificationPreferences(ctx)
	if err != nil {
		slog.Error("reminder scheduler: failed to read preferences", "error", err)
		return
	}

	if !prefs.Enabled || !prefs.DailyReminderEnabled {
		return
	}

	now := s.now()
	today := now.Format("2006-01-02")
	if s.lastFired == today {
		return
	}

	scheduled, err := time.Parse("15:04", prefs.DailyReminderTime)
	if err != nil {
		slog.Error("reminder scheduler: bad reminder time", "time", prefs.DailyReminderTime, "error", err)
		return
	}

	at := time.Date(now.Year(), now.Month(), now.Day(),
		scheduled.Hour(), scheduled.Minute(), 0, 0, now.Location())
	if now.Before(at) {
		return
	}

	s.lastFired = today
	slog.Info("firing daily reminder", "scheduled_for", prefs.DailyReminderTime)
	s.notify()
}
