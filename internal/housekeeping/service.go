// filepath: internal/housekeeping/service.go
// Package housekeeping runs maintenance cleanup on a timer.
package housekeeping

import (
	"context"
	"sync"
	"time"

	"voicejournal/internal/logging"
)

const (
	// DefaultCheckInterval is used when no interval is configured.
	DefaultCheckInterval = 1 * time.Hour
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute

	runTimeout = 5 * time.Minute
)

// Service provides the background worker for automated housekeeping.
type Service struct {
	Deps     Dependencies
	Interval time.Duration

	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	lastRun time.Time
	now     func() time.Time
}

// NewService creates a housekeeping worker. An interval of 0 disables it.
func NewService(deps Dependencies, interval time.Duration) *Service {
	return &Service{
		Deps:     deps,
		Interval: interval,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	if s.Interval <= 0 {
		logging.Log.Info("Background housekeeping is disabled (interval is 0).")
		return
	}
	logging.Log.Infof("Starting background housekeeping service (every %v).", s.Interval)
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				nextRun := s.scheduleNextRun()
				s.timer.Reset(nextRun)
				logging.Log.Infof("Next housekeeping check scheduled in %v.", nextRun)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
}

// LastRun returns when housekeeping last completed, zero if never.
func (s *Service) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// scheduleNextRun calculates the duration until the next housekeeping event.
func (s *Service) scheduleNextRun() time.Duration {
	interval := s.Interval
	if interval <= 0 {
		return DefaultCheckInterval
	}

	last := s.LastRun()
	if last.IsZero() {
		return interval
	}
	next := last.Add(interval).Sub(s.now())
	if next < MinCheckInterval {
		return MinCheckInterval
	}
	return next
}

// runChecks runs housekeeping if the interval has elapsed since the last run.
func (s *Service) runChecks() {
	last := s.LastRun()
	if !last.IsZero() && last.Add(s.Interval).After(s.now()) {
		logging.Log.Debug("Housekeeping service: interval not elapsed, skipping.")
		return
	}
	s.Trigger()
}

// Trigger runs housekeeping now, independent of the schedule.
func (s *Service) Trigger() (*Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := RunOnce(ctx, s.Deps)
	if err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
		return nil, err
	}
	logging.Log.Infof("Housekeeping run finished: %s", report.Message)

	s.mu.Lock()
	s.lastRun = s.now()
	s.mu.Unlock()
	return report, nil
}
