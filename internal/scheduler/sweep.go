package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/richclient/internal/store"
)

// Sweeper is the part of store.Registry the sweep job needs.
type Sweeper interface {
	Sweep(idle time.Duration) int
	Len() int
}

var _ Sweeper = (*store.Registry)(nil)

// IdleSweepScheduler periodically drops in-memory UI state that has not been
// used for a while. The state itself survives in the session store and is
// rebuilt on the next request.
type IdleSweepScheduler struct {
	registry Sweeper
	schedule string
	idleTTL  time.Duration
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewIdleSweepScheduler creates a scheduler that sweeps registry on schedule.
func NewIdleSweepScheduler(registry Sweeper, schedule string, idleTTL time.Duration, logger *zap.Logger) *IdleSweepScheduler {
	return &IdleSweepScheduler{
		registry: registry,
		schedule: schedule,
		idleTTL:  idleTTL,
		logger:   logger,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// ValidateSchedule checks that schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// Start schedules the sweep job. It stops when ctx is cancelled or Stop is
// called.
func (s *IdleSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.idleTTL <= 0 {
		return fmt.Errorf("idle ttl must be positive, got %s", s.idleTTL)
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce() })
	if err != nil {
		return fmt.Errorf("failed to schedule sweep job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("idle sweep scheduler started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_ttl", s.idleTTL))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *IdleSweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	s.logger.Info("idle sweep scheduler stopped")
}

// IsRunning reports whether the scheduler has been started.
func (s *IdleSweepScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunOnce performs a single sweep and returns the number of removed states.
func (s *IdleSweepScheduler) RunOnce() int {
	removed := s.registry.Sweep(s.idleTTL)
	if removed > 0 {
		s.logger.Info("swept idle ui state",
			zap.Int("removed", removed),
			zap.Int("remaining", s.registry.Len()))
	}
	return removed
}
