package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the pruner from a cron schedule, so old validation
// records disappear without an operator running prune by hand.
type Scheduler struct {
	pruner *Pruner
	logger *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewScheduler creates a scheduler for pruner. Nothing runs until Start.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		cron:   cron.New(),
		logger: slog.Default().With("component", "history.scheduler"),
	}
}

// Start schedules pruning runs according to the pruner's cron
// expression, for example "0 3 * * *" for daily at 03:00. An empty
// expression disables scheduling and Start returns nil. Cancelling ctx
// stops the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	spec := s.pruner.config.Schedule
	if spec == "" {
		s.logger.Info("no prune schedule configured, automatic pruning stays off")
		return nil
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		if deleted, err := s.pruner.Prune(ctx); err != nil {
			s.logger.Error("scheduled pruning failed", "error", err)
		} else if deleted > 0 {
			s.logger.Info("scheduled pruning completed", "deleted_count", deleted)
		}
	}))

	s.cron.Start()
	s.running = true

	s.logger.Info("automatic pruning scheduled",
		"schedule", spec,
		"max_age_days", s.pruner.config.MaxAgeDays,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts scheduling and waits for a pruning run already in flight
// to finish. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("automatic pruning stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the time of the next scheduled pruning, or nil when
// nothing is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
