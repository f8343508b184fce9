package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/leantech/jobboard/internal/domain/model"
)

// SyncRunner performs one synchronous sync run.
type SyncRunner interface {
	Run(ctx context.Context, trigger string) (*model.SyncStatus, error)
}

// SyncSchedulerOptions groups dependencies for SyncScheduler.
type SyncSchedulerOptions struct {
	Runner   SyncRunner    // Required
	Interval time.Duration // Required: time between runs
	Logger   *slog.Logger  // Optional
}

// SyncScheduler keeps the published collection fresh by running a sync on a
// fixed interval. Runs that find the lock taken are skipped.
type SyncScheduler struct {
	runner SyncRunner
	loop   periodic
}

// NewSyncScheduler constructs a SyncScheduler.
func NewSyncScheduler(opts SyncSchedulerOptions) *SyncScheduler {
	if opts.Runner == nil {
		panic("service.NewSyncScheduler: Runner is required")
	}
	if opts.Interval <= 0 {
		panic("service.NewSyncScheduler: Interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &SyncScheduler{runner: opts.Runner}
	s.loop = periodic{
		name:     "sync scheduler",
		interval: opts.Interval,
		logger:   logger.With("component", "sync_scheduler"),
		tick:     s.tick,
	}
	return s
}

// Run blocks until ctx is canceled.
func (s *SyncScheduler) Run(ctx context.Context) error {
	return s.loop.run(ctx)
}

func (s *SyncScheduler) tick(ctx context.Context) {
	_, err := s.runner.Run(ctx, TriggerSchedule)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress):
		s.loop.logger.InfoContext(ctx, "scheduled sync skipped, another run holds the lock")
	case ctx.Err() != nil:
		s.loop.logger.DebugContext(ctx, "scheduled sync interrupted by shutdown", "error", err)
	default:
		// The run already logged, recorded and notified the failure.
		s.loop.logger.DebugContext(ctx, "scheduled sync failed", "error", err)
	}
}
