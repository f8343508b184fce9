package service

import (
	"context"
	"log/slog"
	"time"
)

// SessionSweeper is the subset of the page session registry the sweeper needs.
type SessionSweeper interface {
	Sweep(ctx context.Context) int
}

// SessionSweeperServiceOptions groups dependencies for SessionSweeperService.
type SessionSweeperServiceOptions struct {
	Sessions SessionSweeper // Required
	Interval time.Duration  // Required
	Logger   *slog.Logger   // Optional
}

// SessionSweeperService evicts idle page sessions on a fixed interval.
type SessionSweeperService struct {
	loop periodic
}

// NewSessionSweeperService constructs a SessionSweeperService.
func NewSessionSweeperService(opts SessionSweeperServiceOptions) *SessionSweeperService {
	if opts.Sessions == nil {
		panic("service.NewSessionSweeperService: Sessions is required")
	}
	if opts.Interval <= 0 {
		panic("service.NewSessionSweeperService: Interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := opts.Sessions
	return &SessionSweeperService{loop: periodic{
		name:     "session sweeper",
		interval: opts.Interval,
		logger:   logger.With("component", "session_sweeper"),
		tick:     func(ctx context.Context) { sessions.Sweep(ctx) },
	}}
}

// Run blocks until ctx is canceled.
func (s *SessionSweeperService) Run(ctx context.Context) error {
	return s.loop.run(ctx)
}
