package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leantech/jobboard/config"
	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	apperrors "github.com/leantech/jobboard/internal/errors"
	obserrors "github.com/leantech/jobboard/internal/observability/errors"
	"github.com/leantech/jobboard/internal/observability/metrics"
	"github.com/leantech/jobboard/internal/observability/notify"
	"github.com/leantech/jobboard/internal/observability/statsd"
)

// Sync triggers recorded in status and metrics.
const (
	TriggerAPI      = "api"
	TriggerSchedule = "schedule"
	TriggerCLI      = "cli"
)

// bookkeepingTimeout bounds status writes and lock release after a run,
// which must happen even when the run's own context is done.
const bookkeepingTimeout = 5 * time.Second

// ErrSyncInProgress is returned by Run while another run holds the lock.
var ErrSyncInProgress = apperrors.Conflict("A sync run is already in progress.")

// SyncFailureNotifier receives failed runs.
type SyncFailureNotifier interface {
	NotifySyncFailure(ctx context.Context, payload notify.SyncFailurePayload)
}

// SyncServiceOptions groups dependencies for SyncService.
type SyncServiceOptions struct {
	Repo    core.JobRepository // Required
	Crawler core.JobCrawler    // Required
	Runtime SyncRuntime        // Optional
}

// SyncRuntime carries the optional collaborators of a SyncService.
type SyncRuntime struct {
	Config   config.SyncConfig
	Source   string // crawled site, reported in failure notifications
	Notifier SyncFailureNotifier
	Metrics  statsd.Sink
	Logger   *slog.Logger

	Now      func() time.Time
	NewRunID func() string
}

// SyncService crawls the career site and publishes the result.
//
// At most one run is active across all processes sharing the job store;
// the store's sync lock arbitrates.
type SyncService struct {
	repo     core.JobRepository
	crawler  core.JobCrawler
	cfg      config.SyncConfig
	source   string
	notifier SyncFailureNotifier
	metrics  statsd.Sink
	logger   *slog.Logger
	now      func() time.Time
	newRunID func() string

	life   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncService constructs a SyncService.
func NewSyncService(opts SyncServiceOptions) *SyncService {
	if opts.Repo == nil {
		panic("service.NewSyncService: Repo is required")
	}
	if opts.Crawler == nil {
		panic("service.NewSyncService: Crawler is required")
	}
	rt := opts.Runtime
	cfg := rt.Config
	cfg.Sanitize()
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := rt.Now
	if now == nil {
		now = time.Now
	}
	newRunID := rt.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	life, cancel := context.WithCancel(context.Background())

	return &SyncService{
		repo:     opts.Repo,
		crawler:  opts.Crawler,
		cfg:      cfg,
		source:   rt.Source,
		notifier: rt.Notifier,
		metrics:  rt.Metrics,
		logger:   logger.With("component", "sync_service"),
		now:      now,
		newRunID: newRunID,
		life:     life,
		cancel:   cancel,
	}
}

// Trigger starts a run in the background and returns immediately. When
// another run holds the lock it reports already_running instead.
func (s *SyncService) Trigger(ctx context.Context) (*model.SyncResult, error) {
	runID := s.newRunID()
	ok, err := s.repo.AcquireSyncLock(ctx, runID, s.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("trigger sync: %w", err)
	}
	if !ok {
		return &model.SyncResult{
			Status:  model.SyncAlreadyRunning,
			Message: ErrSyncInProgress.Message,
		}, nil
	}

	started := s.now().UTC()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		runCtx, cancel := context.WithTimeout(s.life, s.cfg.RunTimeout)
		defer cancel()
		_, _ = s.execute(runCtx, runID, TriggerAPI, started)
	}()

	s.logger.InfoContext(ctx, "sync run started", "run_id", runID, "trigger", TriggerAPI)
	return &model.SyncResult{Status: model.SyncStarted, RunID: runID, StartedAt: &started}, nil
}

// Run performs a run synchronously and returns its final status.
// It fails with ErrSyncInProgress while another run holds the lock.
func (s *SyncService) Run(ctx context.Context, trigger string) (*model.SyncStatus, error) {
	runID := s.newRunID()
	ok, err := s.repo.AcquireSyncLock(ctx, runID, s.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("run sync: %w", err)
	}
	if !ok {
		return nil, ErrSyncInProgress
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()
	return s.execute(runCtx, runID, trigger, s.now().UTC())
}

// Status returns the most recent run.
func (s *SyncService) Status(ctx context.Context) (*model.SyncStatus, error) {
	st, err := s.repo.SyncStatus(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperrors.NotFound("No sync run has been recorded yet.")
	}
	return st, nil
}

// Shutdown waits for background runs. When ctx expires first the runs are
// canceled and still awaited.
func (s *SyncService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done
		return ctx.Err()
	}
}

// execute runs one crawl-and-publish cycle while holding the lock for runID.
func (s *SyncService) execute(ctx context.Context, runID, trigger string, started time.Time) (*model.SyncStatus, error) {
	defer s.releaseLock(ctx, runID)

	status := &model.SyncStatus{
		RunID:     runID,
		State:     model.SyncStateRunning,
		Trigger:   trigger,
		StartedAt: started,
	}
	s.saveStatus(ctx, status)

	count, err := s.crawlAndPublish(ctx)

	finished := s.now().UTC()
	final := *status
	final.FinishedAt = &finished
	final.JobCount = count
	result := metrics.ResultSuccess
	if err != nil {
		final.State = model.SyncStateFailed
		final.Error = err.Error()
		result = metrics.ResultError
	} else {
		final.State = model.SyncStateSucceeded
	}
	s.saveStatus(ctx, &final)

	metrics.EmitSyncRun(s.metrics, metrics.SyncRun{
		Trigger:  trigger,
		Result:   result,
		Jobs:     count,
		Duration: final.Duration(),
		Err:      err,
	})

	if err != nil {
		s.logger.ErrorContext(ctx, "sync run failed",
			"run_id", runID,
			"trigger", trigger,
			"duration", final.Duration(),
			"error", err,
		)
		s.notifyFailure(ctx, &final, err)
		return &final, err
	}
	s.logger.InfoContext(ctx, "sync run succeeded",
		"run_id", runID,
		"trigger", trigger,
		"jobs", count,
		"duration", final.Duration(),
	)
	return &final, nil
}

func (s *SyncService) crawlAndPublish(ctx context.Context) (int, error) {
	jobs, err := s.crawler.Crawl(ctx)
	if err != nil {
		return 0, fmt.Errorf("crawl: %w", err)
	}
	collection := &model.JobCollection{
		Jobs:        jobs,
		LastUpdated: s.now().Format(model.LastUpdatedLayout),
	}
	if collection.Jobs == nil {
		collection.Jobs = []model.JobPosting{}
	}
	if err := s.repo.Publish(ctx, collection); err != nil {
		return len(jobs), fmt.Errorf("publish: %w", err)
	}
	return len(jobs), nil
}

func (s *SyncService) saveStatus(ctx context.Context, st *model.SyncStatus) {
	bctx, cancel := bookkeepingContext(ctx)
	defer cancel()
	if err := s.repo.SaveSyncStatus(bctx, st); err != nil {
		s.logger.WarnContext(ctx, "failed to record sync status",
			"run_id", st.RunID,
			"state", st.State,
			"error", err,
		)
	}
}

func (s *SyncService) releaseLock(ctx context.Context, runID string) {
	bctx, cancel := bookkeepingContext(ctx)
	defer cancel()
	if err := s.repo.ReleaseSyncLock(bctx, runID); err != nil {
		s.logger.WarnContext(ctx, "failed to release sync lock", "run_id", runID, "error", err)
	}
}

func (s *SyncService) notifyFailure(ctx context.Context, st *model.SyncStatus, err error) {
	if s.notifier == nil {
		return
	}
	severity := notify.SeverityCritical
	if errors.Is(err, context.Canceled) {
		severity = notify.SeverityWarning
	}
	bctx, cancel := bookkeepingContext(ctx)
	defer cancel()
	s.notifier.NotifySyncFailure(bctx, notify.SyncFailurePayload{
		RunID:      st.RunID,
		Trigger:    st.Trigger,
		Source:     s.source,
		Error:      err.Error(),
		ErrorClass: obserrors.Classify(err),
		Severity:   severity,
		OccurredAt: *st.FinishedAt,
	})
}

func bookkeepingContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
}
