package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	apperrors "github.com/leantech/jobboard/internal/errors"
)

// Redis keys owned by the job store.
const (
	CollectionKey = "jobboard:jobs:collection"
	SyncStatusKey = "jobboard:sync:status"
	SyncLockKey   = "jobboard:sync:lock"
)

// JobStoreOptions bundles dependencies for NewJobStore.
type JobStoreOptions struct {
	Cache  core.CacheRepository
	Logger *slog.Logger
}

// JobStore persists the published collection, the last sync status and the
// sync run lock in a key/value cache.
type JobStore struct {
	cache  core.CacheRepository
	logger *slog.Logger
}

var _ core.JobRepository = (*JobStore)(nil)

// NewJobStore creates a JobStore.
func NewJobStore(opts JobStoreOptions) *JobStore {
	if opts.Cache == nil {
		panic("data.NewJobStore: Cache is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobStore{cache: opts.Cache, logger: logger.With("component", "job_store")}
}

// Collection returns the published collection, or nil when nothing was published.
func (s *JobStore) Collection(ctx context.Context) (*model.JobCollection, error) {
	var c model.JobCollection
	found, err := s.load(ctx, CollectionKey, &c)
	if err != nil || !found {
		return nil, err
	}
	if c.Jobs == nil {
		c.Jobs = []model.JobPosting{}
	}
	return &c, nil
}

// Publish validates jobs and replaces the published collection in one write.
func (s *JobStore) Publish(ctx context.Context, jobs *model.JobCollection) error {
	if err := jobs.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	if err := s.save(ctx, CollectionKey, jobs); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "job collection published",
		"jobs", jobs.Len(),
		"last_updated", jobs.LastUpdated,
	)
	return nil
}

// SyncStatus returns the last recorded run, or nil when none was recorded.
func (s *JobStore) SyncStatus(ctx context.Context) (*model.SyncStatus, error) {
	var st model.SyncStatus
	found, err := s.load(ctx, SyncStatusKey, &st)
	if err != nil || !found {
		return nil, err
	}
	return &st, nil
}

// SaveSyncStatus overwrites the last run record.
func (s *JobStore) SaveSyncStatus(ctx context.Context, status *model.SyncStatus) error {
	if status == nil {
		return apperrors.Validation("sync status is required")
	}
	return s.save(ctx, SyncStatusKey, status)
}

// AcquireSyncLock takes the run lock for owner. It returns false while
// another owner holds it.
func (s *JobStore) AcquireSyncLock(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	if owner == "" {
		return false, ErrEmptyLockOwner
	}
	ok, err := s.cache.SetIfNotExists(ctx, SyncLockKey, []byte(owner), ttl)
	if err != nil {
		return false, apperrors.MapStoreError(fmt.Errorf("acquire sync lock: %w", err))
	}
	return ok, nil
}

// ReleaseSyncLock frees the run lock if owner still holds it. A lock that
// expired and was taken over is left alone.
func (s *JobStore) ReleaseSyncLock(ctx context.Context, owner string) error {
	if owner == "" {
		return ErrEmptyLockOwner
	}
	released, err := s.cache.DeleteIfEquals(ctx, SyncLockKey, []byte(owner))
	if err != nil {
		return apperrors.MapStoreError(fmt.Errorf("release sync lock: %w", err))
	}
	if !released {
		s.logger.WarnContext(ctx, "sync lock no longer held at release", "owner", owner)
	}
	return nil
}

// SyncLocked reports whether any run holds the lock.
func (s *JobStore) SyncLocked(ctx context.Context) (bool, error) {
	ok, err := s.cache.Exists(ctx, SyncLockKey)
	if err != nil {
		return false, apperrors.MapStoreError(fmt.Errorf("check sync lock: %w", err))
	}
	return ok, nil
}

// Health pings the backing cache.
func (s *JobStore) Health(ctx context.Context) error {
	return s.cache.Health(ctx)
}

func (s *JobStore) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, apperrors.MapStoreError(fmt.Errorf("load %s: %w", key, err))
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s", key)
	}
	return true, nil
}

func (s *JobStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s", key)
	}
	if err := s.cache.Set(ctx, key, raw, 0); err != nil {
		return apperrors.MapStoreError(fmt.Errorf("save %s: %w", key, err))
	}
	return nil
}
