package core

import (
	"context"
	"time"

	"github.com/leantech/jobboard/internal/domain/model"
)

// Ports between the service layer and its adapters. Services depend on
// these interfaces, never on the Redis, HTTP or crawler implementations.

// JobReader is the accessor surface the page controllers consume.
type JobReader interface {
	GetJobs(ctx context.Context) (*model.JobCollection, error)
	GetJob(ctx context.Context, id string) Lookup
}

// JobRepository persists the published collection and sync bookkeeping.
type JobRepository interface {
	// Collection returns nil, nil when nothing has been published yet.
	Collection(ctx context.Context) (*model.JobCollection, error)
	Publish(ctx context.Context, jobs *model.JobCollection) error

	// SyncStatus returns nil, nil when no run was ever recorded.
	SyncStatus(ctx context.Context) (*model.SyncStatus, error)
	SaveSyncStatus(ctx context.Context, status *model.SyncStatus) error

	AcquireSyncLock(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	ReleaseSyncLock(ctx context.Context, owner string) error
	SyncLocked(ctx context.Context) (bool, error)
}

// JobCrawler scrapes postings from the upstream career site.
type JobCrawler interface {
	Crawl(ctx context.Context) ([]model.JobPosting, error)
}
