package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/observability/metrics"
	"github.com/leantech/jobboard/internal/observability/statsd"
)

const fetchAllKey = "jobs"

// ErrCacheClosed is returned by a JobCache after Close.
var ErrCacheClosed = errors.New("job cache closed")

// JobCacheOptions bundles dependencies for NewJobCache.
type JobCacheOptions struct {
	Transport JobTransport
	Metrics   statsd.Sink
	Logger    *slog.Logger
}

// JobCache memoizes the job collection for one page session.
//
// The first successful fetch is kept until Reset or Close; later reads never
// touch the network. Concurrent callers share one in-flight request. A
// failed fetch stores nothing, so the next call fetches again.
type JobCache struct {
	transport JobTransport
	metrics   statsd.Sink
	logger    *slog.Logger

	flight singleflight.Group

	life   context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	jobs   *model.JobCollection
	epoch  uint64
	closed bool
}

var _ JobReader = (*JobCache)(nil)

// NewJobCache creates an empty cache bound to a transport.
func NewJobCache(opts JobCacheOptions) *JobCache {
	if opts.Transport == nil {
		panic("core.NewJobCache: Transport is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	life, cancel := context.WithCancel(context.Background())
	return &JobCache{
		transport: opts.Transport,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "job_cache"),
		life:      life,
		cancel:    cancel,
	}
}

// GetJobs returns the collection, fetching it on first use.
//
// The shared fetch is not tied to any single caller's cancellation; ctx only
// bounds how long this caller waits for it.
func (c *JobCache) GetJobs(ctx context.Context) (*model.JobCollection, error) {
	if jobs, err := c.snapshot(); jobs != nil || err != nil {
		return jobs, err
	}

	ch := c.flight.DoChan(fetchAllKey, func() (any, error) {
		return c.fetch(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		jobs, _ := res.Val.(*model.JobCollection)
		return jobs, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetJob looks a posting up by exact id within the cached collection.
func (c *JobCache) GetJob(ctx context.Context, id string) Lookup {
	if id == "" {
		return MissingID()
	}
	jobs, err := c.GetJobs(ctx)
	if err != nil {
		return Failed(err)
	}
	if job, ok := jobs.Find(id); ok {
		return Found(job)
	}
	return NotFound()
}

// Loaded reports whether a collection is memoized.
func (c *JobCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jobs != nil
}

// Reset drops the memoized collection. A fetch already in flight completes
// for its waiters but is not stored.
func (c *JobCache) Reset() {
	c.mu.Lock()
	c.jobs = nil
	c.epoch++
	c.mu.Unlock()
	c.flight.Forget(fetchAllKey)
}

// Close resets the cache, aborts any in-flight fetch and rejects later calls.
func (c *JobCache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Reset()
	c.cancel()
}

func (c *JobCache) snapshot() (*model.JobCollection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrCacheClosed
	}
	return c.jobs, nil
}

func (c *JobCache) fetch(callerCtx context.Context) (*model.JobCollection, error) {
	c.mu.RLock()
	epoch, jobs := c.epoch, c.jobs
	c.mu.RUnlock()
	if jobs != nil {
		return jobs, nil
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(callerCtx))
	defer cancel()
	stop := context.AfterFunc(c.life, cancel)
	defer stop()

	start := time.Now()
	jobs, err := c.transport.FetchAll(ctx)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch jobs failed", "error", err, "duration", elapsed)
		metrics.EmitCacheFetch(c.metrics, metrics.CacheFetch{Result: metrics.ResultError, Duration: elapsed, Err: err})
		return nil, err
	}
	if jobs == nil {
		jobs = &model.JobCollection{}
	}
	metrics.EmitCacheFetch(c.metrics, metrics.CacheFetch{Result: metrics.ResultSuccess, Jobs: jobs.Len(), Duration: elapsed})

	c.mu.Lock()
	if c.epoch == epoch && !c.closed {
		c.jobs = jobs
	}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "jobs fetched", "count", jobs.Len(), "duration", elapsed)
	return jobs, nil
}
