package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/observability/metrics"
	"github.com/leantech/jobboard/internal/observability/statsd"
	"github.com/leantech/jobboard/internal/viewstate"
)

const defaultIdleTTL = 30 * time.Minute

// RegistryOptions bundles dependencies for NewRegistry.
type RegistryOptions struct {
	Transport core.JobTransport
	IdleTTL   time.Duration
	Metrics   statsd.Sink
	Logger    *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Registry owns every live page session.
type Registry struct {
	transport core.JobTransport
	idleTTL   time.Duration
	metrics   statsd.Sink
	logger    *slog.Logger
	// base is the caller's logger; per-session components add their own tag.
	base      *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Transport == nil {
		panic("session.NewRegistry: Transport is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		transport: opts.Transport,
		idleTTL:   ttl,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "session_registry"),
		base:      logger,
		now:       now,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a session for a full page load and activates page.
func (r *Registry) Create(page Page) *Session {
	cache := core.NewJobCache(core.JobCacheOptions{
		Transport: r.transport,
		Metrics:   r.metrics,
		Logger:    r.base,
	})
	s := &Session{
		ID:       uuid.NewString(),
		Cache:    cache,
		Listing:  viewstate.NewListingController(cache, r.base),
		Detail:   viewstate.NewDetailController(cache, r.base),
		lastSeen: r.now(),
	}
	s.Activate(page)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Lookup returns the live session for id and marks it as seen. Expired
// sessions are evicted on the spot and reported as missing.
func (r *Registry) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	now := r.now()
	if s.idle(now, r.idleTTL) {
		r.evict(id, s)
		return nil, false
	}
	if !s.touch(now) {
		return nil, false
	}
	return s, true
}

// Sweep evicts every idle session and returns how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()

	r.mu.Lock()
	expired := make([]*Session, 0)
	for id, s := range r.sessions {
		if s.idle(now, r.idleTTL) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	active := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	metrics.EmitSessions(r.metrics, active, len(expired))
	if len(expired) > 0 {
		r.logger.DebugContext(ctx, "evicted idle page sessions", "evicted", len(expired), "active", active)
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close evicts every session.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

func (r *Registry) evict(id string, s *Session) {
	r.mu.Lock()
	if cur, ok := r.sessions[id]; ok && cur == s {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	s.close()
}
