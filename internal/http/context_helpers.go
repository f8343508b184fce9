package httpx

import (
	"context"

	"github.com/leantech/jobboard/internal/session"
)

// pageSessionKey is an unexported context key type to avoid collisions across packages.
type pageSessionKey struct{}

// SetPageSessionInContext returns a child context that carries the page session.
// If s is nil, the original ctx is returned unchanged.
func SetPageSessionInContext(ctx context.Context, s *session.Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, pageSessionKey{}, s)
}

// GetPageSessionFromContext returns the page session and whether one was set.
func GetPageSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(pageSessionKey{}).(*session.Session)
	return s, ok && s != nil
}

// pageSessionID returns the id of the session in ctx, or "".
func pageSessionID(ctx context.Context) string {
	if s, ok := GetPageSessionFromContext(ctx); ok {
		return s.ID
	}
	return ""
}
