package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leantech/jobboard/internal/session"
)

func TestPageSessionContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := GetPageSessionFromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, pageSessionID(ctx))

	assert.Equal(t, ctx, SetPageSessionInContext(ctx, nil))

	s := &session.Session{ID: "abc"}
	ctx = SetPageSessionInContext(ctx, s)
	got, ok := GetPageSessionFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, "abc", pageSessionID(ctx))
}
