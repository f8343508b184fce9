// Package core holds the job board's business logic: the per-session job
// cache and the ports implemented by the data, transport and crawler layers.
package core

import (
	"context"
	"time"
)

// CacheRepository defines the key/value operations the job store needs.
// The core defines the port and the data layer provides the Redis adapter.
type CacheRepository interface {
	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns nil, nil when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	Exists(ctx context.Context, key string) (bool, error)

	// SetIfNotExists atomically sets a key only if it is absent.
	// It backs the distributed sync lock.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// DeleteIfEquals removes key only while it still holds value.
	DeleteIfEquals(ctx context.Context, key string, value []byte) (bool, error)

	Health(ctx context.Context) error
}
