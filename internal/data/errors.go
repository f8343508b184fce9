package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrEmptyKey is returned for a blank cache key.
	ErrEmptyKey = errors.New("key cannot be empty")
	// ErrEmptyLockOwner is returned when acquiring or releasing the sync lock without an owner.
	ErrEmptyLockOwner = errors.New("lock owner is required")
)
