package errors

import (
	"context"
	"errors"
	"net"

	"github.com/redis/go-redis/v9"
)

// MapStoreError maps Redis and context failures to AppError instances:
//   - redis.Nil becomes NotFound
//   - context deadline and cancellation become Timeout and Canceled
//   - network failures and a closed client become Unavailable
//
// Anything else, including errors that already are AppErrors, is returned unchanged.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, redis.Nil):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	case errors.Is(err, redis.ErrClosed):
		return Wrap(err, ErrCodeUnavailable, "Job store is unavailable.")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(err, ErrCodeUnavailable, "Job store is unavailable.")
	}
	return err
}
