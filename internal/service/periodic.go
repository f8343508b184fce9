package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"
)

// periodic runs tick once after a jittered start delay and then on every
// interval until ctx is done.
type periodic struct {
	name     string
	interval time.Duration
	logger   *slog.Logger
	tick     func(ctx context.Context)
}

// run returns nil on graceful shutdown (context.Canceled).
func (p periodic) run(ctx context.Context) error {
	p.logger.InfoContext(ctx, "starting "+p.name, "interval", p.interval)

	// Spread instances that start together.
	if !p.waitWithJitter(ctx) {
		return shutdownErr(ctx)
	}
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, p.name+" stopping", "reason", ctx.Err())
			return shutdownErr(ctx)
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// waitWithJitter sleeps up to 10% of the interval. It reports false when ctx
// ended first.
func (p periodic) waitWithJitter(ctx context.Context) bool {
	maxJitter := int64(p.interval / 10)
	if maxJitter <= 0 {
		return ctx.Err() == nil
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		p.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return ctx.Err() == nil
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func shutdownErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
