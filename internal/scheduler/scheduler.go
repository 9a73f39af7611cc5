// Package scheduler runs named fixed-interval background loops with
// single-flight semantics: a tick that fires while the previous one is
// still running is skipped, not queued.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// TickFunc advances one simulation step. Errors are logged and swallowed;
// the next scheduled interval retries naturally.
type TickFunc func(ctx context.Context) error

type Loop struct {
	name     string
	interval time.Duration
	fn       TickFunc
	running  atomic.Bool
	logger   *slog.Logger
}

func NewLoop(name string, interval time.Duration, fn TickFunc, logger *slog.Logger) *Loop {
	return &Loop{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With("loop", name),
	}
}

// Trigger runs one tick unless another is already in flight, in which case
// it is a silent no-op. Returns whether the tick actually ran. Manual and
// scheduled triggers share the same guard.
func (l *Loop) Trigger(ctx context.Context) bool {
	if !l.running.CompareAndSwap(false, true) {
		l.logger.Debug("Tick already in progress, skipping")
		return false
	}
	defer l.running.Store(false)

	if err := l.fn(ctx); err != nil {
		l.logger.Error("Tick failed", "error", err)
	}
	return true
}

// Run drives the loop at its fixed interval until the context is canceled.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("Tick loop started", "interval", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Tick loop stopped")
			return
		case <-ticker.C:
			l.Trigger(ctx)
		}
	}
}
