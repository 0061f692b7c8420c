// Package health tracks whether the server can reach its database.
package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/patientauth/internal/logging"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Watcher pings the database on an interval and reports status transitions
// to its listeners.
type Watcher struct {
	db       Pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger

	healthy   atomic.Bool
	checked   atomic.Bool
	mu        sync.Mutex
	listeners []func(healthy bool)
}

// NewWatcher returns a Watcher that starts out unhealthy until the first
// successful ping.
func NewWatcher(db Pinger, interval time.Duration, l logging.Logger) *Watcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	timeout := interval / 2
	if timeout > 2*time.Second {
		timeout = 2 * time.Second
	}
	return &Watcher{
		db:       db,
		interval: interval,
		timeout:  timeout,
		logger:   l.With("module", "health"),
	}
}

// OnChange registers fn to be called with the new status on every transition.
func (w *Watcher) OnChange(fn func(healthy bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Healthy reports the outcome of the most recent check.
func (w *Watcher) Healthy() bool {
	return w.healthy.Load()
}

// Check pings the database once, records the outcome and returns the ping error.
func (w *Watcher) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.db.PingContext(ctx)
	w.set(ctx, err)
	return err
}

// Run checks immediately and then on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		_ = w.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) set(ctx context.Context, err error) {
	healthy := err == nil
	first := !w.checked.Swap(true)
	if w.healthy.Swap(healthy) == healthy && !first {
		return
	}

	if healthy {
		w.logger.Info(ctx, "database reachable")
	} else {
		w.logger.Warn(ctx, "database unreachable", "error", err)
	}

	w.mu.Lock()
	listeners := append([]func(bool){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn(healthy)
	}
}
