// Package watchdog owns the process-wide database reachability state. A
// single background loop probes the server, flips the reachable flag and
// (re-)runs one-time initialization whenever the database comes back.
package watchdog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Store is the slice of the data layer the watchdog drives.
type Store interface {
	// Probe reports whether the database server is reachable.
	Probe(ctx context.Context) bool

	// Init runs one-time schema initialization. Idempotent per session.
	Init(ctx context.Context) error

	// Invalidate forgets that initialization ran, so the next Init
	// re-executes the schema script.
	Invalidate()
}

// Watchdog polls the database on a fixed interval. Route handlers read the
// reachable flag through Reachable; only the run loop writes it.
type Watchdog struct {
	store    Store
	interval time.Duration
	logger   zerolog.Logger

	reachable atomic.Bool
}

// New creates a watchdog polling store every interval.
func New(store Store, interval time.Duration, logger zerolog.Logger) *Watchdog {
	return &Watchdog{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "watchdog").Logger(),
	}
}

// Reachable reports the result of the most recent probe.
func (w *Watchdog) Reachable() bool {
	return w.reachable.Load()
}

// Run probes immediately and then on every tick until ctx is cancelled.
// It blocks; callers start it in its own goroutine.
func (w *Watchdog) Run(ctx context.Context) {
	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watchdog stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watchdog) check(ctx context.Context) {
	if !w.store.Probe(ctx) {
		if w.reachable.Swap(false) {
			w.logger.Warn().Msg("database became unreachable")
		}
		// Force re-initialization on the next reconnect.
		w.store.Invalidate()
		return
	}

	if !w.reachable.Swap(true) {
		w.logger.Info().Msg("database reachable")
	}
	if err := w.store.Init(ctx); err != nil {
		w.logger.Error().Err(err).Msg("initialization failed")
	}
}
