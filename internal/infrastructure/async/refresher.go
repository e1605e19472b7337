// Package async runs the dashboard refresh worker. Uploads finish on
// whatever goroutine drove them; the worker decouples the refresh that
// follows so the upload path never blocks on two extra fetches.
package async

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/ports"
	"github.com/finrating/dashboard-client/internal/infrastructure/metrics"
)

// Refresher is a single-worker scheduler for dashboard refreshes. The
// signal channel holds one pending slot, so bursts of Schedule calls while
// a refresh is running coalesce into a single follow-up refresh.
type Refresher struct {
	signals chan struct{}
	target  ports.DashboardRefresher
	log     zerolog.Logger
}

func NewRefresher(target ports.DashboardRefresher, log zerolog.Logger) *Refresher {
	return &Refresher{
		signals: make(chan struct{}, 1),
		target:  target,
		log:     log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	go r.run(ctx)
}

// Schedule requests a refresh without blocking. When a refresh is already
// pending the call is a no-op.
func (r *Refresher) Schedule() {
	metrics.RefreshesScheduledTotal.Inc()
	select {
	case r.signals <- struct{}{}:
	default:
	}
}

func (r *Refresher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.signals:
			if err := r.target.Refresh(ctx); err != nil {
				r.log.Warn().Err(err).Msg("scheduled dashboard refresh failed")
			}
		}
	}
}
