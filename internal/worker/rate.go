package worker

import (
	"context"
	"log/slog"
	"time"
)

// RateRefresher refreshes the cached USD→IDR rate. Refresh absorbs provider
// failures internally, so the worker only drives the schedule.
type RateRefresher interface {
	Refresh(ctx context.Context)
}

// RateWorker keeps the exchange rate cache warm so request paths never
// block on the provider.
type RateWorker struct {
	refresher RateRefresher
	interval  time.Duration
}

// NewRateWorker creates a new RateWorker.
func NewRateWorker(refresher RateRefresher, interval time.Duration) *RateWorker {
	return &RateWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the rate worker loop. It blocks until the context is cancelled.
func (w *RateWorker) Run(ctx context.Context) {
	slog.Info("RateWorker: starting")

	// Refresh immediately on startup
	w.refresher.Refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RateWorker: shutting down")
			return
		case <-ticker.C:
			w.refresher.Refresh(ctx)
			slog.Info("RateWorker: refresh completed")
		}
	}
}
