package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// Summarizer computes the current portfolio summary.
type Summarizer interface {
	Summary(ctx context.Context) (domain.PortfolioSummary, error)
}

// SnapshotStore records net-worth snapshots on the history timeline.
type SnapshotStore interface {
	AddSnapshot(ctx context.Context, value decimal.Decimal, at time.Time) error
}

// AfterSnapshotHook is called after each successful snapshot.
type AfterSnapshotHook interface {
	Export(ctx context.Context) error
}

// SnapshotWorker periodically records the portfolio's total value, so the
// history chart keeps moving even on days with no manual edits.
type SnapshotWorker struct {
	summarizer Summarizer
	store      SnapshotStore
	interval   time.Duration
	loc        *time.Location
	hook       AfterSnapshotHook // optional
}

// NewSnapshotWorker creates a new SnapshotWorker with an optional
// post-snapshot hook. Snapshot timestamps are taken in loc.
func NewSnapshotWorker(summarizer Summarizer, store SnapshotStore, interval time.Duration, loc *time.Location, hook AfterSnapshotHook) *SnapshotWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &SnapshotWorker{
		summarizer: summarizer,
		store:      store,
		interval:   interval,
		loc:        loc,
		hook:       hook,
	}
}

func (w *SnapshotWorker) snapshot(ctx context.Context) {
	summary, err := w.summarizer.Summary(ctx)
	if err != nil {
		slog.Error("SnapshotWorker: summary failed", "error", err)
		return
	}
	if err := w.store.AddSnapshot(ctx, summary.TotalValue, time.Now().In(w.loc)); err != nil {
		slog.Error("SnapshotWorker: recording snapshot failed", "error", err)
		return
	}
	slog.Info("SnapshotWorker: snapshot recorded", "totalValue", summary.TotalValue)
	w.runHook(ctx)
}

// runHook calls the post-snapshot hook if one is configured.
func (w *SnapshotWorker) runHook(ctx context.Context) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx); err != nil {
		slog.Error("SnapshotWorker: export hook failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: export hook completed")
	}
}

// Run starts the snapshot worker loop. It blocks until the context is
// cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	slog.Info("SnapshotWorker: starting")

	// Snapshot immediately on startup
	w.snapshot(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			w.snapshot(ctx)
		}
	}
}
