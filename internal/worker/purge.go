package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

type Purger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

// * PurgeWorker drops ledger rows older than the retention window on every tick
type PurgeWorker struct {
	ledger    Purger
	interval  time.Duration
	retention time.Duration
}

func NewPurgeWorker(ledger Purger, interval, retention time.Duration) *PurgeWorker {
	return &PurgeWorker{
		ledger:    ledger,
		interval:  interval,
		retention: retention,
	}
}

func (w *PurgeWorker) Run(ctx context.Context) {
	w.purge(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.purge(ctx)

		case <-ctx.Done():
			logger.Info("stopping purge worker")
			return
		}
	}
}

func (w *PurgeWorker) purge(ctx context.Context) {
	if _, err := w.ledger.PurgeOlderThan(ctx, w.retention); err != nil {
		logger.Error("purge failed: %v", err)
	}
}
