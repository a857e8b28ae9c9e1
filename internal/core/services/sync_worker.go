package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/middleware"
)

// SyncWorker periodically runs upload passes in the background. It owns no
// retry policy beyond the next scheduled pass: a failed pass is logged and
// the records it could not move stay queued for the next tick.
type SyncWorker struct {
	syncSvc  portssvc.SyncSvcFacade
	interval time.Duration
	logger   *slog.Logger
}

// NewSyncWorker creates a worker that calls SyncOnce every interval.
func NewSyncWorker(syncSvc portssvc.SyncSvcFacade, interval time.Duration, logger *slog.Logger) *SyncWorker {
	return &SyncWorker{
		syncSvc:  syncSvc,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, performing one upload pass per tick.
func (w *SyncWorker) Run(ctx context.Context) error {
	ctx = middleware.WithLogger(ctx, w.logger)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Sync worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Sync worker stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := w.syncSvc.SyncOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				w.logger.Error("Sync pass failed", slog.String("error", err.Error()))
			}
		}
	}
}
