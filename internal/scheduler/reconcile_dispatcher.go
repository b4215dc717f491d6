package scheduler

import (
	"context"
	"time"

	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultReconcileInterval = 6 * time.Hour

// ReconcileEnqueuer queues reconciliation sweeps.
type ReconcileEnqueuer interface {
	EnqueueReconcile(ctx context.Context, tenantID *uuid.UUID, unique time.Duration) error
}

// ReconcileDispatcher periodically queues a reconciliation of every job.
// Several api instances may run one; the unique window keeps one sweep per interval.
type ReconcileDispatcher struct {
	queue    ReconcileEnqueuer
	log      *logger.Logger
	interval time.Duration
}

func NewReconcileDispatcher(queue ReconcileEnqueuer, log *logger.Logger, interval time.Duration) *ReconcileDispatcher {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	return &ReconcileDispatcher{queue: queue, log: log, interval: interval}
}

func (d *ReconcileDispatcher) Run(ctx context.Context) {
	if d == nil || d.queue == nil {
		return
	}

	d.dispatch(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatch(ctx)
		}
	}
}

func (d *ReconcileDispatcher) dispatch(ctx context.Context) {
	if err := d.queue.EnqueueReconcile(ctx, nil, d.interval); err != nil {
		d.log.Warn("reconcile enqueue failed", "error", err)
	}
}
