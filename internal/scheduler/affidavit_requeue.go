package scheduler

import (
	"context"
	"time"

	affrepo "serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	defaultRequeueInterval = 5 * time.Minute
	defaultStaleAfter      = 10 * time.Minute
	requeueBatchSize       = 50
)

// StalePendingSource lists affidavits that stayed pending too long.
type StalePendingSource interface {
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]affrepo.Affidavit, error)
}

// GenerationEnqueuer queues affidavit rendering.
type GenerationEnqueuer interface {
	EnqueueAffidavitGeneration(ctx context.Context, tenantID, affidavitID uuid.UUID) error
}

// AffidavitRequeue re-enqueues pending affidavits whose task was lost, for
// example when Redis restarted between the request and the render.
type AffidavitRequeue struct {
	source     StalePendingSource
	queue      GenerationEnqueuer
	log        *logger.Logger
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time
}

func NewAffidavitRequeue(source StalePendingSource, queue GenerationEnqueuer, log *logger.Logger, interval, staleAfter time.Duration) *AffidavitRequeue {
	if interval <= 0 {
		interval = defaultRequeueInterval
	}
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}

	return &AffidavitRequeue{
		source:     source,
		queue:      queue,
		log:        log,
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (r *AffidavitRequeue) Run(ctx context.Context) {
	if r == nil || r.source == nil || r.queue == nil {
		return
	}

	r.requeue(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.requeue(ctx)
		}
	}
}

// requeue returns the number of affidavits handed back to the queue.
func (r *AffidavitRequeue) requeue(ctx context.Context) int {
	stale, err := r.source.ListStalePending(ctx, r.now().Add(-r.staleAfter), requeueBatchSize)
	if err != nil {
		r.log.Warn("stale affidavit lookup failed", "error", err)
		return 0
	}

	requeued := 0
	for _, a := range stale {
		if err := r.queue.EnqueueAffidavitGeneration(ctx, a.TenantID, a.ID); err != nil {
			r.log.Warn("affidavit requeue failed", "affidavitId", a.ID, "error", err)
			continue
		}
		requeued++
	}

	if requeued > 0 {
		r.log.Info("requeued stale affidavits", "count", requeued)
	}
	return requeued
}
