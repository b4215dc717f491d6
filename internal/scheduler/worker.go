package scheduler

import (
	"context"
	"fmt"

	affrepo "serveportal_backend/internal/affidavits/repository"
	jobsvc "serveportal_backend/internal/jobs/service"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// AffidavitRenderer renders a pending affidavit.
type AffidavitRenderer interface {
	RenderAffidavit(ctx context.Context, tenantID, affidavitID uuid.UUID) (affrepo.Affidavit, error)
}

// JobReconciler corrects job statuses that drifted from their attempts.
type JobReconciler interface {
	ReconcileAll(ctx context.Context) (jobsvc.SweepResult, error)
	ReconcileTenant(ctx context.Context, tenantID uuid.UUID) (jobsvc.SweepResult, error)
}

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	renderer   AffidavitRenderer
	reconciler JobReconciler
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, renderer AffidavitRenderer, reconciler JobReconciler, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := newWorker(renderer, reconciler, log)
	w.server = server
	return w, nil
}

func newWorker(renderer AffidavitRenderer, reconciler JobReconciler, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:        mux,
		renderer:   renderer,
		reconciler: reconciler,
		log:        log,
	}

	mux.HandleFunc(TaskGenerateAffidavit, w.handleGenerateAffidavit)
	mux.HandleFunc(TaskReconcileJobs, w.handleReconcileJobs)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleGenerateAffidavit(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseGenerateAffidavitPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	affidavitID, err := uuid.Parse(payload.AffidavitID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	a, err := w.renderer.RenderAffidavit(ctx, tenantID, affidavitID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Warn("affidavit vanished before rendering", "affidavitId", affidavitID)
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}

	w.log.Info("affidavit task completed", "affidavitId", a.ID, "jobId", a.JobID)
	return nil
}

func (w *Worker) handleReconcileJobs(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReconcileJobsPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	var result jobsvc.SweepResult
	if payload.TenantID == "" {
		result, err = w.reconciler.ReconcileAll(ctx)
	} else {
		tenantID, parseErr := uuid.Parse(payload.TenantID)
		if parseErr != nil {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, parseErr)
		}
		result, err = w.reconciler.ReconcileTenant(ctx, tenantID)
	}
	if err != nil {
		return err
	}

	if result.Corrected > 0 {
		w.log.Info("job reconciliation corrected statuses", "checked", result.Checked, "corrected", result.Corrected)
	}
	return nil
}
