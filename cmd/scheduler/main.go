package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"serveportal_backend/internal/adapters"
	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits"
	"serveportal_backend/internal/affidavits/drafts"
	affidavitrepo "serveportal_backend/internal/affidavits/repository"
	affidavitservice "serveportal_backend/internal/affidavits/service"
	"serveportal_backend/internal/clients"
	"serveportal_backend/internal/company"
	"serveportal_backend/internal/email"
	"serveportal_backend/internal/employees"
	"serveportal_backend/internal/events"
	"serveportal_backend/internal/jobs"
	jobservice "serveportal_backend/internal/jobs/service"
	"serveportal_backend/internal/maps"
	"serveportal_backend/internal/notification"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/internal/scheduler"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/db"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	var gotenberg *pdf.GotenbergClient
	if cfg.IsGotenbergEnabled() {
		gotenberg = pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
	}

	val := validator.New()

	// Worker-side wiring (no HTTP handlers required).
	employeesModule := employees.NewModule(pool, val, log)
	clientsModule := clients.NewModule(pool, val, log)
	companyModule := company.NewModule(pool, val, storageSvc, cfg.GetMinioBucketCompanyLogos(), log)
	jobsModule := jobs.NewModule(pool, val, storageSvc, jobservice.Buckets{
		Photos:     cfg.GetMinioBucketAttemptPhotos(),
		Documents:  cfg.GetMinioBucketJobDocuments(),
		Affidavits: cfg.GetMinioBucketAffidavits(),
	}, eventBus, log)
	jobsModule.Service.SetAddressResolver(maps.NewModule(cfg, log).Service)
	jobsModule.Service.SetServerDirectory(employeesModule.Service)

	affidavitsModule := affidavits.NewModule(pool, val, affidavitservice.Dependencies{
		// rendering reads the stored affidavit data, never a draft
		Drafts:   drafts.NewMemoryStore(cfg.GetDraftTTL()),
		Jobs:     jobsModule.Service,
		Staff:    adapters.NewAffidavitStaffDirectory(employeesModule.Service),
		Company:  adapters.NewAffidavitCompanyDirectory(companyModule.Service),
		Clients:  clientsModule.Service,
		Renderer: pdf.NewRenderer(gotenberg),
		Storage:  storageSvc,
		EventBus: eventBus,
		Log:      log,
	}, affidavitservice.Options{
		BaseURL:          cfg.GetAppBaseURL(),
		PlaceholderAgent: cfg.GetPlaceholderAgentName(),
		AffidavitBucket:  cfg.GetMinioBucketAffidavits(),
		PhotoBucket:      cfg.GetMinioBucketAttemptPhotos(),
		LogoBucket:       cfg.GetMinioBucketCompanyLogos(),
	})
	affidavitsModule.Service.SetMailer(adapters.NewAffidavitMailer(sender))

	// AffidavitGenerated is published here, so the worker handles its notifications.
	notificationModule := notification.New(pool, sender, cfg, val, log)
	notificationModule.SetJobReader(jobsModule.Service)
	notificationModule.SetServerDirectory(employeesModule.Service)
	notificationModule.SetCompanyReader(companyModule.Service)
	notificationModule.SetAffidavitSender(affidavitsModule.Service)
	notificationModule.RegisterHandlers(eventBus)

	queue, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = queue.Close() }()

	dispatcher := scheduler.NewReconcileDispatcher(queue, log, cfg.GetReconcileSweepInterval())
	go dispatcher.Run(ctx)

	requeueInterval := getDurationEnv("AFFIDAVIT_REQUEUE_INTERVAL", 5*time.Minute)
	staleAfter := getDurationEnv("AFFIDAVIT_STALE_AFTER", 10*time.Minute)
	requeue := scheduler.NewAffidavitRequeue(affidavitrepo.New(pool), queue, log, requeueInterval, staleAfter)
	go requeue.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, affidavitsModule.Service, jobsModule.Service, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
