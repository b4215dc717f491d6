package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serveportal_backend/internal/adapters"
	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits"
	"serveportal_backend/internal/affidavits/drafts"
	affidavitservice "serveportal_backend/internal/affidavits/service"
	"serveportal_backend/internal/clients"
	"serveportal_backend/internal/company"
	"serveportal_backend/internal/email"
	"serveportal_backend/internal/employees"
	"serveportal_backend/internal/events"
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/internal/http/router"
	"serveportal_backend/internal/jobs"
	jobservice "serveportal_backend/internal/jobs/service"
	"serveportal_backend/internal/maps"
	"serveportal_backend/internal/notification"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/internal/scheduler"
	"serveportal_backend/migrations"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/db"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for file uploads (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "attempt-photos", cfg.GetMinioBucketAttemptPhotos())
	ensureBucket(ctx, log, storageSvc, "job-documents", cfg.GetMinioBucketJobDocuments())
	ensureBucket(ctx, log, storageSvc, "affidavits", cfg.GetMinioBucketAffidavits())
	ensureBucket(ctx, log, storageSvc, "company-logos", cfg.GetMinioBucketCompanyLogos())
	log.Info(
		"storage service initialized",
		"attemptPhotosBucket", cfg.GetMinioBucketAttemptPhotos(),
		"jobDocumentsBucket", cfg.GetMinioBucketJobDocuments(),
		"affidavitsBucket", cfg.GetMinioBucketAffidavits(),
		"companyLogosBucket", cfg.GetMinioBucketCompanyLogos(),
	)

	// Gotenberg renders markup templates and merges served documents
	var gotenberg *pdf.GotenbergClient
	if cfg.IsGotenbergEnabled() {
		gotenberg = pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		log.Info("gotenberg PDF generator initialized", "url", cfg.GetGotenbergURL())
	} else {
		log.Warn("GOTENBERG_URL not configured; markup templates and document merging disabled")
	}

	draftStore, closeDrafts := initDraftStore(ctx, cfg, log)
	if closeDrafts != nil {
		defer closeDrafts()
	}

	generationQueue, closeQueue := initScheduler(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	mapsModule := maps.NewModule(cfg, log)
	employeesModule := employees.NewModule(pool, val, log)
	clientsModule := clients.NewModule(pool, val, log)
	companyModule := company.NewModule(pool, val, storageSvc, cfg.GetMinioBucketCompanyLogos(), log)

	jobsModule := jobs.NewModule(pool, val, storageSvc, jobservice.Buckets{
		Photos:     cfg.GetMinioBucketAttemptPhotos(),
		Documents:  cfg.GetMinioBucketJobDocuments(),
		Affidavits: cfg.GetMinioBucketAffidavits(),
	}, eventBus, log)
	jobsModule.Service.SetAddressResolver(mapsModule.Service)
	jobsModule.Service.SetServerDirectory(employeesModule.Service)

	affidavitsModule := affidavits.NewModule(pool, val, affidavitservice.Dependencies{
		Drafts:   draftStore,
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
	if generationQueue != nil {
		affidavitsModule.Service.SetGenerationQueue(generationQueue)
	}

	// Notification module subscribes to domain events
	notificationModule := notification.New(pool, sender, cfg, val, log)
	notificationModule.SetJobReader(jobsModule.Service)
	notificationModule.SetServerDirectory(employeesModule.Service)
	notificationModule.SetCompanyReader(companyModule.Service)
	notificationModule.SetAffidavitSender(affidavitsModule.Service)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			jobsModule,
			affidavitsModule,
			employeesModule,
			clientsModule,
			companyModule,
			mapsModule,
			notificationModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initDraftStore keeps drafts in Redis when configured so every api instance
// sees the same draft; otherwise drafts live in process memory.
func initDraftStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (drafts.Store, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; affidavit drafts kept in memory")
		return drafts.NewMemoryStore(cfg.GetDraftTTL()), nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to connect to redis; affidavit drafts kept in memory", "error", err)
		return drafts.NewMemoryStore(cfg.GetDraftTTL()), nil
	}

	return drafts.NewRedisStore(rdb, cfg.GetDraftTTL()), func() {
		_ = rdb.Close()
	}
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; affidavits render inside the request")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
