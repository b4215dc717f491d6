package main

import (
	"context"
	"flag"

	"serveportal_backend/internal/events"
	"serveportal_backend/internal/jobs"
	jobservice "serveportal_backend/internal/jobs/service"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/db"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "classify attempts without writing")
	batchSize := flag.Int("limit", 500, "attempts per batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting attempt method backfill", "dryRun", *dryRun, "limit", *batchSize)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	// the backfill never touches stored files
	jobsModule := jobs.NewModule(pool, validator.New(), nil, jobservice.Buckets{}, eventBus, log)

	total := 0
	for {
		result, err := jobsModule.Service.BackfillAttemptMethods(ctx, *batchSize, *dryRun)
		if err != nil {
			log.Error("backfill batch failed", "error", err, "tagged", total)
			return
		}
		total += result.Tagged
		for method, count := range result.ByMethod {
			log.Info("attempts classified", "method", method, "count", count)
		}

		// a dry run sees the same untagged attempts again
		if *dryRun || result.Tagged < *batchSize {
			break
		}
	}

	log.Info("attempt method backfill complete", "tagged", total, "dryRun", *dryRun)
}
