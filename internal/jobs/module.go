// Package jobs provides the jobs domain module: jobs, service attempts,
// job documents and court cases.
package jobs

import (
	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/events"
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/handler"
	"serveportal_backend/internal/jobs/repository"
	"serveportal_backend/internal/jobs/service"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the jobs domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new jobs module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, store storage.StorageService, buckets service.Buckets, eventBus events.Bus, log *logger.Logger) *Module {
	RegisterValidations(val)

	repo := repository.New(pool)
	svc := service.New(repo, store, buckets, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// RegisterValidations adds the jobs enum tags to the shared validator.
func RegisterValidations(val *validator.Validator) {
	_ = val.RegisterValidation("jobstatus", validator.OneOf(domain.JobStatusValues()...))
	_ = val.RegisterValidation("attemptstatus", validator.OneOf(domain.AttemptStatusValues()...))
	_ = val.RegisterValidation("servicemethod", validator.OneOf(domain.ServiceMethodValues()...))
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "jobs"
}

// RegisterRoutes registers the module's routes under /api/v1/jobs and /api/v1/court-cases
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/jobs"))
	m.handler.RegisterCourtCaseRoutes(ctx.Protected.Group("/court-cases"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
