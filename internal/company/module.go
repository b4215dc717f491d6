// Package company provides the company profile module.
package company

import (
	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/company/handler"
	"serveportal_backend/internal/company/repository"
	"serveportal_backend/internal/company/service"
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the company profile module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new company module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, store storage.StorageService, bucket string, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), store, bucket, log)
	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "company"
}

// RegisterRoutes registers the module's routes under /api/v1/company
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/company"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
