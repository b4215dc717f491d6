// Package clients provides the client directory module.
package clients

import (
	"serveportal_backend/internal/clients/handler"
	"serveportal_backend/internal/clients/repository"
	"serveportal_backend/internal/clients/service"
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the clients domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new clients module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "clients"
}

// RegisterRoutes registers the module's routes under /api/v1/clients
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/clients"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
