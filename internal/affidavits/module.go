// Package affidavits provides the affidavits domain module: the template
// library, affidavit preparation and drafts, PDF generation and delivery.
package affidavits

import (
	"serveportal_backend/internal/affidavits/handler"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/affidavits/service"
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the affidavits domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new affidavits module. deps.Repo is filled from pool.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, deps service.Dependencies, opts service.Options) *Module {
	deps.Repo = repository.New(pool)
	svc := service.New(deps, opts)

	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "affidavits"
}

// RegisterRoutes registers /jobs/:id/affidavit*, /affidavits, /affidavit-templates
// and the public verification lookup.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	render := func(c *gin.Context) { c.Next() }
	if ctx.RenderRateLimiter != nil {
		render = ctx.RenderRateLimiter.RateLimit()
	}

	m.handler.RegisterJobRoutes(ctx.Protected.Group("/jobs"), render)
	m.handler.RegisterAffidavitRoutes(ctx.Protected.Group("/affidavits"))
	m.handler.RegisterTemplateRoutes(ctx.Protected.Group("/affidavit-templates"))
	m.handler.RegisterPublicRoutes(ctx.V1.Group("/affidavits"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
