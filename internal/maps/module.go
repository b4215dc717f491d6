package maps

import (
	apphttp "serveportal_backend/internal/http"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/logger"
)

// Module wires the maps address lookup HTTP routes.
type Module struct {
	handler *Handler
	Service *Service
}

func NewModule(cfg config.GeocodeConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{handler: h, Service: svc}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
	group.GET("/reverse", m.handler.ReverseLookup)
}

var _ apphttp.Module = (*Module)(nil)
