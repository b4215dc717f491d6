// Package http holds what the router and the domain modules share: the
// Module contract, the route groups handed to modules and the App the
// composition root assembles.
package http

import (
	"context"

	"serveportal_backend/internal/events"
	"serveportal_backend/platform/config"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module is a bounded context that mounts its own routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups a module may mount on.
type RouterContext struct {
	// V1 is /api/v1 without authentication (public verification lookups).
	V1 *gin.RouterGroup
	// Protected is /api/v1 behind the bearer token check.
	Protected *gin.RouterGroup
	// Staff is Protected limited to company staff; client users are rejected.
	Staff *gin.RouterGroup
	// RenderRateLimiter throttles PDF rendering per client IP.
	RenderRateLimiter *httpkit.IPRateLimiter
}

// RouterConfig is the configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs the readiness probe; *pgxpool.Pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is the fully wired application handed to the router.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
