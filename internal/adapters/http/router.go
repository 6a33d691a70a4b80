package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/xup/internal/adapters/http/handlers"
	"github.com/jsamuelsen/xup/internal/adapters/http/middleware"
	"github.com/jsamuelsen/xup/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the fallback logger for request logging and panics.
	Logger *slog.Logger

	// ServiceName names the otelgin tracer.
	ServiceName string

	// HealthHandler handles the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// DoctrineHandler handles the doctrine read API.
	DoctrineHandler *handlers.DoctrineHandler

	// Timeout is the per-request deadline for /api/v1. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. OpenTelemetry - otelgin tracing, then metrics and X-Trace-ID
//  4. Logging - request logging (skips /-/ endpoints)
//  5. Timeout - /api/v1 only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - /api/v1/: doctrine queries
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.DoctrineHandler != nil {
		cfg.DoctrineHandler.RegisterRoutes(apiV1)
	}
}
