package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/learning-journal/internal/adapters/http/handlers"
	"github.com/jsamuelsen/learning-journal/internal/adapters/http/middleware"
	"github.com/jsamuelsen/learning-journal/internal/platform/telemetry"
)

// DefaultRequestTimeout is the API deadline used when none is configured.
const DefaultRequestTimeout = 10 * time.Second

// DefaultMaxBodySize bounds request bodies when none is configured.
const DefaultMaxBodySize int64 = 1 << 20

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is placed in every request context.
	Logger *slog.Logger

	// AppName names the service in traces and metrics.
	AppName string

	// Timeout is the deadline attached to /api requests.
	Timeout time.Duration

	// MaxBodySize is the largest accepted request body in bytes.
	MaxBodySize int64

	HealthHandler     *handlers.HealthHandler
	ReflectionHandler *handlers.ReflectionHandler
	PagesHandler      *handlers.PagesHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request logger in context
//  3. Request ID, then correlation ID
//  4. OpenTelemetry tracing and request metrics
//  5. Request logging (skips /-/ and /static/)
//  6. Body size limit
//
// Route groups:
//   - /-/: operational endpoints
//   - /api/: reflections REST API, with a request deadline
//   - everything else: pages, PWA files and static assets
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	engine.Use(
		middleware.Recovery(),
		middleware.WithLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppName)...)
	engine.Use(
		middleware.Logging(),
		middleware.MaxBodySize(cfg.MaxBodySize),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.ReflectionHandler != nil {
		cfg.ReflectionHandler.RegisterReflectionRoutes(api)
	}

	if cfg.PagesHandler != nil {
		cfg.PagesHandler.RegisterPageRoutes(engine)
	}
}
