package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/circuitbreaker"
	infragin "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/gin"
	infralogger "github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/metrics"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/config"
)

// ServerOptions carries the optional collaborators of the HTTP server.
type ServerOptions struct {
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
	// HTTPMetrics records per-route request metrics when set.
	HTTPMetrics *metrics.HTTPMetrics
	// RedisPing adds a redis entry to GET /health when set.
	RedisPing func() error
	// Breaker adds an analyzer entry to GET /health when set.
	Breaker BreakerStater
}

// BreakerStater reports the analyzer circuit state.
type BreakerStater interface {
	BreakerState() circuitbreaker.State
}

// NewServer creates the HTTP server using the infrastructure gin package.
func NewServer(handler *Handler, cfg *config.Config, log infralogger.Logger, opts ServerOptions) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins...).
		WithRoutes(func(router *gin.Engine) {
			SetupServiceRoutes(router, handler, cfg.Auth.JWTSecret)
		})
	if opts.Metrics != nil {
		builder = builder.WithMetrics(opts.Metrics)
	}
	if opts.HTTPMetrics != nil {
		builder = builder.WithMiddleware(opts.HTTPMetrics.Middleware())
	}
	if opts.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(opts.RedisPing)
	}
	if opts.Breaker != nil {
		builder = builder.WithHealthCheck("analyzer", breakerHealthCheck(opts.Breaker))
	}
	return builder.Build()
}

// breakerHealthCheck reports degraded while the analyzer circuit is not
// closed; comments still resolve rule-only.
func breakerHealthCheck(b BreakerStater) infragin.HealthChecker {
	return func() infragin.CheckResult {
		state := b.BreakerState()
		if state == circuitbreaker.StateClosed {
			return infragin.CheckResult{Status: infragin.HealthStatusHealthy, Message: "circuit " + state.String()}
		}
		return infragin.CheckResult{Status: infragin.HealthStatusDegraded, Message: "circuit " + state.String()}
	}
}

// SetupServiceRoutes configures the /api/v1 routes. Health routes are
// handled by the infrastructure gin package.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, jwtSecret string) {
	v1 := infragin.ProtectedGroup(router, "/api/v1", jwtSecret)

	analyze := v1.Group("/analyze")
	analyze.POST("", handler.Analyze)                // POST /api/v1/analyze
	analyze.POST("/comment", handler.AnalyzeComment) // POST /api/v1/analyze/comment

	v1.POST("/classify", handler.Classify)   // POST /api/v1/classify
	v1.POST("/merge", handler.Merge)         // POST /api/v1/merge
	v1.POST("/summarize", handler.Summarize) // POST /api/v1/summarize

	v1.GET("/rules", handler.ListRules)         // GET /api/v1/rules
	v1.GET("/relations", handler.ListRelations) // GET /api/v1/relations
	v1.GET("/ontology", handler.GetOntology)    // GET /api/v1/ontology

	v1.GET("/analyzer/health", handler.GetAnalyzerHealth) // GET /api/v1/analyzer/health
}
