package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/documents"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

const (
	rateGroupScoring = "SCORING"
	rateGroupDefault = "DEFAULT"
	rateGroupOpen    = "OPEN"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	metrics.Init()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Identity(),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Scoring endpoints get the configured rule; reads get four times as much
// headroom; health checks are never limited.
func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	rules := map[string]middleware.RateLimitRule{}
	if rps > 0 && burst > 0 {
		rules[rateGroupScoring] = middleware.RateLimitRule{Rate: rps, Burst: burst}
		rules[rateGroupDefault] = middleware.RateLimitRule{Rate: rps * 4, Burst: burst * 4}
	}
	return middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: rateGroupDefault,
		Limiter:      deps.Limiter,
		GroupFor: func(c *gin.Context) string {
			switch {
			case strings.HasSuffix(c.Request.URL.Path, "/health"):
				return rateGroupOpen
			case c.Request.Method == http.MethodPost:
				return rateGroupScoring
			default:
				return rateGroupDefault
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
