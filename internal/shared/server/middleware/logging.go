package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request and records HTTP metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.FullPath(), c.Request.Method, status, latency)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []string{"documentId", "mode", "score"} {
			if v, ok := c.Get(key); ok {
				fields[logFieldName(key)] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}

func logFieldName(key string) string {
	switch key {
	case "documentId":
		return "document_id"
	default:
		return key
	}
}
