package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/tracing"
)

// RequestLogging emits one structured log line per request, correlated
// with the active trace through otelzap. When a trace is active the id is
// echoed back in the X-Trace-ID header so callers can quote it.
func RequestLogging(logger *telemetry.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		traceID := tracing.GetTraceID(c.Request.Context())

		if traceID != "" {
			c.Header("X-Trace-ID", traceID)
		}

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("service", logger.ServiceName()),
		}

		if traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		logger.Logger.Ctx(c.Request.Context()).Info("HTTP Request", fields...)
	}
}
