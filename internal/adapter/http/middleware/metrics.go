package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todoapi/internal/adapter/telemetry"
)

func Metrics(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			duration,
		)
	}
}

func SetupObservability(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *telemetry.Logger) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(RequestLogging(logger))
	router.Use(Metrics(metrics))
}
