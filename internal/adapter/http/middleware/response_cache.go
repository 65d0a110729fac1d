package middleware

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
	"todoapi/pkg/tracing"
)

// ResponseCache serves short-lived cached copies of GET responses for
// configured paths. Keys include the caller identity so users never see
// each other's cached bodies.
type ResponseCache struct {
	cache   *gocache.Cache
	configs map[string]config.ResponseCacheConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

type cachedResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	Timestamp  time.Time
}

func NewResponseCache(configs map[string]config.ResponseCacheConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *ResponseCache {
	return &ResponseCache{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()

			// A successful write makes every cached list stale.
			if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
				rc.Flush()
			}

			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rc.configs[path]

		if !exists || !cfg.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.cacheKey(c, path)

		if rc.serveCached(c, path, cacheKey, cfg) {
			return
		}

		ctx, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
		})
		defer span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &bodyCaptureWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			_, storeSpan := tracing.CreateChildSpan(ctx, "cache.response.store", []attribute.KeyValue{
				attribute.String("cache.key", cacheKey),
				attribute.Int("cache.body_size", writer.body.Len()),
			})
			storeSpan.End()

			rc.cache.Set(cacheKey, cachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}, cfg.TTL)

			c.Header("X-Cache", "MISS")
		}
	}
}

func (rc *ResponseCache) serveCached(c *gin.Context, path, cacheKey string, cfg config.ResponseCacheConfig) bool {
	raw, found := rc.cache.Get(cacheKey)

	if !found {
		return false
	}

	cached := raw.(cachedResponse)

	if time.Since(cached.Timestamp) >= cfg.TTL {
		rc.cache.Delete(cacheKey)
		return false
	}

	_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
		attribute.String("cache.key", cacheKey),
		attribute.String("cache.path", path),
		attribute.String("cache.age", time.Since(cached.Timestamp).String()),
	})
	defer span.End()

	if rc.metrics != nil {
		rc.metrics.RecordCacheHit(c.Request.Context(), path)
	}

	rc.logger.Debug("cache hit",
		zap.String("path", path),
		zap.String("cache_key", cacheKey),
		zap.Duration("age", time.Since(cached.Timestamp)))

	for key, values := range cached.Headers {
		for _, value := range values {
			c.Header(key, value)
		}
	}

	c.Header("X-Cache", "HIT")
	c.Data(cached.StatusCode, "application/json", cached.Body)
	c.Abort()

	return true
}

func (rc *ResponseCache) cacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	if user, ok := CurrentUser(c); ok {
		keyParts = append(keyParts, fmt.Sprintf("user_%d", user.ID))
	} else {
		keyParts = append(keyParts, "ip_"+ClientIP(c))
	}

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// Flush drops every cached response.
func (rc *ResponseCache) Flush() {
	rc.cache.Flush()
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
