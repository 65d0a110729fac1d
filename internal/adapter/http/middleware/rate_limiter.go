package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
)

// RateLimiter enforces per-endpoint request budgets keyed by client IP.
// It runs before authentication, so the IP is the only stable identity
// available.
type RateLimiter struct {
	cache   *gocache.Cache
	configs map[string]config.RateLimitConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(configs map[string]config.RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		cfg, exists := rl.configs[methodPath]

		if !exists {
			cfg, exists = rl.configs[path]

			if !exists {
				cfg = rl.configs["default"]
			}
		}

		if cfg.Requests <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, ClientIP(c))

		allowed, remaining, resetTime := rl.check(key, cfg)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			rl.logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", cfg.Requests),
				zap.Duration("window", cfg.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "fail",
				"message": "too many requests",
				"errors":  []any{},
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) check(key string, cfg config.RateLimitConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if cached, found := rl.cache.Get(key); found {
		entry := cached.(rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= cfg.Requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, gocache.DefaultExpiration)

			return true, cfg.Requests - entry.Count, entry.ResetTime
		}
	}

	resetTime := now.Add(cfg.Window)
	rl.cache.Set(key, rateLimitEntry{Count: 1, ResetTime: resetTime}, cfg.Window)

	return true, cfg.Requests - 1, resetTime
}

// ClientIP resolves the caller address behind proxies.
func ClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	ip := c.ClientIP()

	if ip == "" {
		return "unknown"
	}

	return ip
}
