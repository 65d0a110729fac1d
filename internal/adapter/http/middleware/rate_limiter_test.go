package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"todoapi/pkg/config"
)

func limitedRouter(configs map[string]config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	limiter := NewRateLimiter(configs, zap.NewNop(), nil)
	router.Use(limiter.Middleware())

	router.GET("/api/todos", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": []any{}})
	})

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRequestsWithinLimitPass(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]config.RateLimitConfig{
		"GET /api/todos": {Requests: 3, Window: time.Minute},
	})

	for i := 0; i < 3; i++ {
		Expect(get(router, "/api/todos").Code).To(Equal(http.StatusOK))
	}
}

func TestRequestsOverLimitAreRejected(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]config.RateLimitConfig{
		"GET /api/todos": {Requests: 2, Window: time.Minute},
	})

	get(router, "/api/todos")
	get(router, "/api/todos")

	rr := get(router, "/api/todos")
	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))
}

func TestRateLimitHeaders(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]config.RateLimitConfig{
		"GET /api/todos": {Requests: 5, Window: time.Minute},
	})

	rr := get(router, "/api/todos")

	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("5"))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("4"))
	Expect(rr.Header().Get("X-RateLimit-Reset")).ToNot(BeEmpty())
}

func TestFallsBackToDefaultConfig(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]config.RateLimitConfig{
		"default": {Requests: 1, Window: time.Minute},
	})

	Expect(get(router, "/api/todos").Code).To(Equal(http.StatusOK))
	Expect(get(router, "/api/todos").Code).To(Equal(http.StatusTooManyRequests))
}

func TestNoConfigMeansNoLimit(t *testing.T) {
	RegisterTestingT(t)

	router := limitedRouter(map[string]config.RateLimitConfig{})

	for i := 0; i < 10; i++ {
		Expect(get(router, "/api/todos").Code).To(Equal(http.StatusOK))
	}
}
