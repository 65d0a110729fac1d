package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
	"todoapi/pkg/config"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler
	AuthService port.AuthService
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *telemetry.Logger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupObservability(router, "todoapi", metrics, logger)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	enforcer := middleware.NewHTTPSEnforcer(cfg.EnforceHTTPS, logger.Zap())
	router.Use(enforcer.Middleware())

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimitConfigs, logger.Zap(), metrics)
		router.Use(limiter.Middleware())
	}

	var responseCache *middleware.ResponseCache

	if cfg.CacheEnabled {
		responseCache = middleware.NewResponseCache(cfg.CacheConfigs, logger.Zap(), metrics)
	}

	setupRoutes(router, handlers, responseCache)

	return router
}

// SetupRouterForTests skips observability, caching and rate limiting so
// handler tests exercise routing and auth only.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers, nil)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig, responseCache *middleware.ResponseCache) {
	router.GET("/up", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"up": true}})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.AuthHandler.Register)
		auth.POST("/login", handlers.AuthHandler.Login)

		authed := auth.Group("")
		authed.Use(middleware.TokenAuth(handlers.AuthService))
		{
			authed.GET("/me", handlers.AuthHandler.Me)
			authed.DELETE("/logout", handlers.AuthHandler.Logout)
		}
	}

	todos := api.Group("/todos")
	todos.Use(middleware.TokenAuth(handlers.AuthService))

	if responseCache != nil {
		todos.Use(responseCache.Middleware())
	}

	{
		todos.GET("", handlers.TodoHandler.Index)
		todos.POST("", handlers.TodoHandler.Create)
		todos.GET("/:id", handlers.TodoHandler.Show)
		todos.PUT("/:id/done", handlers.TodoHandler.Done)
		todos.PUT("/:id/undone", handlers.TodoHandler.Undone)
		todos.DELETE("/:id", handlers.TodoHandler.Destroy)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
