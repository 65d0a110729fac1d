package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/adapter/cache/memory"
	"todoapi/internal/adapter/cache/redis"
	"todoapi/internal/adapter/database/postgres"
	pgrepo "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/sqlite"
	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
	"todoapi/pkg/config"
)

func StartServer(metrics *telemetry.AppMetrics, logger *telemetry.Logger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

// StartServerWithConfig picks the storage and cache backends from the
// config, wires the container and serves until the listener stops.
// DATABASE_URL selects postgres, otherwise sqlite; REDIS_URL selects
// redis over the in-process cache.
func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *telemetry.Logger, cfg *config.AppConfig) {
	ctx := context.Background()
	log := logger.Zap()

	var (
		userRepo  port.UserRepository
		tokenRepo port.TokenRepository
		todoRepo  port.TodoRepository
	)

	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(ctx, cfg.Database)

		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}

		defer db.Close()

		userRepo = pgrepo.NewUserRepository(db)
		tokenRepo = pgrepo.NewTokenRepository(db)
		todoRepo = pgrepo.NewTodoRepository(db)
	} else {
		db, err := sqlite.NewDB(cfg.Database)

		if err != nil {
			log.Fatal("failed to open sqlite database", zap.Error(err))
		}

		defer db.Close()

		userRepo = sqliterepo.NewUserRepository(db)
		tokenRepo = sqliterepo.NewTokenRepository(db)
		todoRepo = sqliterepo.NewTodoRepository(db)
	}

	var cache port.CacheRepository

	if cfg.RedisURL != "" {
		redisCache, err := redis.New(ctx, cfg.RedisURL)

		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}

		cache = redisCache
	} else {
		cache = memory.New()
	}

	defer cache.Close()

	container := NewContainer(userRepo, tokenRepo, todoRepo, cache, cfg, logger, metrics)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		TodoHandler: container.TodoHandler,
		AuthService: container.AuthUseCase,
	}, metrics, logger, cfg)

	log.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server failed to start", zap.Error(err))
	}
}
