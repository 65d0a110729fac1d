package http

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/config"
)

type Container struct {
	UserRepo  port.UserRepository
	TokenRepo port.TokenRepository
	TodoRepo  port.TodoRepository

	AuthUseCase port.AuthService
	TodoUseCase port.TodoService

	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler
}

func NewContainer(
	userRepo port.UserRepository,
	tokenRepo port.TokenRepository,
	todoRepo port.TodoRepository,
	cache port.CacheRepository,
	cfg *config.AppConfig,
	logger *telemetry.Logger,
	metrics *telemetry.AppMetrics,
) *Container {
	authSvc := service.NewAuthService(userRepo, tokenRepo, cache, cfg.Auth)
	todoSvc := service.NewTodoService(todoRepo)

	return &Container{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		TodoRepo:  todoRepo,

		AuthUseCase: authSvc,
		TodoUseCase: todoSvc,

		AuthHandler: handler.NewAuthHandler(authSvc, logger, metrics),
		TodoHandler: handler.NewTodoHandler(todoSvc, logger, metrics),
	}
}
