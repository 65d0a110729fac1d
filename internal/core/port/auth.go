package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (domain.User, string, error)
	Login(ctx context.Context, req *request.LoginRequest) (domain.User, string, error)
	Authorize(ctx context.Context, bearer string) (domain.User, error)
	Logout(ctx context.Context, userID int64) error
}
