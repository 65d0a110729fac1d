package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TokenRepository interface {
	Create(ctx context.Context, token domain.Token) (domain.Token, error)
	GetByUUID(ctx context.Context, uid string) (domain.Token, error)
	DeleteAllForUser(ctx context.Context, userID int64) error
}
