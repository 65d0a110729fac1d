package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type TokenRepository struct {
	db *postgres.DB
}

func NewTokenRepository(db *postgres.DB) port.TokenRepository {
	return &TokenRepository{db: db}
}

func (tr *TokenRepository) Create(ctx context.Context, token domain.Token) (domain.Token, error) {
	query := `INSERT INTO tokens (uuid, user_id, name, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	err := tr.db.QueryRow(ctx, query,
		token.UUID, token.UserID, token.Name, token.CreatedAt,
	).Scan(&token.ID)

	if err != nil {
		return domain.Token{}, err
	}

	return token, nil
}

func (tr *TokenRepository) GetByUUID(ctx context.Context, uid string) (domain.Token, error) {
	query := "SELECT id, uuid, user_id, name, created_at FROM tokens WHERE uuid = $1"

	var token domain.Token

	err := tr.db.QueryRow(ctx, query, uid).Scan(
		&token.ID,
		&token.UUID,
		&token.UserID,
		&token.Name,
		&token.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Token{}, domain.NotFound()
	}

	if err != nil {
		return domain.Token{}, err
	}

	return token, nil
}

func (tr *TokenRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := tr.db.Exec(ctx, "DELETE FROM tokens WHERE user_id = $1", userID)
	return err
}
