package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type TokenRepository struct {
	db *sqlite.DB
}

func NewTokenRepository(db *sqlite.DB) port.TokenRepository {
	return &TokenRepository{db: db}
}

func (tr *TokenRepository) Create(ctx context.Context, token domain.Token) (domain.Token, error) {
	query, args, err := tr.db.QueryBuilder.Insert("tokens").
		Columns("uuid", "user_id", "name", "created_at").
		Values(token.UUID.String(), token.UserID, token.Name, token.CreatedAt).
		ToSql()

	if err != nil {
		return domain.Token{}, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return domain.Token{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Token{}, err
	}

	token.ID = id

	return token, nil
}

func (tr *TokenRepository) GetByUUID(ctx context.Context, uid string) (domain.Token, error) {
	query, args, err := tr.db.QueryBuilder.Select("id", "uuid", "user_id", "name", "created_at").
		From("tokens").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Token{}, err
	}

	var (
		token domain.Token
		raw   string
	)

	err = tr.db.QueryRowContext(ctx, query, args...).Scan(
		&token.ID,
		&raw,
		&token.UserID,
		&token.Name,
		&token.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Token{}, domain.NotFound()
	}

	if err != nil {
		return domain.Token{}, err
	}

	token.UUID, err = uuid.Parse(raw)

	if err != nil {
		return domain.Token{}, err
	}

	return token, nil
}

// DeleteAllForUser removes every token owned by the user. Deleting zero rows
// is not an error, so logout stays idempotent.
func (tr *TokenRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query, args, err := tr.db.QueryBuilder.Delete("tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = tr.db.ExecContext(ctx, query, args...)

	return err
}
