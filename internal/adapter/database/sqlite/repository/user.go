package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

var userColumns = []string{"id", "name", "email", "encrypted_password", "created_at", "updated_at"}

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("name", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.Name, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	return ur.GetByID(ctx, id)
}

func (ur *UserRepository) getBy(ctx context.Context, pred sq.Eq) (domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.EncryptedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFound()
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
