package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query := "SELECT id, name, email, encrypted_password, created_at, updated_at FROM users WHERE id = $1"
	return ur.scanOne(ctx, query, id)
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := "SELECT id, name, email, encrypted_password, created_at, updated_at FROM users WHERE email = $1"
	return ur.scanOne(ctx, query, email)
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := `INSERT INTO users (name, email, encrypted_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := ur.db.QueryRow(ctx, query,
		user.Name, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) scanOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var user domain.User

	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.EncryptedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.NotFound()
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
