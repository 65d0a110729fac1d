package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const todoColumns = "id, title, description, done, done_at, user_id, created_at, updated_at"

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

// All accepts filters for forward compatibility but returns the full
// collection; no filter is applied.
func (tr *TodoRepository) All(ctx context.Context, filters map[string]any) ([]domain.Todo, error) {
	rows, err := tr.db.Query(ctx, "SELECT "+todoColumns+" FROM todos ORDER BY id ASC")

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Done,
			&todo.DoneAt,
			&todo.UserID,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query := `INSERT INTO todos (title, description, done, done_at, user_id, created_at, updated_at)
		VALUES ($1, $2, FALSE, NULL, $3, $4, $5) RETURNING id`

	err := tr.db.QueryRow(ctx, query,
		todo.Title, todo.Description, todo.UserID, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID)

	if err != nil {
		return domain.Todo{}, err
	}

	return tr.GetByID(ctx, todo.ID)
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	var todo domain.Todo

	err := tr.db.QueryRow(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = $1", id).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Done,
		&todo.DoneAt,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.NotFound()
	}

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := tr.db.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.NotFound()
	}

	return nil
}

func (tr *TodoRepository) Done(ctx context.Context, id int64) error {
	now := time.Now()
	return tr.setDone(ctx, id, true, &now)
}

func (tr *TodoRepository) Undone(ctx context.Context, id int64) error {
	return tr.setDone(ctx, id, false, nil)
}

func (tr *TodoRepository) setDone(ctx context.Context, id int64, done bool, doneAt *time.Time) error {
	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	var current int64

	err = tx.QueryRow(ctx, "SELECT id FROM todos WHERE id = $1 FOR UPDATE", id).Scan(&current)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound()
	}

	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		"UPDATE todos SET done = $1, done_at = $2, updated_at = $3 WHERE id = $4",
		done, doneAt, time.Now(), id,
	)

	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
