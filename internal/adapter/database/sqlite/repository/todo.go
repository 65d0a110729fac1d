package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

var todoColumns = []string{"id", "title", "description", "done", "done_at", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db *sqlite.DB
}

func NewTodoRepository(db *sqlite.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

// All accepts filters for forward compatibility but returns the full
// collection; no filter is applied.
func (tr *TodoRepository) All(ctx context.Context, filters map[string]any) ([]domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows.Scan)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

// Create inserts the todo in the pending state regardless of what the value
// carries in Done and DoneAt.
func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "done", "done_at", "user_id", "created_at", "updated_at").
		Values(todo.Title, todo.Description, false, nil, todo.UserID, todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		slog.Error("Error creating todo", "error", err, "title", todo.Title)
		return domain.Todo{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Todo{}, err
	}

	return tr.GetByID(ctx, id)
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err := scanTodo(tr.db.QueryRowContext(ctx, query, args...).Scan)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.NotFound()
	}

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
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

// setDone is a read-modify-write on one row inside a transaction, so the
// done/done_at pair can never be observed half-updated.
func (tr *TodoRepository) setDone(ctx context.Context, id int64, done bool, doneAt *time.Time) error {
	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	defer tx.Rollback()

	var current int64

	query, args, err := tr.db.QueryBuilder.Select("id").
		From("todos").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&current)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound()
	}

	if err != nil {
		return err
	}

	query, args, err = tr.db.QueryBuilder.Update("todos").
		Set("done", done).
		Set("done_at", doneAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

func scanTodo(scan func(dest ...any) error) (domain.Todo, error) {
	var (
		todo   domain.Todo
		doneAt sql.NullTime
	)

	err := scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Done,
		&doneAt,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err != nil {
		return domain.Todo{}, err
	}

	if doneAt.Valid {
		todo.DoneAt = &doneAt.Time
	}

	return todo, nil
}
