package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
)

type TodoRepository interface {
	All(ctx context.Context, filters map[string]any) ([]domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
	Done(ctx context.Context, id int64) error
	Undone(ctx context.Context, id int64) error
}

type TodoService interface {
	All(ctx context.Context, userID int64, filters map[string]any) ([]domain.Todo, error)
	Create(ctx context.Context, userID int64, req *request.TodoCreateRequest) (domain.Todo, error)
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
	Done(ctx context.Context, id int64) error
	Undone(ctx context.Context, id int64) error
}
