package service

import (
	"context"
	"time"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
)

// TodoService is the todo flow. Write operations receive the authenticated
// user's id explicitly from the handler; lookups by id are dispatched to the
// store unchanged, with no ownership check beyond the owner id attached at
// creation.
type TodoService struct {
	repo port.TodoRepository
}

func NewTodoService(repo port.TodoRepository) *TodoService {
	return &TodoService{repo}
}

func (ts *TodoService) All(ctx context.Context, userID int64, filters map[string]any) ([]domain.Todo, error) {
	return ts.repo.All(ctx, ensureUserID(filters, userID))
}

func (ts *TodoService) Create(ctx context.Context, userID int64, req *request.TodoCreateRequest) (domain.Todo, error) {
	now := time.Now()

	// done and done_at from the request are discarded: a todo always starts
	// pending, whatever the caller claims.
	todo := domain.Todo{
		Title:       req.Title,
		Description: req.Description,
		Done:        false,
		DoneAt:      nil,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return ts.repo.Create(ctx, todo)
}

func (ts *TodoService) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	return ts.repo.GetByID(ctx, id)
}

func (ts *TodoService) Delete(ctx context.Context, id int64) error {
	return ts.repo.Delete(ctx, id)
}

func (ts *TodoService) Done(ctx context.Context, id int64) error {
	return ts.repo.Done(ctx, id)
}

func (ts *TodoService) Undone(ctx context.Context, id int64) error {
	return ts.repo.Undone(ctx, id)
}

func ensureUserID(filters map[string]any, userID int64) map[string]any {
	if filters == nil {
		filters = map[string]any{}
	}

	if _, ok := filters["user_id"]; !ok {
		filters["user_id"] = userID
	}

	return filters
}
