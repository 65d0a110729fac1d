package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"

	"todoapi/internal/core/domain"
)

// NewTodo builds a pending todo owned by nobody until UserID is overridden.
func NewTodo(customData ...map[string]any) domain.Todo {
	instance := fab.New(domain.Todo{})

	todo := instance.Build(customData...)
	todo.ID = 0

	hasDone := false

	for _, data := range customData {
		if _, exists := data["Done"]; exists {
			hasDone = true
			break
		}
	}

	if !hasDone {
		todo.Done = false
		todo.DoneAt = nil
	}

	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}

	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = time.Now()
	}

	return todo
}
