package ports

import (
	"context"
	"time"

	"crudhub/contexts/workspace/todo-service/domain/entities"
)

type TodoFilter struct {
	Status entities.TodoStatus
}

type Repository interface {
	CreateTodo(ctx context.Context, todo entities.Todo) error
	GetTodo(ctx context.Context, todoID string) (entities.Todo, error)
	GetOwnedTodo(ctx context.Context, todoID string, ownerID string) (entities.Todo, error)
	UpdateTodo(ctx context.Context, todo entities.Todo) error
	DeleteOwnedTodo(ctx context.Context, todoID string, ownerID string) error
	ListTodos(ctx context.Context, filter TodoFilter) ([]entities.Todo, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
