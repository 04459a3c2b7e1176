package ports

import (
	"context"
	"time"

	"crudhub/contexts/workspace/task-service/domain/entities"
)

// TaskFilter selects tasks for a paged listing. Title is a case-insensitive
// substring; DueFrom keeps tasks due on or after the instant.
type TaskFilter struct {
	Title   string
	Status  entities.TaskStatus
	DueFrom *time.Time
	Offset  int
	Limit   int
}

type Repository interface {
	CreateTask(ctx context.Context, task entities.Task) error
	GetTask(ctx context.Context, taskID string) (entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) error
	DeleteTask(ctx context.Context, taskID string) error
	ListTasks(ctx context.Context, filter TaskFilter) ([]entities.Task, int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
