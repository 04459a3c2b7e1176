package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/workspace/todo-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/todo-service/domain/errors"
	"crudhub/contexts/workspace/todo-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateTodoInput struct {
	OwnerID     string
	Title       string
	Description string
	Status      string
}

// UpdateTodoInput carries replacement values. Empty fields keep the
// stored value.
type UpdateTodoInput struct {
	OwnerID     string
	TodoID      string
	Title       string
	Description string
	Status      string
}

func (s Service) CreateTodo(ctx context.Context, input CreateTodoInput) (entities.Todo, error) {
	logger := ResolveLogger(s.Logger)
	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return entities.Todo{}, domainerrors.ErrOwnerRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.Todo{}, domainerrors.ErrTitleRequired
	}
	if err := validateLengths(title, input.Description); err != nil {
		return entities.Todo{}, err
	}
	status := entities.TodoStatusPending
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := entities.ParseStatus(input.Status)
		if !ok {
			return entities.Todo{}, domainerrors.ErrInvalidTodoStatus
		}
		status = parsed
	}

	todoID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Todo{}, err
	}
	now := s.now()
	todo := entities.Todo{
		TodoID:      todoID,
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateTodo(ctx, todo); err != nil {
		return entities.Todo{}, err
	}

	logger.Info("todo created",
		"event", "todo_created",
		"module", "workspace/todo-service",
		"layer", "application",
		"todo_id", todo.TodoID,
		"owner_id", todo.OwnerID,
	)
	return todo, nil
}

func (s Service) ListTodos(ctx context.Context, status string) ([]entities.Todo, error) {
	filter := ports.TodoFilter{}
	if strings.TrimSpace(status) != "" {
		parsed, ok := entities.ParseStatus(status)
		if !ok {
			return nil, domainerrors.ErrInvalidTodoStatus
		}
		filter.Status = parsed
	}
	items, err := s.Repo.ListTodos(ctx, filter)
	if err != nil {
		return nil, err
	}
	ResolveLogger(s.Logger).Debug("todos listed",
		"event", "todos_listed",
		"module", "workspace/todo-service",
		"layer", "application",
		"status", string(filter.Status),
		"count", len(items),
	)
	return items, nil
}

func (s Service) GetTodo(ctx context.Context, todoID string) (entities.Todo, error) {
	todoID = strings.TrimSpace(todoID)
	if todoID == "" {
		return entities.Todo{}, domainerrors.ErrTodoNotFound
	}
	return s.Repo.GetTodo(ctx, todoID)
}

func (s Service) UpdateTodo(ctx context.Context, input UpdateTodoInput) (entities.Todo, error) {
	logger := ResolveLogger(s.Logger)
	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return entities.Todo{}, domainerrors.ErrOwnerRequired
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if err := validateLengths(title, description); err != nil {
		return entities.Todo{}, err
	}
	var status entities.TodoStatus
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := entities.ParseStatus(input.Status)
		if !ok {
			return entities.Todo{}, domainerrors.ErrInvalidTodoStatus
		}
		status = parsed
	}

	todo, err := s.Repo.GetOwnedTodo(ctx, strings.TrimSpace(input.TodoID), ownerID)
	if err != nil {
		return entities.Todo{}, err
	}
	if title != "" {
		todo.Title = title
	}
	if description != "" {
		todo.Description = description
	}
	if status != "" {
		todo.Status = status
	}
	todo.UpdatedAt = s.now()
	if err := s.Repo.UpdateTodo(ctx, todo); err != nil {
		return entities.Todo{}, err
	}

	logger.Info("todo updated",
		"event", "todo_updated",
		"module", "workspace/todo-service",
		"layer", "application",
		"todo_id", todo.TodoID,
		"owner_id", ownerID,
		"status", string(todo.Status),
	)
	return todo, nil
}

func (s Service) DeleteTodo(ctx context.Context, ownerID string, todoID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return domainerrors.ErrOwnerRequired
	}
	todoID = strings.TrimSpace(todoID)
	if todoID == "" {
		return domainerrors.ErrTodoNotFound
	}
	if err := s.Repo.DeleteOwnedTodo(ctx, todoID, ownerID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("todo deleted",
		"event", "todo_deleted",
		"module", "workspace/todo-service",
		"layer", "application",
		"todo_id", todoID,
		"owner_id", ownerID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func validateLengths(title string, description string) error {
	if entities.TitleTooLong(title) {
		return domainerrors.ErrTitleTooLong
	}
	if entities.DescriptionTooLong(description) {
		return domainerrors.ErrDescriptionTooLong
	}
	return nil
}
