package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"crudhub/contexts/workspace/todo-service/application"
	"crudhub/contexts/workspace/todo-service/domain/entities"
	httptransport "crudhub/contexts/workspace/todo-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateTodoHandler(
	ctx context.Context,
	ownerID string,
	req httptransport.CreateTodoRequest,
) (httptransport.TodoDTO, error) {
	todo, err := h.Service.CreateTodo(ctx, application.CreateTodoInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.TodoDTO{}, err
	}
	return toTodoDTO(todo), nil
}

// ListTodosHandler returns a bare slice; clients read the array directly.
func (h Handler) ListTodosHandler(ctx context.Context, status string) ([]httptransport.TodoDTO, error) {
	items, err := h.Service.ListTodos(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.TodoDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTodoDTO(item))
	}
	return out, nil
}

func (h Handler) GetTodoHandler(ctx context.Context, todoID string) (httptransport.TodoDTO, error) {
	todo, err := h.Service.GetTodo(ctx, todoID)
	if err != nil {
		return httptransport.TodoDTO{}, err
	}
	return toTodoDTO(todo), nil
}

func (h Handler) UpdateTodoHandler(
	ctx context.Context,
	ownerID string,
	todoID string,
	req httptransport.UpdateTodoRequest,
) (httptransport.TodoDTO, error) {
	todo, err := h.Service.UpdateTodo(ctx, application.UpdateTodoInput{
		OwnerID:     ownerID,
		TodoID:      todoID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.TodoDTO{}, err
	}
	return toTodoDTO(todo), nil
}

func (h Handler) DeleteTodoHandler(ctx context.Context, ownerID string, todoID string) error {
	return h.Service.DeleteTodo(ctx, ownerID, todoID)
}

func toTodoDTO(item entities.Todo) httptransport.TodoDTO {
	return httptransport.TodoDTO{
		ID:          item.TodoID,
		OwnerID:     item.OwnerID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
