package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/workspace/task-service/application"
	"crudhub/contexts/workspace/task-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/task-service/domain/errors"
	httptransport "crudhub/contexts/workspace/task-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateTaskHandler(ctx context.Context, req httptransport.CreateTaskRequest) (httptransport.TaskDTO, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	task, err := h.Service.CreateTask(ctx, application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     dueDate,
	})
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) GetTaskHandler(ctx context.Context, taskID string) (httptransport.TaskDTO, error) {
	task, err := h.Service.GetTask(ctx, taskID)
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) ListTasksHandler(ctx context.Context, req httptransport.ListTasksRequest) (httptransport.ListTasksResponse, error) {
	dueFrom, err := parseDueDate(req.DueDate)
	if err != nil {
		return httptransport.ListTasksResponse{}, err
	}
	page, err := h.Service.ListTasks(ctx, application.ListTasksQuery{
		Page:    req.Page,
		Limit:   req.Limit,
		Title:   req.Title,
		Status:  req.Status,
		DueFrom: dueFrom,
	})
	if err != nil {
		return httptransport.ListTasksResponse{}, err
	}

	resp := httptransport.ListTasksResponse{
		Data:       make([]httptransport.TaskDTO, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
	for _, item := range page.Items {
		resp.Data = append(resp.Data, toTaskDTO(item))
	}
	return resp, nil
}

func (h Handler) UpdateTaskHandler(
	ctx context.Context,
	taskID string,
	req httptransport.UpdateTaskRequest,
) (httptransport.TaskDTO, error) {
	input := application.UpdateTaskInput{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			input.ClearDueDate = true
		} else {
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return httptransport.TaskDTO{}, err
			}
			input.DueDate = dueDate
		}
	}

	task, err := h.Service.UpdateTask(ctx, input)
	if err != nil {
		return httptransport.TaskDTO{}, err
	}
	return toTaskDTO(task), nil
}

func (h Handler) DeleteTaskHandler(ctx context.Context, taskID string) error {
	return h.Service.DeleteTask(ctx, taskID)
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidDueDate
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

func toTaskDTO(item entities.Task) httptransport.TaskDTO {
	dto := httptransport.TaskDTO{
		ID:          item.TaskID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.DueDate != nil {
		value := item.DueDate.UTC().Format(time.RFC3339)
		dto.DueDate = &value
	}
	return dto
}
