package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/workspace/task-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/task-service/domain/errors"
	"crudhub/contexts/workspace/task-service/ports"
	"crudhub/internal/shared/pagination"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Service struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
}

// UpdateTaskInput is a partial update; nil fields are left unchanged.
// ClearDueDate removes the stored due date.
type UpdateTaskInput struct {
	TaskID       string
	Title        *string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

type ListTasksQuery struct {
	Page    int
	Limit   int
	Title   string
	Status  string
	DueFrom *time.Time
}

type TaskPage struct {
	Items      []entities.Task
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func (s Service) CreateTask(ctx context.Context, input CreateTaskInput) (entities.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.Task{}, domainerrors.ErrTitleRequired
	}
	if !entities.ValidTitle(title) {
		return entities.Task{}, domainerrors.ErrTitleTooLong
	}
	description := strings.TrimSpace(input.Description)
	if !entities.ValidDescription(description) {
		return entities.Task{}, domainerrors.ErrDescriptionTooLong
	}
	status := entities.TaskStatusPending
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := entities.ParseStatus(input.Status)
		if !ok {
			return entities.Task{}, domainerrors.ErrInvalidTaskStatus
		}
		status = parsed
	}

	taskID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Task{}, err
	}
	now := s.now()
	task := entities.Task{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     normalizeOptionalTime(input.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}
	ResolveLogger(s.Logger).Info("task created",
		"event", "task_created",
		"module", "workspace/task-service",
		"layer", "application",
		"task_id", task.TaskID,
	)
	return task, nil
}

func (s Service) GetTask(ctx context.Context, taskID string) (entities.Task, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return s.Repo.GetTask(ctx, taskID)
}

func (s Service) ListTasks(ctx context.Context, query ListTasksQuery) (TaskPage, error) {
	page := pagination.NormalizePage(query.Page, query.Limit, defaultPageLimit, maxPageLimit)
	filter := ports.TaskFilter{
		Title:   strings.TrimSpace(query.Title),
		DueFrom: normalizeOptionalTime(query.DueFrom),
		Offset:  page.Offset(),
		Limit:   page.Limit,
	}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := entities.ParseStatus(query.Status)
		if !ok {
			return TaskPage{}, domainerrors.ErrInvalidTaskStatus
		}
		filter.Status = status
	}

	items, total, err := s.Repo.ListTasks(ctx, filter)
	if err != nil {
		return TaskPage{}, err
	}
	return TaskPage{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: pagination.TotalPages(total, page.Limit),
	}, nil
}

func (s Service) UpdateTask(ctx context.Context, input UpdateTaskInput) (entities.Task, error) {
	task, err := s.GetTask(ctx, input.TaskID)
	if err != nil {
		return entities.Task{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.Task{}, domainerrors.ErrTitleRequired
		}
		if !entities.ValidTitle(title) {
			return entities.Task{}, domainerrors.ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if !entities.ValidDescription(description) {
			return entities.Task{}, domainerrors.ErrDescriptionTooLong
		}
		task.Description = description
	}
	if input.Status != nil {
		status, ok := entities.ParseStatus(*input.Status)
		if !ok {
			return entities.Task{}, domainerrors.ErrInvalidTaskStatus
		}
		task.Status = status
	}
	switch {
	case input.ClearDueDate:
		task.DueDate = nil
	case input.DueDate != nil:
		task.DueDate = normalizeOptionalTime(input.DueDate)
	}
	task.UpdatedAt = s.now()

	if err := s.Repo.UpdateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}
	ResolveLogger(s.Logger).Info("task updated",
		"event", "task_updated",
		"module", "workspace/task-service",
		"layer", "application",
		"task_id", task.TaskID,
		"status", string(task.Status),
	)
	return task, nil
}

func (s Service) DeleteTask(ctx context.Context, taskID string) error {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return domainerrors.ErrTaskNotFound
	}
	if err := s.Repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("task deleted",
		"event", "task_deleted",
		"module", "workspace/task-service",
		"layer", "application",
		"task_id", taskID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
