package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"crudhub/contexts/workspace/task-service/adapters/memory"
	"crudhub/contexts/workspace/task-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/task-service/domain/errors"
)

func newTaskService() Service {
	store := memory.NewStore(nil)
	return Service{
		Repo:        store,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestCreateTaskValidation(t *testing.T) {
	service := newTaskService()
	ctx := context.Background()

	if _, err := service.CreateTask(ctx, CreateTaskInput{}); !errors.Is(err, domainerrors.ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}
	if _, err := service.CreateTask(ctx, CreateTaskInput{Title: strings.Repeat("x", 101)}); !errors.Is(err, domainerrors.ErrTitleTooLong) {
		t.Fatalf("expected title too long, got %v", err)
	}
	if _, err := service.CreateTask(ctx, CreateTaskInput{Title: "ok", Description: strings.Repeat("x", 501)}); !errors.Is(err, domainerrors.ErrDescriptionTooLong) {
		t.Fatalf("expected description too long, got %v", err)
	}
	if _, err := service.CreateTask(ctx, CreateTaskInput{Title: "ok", Status: "blocked"}); !errors.Is(err, domainerrors.ErrInvalidTaskStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestListTasksComputesTotalPages(t *testing.T) {
	service := newTaskService()
	ctx := context.Background()
	for i := 0; i < 11; i++ {
		if _, err := service.CreateTask(ctx, CreateTaskInput{Title: "task"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := service.ListTasks(ctx, ListTasksQuery{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 11 || page.TotalPages != 3 || page.Page != 2 {
		t.Fatalf("unexpected page metadata %+v", page)
	}
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(page.Items))
	}

	defaults, err := service.ListTasks(ctx, ListTasksQuery{})
	if err != nil {
		t.Fatalf("default list failed: %v", err)
	}
	if defaults.Page != 1 || defaults.Limit != 10 || len(defaults.Items) != 10 || defaults.TotalPages != 2 {
		t.Fatalf("unexpected default page %+v", defaults)
	}

	capped, err := service.ListTasks(ctx, ListTasksQuery{Limit: 1000})
	if err != nil {
		t.Fatalf("capped list failed: %v", err)
	}
	if capped.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", capped.Limit)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	service := newTaskService()
	ctx := context.Background()
	due := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	created, err := service.CreateTask(ctx, CreateTaskInput{Title: "draft", Description: "body", DueDate: &due})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	status := "completed"
	updated, err := service.UpdateTask(ctx, UpdateTaskInput{TaskID: created.TaskID, Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "draft" || updated.Description != "body" || updated.Status != entities.TaskStatusCompleted {
		t.Fatalf("unexpected task after partial update %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Fatalf("expected due date kept, got %v", updated.DueDate)
	}

	cleared, err := service.UpdateTask(ctx, UpdateTaskInput{TaskID: created.TaskID, ClearDueDate: true})
	if err != nil {
		t.Fatalf("clear due date failed: %v", err)
	}
	if cleared.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", cleared.DueDate)
	}

	empty := "  "
	if _, err := service.UpdateTask(ctx, UpdateTaskInput{TaskID: created.TaskID, Title: &empty}); !errors.Is(err, domainerrors.ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}
	if _, err := service.UpdateTask(ctx, UpdateTaskInput{TaskID: "missing", Title: &status}); !errors.Is(err, domainerrors.ErrTaskNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteTaskIsHard(t *testing.T) {
	service := newTaskService()
	ctx := context.Background()
	created, _ := service.CreateTask(ctx, CreateTaskInput{Title: "gone"})

	if err := service.DeleteTask(ctx, created.TaskID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetTask(ctx, created.TaskID); !errors.Is(err, domainerrors.ErrTaskNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := service.DeleteTask(ctx, created.TaskID); !errors.Is(err, domainerrors.ErrTaskNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}
