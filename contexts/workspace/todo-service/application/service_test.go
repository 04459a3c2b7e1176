package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"crudhub/contexts/workspace/todo-service/adapters/memory"
	"crudhub/contexts/workspace/todo-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/todo-service/domain/errors"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("todo-%03d", g.next), nil
}

func newService() Service {
	store := memory.NewStore(nil)
	return Service{
		Repo:        store,
		Clock:       &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		IDGenerator: &sequenceIDs{},
	}
}

func TestCreateTodoDefaultsStatusToPending(t *testing.T) {
	svc := newService()
	todo, err := svc.CreateTodo(context.Background(), CreateTodoInput{
		OwnerID: "user-1",
		Title:   "  write report  ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if todo.Status != entities.TodoStatusPending {
		t.Fatalf("expected pending, got %s", todo.Status)
	}
	if todo.Title != "write report" {
		t.Fatalf("expected trimmed title, got %q", todo.Title)
	}
}

func TestCreateTodoValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "   "}); !errors.Is(err, domainerrors.ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}
	if _, err := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: strings.Repeat("a", 101)}); !errors.Is(err, domainerrors.ErrTitleTooLong) {
		t.Fatalf("expected title too long, got %v", err)
	}
	if _, err := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "ok", Description: strings.Repeat("d", 501)}); !errors.Is(err, domainerrors.ErrDescriptionTooLong) {
		t.Fatalf("expected description too long, got %v", err)
	}
	if _, err := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "ok", Status: "archived"}); !errors.Is(err, domainerrors.ErrInvalidTodoStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := svc.CreateTodo(ctx, CreateTodoInput{Title: "ok"}); !errors.Is(err, domainerrors.ErrOwnerRequired) {
		t.Fatalf("expected owner required, got %v", err)
	}
}

func TestCreateTodoCountsCharactersNotBytes(t *testing.T) {
	svc := newService()
	title := strings.Repeat("é", 100)
	if _, err := svc.CreateTodo(context.Background(), CreateTodoInput{OwnerID: "user-1", Title: title}); err != nil {
		t.Fatalf("100 multi-byte characters should be accepted, got %v", err)
	}
}

func TestListTodosFiltersAndSortsNewestFirst(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	first, _ := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "first"})
	second, _ := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-2", Title: "second", Status: "completed"})
	third, _ := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "third"})

	items, err := svc.ListTodos(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(items))
	}
	if items[0].TodoID != third.TodoID || items[2].TodoID != first.TodoID {
		t.Fatalf("expected newest first, got %s..%s", items[0].TodoID, items[2].TodoID)
	}

	completed, err := svc.ListTodos(ctx, "completed")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(completed) != 1 || completed[0].TodoID != second.TodoID {
		t.Fatalf("expected only the completed todo, got %+v", completed)
	}
}

func TestUpdateTodoKeepsEmptyFieldsAndScopesToOwner(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.CreateTodo(ctx, CreateTodoInput{
		OwnerID:     "user-1",
		Title:       "draft",
		Description: "initial",
	})

	if _, err := svc.UpdateTodo(ctx, UpdateTodoInput{
		OwnerID: "user-2",
		TodoID:  created.TodoID,
		Title:   "hijack",
	}); !errors.Is(err, domainerrors.ErrTodoNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}

	updated, err := svc.UpdateTodo(ctx, UpdateTodoInput{
		OwnerID: "user-1",
		TodoID:  created.TodoID,
		Status:  "in-progress",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "draft" || updated.Description != "initial" {
		t.Fatalf("expected title and description kept, got %+v", updated)
	}
	if updated.Status != entities.TodoStatusInProgress {
		t.Fatalf("expected in-progress, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestDeleteTodo(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, _ := svc.CreateTodo(ctx, CreateTodoInput{OwnerID: "user-1", Title: "temp"})

	if err := svc.DeleteTodo(ctx, "user-2", created.TodoID); !errors.Is(err, domainerrors.ErrTodoNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	if err := svc.DeleteTodo(ctx, "user-1", created.TodoID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetTodo(ctx, created.TodoID); !errors.Is(err, domainerrors.ErrTodoNotFound) {
		t.Fatalf("expected deleted todo to be gone, got %v", err)
	}
	if err := svc.DeleteTodo(ctx, "user-1", created.TodoID); !errors.Is(err, domainerrors.ErrTodoNotFound) {
		t.Fatalf("expected second delete to report not found, got %v", err)
	}
}
