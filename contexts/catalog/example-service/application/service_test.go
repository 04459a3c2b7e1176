package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"crudhub/contexts/catalog/example-service/adapters/memory"
	"crudhub/contexts/catalog/example-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/example-service/domain/errors"
)

type tickingClock struct {
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newService() (Service, *memory.Store) {
	store := memory.NewStore(nil)
	return Service{
		Repo:        store,
		Clock:       &tickingClock{now: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		IDGenerator: store,
	}, store
}

func TestCreateExampleRequiresName(t *testing.T) {
	svc, _ := newService()
	if _, err := svc.CreateExample(context.Background(), CreateExampleInput{Name: "  "}); !errors.Is(err, domainerrors.ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	if domainerrors.ErrNameRequired.Error() != "name is required" {
		t.Fatalf("unexpected message %q", domainerrors.ErrNameRequired.Error())
	}
}

func TestCreateExampleDefaultsToActive(t *testing.T) {
	svc, _ := newService()
	item, err := svc.CreateExample(context.Background(), CreateExampleInput{Name: "alpha"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Status != entities.ExampleStatusActive {
		t.Fatalf("expected active, got %s", item.Status)
	}
}

func TestListExamplesFiltersByStatus(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for _, input := range []CreateExampleInput{
		{Name: "one"},
		{Name: "two", Status: "inactive"},
		{Name: "three"},
	} {
		if _, err := svc.CreateExample(ctx, input); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	list, err := svc.ListExamples(ctx, ListExamplesQuery{Status: "active"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Count != 2 || list.Items[0].Name != "three" {
		t.Fatalf("expected two active examples newest first, got %+v", list)
	}

	list, _ = svc.ListExamples(ctx, ListExamplesQuery{Limit: 1, Skip: 1})
	if list.Count != 3 || len(list.Items) != 1 || list.Items[0].Name != "two" {
		t.Fatalf("expected window over all examples, got %+v", list)
	}

	if _, err := svc.ListExamples(ctx, ListExamplesQuery{Status: "archived"}); !errors.Is(err, domainerrors.ErrInvalidExampleStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestSearchExamplesIsCaseInsensitive(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.CreateExample(ctx, CreateExampleInput{Name: "Widget Pro"})
	_, _ = svc.CreateExample(ctx, CreateExampleInput{Name: "gadget"})

	items, err := svc.SearchExamples(ctx, "widget")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Widget Pro" {
		t.Fatalf("expected Widget Pro, got %+v", items)
	}
	if _, err := svc.SearchExamples(ctx, " "); !errors.Is(err, domainerrors.ErrSearchNameRequired) {
		t.Fatalf("expected search name required, got %v", err)
	}
}

func TestUpdateExampleStatus(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	item, _ := svc.CreateExample(ctx, CreateExampleInput{Name: "alpha"})

	updated, err := svc.UpdateExampleStatus(ctx, item.ExampleID, "inactive")
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != entities.ExampleStatusInactive || !updated.UpdatedAt.After(item.UpdatedAt) {
		t.Fatalf("unexpected status update result: %+v", updated)
	}
	if _, err := svc.UpdateExampleStatus(ctx, item.ExampleID, ""); !errors.Is(err, domainerrors.ErrStatusRequired) {
		t.Fatalf("expected status required, got %v", err)
	}
	if _, err := svc.UpdateExampleStatus(ctx, "missing", "active"); !errors.Is(err, domainerrors.ErrExampleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteExamplesByStatusReportsCount(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()
	_, _ = svc.CreateExample(ctx, CreateExampleInput{Name: "a", Status: "inactive"})
	_, _ = svc.CreateExample(ctx, CreateExampleInput{Name: "b", Status: "inactive"})
	keep, _ := svc.CreateExample(ctx, CreateExampleInput{Name: "c"})

	deleted, err := svc.DeleteExamplesByStatus(ctx, "inactive")
	if err != nil {
		t.Fatalf("bulk delete failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
	if _, err := store.GetExample(ctx, keep.ExampleID); err != nil {
		t.Fatalf("expected active example kept, got %v", err)
	}
}

func TestDeleteExampleIsHard(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	item, _ := svc.CreateExample(ctx, CreateExampleInput{Name: "a"})

	if err := svc.DeleteExample(ctx, item.ExampleID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetExample(ctx, item.ExampleID); !errors.Is(err, domainerrors.ErrExampleNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.DeleteExample(ctx, item.ExampleID); !errors.Is(err, domainerrors.ErrExampleNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
