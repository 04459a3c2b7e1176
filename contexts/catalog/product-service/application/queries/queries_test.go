package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"crudhub/contexts/catalog/product-service/adapters/memory"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
)

func seededStore(count int) *memory.Store {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := make([]entities.Product, 0, count)
	for i := 0; i < count; i++ {
		seed = append(seed, entities.Product{
			ProductID: string(rune('a' + i)),
			Name:      "item",
			Price:     float64(i),
			Status:    entities.ProductStatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return memory.NewStore(seed)
}

func TestListProductsNormalizesWindow(t *testing.T) {
	uc := ListProductsUseCase{Products: seededStore(15)}

	result, err := uc.Execute(context.Background(), ListProductsQuery{Limit: 0, Skip: -3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Limit != 10 || result.Skip != 0 {
		t.Fatalf("expected default window, got limit=%d skip=%d", result.Limit, result.Skip)
	}
	if result.Count != 15 || len(result.Items) != 10 {
		t.Fatalf("expected count 15 with 10 items, got %d/%d", result.Count, len(result.Items))
	}

	result, _ = uc.Execute(context.Background(), ListProductsQuery{Limit: 1000})
	if result.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", result.Limit)
	}
}

func TestListProductsRejectsUnknownStatus(t *testing.T) {
	uc := ListProductsUseCase{Products: seededStore(1)}
	if _, err := uc.Execute(context.Background(), ListProductsQuery{Status: "archived"}); !errors.Is(err, domainerrors.ErrInvalidProductStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestSearchProductsRequiresQuery(t *testing.T) {
	uc := SearchProductsUseCase{Products: seededStore(3)}
	if _, err := uc.Execute(context.Background(), "   ", 5); !errors.Is(err, domainerrors.ErrSearchQueryRequired) {
		t.Fatalf("expected query required, got %v", err)
	}
	items, err := uc.Execute(context.Background(), "ITEM", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit 2 to apply, got %d", len(items))
	}
}
