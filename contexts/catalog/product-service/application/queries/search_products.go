package queries

import (
	"context"
	"log/slog"
	"strings"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
)

type SearchProductsUseCase struct {
	Products ports.ProductRepository
	Logger   *slog.Logger
}

func (uc SearchProductsUseCase) Execute(ctx context.Context, query string, limit int) ([]entities.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.ErrSearchQueryRequired
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, err := uc.Products.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	application.ResolveLogger(uc.Logger).Debug("products searched",
		"event", "products_searched",
		"module", "catalog/product-service",
		"layer", "application",
		"query", query,
		"count", len(items),
	)
	return items, nil
}
