package queries

import (
	"context"
	"log/slog"
	"strings"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/pagination"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type ListProductsQuery struct {
	Limit  int
	Skip   int
	Name   string
	Status string
}

type ListProductsResult struct {
	Items []entities.Product
	Count int
	Limit int
	Skip  int
}

type ListProductsUseCase struct {
	Products ports.ProductRepository
	Logger   *slog.Logger
}

func (uc ListProductsUseCase) Execute(ctx context.Context, query ListProductsQuery) (ListProductsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	window := pagination.NormalizeWindow(query.Skip, query.Limit, defaultLimit, maxLimit)
	filter := ports.ProductFilter{
		Name:  strings.TrimSpace(query.Name),
		Skip:  window.Skip,
		Limit: window.Limit,
	}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := entities.ParseStatus(query.Status)
		if !ok {
			return ListProductsResult{}, domainerrors.ErrInvalidProductStatus
		}
		filter.Status = status
	}

	items, count, err := uc.Products.ListProducts(ctx, filter)
	if err != nil {
		return ListProductsResult{}, err
	}
	logger.Debug("products listed",
		"event", "products_listed",
		"module", "catalog/product-service",
		"layer", "application",
		"count", count,
		"returned", len(items),
	)
	return ListProductsResult{
		Items: items,
		Count: count,
		Limit: window.Limit,
		Skip:  window.Skip,
	}, nil
}
