package queries

import (
	"context"
	"log/slog"
	"strings"

	"crudhub/contexts/catalog/product-service/domain/entities"
	"crudhub/contexts/catalog/product-service/ports"
)

type GetProductUseCase struct {
	Products ports.ProductRepository
	Logger   *slog.Logger
}

// Execute returns the product regardless of status, so soft-deleted
// products stay readable by id.
func (uc GetProductUseCase) Execute(ctx context.Context, productID string) (entities.Product, error) {
	return uc.Products.GetProduct(ctx, strings.TrimSpace(productID))
}
