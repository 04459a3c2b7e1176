package commands

import (
	"context"
	"log/slog"
	"strings"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/domain/entities"
	"crudhub/contexts/catalog/product-service/ports"
)

type DeleteProductUseCase struct {
	Products    ports.ProductRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute soft-deletes the product and returns it. Deleting an already
// deleted product returns it unchanged and emits no event.
func (uc DeleteProductUseCase) Execute(ctx context.Context, productID string) (entities.Product, error) {
	logger := application.ResolveLogger(uc.Logger)
	product, err := uc.Products.GetProduct(ctx, strings.TrimSpace(productID))
	if err != nil {
		return entities.Product{}, err
	}

	now := uc.Clock.Now().UTC()
	if !product.SoftDelete(now) {
		logger.Debug("product already deleted",
			"event", "product_delete_noop",
			"module", "catalog/product-service",
			"layer", "application",
			"product_id", product.ProductID,
		)
		return product, nil
	}

	envelope, err := newProductEnvelope(ctx, uc.IDGenerator, EventProductDeleted, product, now)
	if err != nil {
		return entities.Product{}, err
	}
	if err := uc.Products.UpdateProduct(ctx, product, envelope); err != nil {
		return entities.Product{}, err
	}

	logger.Info("product soft deleted",
		"event", "product_deleted",
		"module", "catalog/product-service",
		"layer", "application",
		"product_id", product.ProductID,
	)
	return product, nil
}
