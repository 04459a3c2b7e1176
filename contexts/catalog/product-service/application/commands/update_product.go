package commands

import (
	"context"
	"log/slog"
	"strings"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
)

type UpdateProductCommand struct {
	ProductID   string
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Status      *string
}

type UpdateProductUseCase struct {
	Products    ports.ProductRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute applies the non-nil fields. Setting status back to active
// restores a soft-deleted product.
func (uc UpdateProductUseCase) Execute(ctx context.Context, cmd UpdateProductCommand) (entities.Product, error) {
	logger := application.ResolveLogger(uc.Logger)
	product, err := uc.Products.GetProduct(ctx, strings.TrimSpace(cmd.ProductID))
	if err != nil {
		return entities.Product{}, err
	}
	previousStatus := product.Status

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Product{}, domainerrors.ErrNameRequired
		}
		product.Name = name
	}
	if cmd.Description != nil {
		product.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return entities.Product{}, domainerrors.ErrInvalidPrice
		}
		product.Price = *cmd.Price
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 {
			return entities.Product{}, domainerrors.ErrInvalidQuantity
		}
		product.Quantity = *cmd.Quantity
	}
	if cmd.Status != nil {
		status, ok := entities.ParseStatus(*cmd.Status)
		if !ok {
			return entities.Product{}, domainerrors.ErrInvalidProductStatus
		}
		product.Status = status
	}

	now := uc.Clock.Now().UTC()
	product.UpdatedAt = now

	eventType := EventProductUpdated
	if previousStatus != entities.ProductStatusDeleted && product.Status == entities.ProductStatusDeleted {
		eventType = EventProductDeleted
	}
	envelope, err := newProductEnvelope(ctx, uc.IDGenerator, eventType, product, now)
	if err != nil {
		return entities.Product{}, err
	}
	if err := uc.Products.UpdateProduct(ctx, product, envelope); err != nil {
		return entities.Product{}, err
	}

	logger.Info("product updated",
		"event", "product_updated",
		"module", "catalog/product-service",
		"layer", "application",
		"product_id", product.ProductID,
		"from_status", string(previousStatus),
		"to_status", string(product.Status),
	)
	return product, nil
}
