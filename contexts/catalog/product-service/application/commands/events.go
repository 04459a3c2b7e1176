package commands

import (
	"context"
	"time"

	"crudhub/contexts/catalog/product-service/domain/entities"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/events"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

func newProductEnvelope(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	product entities.Product,
	occurredAt time.Time,
) (ports.EventEnvelope, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return events.New(
		eventID,
		eventType,
		"product-service",
		"product_id",
		product.ProductID,
		occurredAt,
		map[string]any{
			"product_id": product.ProductID,
			"name":       product.Name,
			"price":      product.Price,
			"quantity":   product.Quantity,
			"status":     string(product.Status),
		},
	)
}
