package ports

import (
	"context"
	"time"

	"crudhub/contexts/catalog/product-service/domain/entities"
	"crudhub/internal/shared/events"
	"crudhub/internal/shared/outbox"
)

// ProductFilter narrows a product listing. Soft-deleted products are
// excluded unless Status is set.
type ProductFilter struct {
	Name   string
	Status entities.ProductStatus
	Skip   int
	Limit  int
}

// ProductRepository persists products. Every write carries the event that
// describes it; implementations store both atomically.
//
// CreateProduct also stores claim, when non-nil, in the same unit of work.
// A live record under claim.Key (ExpiresAt after claim.CreatedAt) aborts the
// create with ErrIdempotencyKeyConflict; an expired one is replaced.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product entities.Product, event EventEnvelope, claim *IdempotencyRecord) error
	UpdateProduct(ctx context.Context, product entities.Product, event EventEnvelope) error
	GetProduct(ctx context.Context, productID string) (entities.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]entities.Product, int, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]entities.Product, error)
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// IdempotencyStore reads idempotency records. Records whose ExpiresAt is not
// after now are reported missing and removed.
type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxRepository = outbox.Repository

// EventDedupStore reserves an event id until expiresAt. It reports true when
// the event was already processed; a live id with a different payload hash
// is a conflict. Reservations that expired before now are replaced.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, now time.Time, expiresAt time.Time) (bool, error)
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
