package productservice

import (
	"log/slog"
	"time"

	httpadapter "crudhub/contexts/catalog/product-service/adapters/http"
	"crudhub/contexts/catalog/product-service/adapters/memory"
	"crudhub/contexts/catalog/product-service/application/commands"
	"crudhub/contexts/catalog/product-service/application/queries"
	"crudhub/contexts/catalog/product-service/application/workers"
	"crudhub/contexts/catalog/product-service/domain/entities"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/outbox"
)

type Module struct {
	Handler        httpadapter.Handler
	OutboxRelay    outbox.Relay
	LifecycleAudit workers.ProductEventsConsumer
	Store          *memory.Store
}

type Dependencies struct {
	Products        ports.ProductRepository
	Idempotency     ports.IdempotencyStore
	Outbox          ports.OutboxRepository
	Dedup           ports.EventDedupStore
	Publisher       outbox.Publisher
	Subscriber      ports.EventSubscriber
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	IdempotencyTTL  time.Duration
	OutboxBatchSize int
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateProduct: commands.CreateProductUseCase{
				Products:       deps.Products,
				Idempotency:    deps.Idempotency,
				Clock:          deps.Clock,
				IDGenerator:    deps.IDGenerator,
				IdempotencyTTL: deps.IdempotencyTTL,
				Logger:         deps.Logger,
			},
			UpdateProduct: commands.UpdateProductUseCase{
				Products:    deps.Products,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			DeleteProduct: commands.DeleteProductUseCase{
				Products:    deps.Products,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			GetProduct: queries.GetProductUseCase{
				Products: deps.Products,
				Logger:   deps.Logger,
			},
			ListProducts: queries.ListProductsUseCase{
				Products: deps.Products,
				Logger:   deps.Logger,
			},
			SearchProducts: queries.SearchProductsUseCase{
				Products: deps.Products,
				Logger:   deps.Logger,
			},
			Logger: deps.Logger,
		},
		OutboxRelay: outbox.Relay{
			Name:      "product-service",
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: deps.OutboxBatchSize,
			Logger:    deps.Logger,
		},
		LifecycleAudit: workers.ProductEventsConsumer{
			Subscriber: deps.Subscriber,
			Dedup:      deps.Dedup,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to one memory store. The relay and
// audit consumer stay unusable until a publisher and subscriber are given.
func NewInMemoryModule(seed []entities.Product, logger *slog.Logger) Module {
	return NewInMemoryModuleWithBus(seed, nil, nil, logger)
}

func NewInMemoryModuleWithBus(
	seed []entities.Product,
	publisher outbox.Publisher,
	subscriber ports.EventSubscriber,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Products:       store,
		Idempotency:    store,
		Outbox:         store,
		Dedup:          store,
		Publisher:      publisher,
		Subscriber:     subscriber,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
