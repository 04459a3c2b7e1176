package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
)

type CreateProductCommand struct {
	IdempotencyKey string
	Name           string
	Description    string
	Price          *float64
	Quantity       *int
	Status         string
}

type CreateProductUseCase struct {
	Products       ports.ProductRepository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type CreateProductResult struct {
	Product  entities.Product
	Replayed bool
}

type productReplayPayload struct {
	ProductID   string                 `json:"product_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Quantity    int                    `json:"quantity"`
	Status      entities.ProductStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Execute creates a product. With an idempotency key, a repeated request
// replays the first result and a different request under the same key is
// rejected. Without a key every call creates a new product.
func (uc CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) (CreateProductResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	key := strings.TrimSpace(cmd.IdempotencyKey)
	now := uc.Clock.Now().UTC()

	requestHash := hashCreateProductCommand(cmd)
	idempotent := key != "" && uc.Idempotency != nil
	if idempotent {
		result, found, err := uc.replay(ctx, key, requestHash, now)
		if err != nil || found {
			return result, err
		}
	}

	product, err := buildProduct(cmd, now)
	if err != nil {
		return CreateProductResult{}, err
	}
	productID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateProductResult{}, err
	}
	product.ProductID = productID

	envelope, err := newProductEnvelope(ctx, uc.IDGenerator, EventProductCreated, product, now)
	if err != nil {
		return CreateProductResult{}, err
	}

	var claim *ports.IdempotencyRecord
	if idempotent {
		serialized, err := json.Marshal(replayPayloadFromEntity(product))
		if err != nil {
			return CreateProductResult{}, err
		}
		claim = &ports.IdempotencyRecord{
			Key:             key,
			RequestHash:     requestHash,
			ResponsePayload: serialized,
			CreatedAt:       now,
			ExpiresAt:       now.Add(uc.ttl()),
		}
	}
	if err := uc.Products.CreateProduct(ctx, product, envelope, claim); err != nil {
		if claim != nil && errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
			// A concurrent request claimed the key first; replay it when the
			// bodies match.
			if result, found, replayErr := uc.replay(ctx, key, requestHash, now); replayErr == nil && found {
				return result, nil
			}
		}
		return CreateProductResult{}, err
	}

	logger.Info("product created",
		"event", "product_created",
		"module", "catalog/product-service",
		"layer", "application",
		"product_id", product.ProductID,
		"idempotent", idempotent,
	)
	return CreateProductResult{Product: product}, nil
}

func (uc CreateProductUseCase) replay(ctx context.Context, key string, requestHash string, now time.Time) (CreateProductResult, bool, error) {
	record, found, err := uc.Idempotency.GetRecord(ctx, key, now)
	if err != nil || !found {
		return CreateProductResult{}, false, err
	}
	if record.RequestHash != requestHash {
		return CreateProductResult{}, false, domainerrors.ErrIdempotencyKeyConflict
	}
	var payload productReplayPayload
	if err := json.Unmarshal(record.ResponsePayload, &payload); err != nil {
		return CreateProductResult{}, false, err
	}
	return CreateProductResult{Product: payload.toEntity(), Replayed: true}, true, nil
}

func (uc CreateProductUseCase) ttl() time.Duration {
	if uc.IdempotencyTTL <= 0 {
		return 24 * time.Hour
	}
	return uc.IdempotencyTTL
}

func buildProduct(cmd CreateProductCommand, now time.Time) (entities.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Product{}, domainerrors.ErrNameRequired
	}
	if cmd.Price == nil {
		return entities.Product{}, domainerrors.ErrPriceRequired
	}
	if *cmd.Price < 0 {
		return entities.Product{}, domainerrors.ErrInvalidPrice
	}
	quantity := 0
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 {
			return entities.Product{}, domainerrors.ErrInvalidQuantity
		}
		quantity = *cmd.Quantity
	}
	status := entities.ProductStatusActive
	if strings.TrimSpace(cmd.Status) != "" {
		parsed, ok := entities.ParseStatus(cmd.Status)
		if !ok {
			return entities.Product{}, domainerrors.ErrInvalidProductStatus
		}
		status = parsed
	}
	return entities.Product{
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		Price:       *cmd.Price,
		Quantity:    quantity,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func replayPayloadFromEntity(item entities.Product) productReplayPayload {
	return productReplayPayload{
		ProductID:   item.ProductID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (p productReplayPayload) toEntity() entities.Product {
	return entities.Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func hashCreateProductCommand(cmd CreateProductCommand) string {
	payload := map[string]any{
		"name":        strings.TrimSpace(cmd.Name),
		"description": strings.TrimSpace(cmd.Description),
		"status":      strings.ToLower(strings.TrimSpace(cmd.Status)),
	}
	if cmd.Price != nil {
		payload["price"] = *cmd.Price
	}
	if cmd.Quantity != nil {
		payload["quantity"] = *cmd.Quantity
	}
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
