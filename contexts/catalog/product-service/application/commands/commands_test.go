package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"crudhub/contexts/catalog/product-service/adapters/memory"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/events"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type advancingClock struct {
	now time.Time
}

func (c *advancingClock) Now() time.Time {
	return c.now
}

func (c *advancingClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func float64Ptr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func stringPtr(value string) *string {
	return &value
}

func newCreateUseCase(store *memory.Store) CreateProductUseCase {
	return CreateProductUseCase{
		Products:    store,
		Idempotency: store,
		Clock:       fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		IDGenerator: store,
	}
}

func TestCreateProductAppliesDefaultsAndAppendsOutbox(t *testing.T) {
	store := memory.NewStore(nil)
	result, err := newCreateUseCase(store).Execute(context.Background(), CreateProductCommand{
		Name:  "  Desk lamp ",
		Price: float64Ptr(19.5),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Product.Name != "Desk lamp" {
		t.Fatalf("expected trimmed name, got %q", result.Product.Name)
	}
	if result.Product.Status != entities.ProductStatusActive || result.Product.Quantity != 0 {
		t.Fatalf("expected active product with zero quantity, got %+v", result.Product)
	}

	rows := store.Outbox()
	if len(rows) != 1 || rows[0].EventType != EventProductCreated {
		t.Fatalf("expected one product.created outbox row, got %+v", rows)
	}
	var envelope events.Envelope
	if err := json.Unmarshal(rows[0].Payload, &envelope); err != nil {
		t.Fatalf("decode outbox payload: %v", err)
	}
	if envelope.PartitionKey != result.Product.ProductID {
		t.Fatalf("expected partition key %s, got %s", result.Product.ProductID, envelope.PartitionKey)
	}
}

func TestCreateProductValidation(t *testing.T) {
	uc := newCreateUseCase(memory.NewStore(nil))
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateProductCommand{Name: " ", Price: float64Ptr(1)}); !errors.Is(err, domainerrors.ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	if _, err := uc.Execute(ctx, CreateProductCommand{Name: "mug"}); !errors.Is(err, domainerrors.ErrPriceRequired) {
		t.Fatalf("expected price required, got %v", err)
	}
	if _, err := uc.Execute(ctx, CreateProductCommand{Name: "mug", Price: float64Ptr(-1)}); !errors.Is(err, domainerrors.ErrInvalidPrice) {
		t.Fatalf("expected invalid price, got %v", err)
	}
	if _, err := uc.Execute(ctx, CreateProductCommand{Name: "mug", Price: float64Ptr(1), Quantity: intPtr(-2)}); !errors.Is(err, domainerrors.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := uc.Execute(ctx, CreateProductCommand{Name: "mug", Price: float64Ptr(1), Status: "archived"}); !errors.Is(err, domainerrors.ErrInvalidProductStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestCreateProductIdempotencyReplayAndConflict(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateUseCase(store)
	ctx := context.Background()
	cmd := CreateProductCommand{IdempotencyKey: "key-1", Name: "mug", Price: float64Ptr(4)}

	first, err := uc.Execute(ctx, cmd)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := uc.Execute(ctx, cmd)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.Replayed || second.Product.ProductID != first.Product.ProductID {
		t.Fatalf("expected replay of %s, got %+v", first.Product.ProductID, second)
	}
	if got := len(store.Outbox()); got != 1 {
		t.Fatalf("expected replay to skip the outbox, got %d rows", got)
	}

	cmd.Price = float64Ptr(5)
	if _, err := uc.Execute(ctx, cmd); !errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestCreateProductIdempotencyKeyExpires(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &advancingClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	uc := CreateProductUseCase{
		Products:       store,
		Idempotency:    store,
		Clock:          clock,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
	}
	ctx := context.Background()

	first, err := uc.Execute(ctx, CreateProductCommand{IdempotencyKey: "k", Name: "mug", Price: float64Ptr(4)})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	clock.Advance(23 * time.Hour)
	if _, err := uc.Execute(ctx, CreateProductCommand{IdempotencyKey: "k", Name: "bowl", Price: float64Ptr(9)}); !errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
		t.Fatalf("expected conflict while the key is live, got %v", err)
	}
	if got := len(store.Outbox()); got != 1 {
		t.Fatalf("rejected create must not queue an event, got %d rows", got)
	}

	clock.Advance(2 * time.Hour)
	second, err := uc.Execute(ctx, CreateProductCommand{IdempotencyKey: "k", Name: "bowl", Price: float64Ptr(9)})
	if err != nil {
		t.Fatalf("expected expired key to be reusable, got %v", err)
	}
	if second.Replayed || second.Product.ProductID == first.Product.ProductID {
		t.Fatalf("expected a fresh product after expiry, got %+v", second)
	}
	if got := len(store.Outbox()); got != 2 {
		t.Fatalf("expected two created events, got %d", got)
	}

	replay, err := uc.Execute(ctx, CreateProductCommand{IdempotencyKey: "k", Name: "bowl", Price: float64Ptr(9)})
	if err != nil || !replay.Replayed || replay.Product.ProductID != second.Product.ProductID {
		t.Fatalf("expected replay of the reclaimed key, got %+v err=%v", replay, err)
	}
}

// conflictingStore rejects every claim, as when another request commits the
// same key between the read and the create.
type conflictingStore struct {
	*memory.Store
	winner ports.IdempotencyRecord
	claims int
}

func (s *conflictingStore) CreateProduct(ctx context.Context, product entities.Product, event ports.EventEnvelope, claim *ports.IdempotencyRecord) error {
	if claim != nil {
		s.claims++
		return domainerrors.ErrIdempotencyKeyConflict
	}
	return s.Store.CreateProduct(ctx, product, event, nil)
}

func (s *conflictingStore) GetRecord(_ context.Context, key string, _ time.Time) (ports.IdempotencyRecord, bool, error) {
	if s.claims == 0 || key != s.winner.Key {
		return ports.IdempotencyRecord{}, false, nil
	}
	return s.winner, true, nil
}

func TestCreateProductLosingClaimRaceReplaysWinner(t *testing.T) {
	winner, _ := json.Marshal(map[string]any{"product_id": "p-winner", "name": "mug", "price": 4, "status": "active"})
	cmd := CreateProductCommand{IdempotencyKey: "k", Name: "mug", Price: float64Ptr(4)}
	store := &conflictingStore{
		Store:  memory.NewStore(nil),
		winner: ports.IdempotencyRecord{Key: "k", RequestHash: hashCreateProductCommand(cmd), ResponsePayload: winner},
	}
	uc := CreateProductUseCase{
		Products:    store,
		Idempotency: store,
		Clock:       fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		IDGenerator: store.Store,
	}

	result, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("expected replay after losing the claim, got %v", err)
	}
	if !result.Replayed || result.Product.ProductID != "p-winner" {
		t.Fatalf("expected winner replay, got %+v", result)
	}

	cmd.Price = float64Ptr(5)
	store.claims = 0
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
		t.Fatalf("expected conflict for a different body, got %v", err)
	}
}

func TestCreateProductWithoutKeyAlwaysCreates(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateUseCase(store)
	cmd := CreateProductCommand{Name: "mug", Price: float64Ptr(4)}

	first, _ := uc.Execute(context.Background(), cmd)
	second, _ := uc.Execute(context.Background(), cmd)
	if first.Product.ProductID == second.Product.ProductID {
		t.Fatalf("expected two distinct products")
	}
}

func TestUpdateProductDeletedTransitionEmitsDeletedEvent(t *testing.T) {
	store := memory.NewStore(nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateProductCommand{Name: "mug", Price: float64Ptr(4)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	uc := UpdateProductUseCase{
		Products:    store,
		Clock:       fixedClock{now: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		IDGenerator: store,
	}
	updated, err := uc.Execute(context.Background(), UpdateProductCommand{
		ProductID: created.Product.ProductID,
		Quantity:  intPtr(7),
		Status:    stringPtr("deleted"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 7 || !updated.IsDeleted() {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("expected updated_at to move forward")
	}

	rows := store.Outbox()
	if rows[len(rows)-1].EventType != EventProductDeleted {
		t.Fatalf("expected product.deleted, got %s", rows[len(rows)-1].EventType)
	}

	restored, err := uc.Execute(context.Background(), UpdateProductCommand{
		ProductID: created.Product.ProductID,
		Status:    stringPtr("active"),
	})
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.IsDeleted() {
		t.Fatalf("expected product restored to active")
	}
	rows = store.Outbox()
	if rows[len(rows)-1].EventType != EventProductUpdated {
		t.Fatalf("expected product.updated on restore, got %s", rows[len(rows)-1].EventType)
	}
}

func TestUpdateProductRejectsBlankName(t *testing.T) {
	store := memory.NewStore(nil)
	created, _ := newCreateUseCase(store).Execute(context.Background(), CreateProductCommand{Name: "mug", Price: float64Ptr(4)})

	uc := UpdateProductUseCase{Products: store, Clock: store, IDGenerator: store}
	_, err := uc.Execute(context.Background(), UpdateProductCommand{
		ProductID: created.Product.ProductID,
		Name:      stringPtr("  "),
	})
	if !errors.Is(err, domainerrors.ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
}

func TestDeleteProductIsSoftAndRepeatable(t *testing.T) {
	store := memory.NewStore(nil)
	created, _ := newCreateUseCase(store).Execute(context.Background(), CreateProductCommand{Name: "mug", Price: float64Ptr(4)})

	uc := DeleteProductUseCase{Products: store, Clock: store, IDGenerator: store}
	deleted, err := uc.Execute(context.Background(), created.Product.ProductID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted.IsDeleted() {
		t.Fatalf("expected deleted status, got %s", deleted.Status)
	}
	stored, err := store.GetProduct(context.Background(), created.Product.ProductID)
	if err != nil || !stored.IsDeleted() {
		t.Fatalf("expected product row kept with deleted status, got %+v, %v", stored, err)
	}

	again, err := uc.Execute(context.Background(), created.Product.ProductID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if !again.UpdatedAt.Equal(deleted.UpdatedAt) {
		t.Fatalf("expected second delete to leave product unchanged")
	}
	if got := len(store.Outbox()); got != 2 {
		t.Fatalf("expected created+deleted outbox rows only, got %d", got)
	}

	if _, err := uc.Execute(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
