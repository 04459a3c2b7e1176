package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/outbox"
	"crudhub/internal/shared/pagination"

	"github.com/google/uuid"
)

type dedupEntry struct {
	payloadHash string
	expiresAt   time.Time
}

// defaultPublishedRetention caps how many published outbox rows are kept
// for inspection before the oldest are pruned.
const defaultPublishedRetention = 1000

type Store struct {
	mu                 sync.RWMutex
	products           map[string]entities.Product
	idempotency        map[string]ports.IdempotencyRecord
	outbox             []outbox.Message
	dedup              map[string]dedupEntry
	publishedRetention int
}

func NewStore(seed []entities.Product) *Store {
	products := make(map[string]entities.Product, len(seed))
	for _, item := range seed {
		products[item.ProductID] = item
	}
	return &Store{
		products:           products,
		idempotency:        map[string]ports.IdempotencyRecord{},
		dedup:              map[string]dedupEntry{},
		publishedRetention: defaultPublishedRetention,
	}
}

func (s *Store) CreateProduct(
	_ context.Context,
	product entities.Product,
	event ports.EventEnvelope,
	claim *ports.IdempotencyRecord,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ProductID]; exists {
		return domainerrors.ErrProductAlreadyExists
	}
	if claim != nil {
		if existing, exists := s.idempotency[claim.Key]; exists && existing.ExpiresAt.After(claim.CreatedAt) {
			return domainerrors.ErrIdempotencyKeyConflict
		}
	}
	row, err := outboxRow(event)
	if err != nil {
		return err
	}
	s.products[product.ProductID] = product
	s.appendOutboxLocked(row)
	if claim != nil {
		record := *claim
		record.ResponsePayload = append([]byte(nil), claim.ResponsePayload...)
		s.idempotency[claim.Key] = record
	}
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, product entities.Product, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ProductID]; !exists {
		return domainerrors.ErrProductNotFound
	}
	row, err := outboxRow(event)
	if err != nil {
		return err
	}
	s.products[product.ProductID] = product
	s.appendOutboxLocked(row)
	return nil
}

func (s *Store) GetProduct(_ context.Context, productID string) (entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.products[strings.TrimSpace(productID)]
	if !exists {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}
	return item, nil
}

func (s *Store) ListProducts(_ context.Context, filter ports.ProductFilter) ([]entities.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Product, 0, len(s.products))
	for _, item := range s.products {
		if filter.Status == "" && item.IsDeleted() {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Name != "" && item.Name != filter.Name {
			continue
		}
		items = append(items, item)
	}
	sortNewestFirst(items)

	total := len(items)
	start, end := pagination.Window{Skip: filter.Skip, Limit: filter.Limit}.Bounds(total)
	return append([]entities.Product(nil), items[start:end]...), total, nil
}

func (s *Store) SearchProducts(_ context.Context, query string, limit int) ([]entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Product, 0)
	for _, item := range s.products {
		if item.IsDeleted() || !item.Matches(query) {
			continue
		}
		items = append(items, item)
	}
	sortNewestFirst(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.idempotency[key]
	if !exists {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now) {
		delete(s.idempotency, key)
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0)
	for _, row := range s.outbox {
		if row.Status != outbox.StatusPending {
			continue
		}
		items = append(items, row)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			s.outbox[i].Status = outbox.StatusPublished
			return nil
		}
	}
	return nil
}

// appendOutboxLocked appends row and prunes the oldest published rows once
// more than publishedRetention of them are held. Pending rows are never
// pruned.
func (s *Store) appendOutboxLocked(row outbox.Message) {
	s.outbox = append(s.outbox, row)

	published := 0
	for _, item := range s.outbox {
		if item.Status == outbox.StatusPublished {
			published++
		}
	}
	excess := published - s.publishedRetention
	if excess <= 0 {
		return
	}
	kept := s.outbox[:0]
	for _, item := range s.outbox {
		if excess > 0 && item.Status == outbox.StatusPublished {
			excess--
			continue
		}
		kept = append(kept, item)
	}
	s.outbox = kept
}

// Outbox returns a copy of the retained outbox rows in append order.
func (s *Store) Outbox() []outbox.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]outbox.Message(nil), s.outbox...)
}

func (s *Store) ReserveEvent(
	_ context.Context,
	eventID string,
	payloadHash string,
	now time.Time,
	expiresAt time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.dedup[eventID]; exists && existing.expiresAt.After(now) {
		if existing.payloadHash != payloadHash {
			return false, domainerrors.ErrIdempotencyKeyConflict
		}
		return true, nil
	}
	s.dedup[eventID] = dedupEntry{payloadHash: payloadHash, expiresAt: expiresAt}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func outboxRow(event ports.EventEnvelope) (outbox.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return outbox.Message{}, err
	}
	return outbox.Message{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt,
	}, nil
}

func sortNewestFirst(items []entities.Product) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ProductID > items[j].ProductID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
