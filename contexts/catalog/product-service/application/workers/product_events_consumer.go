package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "crudhub/contexts/catalog/product-service/application"
	"crudhub/contexts/catalog/product-service/application/commands"
	"crudhub/contexts/catalog/product-service/ports"
)

const defaultProductEventsConsumerGroup = "product-service-lifecycle-audit-cg"

// ProductEventsConsumer records an audit log line for every product
// lifecycle event relayed from the outbox, once per event id.
type ProductEventsConsumer struct {
	Subscriber    ports.EventSubscriber
	Dedup         ports.EventDedupStore
	Clock         ports.Clock
	ConsumerGroup string
	DedupTTL      time.Duration
	Logger        *slog.Logger
}

func (c ProductEventsConsumer) Start(ctx context.Context) error {
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultProductEventsConsumerGroup
	}
	for _, topic := range []string{
		commands.EventProductCreated,
		commands.EventProductUpdated,
		commands.EventProductDeleted,
	} {
		if err := c.Subscriber.Subscribe(ctx, topic, group, c.Handle); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}

func (c ProductEventsConsumer) Handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}

	if c.Dedup != nil {
		alreadyProcessed, err := c.Dedup.ReserveEvent(ctx, event.EventID, hashPayload(event.Data), now, now.Add(c.dedupTTL()))
		if err != nil {
			return err
		}
		if alreadyProcessed {
			logger.Debug("product event already processed",
				"event", "product_event_replayed",
				"module", "catalog/product-service",
				"layer", "worker",
				"event_id", event.EventID,
			)
			return nil
		}
	}

	var payload struct {
		ProductID string `json:"product_id"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.EventType, err)
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		return fmt.Errorf("%s payload missing product_id", event.EventType)
	}

	logger.Info("product lifecycle event observed",
		"event", "product_lifecycle_event_observed",
		"module", "catalog/product-service",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"product_id", payload.ProductID,
		"status", payload.Status,
		"lag_ms", now.Sub(event.OccurredAt).Milliseconds(),
	)
	return nil
}

func (c ProductEventsConsumer) dedupTTL() time.Duration {
	if c.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return c.DedupTTL
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
