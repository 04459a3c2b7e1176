package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"crudhub/internal/shared/events"
)

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Message is an outbox row persisted inside the same DB transaction as the
// state change it describes. Payload holds a JSON-encoded events.Envelope.
type Message struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	Status       string
	CreatedAt    time.Time
}

type Repository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

// Relay publishes pending outbox rows to the event bus and marks them
// published. A failed publish leaves the row pending for the next cycle.
type Relay struct {
	Name      string
	Outbox    Repository
	Publisher Publisher
	Clock     Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r Relay) RunOnce(ctx context.Context) (int, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "outbox_list_failed",
			"module", "internal/shared/outbox",
			"layer", "worker",
			"relay", r.Name,
			"error", err.Error(),
		)
		return 0, err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	published := 0
	for _, row := range pending {
		var event events.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("outbox decode failed",
				"event", "outbox_decode_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"relay", r.Name,
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return published, err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_publish_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"relay", r.Name,
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return published, err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "outbox_mark_published_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"relay", r.Name,
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return published, err
		}
		published++
	}

	if published > 0 {
		logger.Info("outbox relay cycle completed",
			"event", "outbox_relay_completed",
			"module", "internal/shared/outbox",
			"layer", "worker",
			"relay", r.Name,
			"published_count", published,
		)
	}
	return published, nil
}
