package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"crudhub/internal/shared/events"
)

const defaultGroupBuffer = 128

var ErrClosed = errors.New("messaging: bus closed")

// Kafka is the event bus behind the outbox relay and product consumers.
// Delivery is in-process with consumer-group semantics: every group
// subscribed to a topic receives each event once, and handlers in the same
// group compete for it. Brokers are recorded for the external broker client.
type Kafka struct {
	mu      sync.RWMutex
	brokers []string
	topics  map[string]map[string]*group
	closed  bool
	logger  *slog.Logger
}

type group struct {
	name    string
	queue   chan events.Envelope
	members int
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		brokers: append([]string(nil), brokers...),
		topics:  make(map[string]map[string]*group),
		logger:  logger,
	}, nil
}

func (k *Kafka) Brokers() []string {
	return append([]string(nil), k.brokers...)
}

// Publish hands event to every consumer group on topic. It blocks while a
// group's queue is full so the relay never marks an undelivered row
// published; ctx bounds the wait.
func (k *Kafka) Publish(ctx context.Context, topic string, event events.Envelope) error {
	k.mu.RLock()
	if k.closed {
		k.mu.RUnlock()
		return ErrClosed
	}
	groups := make([]*group, 0, len(k.topics[topic]))
	for _, g := range k.topics[topic] {
		groups = append(groups, g)
	}
	k.mu.RUnlock()

	for _, g := range groups {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case g.queue <- event:
		}
	}

	k.logger.Debug("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"group_count", len(groups),
	)
	return nil
}

// Subscribe joins consumerGroup on topic and runs handler for each event
// until ctx is done. Handler errors are logged; the event is not redelivered.
func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, events.Envelope) error,
) error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrClosed
	}
	groups, ok := k.topics[topic]
	if !ok {
		groups = make(map[string]*group)
		k.topics[topic] = groups
	}
	g, ok := groups[consumerGroup]
	if !ok {
		g = &group{name: consumerGroup, queue: make(chan events.Envelope, defaultGroupBuffer)}
		groups[consumerGroup] = g
	}
	g.members++
	k.mu.Unlock()

	go func() {
		defer k.leave(topic, g)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-g.queue:
				if err := handler(ctx, event); err != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", g.name,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

// Close rejects further publishes and subscriptions.
func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return nil
}

// leave drops the group once its last member stops so publishers do not
// block on a queue nobody drains.
func (k *Kafka) leave(topic string, g *group) {
	k.mu.Lock()
	defer k.mu.Unlock()

	g.members--
	if g.members > 0 {
		return
	}
	groups := k.topics[topic]
	if groups[g.name] == g {
		delete(groups, g.name)
	}
	if len(groups) == 0 {
		delete(k.topics, topic)
	}
}
