package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"crudhub/contexts/catalog/product-service/adapters/memory"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/events"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	topics []string
	groups []string
}

func (s *recordingSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	_ func(context.Context, ports.EventEnvelope) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	s.groups = append(s.groups, consumerGroup)
	return nil
}

func TestProductEventsConsumerSubscribesToLifecycleTopics(t *testing.T) {
	subscriber := &recordingSubscriber{}
	consumer := ProductEventsConsumer{Subscriber: subscriber}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(subscriber.topics) != 3 {
		t.Fatalf("expected 3 subscriptions, got %v", subscriber.topics)
	}
	for _, group := range subscriber.groups {
		if group != defaultProductEventsConsumerGroup {
			t.Fatalf("expected default group, got %s", group)
		}
	}
}

func TestProductEventsConsumerSkipsReplays(t *testing.T) {
	store := memory.NewStore(nil)
	consumer := ProductEventsConsumer{Dedup: store, Clock: store}
	envelope, err := events.New("evt-1", "product.created", "product-service", "product_id", "p-1", time.Now(), map[string]any{
		"product_id": "p-1",
		"status":     "active",
	})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}

	if err := consumer.Handle(context.Background(), envelope); err != nil {
		t.Fatalf("first handle failed: %v", err)
	}
	if err := consumer.Handle(context.Background(), envelope); err != nil {
		t.Fatalf("replay handle failed: %v", err)
	}
}

func TestProductEventsConsumerRejectsPayloadWithoutProduct(t *testing.T) {
	consumer := ProductEventsConsumer{}
	envelope, _ := events.New("evt-2", "product.updated", "product-service", "product_id", "", time.Now(), map[string]any{})
	if err := consumer.Handle(context.Background(), envelope); err == nil {
		t.Fatalf("expected error for payload without product_id")
	}
}
