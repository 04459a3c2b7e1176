package bootstrap

import (
	"context"
	"testing"
	"time"

	httptransport "crudhub/contexts/catalog/product-service/transport/http"
	"crudhub/internal/platform/config"
	"crudhub/internal/shared/outbox"
)

func memoryConfig() config.Config {
	return config.Config{
		ServiceName:        "crudhub",
		HTTPPort:           "0",
		StoreBackend:       config.StoreBackendMemory,
		KafkaBrokers:       []string{"localhost:9092"},
		LogFormat:          "json",
		ShutdownTimeout:    time.Second,
		OutboxPollInterval: 10 * time.Millisecond,
		OutboxBatchSize:    10,
	}
}

func TestBuildAPIMemoryRelaysProductOutbox(t *testing.T) {
	app, err := BuildAPI(memoryConfig(), nil)
	if err != nil {
		t.Fatalf("build api: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	if app.events == nil {
		t.Fatalf("expected memory backend to run the event loop in-process")
	}

	price := 12.5
	quantity := 3
	created, _, err := app.events.products.Handler.CreateProductHandler(context.Background(), "", httptransport.CreateProductRequest{
		Name:     "Desk lamp",
		Price:    &price,
		Quantity: &quantity,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.events.run(ctx) }()

	store := app.events.products.Store
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rows := store.Outbox()
		if len(rows) == 1 && rows[0].Status == outbox.StatusPublished {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("event loop: %v", err)
	}

	rows := store.Outbox()
	if len(rows) != 1 {
		t.Fatalf("expected one outbox row for %s, got %d", created.ID, len(rows))
	}
	if rows[0].Status != outbox.StatusPublished {
		t.Fatalf("expected outbox row to be published, got %s", rows[0].Status)
	}
}

func TestBuildWorkerRequiresPostgres(t *testing.T) {
	if _, err := BuildWorker(memoryConfig(), nil); err == nil {
		t.Fatalf("expected worker to reject the memory backend")
	}
}

func TestMigrateRequiresPostgres(t *testing.T) {
	if err := Migrate(context.Background(), memoryConfig(), nil); err == nil {
		t.Fatalf("expected migrate to reject the memory backend")
	}
}

func TestBuildAPIUnsupportedBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreBackend = "sqlite"
	if _, err := BuildAPI(cfg, nil); err == nil {
		t.Fatalf("expected unsupported backend error")
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
