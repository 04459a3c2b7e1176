package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	exampleservice "crudhub/contexts/catalog/example-service"
	examplepostgres "crudhub/contexts/catalog/example-service/adapters/postgres"
	productservice "crudhub/contexts/catalog/product-service"
	productpostgres "crudhub/contexts/catalog/product-service/adapters/postgres"
	taskservice "crudhub/contexts/workspace/task-service"
	taskpostgres "crudhub/contexts/workspace/task-service/adapters/postgres"
	todoservice "crudhub/contexts/workspace/todo-service"
	todopostgres "crudhub/contexts/workspace/todo-service/adapters/postgres"
	"crudhub/internal/platform/config"
	"crudhub/internal/platform/db"
	"crudhub/internal/platform/httpserver"
	"crudhub/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server          *httpserver.Server
	postgres        *db.Postgres
	events          *eventLoop
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	events   *eventLoop
	logger   *slog.Logger
}

// eventLoop relays the product outbox onto the bus and runs the lifecycle
// audit consumer. The memory backend runs it inside the API process since
// the outbox lives in that process.
type eventLoop struct {
	products     productservice.Module
	pollInterval time.Duration
	logger       *slog.Logger
}

type backend struct {
	modules   httpserver.Modules
	postgres  *db.Postgres
	migrators []db.Migrator
}

func BuildAPI(cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	logger = resolveLogger(logger).With("service", cfg.ServiceName, "process", "api")

	be, err := buildBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate && be.postgres != nil {
		if err := be.postgres.Migrate(context.Background(), be.migrators...); err != nil {
			_ = be.postgres.Close()
			return nil, err
		}
	}

	var opts []httpserver.Option
	if be.postgres != nil {
		opts = append(opts, httpserver.WithReadinessCheck(be.postgres.Ping))
	}
	app := &APIApp{
		server:          httpserver.New(be.modules, logger, normalizeAddr(cfg.HTTPPort), opts...),
		postgres:        be.postgres,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if cfg.StoreBackend == config.StoreBackendMemory {
		app.events = &eventLoop{
			products:     be.modules.Products,
			pollInterval: cfg.OutboxPollInterval,
			logger:       logger,
		}
	}
	return app, nil
}

func BuildWorker(cfg config.Config, logger *slog.Logger) (*WorkerApp, error) {
	logger = resolveLogger(logger).With("service", cfg.ServiceName, "process", "worker")
	if cfg.StoreBackend != config.StoreBackendPostgres {
		return nil, errors.New("worker requires STORE_BACKEND=postgres; the memory backend relays events inside the api process")
	}

	be, err := buildBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &WorkerApp{
		postgres: be.postgres,
		events: &eventLoop{
			products:     be.modules.Products,
			pollInterval: cfg.OutboxPollInterval,
			logger:       logger,
		},
		logger: logger,
	}, nil
}

// Migrate creates or updates every table owned by the postgres adapters.
func Migrate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger = resolveLogger(logger).With("service", cfg.ServiceName, "process", "migrate")
	if cfg.StoreBackend != config.StoreBackendPostgres {
		return fmt.Errorf("migrate requires STORE_BACKEND=%s", config.StoreBackendPostgres)
	}
	be, err := buildBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = be.postgres.Close()
	}()

	if err := be.postgres.Migrate(ctx, be.migrators...); err != nil {
		return err
	}
	logger.Info("schema migrated",
		"event", "bootstrap_schema_migrated",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"migrators", len(be.migrators),
	)
	return nil
}

func buildBackend(cfg config.Config, logger *slog.Logger) (backend, error) {
	bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return backend{}, err
	}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		return backend{modules: httpserver.Modules{
			Todos:    todoservice.NewInMemoryModule(nil, logger),
			Tasks:    taskservice.NewInMemoryModule(nil, logger),
			Products: productservice.NewInMemoryModuleWithBus(nil, bus, bus, logger),
			Examples: exampleservice.NewInMemoryModule(nil, logger),
		}}, nil
	case config.StoreBackendPostgres:
	default:
		return backend{}, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return backend{}, errors.New("POSTGRES_DSN is required")
	}
	pg, err := db.Connect(cfg.PostgresDSN, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Logger:       logger,
	})
	if err != nil {
		return backend{}, err
	}

	todoRepo := todopostgres.NewRepository(pg.DB, logger)
	taskRepo := taskpostgres.NewRepository(pg.DB, logger)
	productRepo := productpostgres.NewRepository(pg.DB, logger)
	exampleRepo := examplepostgres.NewRepository(pg.DB, logger)

	products := productservice.NewModule(productservice.Dependencies{
		Products:        productRepo,
		Idempotency:     productRepo,
		Outbox:          productRepo,
		Dedup:           productRepo,
		Publisher:       bus,
		Subscriber:      bus,
		Clock:           productpostgres.SystemClock{},
		IDGenerator:     productpostgres.UUIDGenerator{},
		IdempotencyTTL:  24 * time.Hour,
		OutboxBatchSize: cfg.OutboxBatchSize,
		Logger:          logger,
	})

	return backend{
		modules: httpserver.Modules{
			Todos: todoservice.NewModule(todoservice.Dependencies{
				Repository:  todoRepo,
				Clock:       todopostgres.SystemClock{},
				IDGenerator: todopostgres.UUIDGenerator{},
				Logger:      logger,
			}),
			Tasks: taskservice.NewModule(taskservice.Dependencies{
				Repository:  taskRepo,
				Clock:       taskpostgres.SystemClock{},
				IDGenerator: taskpostgres.UUIDGenerator{},
				Logger:      logger,
			}),
			Products: products,
			Examples: exampleservice.NewModule(exampleservice.Dependencies{
				Repository:  exampleRepo,
				Clock:       examplepostgres.SystemClock{},
				IDGenerator: examplepostgres.UUIDGenerator{},
				Logger:      logger,
			}),
		},
		postgres:  pg,
		migrators: []db.Migrator{todoRepo, taskRepo, productRepo, exampleRepo},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains within the shutdown
// timeout.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"in_process_events", a.events != nil,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.server.Start()
	}()
	if a.events != nil {
		go func() {
			errCh <- a.events.run(runCtx)
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	timeout := a.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()
	return a.server.Shutdown(shutdownCtx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.events.pollInterval.String(),
	)
	return w.events.run(ctx)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func (l *eventLoop) run(ctx context.Context) error {
	if err := l.products.LifecycleAudit.Start(ctx); err != nil {
		return err
	}

	interval := l.pollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := l.products.OutboxRelay.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// A failed cycle leaves rows pending; retry on the next tick.
			l.logger.Warn("outbox relay cycle failed",
				"event", "bootstrap_outbox_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "worker",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
