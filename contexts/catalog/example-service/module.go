package exampleservice

import (
	"log/slog"

	httpadapter "crudhub/contexts/catalog/example-service/adapters/http"
	"crudhub/contexts/catalog/example-service/adapters/memory"
	"crudhub/contexts/catalog/example-service/application"
	"crudhub/contexts/catalog/example-service/domain/entities"
	"crudhub/contexts/catalog/example-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:        deps.Repository,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Example, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
