package ports

import (
	"context"
	"time"

	"crudhub/contexts/catalog/example-service/domain/entities"
)

type ExampleFilter struct {
	Status entities.ExampleStatus
	Skip   int
	Limit  int
}

type Repository interface {
	CreateExample(ctx context.Context, example entities.Example) error
	GetExample(ctx context.Context, exampleID string) (entities.Example, error)
	UpdateExample(ctx context.Context, example entities.Example) error
	DeleteExample(ctx context.Context, exampleID string) error
	ListExamples(ctx context.Context, filter ExampleFilter) ([]entities.Example, int, error)
	FindByName(ctx context.Context, fragment string) ([]entities.Example, error)
	DeleteByStatus(ctx context.Context, status entities.ExampleStatus) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
