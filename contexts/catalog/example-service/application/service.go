package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/catalog/example-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/example-service/domain/errors"
	"crudhub/contexts/catalog/example-service/ports"
	"crudhub/internal/shared/pagination"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Service struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateExampleInput struct {
	Name        string
	Description string
	Status      string
}

type UpdateExampleInput struct {
	ExampleID   string
	Name        *string
	Description *string
	Status      *string
}

type ListExamplesQuery struct {
	Limit  int
	Skip   int
	Status string
}

type ExampleList struct {
	Items []entities.Example
	Count int
}

func (s Service) CreateExample(ctx context.Context, input CreateExampleInput) (entities.Example, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entities.Example{}, domainerrors.ErrNameRequired
	}
	status, err := parseOptionalStatus(input.Status)
	if err != nil {
		return entities.Example{}, err
	}
	if status == "" {
		status = entities.ExampleStatusActive
	}

	exampleID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Example{}, err
	}
	now := s.now()
	example := entities.Example{
		ExampleID:   exampleID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateExample(ctx, example); err != nil {
		return entities.Example{}, err
	}
	ResolveLogger(s.Logger).Info("example created",
		"event", "example_created",
		"module", "catalog/example-service",
		"layer", "application",
		"example_id", example.ExampleID,
	)
	return example, nil
}

func (s Service) GetExample(ctx context.Context, exampleID string) (entities.Example, error) {
	exampleID = strings.TrimSpace(exampleID)
	if exampleID == "" {
		return entities.Example{}, domainerrors.ErrExampleNotFound
	}
	return s.Repo.GetExample(ctx, exampleID)
}

// ListExamples doubles as find-by-status when Status is set.
func (s Service) ListExamples(ctx context.Context, query ListExamplesQuery) (ExampleList, error) {
	window := pagination.NormalizeWindow(query.Skip, query.Limit, defaultLimit, maxLimit)
	status, err := parseOptionalStatus(query.Status)
	if err != nil {
		return ExampleList{}, err
	}
	items, count, err := s.Repo.ListExamples(ctx, ports.ExampleFilter{
		Status: status,
		Skip:   window.Skip,
		Limit:  window.Limit,
	})
	if err != nil {
		return ExampleList{}, err
	}
	ResolveLogger(s.Logger).Debug("examples listed",
		"event", "examples_listed",
		"module", "catalog/example-service",
		"layer", "application",
		"status", string(status),
		"count", count,
	)
	return ExampleList{Items: items, Count: count}, nil
}

func (s Service) SearchExamples(ctx context.Context, name string) ([]entities.Example, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrSearchNameRequired
	}
	items, err := s.Repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	ResolveLogger(s.Logger).Info("examples found by name",
		"event", "examples_found_by_name",
		"module", "catalog/example-service",
		"layer", "application",
		"name", name,
		"count", len(items),
	)
	return items, nil
}

func (s Service) UpdateExample(ctx context.Context, input UpdateExampleInput) (entities.Example, error) {
	example, err := s.GetExample(ctx, input.ExampleID)
	if err != nil {
		return entities.Example{}, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return entities.Example{}, domainerrors.ErrNameRequired
		}
		example.Name = name
	}
	if input.Description != nil {
		example.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		status, ok := entities.ParseStatus(*input.Status)
		if !ok {
			return entities.Example{}, domainerrors.ErrInvalidExampleStatus
		}
		example.Status = status
	}
	example.UpdatedAt = s.now()
	if err := s.Repo.UpdateExample(ctx, example); err != nil {
		return entities.Example{}, err
	}
	ResolveLogger(s.Logger).Info("example updated",
		"event", "example_updated",
		"module", "catalog/example-service",
		"layer", "application",
		"example_id", example.ExampleID,
		"status", string(example.Status),
	)
	return example, nil
}

func (s Service) UpdateExampleStatus(ctx context.Context, exampleID string, status string) (entities.Example, error) {
	if strings.TrimSpace(status) == "" {
		return entities.Example{}, domainerrors.ErrStatusRequired
	}
	return s.UpdateExample(ctx, UpdateExampleInput{ExampleID: exampleID, Status: &status})
}

func (s Service) DeleteExample(ctx context.Context, exampleID string) error {
	exampleID = strings.TrimSpace(exampleID)
	if exampleID == "" {
		return domainerrors.ErrExampleNotFound
	}
	if err := s.Repo.DeleteExample(ctx, exampleID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("example deleted",
		"event", "example_deleted",
		"module", "catalog/example-service",
		"layer", "application",
		"example_id", exampleID,
	)
	return nil
}

func (s Service) DeleteExamplesByStatus(ctx context.Context, status string) (int, error) {
	if strings.TrimSpace(status) == "" {
		return 0, domainerrors.ErrStatusRequired
	}
	parsed, ok := entities.ParseStatus(status)
	if !ok {
		return 0, domainerrors.ErrInvalidExampleStatus
	}
	deleted, err := s.Repo.DeleteByStatus(ctx, parsed)
	if err != nil {
		return 0, err
	}
	ResolveLogger(s.Logger).Info("examples deleted by status",
		"event", "examples_deleted_by_status",
		"module", "catalog/example-service",
		"layer", "application",
		"status", string(parsed),
		"deleted_count", deleted,
	)
	return deleted, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func parseOptionalStatus(raw string) (entities.ExampleStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	status, ok := entities.ParseStatus(raw)
	if !ok {
		return "", domainerrors.ErrInvalidExampleStatus
	}
	return status, nil
}
