package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"crudhub/contexts/catalog/example-service/application"
	"crudhub/contexts/catalog/example-service/domain/entities"
	httptransport "crudhub/contexts/catalog/example-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateExampleHandler(ctx context.Context, req httptransport.CreateExampleRequest) (httptransport.ExampleDTO, error) {
	item, err := h.Service.CreateExample(ctx, application.CreateExampleInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.ExampleDTO{}, err
	}
	return toExampleDTO(item), nil
}

func (h Handler) ListExamplesHandler(ctx context.Context, limit int, skip int, status string) (httptransport.ListExamplesResponse, error) {
	list, err := h.Service.ListExamples(ctx, application.ListExamplesQuery{
		Limit:  limit,
		Skip:   skip,
		Status: status,
	})
	if err != nil {
		return httptransport.ListExamplesResponse{}, err
	}
	return httptransport.ListExamplesResponse{
		Items: toExampleDTOs(list.Items),
		Count: list.Count,
	}, nil
}

// SearchExamplesHandler returns a bare array of matches.
func (h Handler) SearchExamplesHandler(ctx context.Context, name string) ([]httptransport.ExampleDTO, error) {
	items, err := h.Service.SearchExamples(ctx, name)
	if err != nil {
		return nil, err
	}
	return toExampleDTOs(items), nil
}

func (h Handler) GetExampleHandler(ctx context.Context, exampleID string) (httptransport.ExampleDTO, error) {
	item, err := h.Service.GetExample(ctx, exampleID)
	if err != nil {
		return httptransport.ExampleDTO{}, err
	}
	return toExampleDTO(item), nil
}

func (h Handler) UpdateExampleHandler(
	ctx context.Context,
	exampleID string,
	req httptransport.UpdateExampleRequest,
) (httptransport.ExampleDTO, error) {
	item, err := h.Service.UpdateExample(ctx, application.UpdateExampleInput{
		ExampleID:   exampleID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.ExampleDTO{}, err
	}
	return toExampleDTO(item), nil
}

func (h Handler) UpdateExampleStatusHandler(
	ctx context.Context,
	exampleID string,
	req httptransport.UpdateExampleStatusRequest,
) (httptransport.ExampleDTO, error) {
	item, err := h.Service.UpdateExampleStatus(ctx, exampleID, req.Status)
	if err != nil {
		return httptransport.ExampleDTO{}, err
	}
	return toExampleDTO(item), nil
}

func (h Handler) DeleteExampleHandler(ctx context.Context, exampleID string) error {
	return h.Service.DeleteExample(ctx, exampleID)
}

func (h Handler) DeleteExamplesByStatusHandler(ctx context.Context, status string) (httptransport.DeleteExamplesResponse, error) {
	deleted, err := h.Service.DeleteExamplesByStatus(ctx, status)
	if err != nil {
		return httptransport.DeleteExamplesResponse{}, err
	}
	return httptransport.DeleteExamplesResponse{DeletedCount: deleted}, nil
}

func toExampleDTO(item entities.Example) httptransport.ExampleDTO {
	return httptransport.ExampleDTO{
		ID:          item.ExampleID,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toExampleDTOs(items []entities.Example) []httptransport.ExampleDTO {
	out := make([]httptransport.ExampleDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toExampleDTO(item))
	}
	return out
}
