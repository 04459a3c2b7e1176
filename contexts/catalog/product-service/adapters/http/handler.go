package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/catalog/product-service/application/commands"
	"crudhub/contexts/catalog/product-service/application/queries"
	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	httptransport "crudhub/contexts/catalog/product-service/transport/http"

	"github.com/google/uuid"
)

type Handler struct {
	CreateProduct  commands.CreateProductUseCase
	UpdateProduct  commands.UpdateProductUseCase
	DeleteProduct  commands.DeleteProductUseCase
	GetProduct     queries.GetProductUseCase
	ListProducts   queries.ListProductsUseCase
	SearchProducts queries.SearchProductsUseCase
	Logger         *slog.Logger
}

// CreateProductHandler reports whether the result was replayed from an
// earlier request with the same idempotency key.
func (h Handler) CreateProductHandler(
	ctx context.Context,
	idempotencyKey string,
	req httptransport.CreateProductRequest,
) (httptransport.ProductDTO, bool, error) {
	result, err := h.CreateProduct.Execute(ctx, commands.CreateProductCommand{
		IdempotencyKey: idempotencyKey,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         req.Status,
	})
	if err != nil {
		return httptransport.ProductDTO{}, false, err
	}
	return toProductDTO(result.Product), result.Replayed, nil
}

func (h Handler) ListProductsHandler(
	ctx context.Context,
	req httptransport.ListProductsRequest,
) (httptransport.ListProductsResponse, error) {
	result, err := h.ListProducts.Execute(ctx, queries.ListProductsQuery{
		Limit:  req.Limit,
		Skip:   req.Skip,
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		return httptransport.ListProductsResponse{}, err
	}
	return httptransport.ListProductsResponse{
		Count: result.Count,
		Items: toProductDTOs(result.Items),
	}, nil
}

func (h Handler) SearchProductsHandler(
	ctx context.Context,
	query string,
	limit int,
) (httptransport.SearchProductsResponse, error) {
	items, err := h.SearchProducts.Execute(ctx, query, limit)
	if err != nil {
		return httptransport.SearchProductsResponse{}, err
	}
	return httptransport.SearchProductsResponse{Items: toProductDTOs(items)}, nil
}

func (h Handler) GetProductHandler(ctx context.Context, productID string) (httptransport.ProductDTO, error) {
	productID, err := parseProductID(productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	item, err := h.GetProduct.Execute(ctx, productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(item), nil
}

func (h Handler) UpdateProductHandler(
	ctx context.Context,
	productID string,
	req httptransport.UpdateProductRequest,
) (httptransport.ProductDTO, error) {
	productID, err := parseProductID(productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	item, err := h.UpdateProduct.Execute(ctx, commands.UpdateProductCommand{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(item), nil
}

func (h Handler) DeleteProductHandler(ctx context.Context, productID string) (httptransport.ProductDTO, error) {
	productID, err := parseProductID(productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	item, err := h.DeleteProduct.Execute(ctx, productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(item), nil
}

func parseProductID(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", domainerrors.ErrInvalidProductID
	}
	return parsed.String(), nil
}

func toProductDTO(item entities.Product) httptransport.ProductDTO {
	return httptransport.ProductDTO{
		ID:          item.ProductID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toProductDTOs(items []entities.Product) []httptransport.ProductDTO {
	out := make([]httptransport.ProductDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toProductDTO(item))
	}
	return out
}
