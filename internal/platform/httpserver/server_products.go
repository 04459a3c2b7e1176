package httpserver

import (
	"errors"
	"net/http"
	"strings"

	productdomainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	producthttp "crudhub/contexts/catalog/product-service/transport/http"
)

func (s *Server) registerProductRoutes() {
	s.mux.HandleFunc("POST /api/products", s.handleCreateProduct)
	s.mux.HandleFunc("GET /api/products", s.handleListProducts)
	// The literal segment outranks {id}, so search is never routed as an id.
	s.mux.HandleFunc("GET /api/products/search", s.handleSearchProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("PUT /api/products/{id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.handleDeleteProduct)
}

// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "replay key"
// @Param body body producthttp.CreateProductRequest true "product"
// @Success 201 {object} producthttp.ProductDTO
// @Success 200 {object} producthttp.ProductDTO "replayed"
// @Failure 400 {object} producthttp.ErrorResponse
// @Failure 409 {object} producthttp.ErrorResponse
// @Router /api/products [post]
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req producthttp.CreateProductRequest
	if !s.decodeJSON(w, r, &req, writeProductError) {
		return
	}
	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	resp, replayed, err := s.products.Handler.CreateProductHandler(r.Context(), idempotencyKey, req)
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param limit query int false "page size, default 10, max 100"
// @Param skip query int false "rows to skip"
// @Param name query string false "exact name"
// @Param status query string false "active or deleted"
// @Success 200 {object} producthttp.ListProductsResponse
// @Router /api/products [get]
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.products.Handler.ListProductsHandler(r.Context(), producthttp.ListProductsRequest{
		Limit:  queryInt(r, "limit"),
		Skip:   queryInt(r, "skip"),
		Name:   query.Get("name"),
		Status: query.Get("status"),
	})
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Search products
// @Tags products
// @Produce json
// @Param q query string true "name or description fragment"
// @Param limit query int false "max results"
// @Success 200 {object} producthttp.SearchProductsResponse
// @Router /api/products/search [get]
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		query = r.URL.Query().Get("query")
	}
	resp, err := s.products.Handler.SearchProductsHandler(r.Context(), query, queryInt(r, "limit"))
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.products.Handler.GetProductHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req producthttp.UpdateProductRequest
	if !s.decodeJSON(w, r, &req, writeProductError) {
		return
	}
	resp, err := s.products.Handler.UpdateProductHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary Soft delete a product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} producthttp.ProductDTO
// @Failure 404 {object} producthttp.ErrorResponse
// @Router /api/products/{id} [delete]
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.products.Handler.DeleteProductHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeProductDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeProductError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, producthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) writeProductDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, productdomainerrors.ErrProductNotFound):
		writeProductError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, productdomainerrors.ErrInvalidProductID):
		writeProductError(w, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, productdomainerrors.ErrNameRequired),
		errors.Is(err, productdomainerrors.ErrPriceRequired),
		errors.Is(err, productdomainerrors.ErrInvalidPrice),
		errors.Is(err, productdomainerrors.ErrInvalidQuantity),
		errors.Is(err, productdomainerrors.ErrInvalidProductStatus),
		errors.Is(err, productdomainerrors.ErrSearchQueryRequired):
		writeProductError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, productdomainerrors.ErrIdempotencyKeyConflict):
		writeProductError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, productdomainerrors.ErrProductAlreadyExists):
		writeProductError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logInternalError(r, "catalog/product-service", err)
		writeProductError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
