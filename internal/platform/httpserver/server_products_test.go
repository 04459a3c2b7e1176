package httpserver

import (
	"net/http"
	"strings"
	"testing"

	producthttp "crudhub/contexts/catalog/product-service/transport/http"
)

func createProduct(t *testing.T, server *Server, body string) producthttp.ProductDTO {
	t.Helper()
	rr := serve(server, http.MethodPost, "/api/products", body, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created producthttp.ProductDTO
	decodeBody(t, rr, &created)
	return created
}

func TestProductCreateRequiresPrice(t *testing.T) {
	rr := serve(newTestServer(), http.MethodPost, "/api/products", `{"name":"mug"}`, nil)
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "price is required") {
		t.Fatalf("expected price required, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProductGetRejectsMalformedID(t *testing.T) {
	rr := serve(newTestServer(), http.MethodGet, "/api/products/not-a-uuid", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	rr = serve(newTestServer(), http.MethodGet, "/api/products/6f1c7c3e-0d7a-4a52-9b1e-3f0b7d2c9a11", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rr.Code)
	}
}

func TestProductSearchRouteIsNotShadowed(t *testing.T) {
	server := newTestServer()
	createProduct(t, server, `{"name":"Desk lamp","price":20}`)
	createProduct(t, server, `{"name":"Mug","description":"fits a lamp shelf","price":4}`)
	createProduct(t, server, `{"name":"Chair","price":40}`)

	rr := serve(server, http.MethodGet, "/api/products/search?q=LAMP", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp producthttp.SearchProductsResponse
	decodeBody(t, rr, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Items))
	}

	rr = serve(server, http.MethodGet, "/api/products/search", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected blank search to be 400, got %d", rr.Code)
	}
}

func TestProductIdempotentCreate(t *testing.T) {
	server := newTestServer()
	key := map[string]string{"Idempotency-Key": "create-1"}

	first := serve(server, http.MethodPost, "/api/products", `{"name":"mug","price":4}`, key)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	replay := serve(server, http.MethodPost, "/api/products", `{"name":"mug","price":4}`, key)
	if replay.Code != http.StatusOK || replay.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay 200, got %d", replay.Code)
	}
	var a, b producthttp.ProductDTO
	decodeBody(t, first, &a)
	decodeBody(t, replay, &b)
	if a.ID != b.ID {
		t.Fatalf("expected replay to return %s, got %s", a.ID, b.ID)
	}

	conflict := serve(server, http.MethodPost, "/api/products", `{"name":"mug","price":5}`, key)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", conflict.Code)
	}
}

func TestProductSoftDelete(t *testing.T) {
	server := newTestServer()
	keep := createProduct(t, server, `{"name":"chair","price":40,"quantity":3}`)
	gone := createProduct(t, server, `{"name":"mug","price":4}`)

	rr := serve(server, http.MethodDelete, "/api/products/"+gone.ID, "", nil)
	var deleted producthttp.ProductDTO
	decodeBody(t, rr, &deleted)
	if rr.Code != http.StatusOK || deleted.Status != "deleted" {
		t.Fatalf("expected soft-deleted product, got %d %+v", rr.Code, deleted)
	}

	rr = serve(server, http.MethodGet, "/api/products", "", nil)
	var list producthttp.ListProductsResponse
	decodeBody(t, rr, &list)
	if list.Count != 1 || list.Items[0].ID != keep.ID {
		t.Fatalf("expected only live product listed, got %+v", list)
	}

	rr = serve(server, http.MethodGet, "/api/products?status=deleted", "", nil)
	decodeBody(t, rr, &list)
	if list.Count != 1 || list.Items[0].ID != gone.ID {
		t.Fatalf("expected deleted product under status filter, got %+v", list)
	}

	rr = serve(server, http.MethodGet, "/api/products/"+gone.ID, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected deleted product still readable, got %d", rr.Code)
	}

	rr = serve(server, http.MethodPut, "/api/products/"+gone.ID, `{"status":"active"}`, nil)
	var restored producthttp.ProductDTO
	decodeBody(t, rr, &restored)
	if restored.Status != "active" {
		t.Fatalf("expected restore to active, got %+v", restored)
	}
}

func TestProductListCountIgnoresLimit(t *testing.T) {
	server := newTestServer()
	for _, name := range []string{"a", "b", "c"} {
		createProduct(t, server, `{"name":"`+name+`","price":1}`)
	}
	rr := serve(server, http.MethodGet, "/api/products?limit=2&skip=x", "", nil)
	var list producthttp.ListProductsResponse
	decodeBody(t, rr, &list)
	if list.Count != 3 || len(list.Items) != 2 {
		t.Fatalf("expected count 3 with 2 items, got %d/%d", list.Count, len(list.Items))
	}
}
