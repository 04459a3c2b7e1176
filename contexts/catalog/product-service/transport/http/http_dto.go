package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Status      string   `json:"status"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Status      *string  `json:"status"`
}

type ListProductsRequest struct {
	Limit  int
	Skip   int
	Name   string
	Status string
}

type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ListProductsResponse.Count is the number of products matching the
// filter, not the length of Items.
type ListProductsResponse struct {
	Count int          `json:"count"`
	Items []ProductDTO `json:"items"`
}

type SearchProductsResponse struct {
	Items []ProductDTO `json:"items"`
}
