package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateExampleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateExampleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type UpdateExampleStatusRequest struct {
	Status string `json:"status"`
}

type ExampleDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListExamplesResponse struct {
	Items []ExampleDTO `json:"items"`
	Count int          `json:"count"`
}

type DeleteExamplesResponse struct {
	DeletedCount int `json:"deleted_count"`
}
