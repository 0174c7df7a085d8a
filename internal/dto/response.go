package dto

import "github.com/yukikurage/daybook-api/internal/utils"

// Envelope wraps every successful response
type Envelope struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
}

// ListResponse represents a paginated list
type ListResponse struct {
	Items      interface{}              `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
