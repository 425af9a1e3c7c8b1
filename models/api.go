package models

// APIResponse is a generic structure for all API responses
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code (200, 400, 500, etc.)
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"` // nil on success
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"` // ValidationError, NotFoundError, StoreError
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"` // For validation errors (which field failed)
}

// Error types reported in APIError.Type
const (
	ErrorTypeValidation  = "ValidationError"
	ErrorTypeNotFound    = "NotFoundError"
	ErrorTypeStore       = "StoreError"
	ErrorTypeRateLimit   = "RateLimitError"
	ErrorTypeUnavailable = "UnavailableError"
)

// StatusUpdateRequest is the body of the PATCH .../:id/status endpoints
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkStatusRequest is the body of POST /communications/bulk/status
type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// BulkStatusResult reports how many communications actually changed status
type BulkStatusResult struct {
	Message       string `json:"message"`
	ModifiedCount int    `json:"modifiedCount"`
}
