package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes used by middleware (lower_snake_case convention)
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeMethodNotAllowed    = "method_not_allowed"
	ErrorCodeValidationError     = "validation_error"
	ErrorCodeInternalServerError = "internal_server_error"
)

// WriteJSONError writes a JSON error response with consistent format
// This matches the format used by BaseHandler in the REST layer
func WriteJSONError(w http.ResponseWriter, code string, message string, status int) {
	WriteJSONErrorWithDetails(w, code, message, status, nil)
}

// WriteJSONErrorWithDetails writes a JSON error response with additional details
func WriteJSONErrorWithDetails(w http.ResponseWriter, code string, message string, status int, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"error":   code,
		"message": message,
	}

	// Add any additional details
	for k, v := range details {
		errorResp[k] = v
	}

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(errorResp)
}

// ParamErrorHandler renders parameter binding failures of the API router
func ParamErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	WriteJSONError(w, ErrorCodeInvalidRequest, err.Error(), http.StatusBadRequest)
}

// NotFound renders unmatched routes as JSON
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, ErrorCodeNotFound, "Route not found", http.StatusNotFound)
}

// MethodNotAllowed renders matched paths with an unsupported method as JSON
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSONError(w, ErrorCodeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed)
}
