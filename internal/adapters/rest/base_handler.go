package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/philly/folio/internal/adapters/api"
	"github.com/philly/folio/internal/adapters/rest/middleware"
	"github.com/philly/folio/internal/platform/apperror"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/validator"
)

// maxBodyBytes caps request bodies; post content is markdown text.
const maxBodyBytes = 1 << 20

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes a JSON error response matching the API contract
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	h.WriteJSONResponse(w, r, api.Error{
		Error:   code,
		Message: message,
	}, statusCode)
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps an error to its HTTP response. AppErrors carry their own
// status and codes; anything else is an internal error and is logged.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		h.WriteJSONError(w, r, string(apperror.CodeInternalError), "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", appErr.Inner,
			"code", appErr.Code,
			"business_code", appErr.BusinessCode,
			"path", r.URL.Path,
		)
	}

	bizCode := string(appErr.BusinessCode)
	h.WriteJSONResponse(w, r, api.Error{
		Error:        string(appErr.Code),
		BusinessCode: &bizCode,
		Message:      appErr.Message,
		Context:      appErr.Details,
	}, appErr.HTTPStatus)
}

// DecodeJSON reads the request body into dst and runs its validation tags.
// On failure the error response has been written and false is returned.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.WriteJSONError(w, r, middleware.ErrorCodeValidationError, "Invalid request body", http.StatusBadRequest)
		return false
	}

	fields, err := validator.ValidateStruct(dst)
	if err != nil {
		h.HandleError(w, r, err)
		return false
	}
	if len(fields) > 0 {
		bizCode := string(apperror.BusinessCodeInvalidFormat)
		h.WriteJSONResponse(w, r, api.Error{
			Error:        string(apperror.CodeValidationFailed),
			BusinessCode: &bizCode,
			Message:      "Request validation failed",
			Context:      map[string]any{"fields": fields},
		}, http.StatusBadRequest)
		return false
	}
	return true
}
