package application

import (
	"errors"
	"net/http"

	"github.com/philly/folio/internal/platform/apperror"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
)

// Error definitions for service operations
var (
	ErrTagNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeTagNotFound,
		"tag not found",
		http.StatusNotFound,
	)

	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeCategoryNotFound,
		"category not found",
		http.StatusNotFound,
	)

	ErrSlugAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeSlugAlreadyExists,
		"slug already exists",
		http.StatusConflict,
	)

	ErrTermInUse = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeTermInUse,
		"term is still in use",
		http.StatusConflict,
	)

	ErrInvalidParent = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidParent,
		"invalid parent category",
		http.StatusBadRequest,
	)
)

// validationError maps a domain validation error to its AppError.
func validationError(err error) *apperror.AppError {
	bizCode := apperror.BusinessCodeInvalidFormat
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		bizCode = apperror.BusinessCodeInvalidName
	case errors.Is(err, domain.ErrInvalidSlug):
		bizCode = apperror.BusinessCodeInvalidSlug
	case errors.Is(err, domain.ErrInvalidParent):
		bizCode = apperror.BusinessCodeInvalidParent
	}
	return apperror.Wrap(err, apperror.CodeValidationFailed, bizCode, err.Error(), http.StatusBadRequest)
}

// writeError maps a failed repository write.
func writeError(err error, notFound *apperror.AppError, message string) *apperror.AppError {
	switch {
	case errors.Is(err, ports.ErrSlugConflict):
		return ErrSlugAlreadyExists.WithDetails(err.Error())
	case errors.Is(err, ports.ErrTagNotFound), errors.Is(err, ports.ErrCategoryNotFound):
		return notFound
	default:
		return internalError(err, message)
	}
}

func internalError(err error, message string) *apperror.AppError {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.BusinessCodeGeneral, message, http.StatusInternalServerError)
}
