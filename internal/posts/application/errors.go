package application

import (
	"errors"
	"net/http"

	"github.com/philly/folio/internal/platform/apperror"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
)

// Error definitions for service operations
var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrSlugAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeSlugAlreadyExists,
		"slug already exists",
		http.StatusConflict,
	)

	ErrPostAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodePostAlreadyExists,
		"post already exists",
		http.StatusConflict,
	)

	ErrInvalidPostData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid post data",
		http.StatusBadRequest,
	)
)

// validationError maps a domain validation error to its AppError.
func validationError(err error) *apperror.AppError {
	bizCode := apperror.BusinessCodeInvalidFormat
	switch {
	case errors.Is(err, domain.ErrInvalidTitle):
		bizCode = apperror.BusinessCodeInvalidTitle
	case errors.Is(err, domain.ErrInvalidSlug):
		bizCode = apperror.BusinessCodeInvalidSlug
	case errors.Is(err, domain.ErrInvalidExcerpt):
		bizCode = apperror.BusinessCodeInvalidExcerpt
	case errors.Is(err, domain.ErrInvalidAuthorID):
		bizCode = apperror.BusinessCodeInvalidAuthor
	}
	return apperror.Wrap(err, apperror.CodeValidationFailed, bizCode, err.Error(), http.StatusBadRequest)
}

// writeError maps a failed repository write. Conflicts become 409s, a
// missing post a 404, anything else an internal error.
func writeError(err error, message string) *apperror.AppError {
	switch {
	case errors.Is(err, ports.ErrSlugConflict):
		return ErrSlugAlreadyExists.WithDetails(err.Error())
	case errors.Is(err, ports.ErrPostExists):
		return ErrPostAlreadyExists
	case errors.Is(err, ports.ErrPostNotFound):
		return ErrPostNotFound
	default:
		return internalError(err, message)
	}
}

func internalError(err error, message string) *apperror.AppError {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.BusinessCodeGeneral, message, http.StatusInternalServerError)
}
