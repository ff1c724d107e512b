package api

import (
	"errors"
	"net/http"

	"backoffice/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
// Ownership denials for customers never reach this switch as
// AccessDeniedError: the scoper already shapes them as NotFoundError so the
// response is indistinguishable from a genuinely absent resource.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrKindMismatch):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
