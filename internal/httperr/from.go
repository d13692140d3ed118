package httperr

import (
	"errors"

	"github.com/grocerhub/grocer-api/internal/service/auth"
	"github.com/grocerhub/grocer-api/internal/store"
)

// From normalizes an arbitrary error into a typed Error. Typed errors
// pass through untouched; store and auth sentinels map to their HTTP
// equivalents; anything else becomes a generic 500 with the original
// error preserved as the wrapped cause for logging. From never returns
// nil for a non-nil input.
func From(err error) *Error {
	var herr *Error
	if errors.As(err, &herr) {
		return herr
	}

	switch {
	case store.IsNotFound(err):
		return NotFound("The requested resource was not found.").
			WithCode("RESOURCE_NOT_FOUND").
			Wrap(err)

	case store.IsDuplicate(err):
		return Conflict("The resource already exists.").
			WithCode("RESOURCE_ALREADY_EXISTS").
			Wrap(err)

	case errors.Is(err, store.ErrEmpIDExhausted):
		return Internal("Unable to generate a new employee ID.").
			WithCode("RESOURCE_NOT_CREATED").
			Wrap(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return UnprocessableEntity("").
			WithCode("VALIDATION_ERROR").
			Wrap(err)

	case errors.Is(err, auth.ErrMissingToken):
		return Unauthorized("Authorization header is missing.").
			WithCode("AUTHORIZATION_HEADER_MISSING").
			Wrap(err)

	case errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidToken):
		return Unauthorized("Authentication failure: invalid token.").
			WithCode("INVALID_TOKEN").
			WithDetails("Please log in again to get a new token.").
			Wrap(err)

	case errors.Is(err, auth.ErrInvalidCredentials):
		return Unauthorized("Invalid username or password.").
			WithCode("INVALID_CREDENTIALS").
			Wrap(err)

	default:
		return Internal("").Wrap(err)
	}
}
