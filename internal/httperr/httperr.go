// Package httperr defines the typed HTTP errors every layer of the API
// raises. An Error carries the HTTP status, a machine-readable code, a
// human message, optional structured details, and an optional docs link,
// and is decorated fluently at the point of failure:
//
//	return httperr.NotFound("Product with SKU %s not found.", sku).
//		WithCode("RESOURCE_NOT_FOUND").
//		WithDetails("Please check the SKU and try again.")
//
// The error handler in the shared package is the only consumer that turns
// an Error into a response.
package httperr

import (
	"fmt"
	"net/http"
	"time"
)

// Error is a classified failure value destined for the error envelope.
// Construction cannot fail; decorator methods mutate and return the same
// value so call sites can chain them. An Error must not be mutated after
// it has been returned up the handler chain.
type Error struct {
	Status    int
	Code      string
	Message   string
	Details   any
	DocsURL   string
	Timestamp time.Time

	cause error
}

// New creates an Error with an explicit status and code. Prefer the
// kind-specific constructors below; New exists for statuses outside the
// standard taxonomy (e.g. 429 from the rate limiter).
func New(status int, code, message string) *Error {
	return &Error{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%d %s): %v", e.Message, e.Status, e.Code, e.cause)
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode overwrites the machine-readable code. Last call wins; the empty
// string is a no-op so a default code is never clobbered by accident.
func (e *Error) WithCode(code string) *Error {
	if code != "" {
		e.Code = code
	}
	return e
}

// WithDetails overwrites the structured details payload, either free text
// or a []FieldError. A nil value is a no-op.
func (e *Error) WithDetails(details any) *Error {
	if details != nil {
		e.Details = details
	}
	return e
}

// WithDocsURL overwrites the documentation link. Empty string is a no-op.
func (e *Error) WithDocsURL(url string) *Error {
	if url != "" {
		e.DocsURL = url
	}
	return e
}

// WithTimestamp overwrites the construction timestamp. The zero time is a
// no-op.
func (e *Error) WithTimestamp(t time.Time) *Error {
	if !t.IsZero() {
		e.Timestamp = t
	}
	return e
}

// Wrap records the underlying cause without exposing it to clients. The
// cause appears in server-side logs only.
func (e *Error) Wrap(err error) *Error {
	if err != nil {
		e.cause = err
	}
	return e
}

// Cause returns the wrapped underlying error, if any.
func (e *Error) Cause() error {
	return e.cause
}

func newf(status int, code, fallback, format string, args []any) *Error {
	msg := fallback
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return New(status, code, msg)
}

// BadRequest builds a 400 error. With an empty format the default message
// is used; otherwise the arguments are formatted fmt.Sprintf-style.
func BadRequest(format string, args ...any) *Error {
	return newf(http.StatusBadRequest, "BAD_REQUEST",
		"The request could not be understood by the server due to malformed syntax.", format, args)
}

// Unauthorized builds a 401 error.
func Unauthorized(format string, args ...any) *Error {
	return newf(http.StatusUnauthorized, "UNAUTHORIZED",
		"You are not authorized to access this resource.", format, args)
}

// Forbidden builds a 403 error.
func Forbidden(format string, args ...any) *Error {
	return newf(http.StatusForbidden, "FORBIDDEN",
		"You do not have permission to access this resource.", format, args)
}

// NotFound builds a 404 error.
func NotFound(format string, args ...any) *Error {
	return newf(http.StatusNotFound, "NOT_FOUND",
		"The requested resource was not found.", format, args)
}

// MethodNotAllowed builds a 405 error.
func MethodNotAllowed(format string, args ...any) *Error {
	return newf(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		"The method is not allowed for the requested URL.", format, args)
}

// NotAcceptable builds a 406 error.
func NotAcceptable(format string, args ...any) *Error {
	return newf(http.StatusNotAcceptable, "NOT_ACCEPTABLE",
		"The server cannot generate a response that the client will accept.", format, args)
}

// Conflict builds a 409 error.
func Conflict(format string, args ...any) *Error {
	return newf(http.StatusConflict, "CONFLICT",
		"The request could not be completed due to a conflict with the current state of the resource.", format, args)
}

// UnsupportedMediaType builds a 415 error.
func UnsupportedMediaType(format string, args ...any) *Error {
	return newf(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
		"The server does not support the media type transmitted in the request.", format, args)
}

// UnprocessableEntity builds a 422 error.
func UnprocessableEntity(format string, args ...any) *Error {
	return newf(http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY",
		"The server cannot process the request due to semantic errors.", format, args)
}

// Internal builds a 500 error.
func Internal(format string, args ...any) *Error {
	return newf(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"An internal server error occurred.", format, args)
}
