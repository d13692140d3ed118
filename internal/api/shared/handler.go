package shared

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/grocerhub/grocer-api/internal/httperr"
)

// HandlerFunc is the signature every API handler uses. Returning a
// non-nil error hands the request to the global error handler; handlers
// never shape error responses themselves.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorHandler is the single terminal point where errors become error
// envelopes. It never fails a request itself: whatever it is given, the
// client receives a well-formed envelope.
type ErrorHandler struct {
	// DevMode allows untyped error text to reach clients. Production
	// deployments keep this off so internals never leak.
	DevMode bool
}

// NewErrorHandler creates an ErrorHandler.
func NewErrorHandler(devMode bool) *ErrorHandler {
	return &ErrorHandler{DevMode: devMode}
}

// Wrap adapts a HandlerFunc into an http.HandlerFunc, routing any
// returned error through Write.
func (eh *ErrorHandler) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			eh.Write(w, r, err)
		}
	}
}

// Write normalizes err into a typed error and emits the error envelope.
// Untyped errors are logged with their original text but reach the
// client as a generic 500 unless DevMode is set.
func (eh *ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	var herr *httperr.Error
	if !errors.As(err, &herr) {
		herr = httperr.From(err)
		if eh.DevMode && herr.Status == http.StatusInternalServerError {
			herr.WithDetails(err.Error())
		}
	}

	eh.log(r, herr)

	details := herr.Details
	if details == nil {
		details = ""
	}

	timestamp := herr.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	Error(w, r).
		WithStatusCode(herr.Status).
		WithCode(herr.Code).
		WithDocsURL(herr.DocsURL).
		Send(ErrorData{
			Message:   herr.Message,
			Details:   details,
			Timestamp: timestamp.UTC().Format(time.RFC3339),
		})
}

// log records the error server-side. 5xx at ERROR with the underlying
// cause, 429 at WARN, remaining 4xx at DEBUG.
func (eh *ErrorHandler) log(r *http.Request, herr *httperr.Error) {
	attrs := []any{
		"status_code", herr.Status,
		"code", herr.Code,
		"message", herr.Message,
		"path", OriginalPath(r),
		"method", r.Method,
		"request_id", GetRequestID(r.Context()),
	}
	if cause := herr.Cause(); cause != nil {
		attrs = append(attrs, "error", cause.Error(), "error_type", fmt.Sprintf("%T", cause))
	}

	switch {
	case herr.Status >= http.StatusInternalServerError:
		slog.Error("API error response", attrs...)
	case herr.Status == http.StatusTooManyRequests:
		slog.Warn("API error response", attrs...)
	default:
		slog.Debug("API error response", attrs...)
	}
}

// NotFoundHandler answers requests that matched no route with a typed
// 404 envelope instead of chi's plain text default.
func (eh *ErrorHandler) NotFoundHandler() http.HandlerFunc {
	return eh.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return httperr.NotFound("").WithCode("RESOURCE_NOT_FOUND")
	})
}

// MethodNotAllowedHandler answers requests whose path matched but whose
// method did not with a typed 405 envelope.
func (eh *ErrorHandler) MethodNotAllowedHandler() http.HandlerFunc {
	return eh.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return httperr.MethodNotAllowed("")
	})
}

// Recoverer converts a handler panic into a 500 error envelope. The
// panic value and stack are logged; the client sees only the generic
// message. http.ErrAbortHandler is re-raised per its contract.
func (eh *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered in request handler",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"path", OriginalPath(r),
				"method", r.Method,
				"request_id", GetRequestID(r.Context()))

			eh.Write(w, r, httperr.Internal("").Wrap(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
