package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/httperr"
)

// maxBodyBytes bounds request bodies read during negotiation.
const maxBodyBytes = 1 << 20

// mutatingMethods are the methods that must carry a JSON body.
var mutatingMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// ContentNegotiator rejects requests the API cannot represent before any
// business logic runs. The checks run strictly in order (Accept, then
// Content-Type, then body well-formedness) so the cheapest failure is
// always the one reported. On success the body is re-buffered for the
// handler.
type ContentNegotiator struct {
	errs *shared.ErrorHandler
}

// NewContentNegotiator creates the negotiation middleware.
func NewContentNegotiator(errs *shared.ErrorHandler) *ContentNegotiator {
	return &ContentNegotiator{errs: errs}
}

// Handle is the middleware entry point.
func (n *ContentNegotiator) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := n.negotiate(r); err != nil {
			n.errs.Write(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (n *ContentNegotiator) negotiate(r *http.Request) error {
	if accept := r.Header.Get("Accept"); !acceptsJSON(accept) {
		return httperr.NotAcceptable("Accept header must allow application/json").
			WithCode("INVALID_ACCEPT_HEADER").
			WithDetails("Received Accept header: " + accept)
	}

	if !mutatingMethods[r.Method] {
		return nil
	}

	contentType := r.Header.Get("Content-Type")
	if !isJSONMediaType(contentType) {
		return httperr.UnsupportedMediaType("Content-Type must be application/json").
			WithCode("UNSUPPORTED_MEDIA_TYPE").
			WithDetails("Received Content-Type: " + contentType)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return httperr.BadRequest("Request body could not be read").
			WithCode("INVALID_JSON").
			Wrap(err)
	}
	_ = r.Body.Close()

	if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
		return httperr.BadRequest("Request body must contain valid JSON").
			WithCode("INVALID_JSON").
			WithDetails("Please check the request body and try again")
	}

	// Hand the verified bytes back so handlers can decode normally.
	r.Body = io.NopCloser(bytes.NewReader(body))
	return nil
}

// acceptsJSON reports whether an Accept header permits application/json.
// An absent header means "anything".
func acceptsJSON(accept string) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch strings.ToLower(mediaType) {
		case "*/*", "application/*", "application/json":
			return true
		}
	}
	return false
}

// isJSONMediaType reports whether a Content-Type names JSON, ignoring
// parameters such as charset.
func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
