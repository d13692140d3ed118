// Package shared holds the plumbing every handler goes through: the
// response envelope builder, the request-scoped context values and the
// global error handler. No handler writes JSON to the wire except
// through the envelope builder here.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Envelope is the uniform JSON wrapper around every response body,
// success and error alike.
type Envelope struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Data      any    `json:"data"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	RequestID string `json:"requestId"`
	Docs      string `json:"docs"`
}

// ErrorData is the data payload of an error envelope.
type ErrorData struct {
	Message   string `json:"message"`
	Details   any    `json:"details"`
	Timestamp string `json:"timestamp"`
}

// Builder assembles one response envelope. Obtain one from Success or
// Error, decorate it, then call Send exactly once; a second Send on the
// same builder is a programmer error and is dropped with an error log.
type Builder struct {
	w http.ResponseWriter
	r *http.Request

	status    string
	code      string
	httpCode  int
	requestID string
	docsURL   string
	sent      bool
}

func newBuilder(w http.ResponseWriter, r *http.Request, status string) *Builder {
	return &Builder{
		w:         w,
		r:         r,
		status:    status,
		code:      "OK",
		httpCode:  http.StatusOK,
		requestID: GetRequestID(r.Context()),
	}
}

// Success starts a success envelope for the request.
func Success(w http.ResponseWriter, r *http.Request) *Builder {
	return newBuilder(w, r, "success")
}

// Error starts an error envelope for the request. Handlers never call
// this directly; the global error handler does.
func Error(w http.ResponseWriter, r *http.Request) *Builder {
	return newBuilder(w, r, "error")
}

// WithStatusCode sets the HTTP status code. Default 200.
func (b *Builder) WithStatusCode(code int) *Builder {
	if code != 0 {
		b.httpCode = code
	}
	return b
}

// WithCode sets the response code. Default "OK".
func (b *Builder) WithCode(code string) *Builder {
	if code != "" {
		b.code = code
	}
	return b
}

// WithRequestID overrides the request id taken from the context.
func (b *Builder) WithRequestID(id string) *Builder {
	if id != "" {
		b.requestID = id
	}
	return b
}

// WithDocsURL sets the documentation link. When unset, Send derives one
// from the response code.
func (b *Builder) WithDocsURL(url string) *Builder {
	if url != "" {
		b.docsURL = url
	}
	return b
}

// WithLocation sets the Location header for creation responses.
func (b *Builder) WithLocation(location string) *Builder {
	b.w.Header().Set("Location", location)
	return b
}

// WithHeader sets an arbitrary response header.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.w.Header().Set(key, value)
	return b
}

// Send freezes the envelope and writes it. Terminal: the builder must
// not be used afterwards.
func (b *Builder) Send(data any) {
	if b.sent {
		slog.Error("envelope Send called twice for the same request",
			"path", OriginalPath(b.r),
			"method", b.r.Method,
			"request_id", b.requestID)
		return
	}
	b.sent = true

	docs := b.docsURL
	if docs == "" {
		docs = GetDocsResolver(b.r.Context()).URL(b.code)
	}

	envelope := Envelope{
		Status:    b.status,
		Code:      b.code,
		Data:      data,
		Path:      OriginalPath(b.r),
		Method:    b.r.Method,
		RequestID: b.requestID,
		Docs:      docs,
	}

	b.w.Header().Set("Content-Type", "application/json")
	b.w.WriteHeader(b.httpCode)
	if err := json.NewEncoder(b.w).Encode(envelope); err != nil {
		slog.Error("failed to encode response envelope",
			"error", err,
			"request_id", b.requestID)
	}
}

// NowTimestamp formats the current UTC time the way error payloads
// expect it.
func NowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
