package shared

import (
	"context"
	"fmt"
	"net/http"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// RequestIDKey holds the per-request identifier.
	RequestIDKey ContextKey = "requestID"

	// OriginalPathKey holds the request path as the client sent it,
	// pinned before any prefix stripping by the dispatcher.
	OriginalPathKey ContextKey = "originalPath"

	// DocsResolverKey holds the request's documentation link resolver.
	DocsResolverKey ContextKey = "docsResolver"

	// EmployeeKey holds the authenticated employee's token claims.
	EmployeeKey ContextKey = "employee"
)

// SetRequestID stores the request id in the context.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID retrieves the request id, or "" when none was assigned.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// SetOriginalPath pins the client-visible request path in the context.
func SetOriginalPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, OriginalPathKey, path)
}

// OriginalPath returns the pinned request path, falling back to the
// request's current URL path when nothing was pinned.
func OriginalPath(r *http.Request) string {
	if p, ok := r.Context().Value(OriginalPathKey).(string); ok && p != "" {
		return p
	}
	return r.URL.Path
}

// DocsResolver builds documentation links as a pure function of the
// configured base URL, the current API version and a response code.
type DocsResolver struct {
	BaseURL string
	Version int
}

// URL returns the documentation link for a response code.
func (d DocsResolver) URL(code string) string {
	version := d.Version
	if version < 1 {
		version = 1
	}
	return fmt.Sprintf("%s/docs/api/v%d/search/%s", d.BaseURL, version, code)
}

// Anchor returns the documentation link for a section anchor on a
// resource page, e.g. Anchor("products", "add-a-new-product").
func (d DocsResolver) Anchor(resource, anchor string) string {
	version := d.Version
	if version < 1 {
		version = 1
	}
	return fmt.Sprintf("%s/docs/api/v%d/%s#%s", d.BaseURL, version, resource, anchor)
}

// SetDocsResolver stores the docs resolver in the context.
func SetDocsResolver(ctx context.Context, d DocsResolver) context.Context {
	return context.WithValue(ctx, DocsResolverKey, d)
}

// GetDocsResolver retrieves the docs resolver; the zero value emits
// relative v1 links, so responses degrade instead of failing.
func GetDocsResolver(ctx context.Context) DocsResolver {
	d, _ := ctx.Value(DocsResolverKey).(DocsResolver)
	return d
}
