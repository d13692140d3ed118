package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/httperr"
)

// VersionDescriptor is the resolved API version of a request.
type VersionDescriptor struct {
	// Raw is the path segment as received, e.g. "v2".
	Raw string

	// Number is the positive integer parsed from Raw. Always within
	// [1, CurrentVersion] once resolution succeeds.
	Number int
}

type contextKey string

// versionKey holds the resolved VersionDescriptor in the request context.
const versionKey contextKey = "apiVersion"

// VersionFromContext returns the resolved version descriptor, if any.
func VersionFromContext(ctx context.Context) (VersionDescriptor, bool) {
	desc, ok := ctx.Value(versionKey).(VersionDescriptor)
	return desc, ok
}

// ResolveVersion gates every request on a valid version segment, purely
// from the URL and independent of the requested resource. It runs before
// content negotiation so an invalid version is reported even when the
// body is garbage.
func (reg *Registry) ResolveVersion(errs *shared.ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := shiftPath(r.URL.Path)

			if !versionPattern.MatchString(raw) {
				errs.Write(w, r, httperr.NotFound("No API version specified").
					WithCode("VERSION_NOT_SPECIFIED").
					WithDetails("Please specify an API version and check the documentation"))
				return
			}

			number, err := strconv.Atoi(raw[1:])
			if err != nil || number < 1 || number > reg.CurrentVersion() || !reg.HasVersion(number) {
				errs.Write(w, r, httperr.UnprocessableEntity("Invalid API version requested").
					WithCode("INVALID_API_VERSION").
					WithDetails("The current API version is v"+strconv.Itoa(reg.CurrentVersion())))
				return
			}

			ctx := context.WithValue(r.Context(), versionKey, VersionDescriptor{Raw: raw, Number: number})

			// Documentation links downstream should reference the version
			// the client is actually talking to.
			resolver := shared.GetDocsResolver(ctx)
			resolver.Version = number
			ctx = shared.SetDocsResolver(ctx, resolver)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Dispatcher routes a version-resolved request to the registered
// resource handler set. The version+resource prefix is stripped from the
// effective path before delegation, so handler sets are written relative
// to their own resource root.
func (reg *Registry) Dispatcher(errs *shared.ErrorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		desc, ok := VersionFromContext(r.Context())
		if !ok {
			// Pipeline wiring bug: the resolver did not run.
			errs.Write(w, r, httperr.Internal("").
				Wrap(errDispatchWithoutVersion))
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/"+desc.Raw)
		resource, remainder := shiftPath(rest)

		handler, found := reg.lookup(desc.Number, resource)
		if !found {
			errs.Write(w, r, httperr.NotFound("The requested resource was not found.").
				WithCode("RESOURCE_NOT_FOUND").
				WithDetails("Unknown resource for API version "+desc.Raw))
			return
		}

		// Delegate with a fresh routing context so the handler set sees
		// paths relative to its resource root.
		rctx := chi.NewRouteContext()
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
		r2 := r.Clone(ctx)
		r2.URL.Path = remainder
		r2.URL.RawPath = ""

		handler.ServeHTTP(w, r2)
	})
}

var errDispatchWithoutVersion = errors.New("dispatcher invoked without a resolved API version")

// shiftPath splits the first segment off a path, returning the segment
// and the remainder (always beginning with "/").
func shiftPath(p string) (head, rest string) {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i], "/" + strings.TrimPrefix(p[i:], "/")
	}
	return p, "/"
}
