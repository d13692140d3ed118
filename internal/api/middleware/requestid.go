// Package middleware contains the request pipeline stages that run in
// front of every handler: request-id tagging, content negotiation and
// JWT authentication.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/grocerhub/grocer-api/internal/api/shared"
)

// RequestID tags each request with an identifier before anything else
// runs, so success and error envelopes for the same request correlate.
// The id is a name-based UUID (version 5) seeded from a nanosecond
// timestamp; uniqueness is best-effort, a collision only degrades
// observability. Idempotent: a request that already carries an id keeps
// it, which matters under internal re-dispatch.
//
// The middleware also pins the original request path so later prefix
// stripping by the dispatcher cannot change what the envelope echoes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if shared.GetRequestID(ctx) == "" {
			seed := strconv.FormatInt(time.Now().UnixNano(), 10)
			id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed))
			ctx = shared.SetRequestID(ctx, id.String())
		}

		if _, ok := ctx.Value(shared.OriginalPathKey).(string); !ok {
			ctx = shared.SetOriginalPath(ctx, r.URL.Path)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
