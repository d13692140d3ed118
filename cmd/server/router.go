package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/grocerhub/grocer-api/internal/api/dispatch"
	apimw "github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	v1 "github.com/grocerhub/grocer-api/internal/api/v1"
	v2 "github.com/grocerhub/grocer-api/internal/api/v2"
	"github.com/grocerhub/grocer-api/internal/httperr"
)

// buildRegistry assembles the versioned resource table. Registration is
// explicit and panics on misconfiguration, so a wiring mistake kills the
// process at startup instead of surfacing per request.
func (app *application) buildRegistry() *dispatch.Registry {
	authmw := apimw.NewAuthMiddleware(app.jwtService, app.errs)

	reg := dispatch.NewRegistry()
	reg.Register(1, "products", v1.NewProductHandler(app.products, app.errs).Routes())

	reg.Register(2, "products", v2.NewProductHandler(app.products, app.errs, authmw).Routes())
	reg.Register(2, "employees", v2.NewEmployeeHandler(app.employees, app.jwtService, app.hasher, app.errs, authmw).Routes())
	reg.Register(2, "carts", v2.NewCartHandler(app.carts, app.errs, authmw).Routes())
	reg.Register(2, "orders", v2.NewOrderHandler(app.orders, app.errs, authmw).Routes())
	reg.Freeze()

	for _, version := range []int{1, 2} {
		slog.Info("API version registered",
			"version", version,
			"resources", reg.Resources(version))
	}
	return reg
}

// setupRouter builds the full request pipeline: request-id tagging, rate
// limiting, CORS, panic recovery, docs link resolution, then the
// versioned /api pipeline of version gate, content negotiation and
// resource dispatch.
func (app *application) setupRouter() http.Handler {
	registry := app.buildRegistry()
	negotiator := apimw.NewContentNegotiator(app.errs)

	r := chi.NewRouter()

	r.Use(apimw.RequestID)
	r.Use(httprate.Limit(
		app.config.RateLimit.RequestLimit,
		time.Duration(app.config.RateLimit.WindowSeconds)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(app.rateLimited),
	))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(app.errs.Recoverer)
	r.Use(docsResolver(app.config.API.DocsBaseURL, registry.CurrentVersion()))

	r.NotFound(app.errs.NotFoundHandler())
	r.MethodNotAllowed(app.errs.MethodNotAllowedHandler())

	r.Get("/", app.errs.Wrap(app.home))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Failed to write health check response", "error", err)
		}
	})

	apiPipeline := registry.ResolveVersion(app.errs)(
		negotiator.Handle(
			registry.Dispatcher(app.errs)))
	r.Handle("/api", http.StripPrefix("/api", apiPipeline))
	r.Handle("/api/*", http.StripPrefix("/api", apiPipeline))

	return r
}

// home greets unversioned visitors and points them at the documentation.
func (app *application) home(w http.ResponseWriter, r *http.Request) error {
	shared.Success(w, r).Send(map[string]any{
		"message": "Welcome to the GrocerHub API.",
		"docs":    shared.GetDocsResolver(r.Context()).Anchor("getting-started", "introduction"),
	})
	return nil
}

// rateLimited shapes the throttling response as a standard error envelope.
func (app *application) rateLimited(w http.ResponseWriter, r *http.Request) {
	app.errs.Write(w, r, httperr.New(
		http.StatusTooManyRequests,
		"RATE_LIMIT_EXCEEDED",
		"Too many requests.",
	).WithDetails("Please slow down and try again later."))
}

// docsResolver injects the documentation link resolver every envelope
// falls back to when a handler sets no explicit docs URL.
func docsResolver(baseURL string, currentVersion int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetDocsResolver(r.Context(), shared.DocsResolver{
				BaseURL: baseURL,
				Version: currentVersion,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
