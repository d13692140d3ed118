package dispatch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
)

// newPipeline wires the registry through the same stages the server
// uses: request-id tagging, version resolution, then dispatch.
func newPipeline(reg *Registry) http.Handler {
	errs := shared.NewErrorHandler(false)
	return middleware.RequestID(
		http.StripPrefix("/api",
			reg.ResolveVersion(errs)(reg.Dispatcher(errs))))
}

func echoResource(t *testing.T, paths *[]string) http.Handler {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		*paths = append(*paths, req.URL.Path)
		shared.Success(w, req).WithCode("RESOURCE_RETRIEVED").Send(nil)
	})
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		*paths = append(*paths, req.URL.Path)
		shared.Success(w, req).WithCode("RESOURCE_RETRIEVED").Send(nil)
	})
	return r
}

func testRegistry(t *testing.T, paths *[]string) *Registry {
	t.Helper()

	reg := NewRegistry()
	reg.Register(1, "products", echoResource(t, paths))
	reg.Register(2, "products", echoResource(t, paths))
	reg.Register(2, "employees", echoResource(t, paths))
	reg.Freeze()
	return reg
}

func envelopeOf(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestVersionGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"registered version", "/api/v2/products", http.StatusOK, "RESOURCE_RETRIEVED"},
		{"older registered version", "/api/v1/products", http.StatusOK, "RESOURCE_RETRIEVED"},
		{"missing version segment", "/api/products", http.StatusNotFound, "VERSION_NOT_SPECIFIED"},
		{"bare api root", "/api", http.StatusNotFound, "VERSION_NOT_SPECIFIED"},
		{"not a version token", "/api/version2/products", http.StatusNotFound, "VERSION_NOT_SPECIFIED"},
		{"version zero", "/api/v0/products", http.StatusUnprocessableEntity, "INVALID_API_VERSION"},
		{"version beyond current", "/api/v99/products", http.StatusUnprocessableEntity, "INVALID_API_VERSION"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var paths []string
			pipeline := newPipeline(testRegistry(t, &paths))

			rec := httptest.NewRecorder()
			pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, envelopeOf(t, rec).Code)
		})
	}
}

func TestInvalidVersionNamesCurrent(t *testing.T) {
	t.Parallel()

	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v99/products", nil))

	var env struct {
		Data shared.ErrorData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "The current API version is v2", env.Data.Details)
}

func TestUnknownResourceIsTyped404(t *testing.T) {
	t.Parallel()

	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/warehouses", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := envelopeOf(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Code)
	assert.Empty(t, paths)
}

func TestResourceUnknownToOlderVersion(t *testing.T) {
	t.Parallel()

	// employees exists in v2 only; v1 must not see it.
	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", envelopeOf(t, rec).Code)
}

func TestDispatcherStripsVersionAndResourcePrefix(t *testing.T) {
	t.Parallel()

	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/products/AB-1234-56", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, paths, 1)
	assert.Equal(t, "/AB-1234-56", paths[0])
}

func TestEnvelopePathIsClientPathDespiteStripping(t *testing.T) {
	t.Parallel()

	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/products/AB-1234-56", nil))

	env := envelopeOf(t, rec)
	assert.Equal(t, "/api/v2/products/AB-1234-56", env.Path)
	assert.NotEmpty(t, env.RequestID)
}

func TestGateAndErrorEnvelopesShareRequestShape(t *testing.T) {
	t.Parallel()

	var paths []string
	pipeline := newPipeline(testRegistry(t, &paths))

	rec := httptest.NewRecorder()
	pipeline.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/products", nil))

	env := envelopeOf(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "/api/v0/products", env.Path)
	assert.Equal(t, http.MethodGet, env.Method)
	assert.NotEmpty(t, env.RequestID)
}

func TestResolveVersionUpdatesDocsResolver(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var gotVersion int
	reg.Register(1, "products", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = shared.GetDocsResolver(r.Context()).Version
	}))
	reg.Register(2, "products", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = shared.GetDocsResolver(r.Context()).Version
	}))
	reg.Freeze()

	errs := shared.NewErrorHandler(false)
	pipeline := http.StripPrefix("/api", reg.ResolveVersion(errs)(reg.Dispatcher(errs)))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	r = r.WithContext(shared.SetDocsResolver(r.Context(),
		shared.DocsResolver{BaseURL: "https://api.example.com", Version: 2}))
	pipeline.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, 1, gotVersion)
}

func TestShiftPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		wantHead string
		wantRest string
	}{
		{"/v2/products/AB-1234-56", "v2", "/products/AB-1234-56"},
		{"/products", "products", "/"},
		{"/products/", "products", "/"},
		{"/", "", "/"},
		{"", "", "/"},
	}

	for _, tt := range tests {
		tt := tt
		head, rest := shiftPath(tt.in)
		assert.Equal(t, tt.wantHead, head, tt.in)
		assert.Equal(t, tt.wantRest, rest, tt.in)
	}
}
