package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/store"
)

// listOnlyStore serves a fixed catalog; mutations are never reached in
// this API generation.
type listOnlyStore struct {
	products []domain.Product
}

var _ store.ProductStore = (*listOnlyStore)(nil)

func (s *listOnlyStore) List(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *listOnlyStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].SKU == sku {
			return &s.products[i], nil
		}
	}
	return nil, store.ErrProductNotFound
}

func (s *listOnlyStore) Create(ctx context.Context, p *domain.Product) error {
	panic("not reachable from v1")
}

func (s *listOnlyStore) Replace(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	panic("not reachable from v1")
}

func (s *listOnlyStore) Update(ctx context.Context, sku string, patch domain.ProductPatch) (*domain.Product, error) {
	panic("not reachable from v1")
}

func (s *listOnlyStore) Delete(ctx context.Context, sku string) (*domain.Product, error) {
	panic("not reachable from v1")
}

func newRouter() http.Handler {
	catalog := &listOnlyStore{products: []domain.Product{
		{SKU: "AB-1234-56", Name: "Whole Milk 1L", Price: 2.49, StockOnHand: 40},
	}}
	return NewProductHandler(catalog, shared.NewErrorHandler(false)).Routes()
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := shared.SetRequestID(r.Context(), "req-test")
	ctx = shared.SetDocsResolver(ctx, shared.DocsResolver{Version: 1})

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, r.WithContext(ctx))
	return rec
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	rec := get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Code string           `json:"code"`
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "RESOURCE_RETRIEVED", env.Code)
	require.Len(t, env.Data, 1)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	rec := get(t, "/AB-1234-56")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, "/ZZ-9999-99")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Code)
}

func TestMutationsAreNotExposed(t *testing.T) {
	t.Parallel()

	// The first API generation is read-only; the method is unknown on
	// this route, not merely forbidden.
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		r := httptest.NewRequest(method, "/AB-1234-56", nil)
		if method == http.MethodPost {
			r = httptest.NewRequest(method, "/", nil)
		}
		ctx := shared.SetDocsResolver(r.Context(), shared.DocsResolver{Version: 1})

		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, r.WithContext(ctx))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
}
