package v2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/service/auth"
	"github.com/grocerhub/grocer-api/internal/store"
)

const testToken = "valid-test-token"

// stubJWTService accepts exactly testToken.
type stubJWTService struct{}

func (stubJWTService) GenerateToken(ctx context.Context, empID int, username string) (string, error) {
	return testToken, nil
}

func (stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if tokenString != testToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{EmpID: 100, Username: "test_admin"}, nil
}

func testAuthMiddleware(errs *shared.ErrorHandler) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(stubJWTService{}, errs)
}

// serve runs one request against a handler set with the context values
// the real pipeline would have installed. path is relative to the
// resource root, exactly as the dispatcher delivers it; the pinned
// original path is reconstructed from the resource name.
func serve(h http.Handler, resource, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if authed {
		r.Header.Set("Authorization", "Bearer "+testToken)
	}

	originalPath := "/api/v2/" + resource + strings.TrimSuffix(path, "/")

	ctx := shared.SetRequestID(r.Context(), "req-test")
	ctx = shared.SetOriginalPath(ctx, originalPath)
	ctx = shared.SetDocsResolver(ctx, shared.DocsResolver{BaseURL: "https://api.example.com", Version: 2})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r.WithContext(ctx))
	return rec
}

// envelope decodes a response envelope, returning the data payload raw.
func envelope(t *testing.T, rec *httptest.ResponseRecorder) (shared.Envelope, json.RawMessage) {
	t.Helper()

	var env struct {
		shared.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Envelope, env.Data
}

func errorData(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorData {
	t.Helper()

	_, raw := envelope(t, rec)
	var data shared.ErrorData
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}

// fakeProductStore is an in-memory store.ProductStore.
type fakeProductStore struct {
	products map[string]domain.Product
	failWith error
}

var _ store.ProductStore = (*fakeProductStore)(nil)

func newFakeProductStore(seed ...domain.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[string]domain.Product)}
	for _, p := range seed {
		s.products[p.SKU] = p
	}
	return s
}

func (s *fakeProductStore) List(ctx context.Context) ([]domain.Product, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	skus := make([]string, 0, len(s.products))
	for sku := range s.products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	out := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		out = append(out, s.products[sku])
	}
	return out, nil
}

func (s *fakeProductStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.products[sku]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func (s *fakeProductStore) Create(ctx context.Context, p *domain.Product) error {
	if s.failWith != nil {
		return s.failWith
	}
	if _, exists := s.products[p.SKU]; exists {
		return store.ErrSKUExists
	}
	s.products[p.SKU] = *p
	return nil
}

func (s *fakeProductStore) Replace(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if _, exists := s.products[p.SKU]; !exists {
		return nil, store.ErrProductNotFound
	}
	s.products[p.SKU] = *p
	out := *p
	return &out, nil
}

func (s *fakeProductStore) Update(ctx context.Context, sku string, patch domain.ProductPatch) (*domain.Product, error) {
	p, exists := s.products[sku]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.StockOnHand != nil {
		p.StockOnHand = *patch.StockOnHand
	}
	s.products[sku] = p
	return &p, nil
}

func (s *fakeProductStore) Delete(ctx context.Context, sku string) (*domain.Product, error) {
	p, exists := s.products[sku]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	delete(s.products, sku)
	return &p, nil
}

// fakeEmployeeStore is an in-memory store.EmployeeStore.
type fakeEmployeeStore struct {
	employees map[int]domain.Employee
	hashes    map[string]string
	nextID    int
	failWith  error
}

var _ store.EmployeeStore = (*fakeEmployeeStore)(nil)

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{
		employees: make(map[int]domain.Employee),
		hashes:    make(map[string]string),
		nextID:    100,
	}
}

func (s *fakeEmployeeStore) List(ctx context.Context) ([]domain.Employee, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	ids := make([]int, 0, len(s.employees))
	for id := range s.employees {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.employees[id])
	}
	return out, nil
}

func (s *fakeEmployeeStore) GetByEmpID(ctx context.Context, empID int) (*domain.Employee, error) {
	e, ok := s.employees[empID]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	return &e, nil
}

func (s *fakeEmployeeStore) GetCredentials(ctx context.Context, username string) (*domain.Employee, string, error) {
	username = strings.ToLower(username)
	for _, e := range s.employees {
		if e.Username == username {
			return &e, s.hashes[username], nil
		}
	}
	return nil, "", store.ErrEmployeeNotFound
}

func (s *fakeEmployeeStore) Create(ctx context.Context, e *domain.Employee, passwordHash string) error {
	if s.failWith != nil {
		return s.failWith
	}
	username := strings.ToLower(e.Username)
	if _, ok := s.hashes[username]; ok {
		return store.ErrUsernameExists
	}
	if s.nextID > domain.MaxEmpID {
		return store.ErrEmpIDExhausted
	}

	e.EmpID = s.nextID
	e.Username = username
	e.Password = ""
	s.nextID++
	s.employees[e.EmpID] = *e
	s.hashes[username] = passwordHash
	return nil
}

func (s *fakeEmployeeStore) Delete(ctx context.Context, empID int) (*domain.Employee, error) {
	e, ok := s.employees[empID]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	delete(s.employees, empID)
	delete(s.hashes, e.Username)
	return &e, nil
}

// fakeCartStore is an in-memory store.CartStore.
type fakeCartStore struct {
	carts    map[string]domain.Cart
	failWith error
}

var _ store.CartStore = (*fakeCartStore)(nil)

func newFakeCartStore(seed ...domain.Cart) *fakeCartStore {
	s := &fakeCartStore{carts: make(map[string]domain.Cart)}
	for _, c := range seed {
		s.carts[c.ID] = c
	}
	return s
}

func (s *fakeCartStore) List(ctx context.Context) ([]domain.Cart, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]domain.Cart, 0, len(s.carts))
	for _, c := range s.carts {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCartStore) Get(ctx context.Context, id string) (*domain.Cart, error) {
	c, ok := s.carts[id]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	return &c, nil
}

func (s *fakeCartStore) Create(ctx context.Context, c *domain.Cart) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.carts[c.ID] = *c
	return nil
}

func (s *fakeCartStore) Replace(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	if _, ok := s.carts[c.ID]; !ok {
		return nil, store.ErrCartNotFound
	}
	s.carts[c.ID] = *c
	out := *c
	return &out, nil
}

func (s *fakeCartStore) Delete(ctx context.Context, id string) (*domain.Cart, error) {
	c, ok := s.carts[id]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	delete(s.carts, id)
	return &c, nil
}

// fakeOrderStore is an in-memory store.OrderStore.
type fakeOrderStore struct {
	orders   []domain.Order
	failWith error
}

var _ store.OrderStore = (*fakeOrderStore)(nil)

func newFakeOrderStore(seed ...domain.Order) *fakeOrderStore {
	return &fakeOrderStore{orders: seed}
}

func (s *fakeOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]domain.Order(nil), s.orders...), nil
}

func (s *fakeOrderStore) GetByOrderNo(ctx context.Context, orderNo int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.OrderNo == orderNo {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil, store.ErrOrderNotFound
	}
	return out, nil
}

func (s *fakeOrderStore) Create(ctx context.Context, o *domain.Order) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, existing := range s.orders {
		if existing.OrderNo == o.OrderNo && existing.ProductSKU == o.ProductSKU {
			return store.ErrOrderExists
		}
	}
	s.orders = append(s.orders, *o)
	return nil
}

func (s *fakeOrderStore) DeleteByOrderNo(ctx context.Context, orderNo int) (int64, error) {
	kept := s.orders[:0]
	var deleted int64
	for _, o := range s.orders {
		if o.OrderNo == orderNo {
			deleted++
			continue
		}
		kept = append(kept, o)
	}
	s.orders = kept
	if deleted == 0 {
		return 0, store.ErrOrderNotFound
	}
	return deleted, nil
}
