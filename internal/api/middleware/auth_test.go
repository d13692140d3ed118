package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/service/auth"
)

// stubJWTService accepts exactly one token string and returns canned
// claims for it.
type stubJWTService struct {
	validToken string
	claims     *auth.Claims
	err        error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, empID int, username string) (string, error) {
	return s.validToken, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if tokenString != s.validToken {
		return nil, auth.ErrInvalidToken
	}
	return s.claims, nil
}

func newAuthMiddleware(svc auth.JWTService) *AuthMiddleware {
	return NewAuthMiddleware(svc, shared.NewErrorHandler(false))
}

func authCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Code
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	m := newAuthMiddleware(&stubJWTService{})
	rec := httptest.NewRecorder()

	m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v2/products", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTHORIZATION_HEADER_MISSING", authCode(t, rec))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "some-raw-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"missing token", "Bearer"},
		{"too many parts", "Bearer one two"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newAuthMiddleware(&stubJWTService{})
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v2/products", nil)
			r.Header.Set("Authorization", tt.header)

			m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run with a malformed header")
			})).ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "AUTHORIZATION_HEADER_INVALID", authCode(t, rec))
		})
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"expired", auth.ErrExpiredToken},
		{"not yet valid", auth.ErrTokenNotYetValid},
		{"garbage", auth.ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newAuthMiddleware(&stubJWTService{err: tt.err})
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v2/products", nil)
			r.Header.Set("Authorization", "Bearer whatever")

			m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run with an invalid token")
			})).ServeHTTP(rec, r)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "INVALID_TOKEN", authCode(t, rec))
		})
	}
}

func TestAuthenticateSuccessInjectsClaims(t *testing.T) {
	t.Parallel()

	want := &auth.Claims{EmpID: 123, Username: "jane_doe"}
	m := newAuthMiddleware(&stubJWTService{validToken: "good-token", claims: want})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v2/products", nil)
	r.Header.Set("Authorization", "Bearer good-token")

	var got *auth.Claims
	m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := EmployeeFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, want, got)
}
