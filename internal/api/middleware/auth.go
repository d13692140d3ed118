package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/service/auth"
)

// AuthMiddleware guards routes behind JWT bearer authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
	errs       *shared.ErrorHandler
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService, errs *shared.ErrorHandler) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, errs: errs}
}

// Authenticate validates the Authorization header and, on success, adds
// the employee claims to the request context. Failures surface as typed
// errors through the global error handler, never as bare responses.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			m.errs.Write(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.EmployeeKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, httperr.Unauthorized("Authorization header is missing.").
			WithCode("AUTHORIZATION_HEADER_MISSING").
			WithDetails("Please add in this format: Authorization: Bearer <token>")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, httperr.Unauthorized("Authentication: Bearer <token> format is required.").
			WithCode("AUTHORIZATION_HEADER_INVALID").
			WithDetails("Please ensure the header is in the form: Authorization: Bearer <token>")
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
	if err != nil {
		// Sentinel-to-typed mapping happens in the error handler.
		return nil, err
	}
	return claims, nil
}

// EmployeeFromContext returns the authenticated employee claims, if any.
func EmployeeFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(shared.EmployeeKey).(*auth.Claims)
	return claims, ok
}
