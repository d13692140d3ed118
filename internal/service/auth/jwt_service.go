// Package auth provides JWT issuance/verification and password hashing
// for employee authentication.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the employee.
	GenerateToken(ctx context.Context, empID int, username string) (string, error)

	// ValidateToken validates a token string and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on
	// failure; it never returns raw library errors.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	EmpID     int    `json:"eid"`
	Username  string `json:"username"`
	Subject   string `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string `json:"jti,omitempty"`
}
