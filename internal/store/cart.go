package store

import (
	"context"

	"github.com/grocerhub/grocer-api/internal/domain"
)

// CartStore persists shopping carts keyed by their cart id.
type CartStore interface {
	// List returns all carts.
	List(ctx context.Context) ([]domain.Cart, error)

	// Get returns the cart with the given id.
	// Returns ErrCartNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Cart, error)

	// Create inserts a new cart.
	Create(ctx context.Context, c *domain.Cart) error

	// Replace overwrites the cart with the given id and returns the new
	// document. Returns ErrCartNotFound if it does not exist.
	Replace(ctx context.Context, c *domain.Cart) (*domain.Cart, error)

	// Delete removes the cart with the given id and returns it.
	// Returns ErrCartNotFound if it does not exist.
	Delete(ctx context.Context, id string) (*domain.Cart, error)
}
