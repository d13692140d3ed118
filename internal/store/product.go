package store

import (
	"context"

	"github.com/grocerhub/grocer-api/internal/domain"
)

// ProductStore persists grocery products keyed by SKU.
type ProductStore interface {
	// List returns all products.
	List(ctx context.Context) ([]domain.Product, error)

	// GetBySKU returns the product with the given SKU.
	// Returns ErrProductNotFound if it does not exist.
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// Create inserts a new product.
	// Returns ErrSKUExists if a product with the same SKU exists.
	Create(ctx context.Context, p *domain.Product) error

	// Replace overwrites every mutable field of the product with the
	// given SKU. Returns ErrProductNotFound if it does not exist.
	Replace(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// Update applies a partial update to the product with the given SKU
	// and returns the updated document.
	// Returns ErrProductNotFound if it does not exist.
	Update(ctx context.Context, sku string, patch domain.ProductPatch) (*domain.Product, error)

	// Delete removes the product with the given SKU and returns it.
	// Returns ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, sku string) (*domain.Product, error)
}
