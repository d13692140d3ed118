package store

import (
	"context"

	"github.com/grocerhub/grocer-api/internal/domain"
)

// OrderStore persists order lines. An order number may span several
// lines (one per product), so reads by orderNo return slices.
type OrderStore interface {
	// List returns all order lines.
	List(ctx context.Context) ([]domain.Order, error)

	// GetByOrderNo returns every line of the given order.
	// Returns ErrOrderNotFound if none exist.
	GetByOrderNo(ctx context.Context, orderNo int) ([]domain.Order, error)

	// Create inserts a new order line.
	// Returns ErrOrderExists if the same (orderNo, productSku) pair is
	// already present.
	Create(ctx context.Context, o *domain.Order) error

	// DeleteByOrderNo removes every line of the given order and returns
	// the number removed. Returns ErrOrderNotFound if none existed.
	DeleteByOrderNo(ctx context.Context, orderNo int) (int64, error)
}
