package store

import (
	"errors"
	"fmt"
)

// Common store errors shared by all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific variants below wrap it so callers can match either.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a
	// uniqueness constraint (e.g. a product with the same SKU).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity is rejected by the
	// database before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors.

	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("%w: employee", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("%w: cart", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)

	// Entity-specific "duplicate" errors.

	ErrSKUExists      = fmt.Errorf("%w: sku", ErrDuplicate)
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrOrderExists    = fmt.Errorf("%w: order line", ErrDuplicate)

	// ErrEmpIDExhausted is returned when no employee id remains in the
	// three digit space. This is an infrastructure failure and maps to a
	// 500, not a validation error.
	ErrEmpIDExhausted = errors.New("employee id space exhausted")
)

// IsNotFound reports whether err is any kind of "not found" store error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is any kind of uniqueness violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
