// Package domain defines the core grocery entities (products, employees,
// carts, orders) and their validation rules. Entities validate themselves
// through struct tags; failures are reported as ordered field-error lists
// suitable for the error envelope's details payload.
package domain
