// Package store defines the persistence interfaces the API is written
// against, together with the sentinel errors implementations must return.
// The MongoDB implementations live in internal/platform/mongodb; tests use
// in-memory fakes.
package store
