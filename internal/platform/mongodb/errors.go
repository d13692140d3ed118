package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// translate converts a driver error into a store sentinel, wrapping the
// original for logs. notFound and duplicate name the sentinel to use for
// the respective conditions; any other driver failure is returned
// wrapped but unclassified.
func translate(err error, operation string, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	case mongo.IsDuplicateKeyError(err):
		return duplicate
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
