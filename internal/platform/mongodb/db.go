// Package mongodb implements the store interfaces on top of MongoDB.
// Uniqueness constraints live in unique indexes created at startup;
// driver errors are translated to store sentinels at this boundary so
// nothing above it sees MongoDB types.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/grocerhub/grocer-api/internal/config"
)

// Collection names.
const (
	productsCollection  = "products"
	employeesCollection = "employees"
	cartsCollection     = "carts"
	ordersCollection    = "orders"
)

// DB wraps the Mongo client and database handle shared by the stores.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect establishes the MongoDB connection and verifies it with a
// ping. The caller owns the returned DB and must Close it on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{
		client:   client,
		database: client.Database(cfg.Name),
	}, nil
}

// EnsureIndexes creates the unique indexes the stores rely on. Safe to
// call on every startup; Mongo treats identical definitions as no-ops.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		productsCollection: {{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		employeesCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "empId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		cartsCollection: {{
			Keys:    bson.D{{Key: "cartId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		ordersCollection: {{
			Keys:    bson.D{{Key: "orderNo", Value: 1}, {Key: "productSku", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for name, models := range indexes {
		if _, err := db.database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// Close disconnects from MongoDB.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DB) collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}
