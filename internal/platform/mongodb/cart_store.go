package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/store"
)

// CartStore is the MongoDB implementation of store.CartStore.
type CartStore struct {
	coll *mongo.Collection
}

var _ store.CartStore = (*CartStore)(nil)

// NewCartStore creates a CartStore backed by the carts collection.
func NewCartStore(db *DB) *CartStore {
	return &CartStore{coll: db.collection(cartsCollection)}
}

// List implements store.CartStore.
func (s *CartStore) List(ctx context.Context) ([]domain.Cart, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, translate(err, "list carts", store.ErrCartNotFound, store.ErrDuplicate)
	}
	defer func() { _ = cur.Close(ctx) }()

	carts := []domain.Cart{}
	if err := cur.All(ctx, &carts); err != nil {
		return nil, translate(err, "decode carts", store.ErrCartNotFound, store.ErrDuplicate)
	}
	return carts, nil
}

// Get implements store.CartStore.
func (s *CartStore) Get(ctx context.Context, id string) (*domain.Cart, error) {
	var c domain.Cart
	err := s.coll.FindOne(ctx, bson.M{"cartId": id}).Decode(&c)
	if err != nil {
		return nil, translate(err, "get cart", store.ErrCartNotFound, store.ErrDuplicate)
	}
	return &c, nil
}

// Create implements store.CartStore.
func (s *CartStore) Create(ctx context.Context, c *domain.Cart) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, c)
	return translate(err, "create cart", store.ErrCartNotFound, store.ErrDuplicate)
}

// Replace implements store.CartStore.
func (s *CartStore) Replace(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	existing, err := s.Get(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	var replaced domain.Cart
	err = s.coll.FindOneAndReplace(
		ctx,
		bson.M{"cartId": c.ID},
		c,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&replaced)
	if err != nil {
		return nil, translate(err, "replace cart", store.ErrCartNotFound, store.ErrDuplicate)
	}
	return &replaced, nil
}

// Delete implements store.CartStore.
func (s *CartStore) Delete(ctx context.Context, id string) (*domain.Cart, error) {
	var deleted domain.Cart
	err := s.coll.FindOneAndDelete(ctx, bson.M{"cartId": id}).Decode(&deleted)
	if err != nil {
		return nil, translate(err, "delete cart", store.ErrCartNotFound, store.ErrDuplicate)
	}
	return &deleted, nil
}
