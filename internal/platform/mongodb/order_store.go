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

// OrderStore is the MongoDB implementation of store.OrderStore.
type OrderStore struct {
	coll *mongo.Collection
}

var _ store.OrderStore = (*OrderStore)(nil)

// NewOrderStore creates an OrderStore backed by the orders collection.
func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{coll: db.collection(ordersCollection)}
}

// List implements store.OrderStore.
func (s *OrderStore) List(ctx context.Context) ([]domain.Order, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "orderNo", Value: 1}}))
	if err != nil {
		return nil, translate(err, "list orders", store.ErrOrderNotFound, store.ErrOrderExists)
	}
	defer func() { _ = cur.Close(ctx) }()

	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, translate(err, "decode orders", store.ErrOrderNotFound, store.ErrOrderExists)
	}
	return orders, nil
}

// GetByOrderNo implements store.OrderStore.
func (s *OrderStore) GetByOrderNo(ctx context.Context, orderNo int) ([]domain.Order, error) {
	cur, err := s.coll.Find(ctx, bson.M{"orderNo": orderNo})
	if err != nil {
		return nil, translate(err, "get order", store.ErrOrderNotFound, store.ErrOrderExists)
	}
	defer func() { _ = cur.Close(ctx) }()

	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, translate(err, "decode order", store.ErrOrderNotFound, store.ErrOrderExists)
	}
	if len(orders) == 0 {
		return nil, store.ErrOrderNotFound
	}
	return orders, nil
}

// Create implements store.OrderStore.
func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	now := time.Now().UTC()
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, o)
	return translate(err, "create order", store.ErrOrderNotFound, store.ErrOrderExists)
}

// DeleteByOrderNo implements store.OrderStore.
func (s *OrderStore) DeleteByOrderNo(ctx context.Context, orderNo int) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"orderNo": orderNo})
	if err != nil {
		return 0, translate(err, "delete order", store.ErrOrderNotFound, store.ErrOrderExists)
	}
	if res.DeletedCount == 0 {
		return 0, store.ErrOrderNotFound
	}
	return res.DeletedCount, nil
}
