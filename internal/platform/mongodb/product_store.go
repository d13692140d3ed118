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

// ProductStore is the MongoDB implementation of store.ProductStore.
type ProductStore struct {
	coll *mongo.Collection
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a ProductStore backed by the products
// collection.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{coll: db.collection(productsCollection)}
}

// List implements store.ProductStore.
func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, translate(err, "list products", store.ErrProductNotFound, store.ErrSKUExists)
	}
	defer func() { _ = cur.Close(ctx) }()

	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, translate(err, "decode products", store.ErrProductNotFound, store.ErrSKUExists)
	}
	return products, nil
}

// GetBySKU implements store.ProductStore.
func (s *ProductStore) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := s.coll.FindOne(ctx, bson.M{"sku": sku}).Decode(&p)
	if err != nil {
		return nil, translate(err, "get product", store.ErrProductNotFound, store.ErrSKUExists)
	}
	return &p, nil
}

// Create implements store.ProductStore.
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, p)
	return translate(err, "create product", store.ErrProductNotFound, store.ErrSKUExists)
}

// Replace implements store.ProductStore.
func (s *ProductStore) Replace(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	// Keep the original creation time; only updatedAt moves.
	existing, err := s.GetBySKU(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	var replaced domain.Product
	err = s.coll.FindOneAndReplace(
		ctx,
		bson.M{"sku": p.SKU},
		p,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&replaced)
	if err != nil {
		return nil, translate(err, "replace product", store.ErrProductNotFound, store.ErrSKUExists)
	}
	return &replaced, nil
}

// Update implements store.ProductStore.
func (s *ProductStore) Update(ctx context.Context, sku string, patch domain.ProductPatch) (*domain.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.StockOnHand != nil {
		set["stockOnHand"] = *patch.StockOnHand
	}

	var updated domain.Product
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"sku": sku},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, translate(err, "update product", store.ErrProductNotFound, store.ErrSKUExists)
	}
	return &updated, nil
}

// Delete implements store.ProductStore.
func (s *ProductStore) Delete(ctx context.Context, sku string) (*domain.Product, error) {
	var deleted domain.Product
	err := s.coll.FindOneAndDelete(ctx, bson.M{"sku": sku}).Decode(&deleted)
	if err != nil {
		return nil, translate(err, "delete product", store.ErrProductNotFound, store.ErrSKUExists)
	}
	return &deleted, nil
}
