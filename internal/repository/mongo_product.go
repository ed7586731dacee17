package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		collection: db.Collection("products"),
	}
}

func (m *mongoProductRepository) Seed(ctx context.Context) error {
	for _, p := range seedProducts() {
		_, err := m.collection.UpdateOne(ctx,
			bson.M{"_id": p.ID},
			bson.M{"$setOnInsert": p},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func (m *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	if _, err := m.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (m *mongoProductRepository) Delete(ctx context.Context, productID string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoProductRepository) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	if len(productIDs) == 0 {
		return []*model.Product{}, nil
	}
	return m.find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
}

func (m *mongoProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoProductRepository) find(ctx context.Context, filter bson.M) ([]*model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	products := []*model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
