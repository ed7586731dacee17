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

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			// one provider transaction, one order
			Keys:    bson.D{{Key: "providerOrderId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) Create(ctx context.Context, order *model.Order) error {
	if _, err := m.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := m.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return m.find(ctx, bson.M{"userId": userID})
}

func (m *mongoOrderRepository) ListAll(ctx context.Context) ([]*model.Order, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoOrderRepository) find(ctx context.Context, filter bson.M) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := []*model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoOrderRepository) SetProviderOrderID(ctx context.Context, orderID, providerOrderID string) error {
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"providerOrderId": providerOrderID}},
	)
	if err != nil {
		return fmt.Errorf("failed to set provider order id: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) MarkPaid(ctx context.Context, orderID, providerPaymentID string) (*model.Order, error) {
	return m.markPaid(ctx, bson.M{"_id": orderID}, providerPaymentID)
}

func (m *mongoOrderRepository) MarkPaidByProviderOrderID(ctx context.Context, providerOrderID, providerPaymentID string) (*model.Order, error) {
	return m.markPaid(ctx, bson.M{"providerOrderId": providerOrderID}, providerPaymentID)
}

func (m *mongoOrderRepository) markPaid(ctx context.Context, filter bson.M, providerPaymentID string) (*model.Order, error) {
	set := bson.M{"payment": true}
	if providerPaymentID != "" {
		set["providerPaymentId"] = providerPaymentID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order model.Order
	err := m.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return &order, nil
}

func (m *mongoOrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) DeleteUnpaid(ctx context.Context, orderID string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": orderID, "payment": false})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
