package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection("users"),
	}
}

func (m *mongoAccountRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) Create(ctx context.Context, account *model.Account) error {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	if account.Cart == nil {
		account.Cart = model.Cart{}
	}

	_, err := m.collection.InsertOne(ctx, account)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) FindByID(ctx context.Context, accountID string) (*model.Account, error) {
	return m.findOne(ctx, bson.M{"_id": accountID})
}

func (m *mongoAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *mongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	var account model.Account
	err := m.collection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account.Cart == nil {
		account.Cart = model.Cart{}
	}
	return &account, nil
}

func (m *mongoAccountRepository) UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error {
	set := bson.M{
		"name":      update.Name,
		"email":     update.Email,
		"updatedAt": time.Now(),
	}
	if update.Image != "" {
		set["image"] = update.Image
	}

	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": accountID}, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

func (m *mongoAccountRepository) SaveCart(ctx context.Context, accountID string, cart model.Cart) error {
	if cart == nil {
		cart = model.Cart{}
	}

	update := bson.M{"$set": bson.M{"cartData": cart, "updatedAt": time.Now()}}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": accountID}, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
