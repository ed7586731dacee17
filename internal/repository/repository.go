package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories bundles the stores the services need, backed by one driver.
type Repositories struct {
	Accounts AccountRepository
	Orders   OrderRepository
	Products ProductRepository
}

func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Accounts: NewAccountRepository(db),
		Orders:   NewOrderRepository(db),
		Products: NewProductRepository(db),
	}
}

// NewMongoRepositories builds the mongo backed stores and creates their indexes.
func NewMongoRepositories(ctx context.Context, db *mongo.Database) (*Repositories, error) {
	accounts := NewMongoAccountRepository(db)
	orders := NewMongoOrderRepository(db)

	if err := accounts.(*mongoAccountRepository).CreateIndexes(ctx); err != nil {
		return nil, err
	}
	if err := orders.(*mongoOrderRepository).CreateIndexes(ctx); err != nil {
		return nil, err
	}

	return &Repositories{
		Accounts: accounts,
		Orders:   orders,
		Products: NewMongoProductRepository(db),
	}, nil
}
