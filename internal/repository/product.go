package repository

import (
	"context"
	"errors"
	"fmt"
	"storefront-backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
}

// seedProducts is inserted on startup when missing so a fresh store can take orders.
func seedProducts() []model.Product {
	now := time.Now()
	return []model.Product{
		{ID: "aaaaa", Name: "Women Round Neck Cotton Top", Description: "A lightweight cotton top for everyday wear", Price: 100, Images: []string{}, Category: "Women", SubCategory: "Topwear", Sizes: []string{"S", "M", "L"}, Bestseller: true, Date: now},
		{ID: "aaaab", Name: "Men Round Neck Pure Cotton T-shirt", Description: "Breathable cotton tee", Price: 200, Images: []string{}, Category: "Men", SubCategory: "Topwear", Sizes: []string{"M", "L", "XL"}, Bestseller: true, Date: now},
		{ID: "aaaac", Name: "Girls Round Neck Cotton Top", Description: "Soft cotton top for kids", Price: 220, Images: []string{}, Category: "Kids", SubCategory: "Topwear", Sizes: []string{"S", "L", "XL"}, Date: now},
		{ID: "aaaad", Name: "Men Tapered Fit Flat-Front Trousers", Description: "Slim tapered trousers", Price: 140, Images: []string{}, Category: "Men", SubCategory: "Bottomwear", Sizes: []string{"S", "M", "L", "XL"}, Date: now},
	}
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := seedProducts()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	if len(productIDs) == 0 {
		return products, nil
	}

	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("date desc").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
