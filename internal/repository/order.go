package repository

import (
	"context"
	"errors"
	"fmt"
	"storefront-backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	SetProviderOrderID(ctx context.Context, orderID, providerOrderID string) error
	MarkPaid(ctx context.Context, orderID, providerPaymentID string) (*model.Order, error)
	MarkPaidByProviderOrderID(ctx context.Context, providerOrderID, providerPaymentID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	DeleteUnpaid(ctx context.Context, orderID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("date desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) SetProviderOrderID(ctx context.Context, orderID, providerOrderID string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("provider_order_id", providerOrderID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderID, providerPaymentID string) (*model.Order, error) {
	return r.markPaid(ctx, "id = ?", orderID, providerPaymentID)
}

func (r *orderRepoImpl) MarkPaidByProviderOrderID(ctx context.Context, providerOrderID, providerPaymentID string) (*model.Order, error) {
	return r.markPaid(ctx, "provider_order_id = ?", providerOrderID, providerPaymentID)
}

func (r *orderRepoImpl) markPaid(ctx context.Context, query, arg, providerPaymentID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{"payment": true}
		if providerPaymentID != "" {
			fields["provider_payment_id"] = providerPaymentID
		}

		// mysql reports zero affected rows when the order was already paid,
		// so existence is decided by the read below.
		if err := tx.Model(&model.Order{}).
			Where(query, arg).
			Updates(fields).Error; err != nil {
			return err
		}

		return tx.Where(query, arg).First(&order).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	return &order, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// DeleteUnpaid removes the order only while it is still unpaid.
func (r *orderRepoImpl) DeleteUnpaid(ctx context.Context, orderID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND payment = ?", orderID, false).
		Delete(&model.Order{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
