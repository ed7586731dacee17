package repository

import (
	"context"
	"errors"
	"fmt"
	"storefront-backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, accountID string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error
	SaveCart(ctx context.Context, accountID string, cart model.Cart) error
}

// ProfileUpdate replaces name and email. An empty Image keeps the stored one.
type ProfileUpdate struct {
	Name  string
	Email string
	Image string
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	if account.Cart == nil {
		account.Cart = model.Cart{}
	}
	err := r.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrEmailTaken
	}
	return err
}

func (r *accountRepoImpl) FindByID(ctx context.Context, accountID string) (*model.Account, error) {
	return r.findOne(ctx, "id = ?", accountID)
}

func (r *accountRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *accountRepoImpl) findOne(ctx context.Context, query string, arg string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account.Cart == nil {
		account.Cart = model.Cart{}
	}

	return &account, nil
}

func (r *accountRepoImpl) UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error {
	fields := map[string]interface{}{
		"name":       update.Name,
		"email":      update.Email,
		"updated_at": time.Now(),
	}
	if update.Image != "" {
		fields["image"] = update.Image
	}

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", accountID).
		Updates(fields)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return model.ErrEmailTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.mustExist(ctx, accountID)
	}
	return nil
}

func (r *accountRepoImpl) SaveCart(ctx context.Context, accountID string, cart model.Cart) error {
	if cart == nil {
		cart = model.Cart{}
	}

	result := r.db.WithContext(ctx).Model(&model.Account{ID: accountID}).
		Select("Cart", "UpdatedAt").
		Updates(model.Account{Cart: cart, UpdatedAt: time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.mustExist(ctx, accountID)
	}
	return nil
}

// mustExist tells a missing account apart from an update that changed
// nothing, which mysql also reports as zero affected rows.
func (r *accountRepoImpl) mustExist(ctx context.Context, accountID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", accountID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
