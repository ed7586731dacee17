package service

import (
	"context"
	"fmt"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type CartService interface {
	Add(ctx context.Context, accountID, itemID, size string) (model.Cart, error)
	Update(ctx context.Context, accountID, itemID, size string, quantity int) (model.Cart, error)
	Get(ctx context.Context, accountID string) (model.Cart, error)
	Amount(ctx context.Context, accountID string) (float64, error)
}

type cartServiceImpl struct {
	accountRepo repository.AccountRepository
	catalog     CatalogService
}

func NewCartService(accountRepo repository.AccountRepository, catalog CatalogService) CartService {
	return &cartServiceImpl{
		accountRepo: accountRepo,
		catalog:     catalog,
	}
}

func (s *cartServiceImpl) Add(ctx context.Context, accountID, itemID, size string) (model.Cart, error) {
	if err := validateCartEntry(itemID, size); err != nil {
		return nil, err
	}

	return s.mutate(ctx, accountID, func(cart *model.Cart) {
		cart.Add(itemID, size)
	})
}

func (s *cartServiceImpl) Update(ctx context.Context, accountID, itemID, size string, quantity int) (model.Cart, error) {
	if err := validateCartEntry(itemID, size); err != nil {
		return nil, err
	}

	return s.mutate(ctx, accountID, func(cart *model.Cart) {
		cart.Set(itemID, size, quantity)
	})
}

func (s *cartServiceImpl) Get(ctx context.Context, accountID string) (model.Cart, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return account.Cart, nil
}

func (s *cartServiceImpl) Amount(ctx context.Context, accountID string) (float64, error) {
	cart, err := s.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}

	products, err := s.catalog.Lookup(ctx, cart.ItemIDs())
	if err != nil {
		return 0, fmt.Errorf("cart amount: %w", err)
	}

	prices := make(map[string]float64, len(products))
	for id, p := range products {
		prices[id] = p.Price
	}

	amount, _ := cart.Amount(prices).Float64()
	return amount, nil
}

// mutate loads the cart, applies fn and writes the whole cart back.
func (s *cartServiceImpl) mutate(ctx context.Context, accountID string, fn func(cart *model.Cart)) (model.Cart, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart := account.Cart
	fn(&cart)

	if err := s.accountRepo.SaveCart(ctx, accountID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func validateCartEntry(itemID, size string) error {
	if itemID == "" {
		return model.Invalid("Item id is required")
	}
	if size == "" {
		return model.Invalid("Select product size")
	}
	return nil
}
