package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-backend/internal/cache"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	List(ctx context.Context) ([]*model.Product, error)
	Get(ctx context.Context, productID string) (*model.Product, error)
	Add(ctx context.Context, product *model.Product) (*model.Product, error)
	Remove(ctx context.Context, productID string) error
	// Lookup reads straight from the store; prices used for money are never served from cache.
	Lookup(ctx context.Context, productIDs []string) (map[string]*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	cache       cache.ProductCache
	log         *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, productCache cache.ProductCache, log *zap.Logger) CatalogService {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	return &catalogServiceImpl{
		productRepo: productRepo,
		cache:       productCache,
		log:         log,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]*model.Product, error) {
	products, err := s.cache.GetList(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("product list cache read failed", zap.Error(err))
	}

	products, err = s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := s.cache.SetList(ctx, products); err != nil {
		s.log.Warn("product list cache write failed", zap.Error(err))
	}
	return products, nil
}

func (s *catalogServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	if productID == "" {
		return nil, model.Invalid("Product id is required")
	}

	product, err := s.cache.GetProduct(ctx, productID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("product cache read failed", zap.String("product_id", productID), zap.Error(err))
	}

	product, err = s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.log.Warn("product cache write failed", zap.String("product_id", productID), zap.Error(err))
	}
	return product, nil
}

func (s *catalogServiceImpl) Add(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Name == "" {
		return nil, model.Invalid("Product name is required")
	}
	if product.Price <= 0 {
		return nil, model.Invalid("Product price must be positive")
	}
	if len(product.Sizes) == 0 {
		return nil, model.Invalid("Product needs at least one size")
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	product.Date = time.Now()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx, product.ID)

	return product, nil
}

func (s *catalogServiceImpl) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return model.Invalid("Product id is required")
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	s.invalidate(ctx, productID)
	return nil
}

func (s *catalogServiceImpl) Lookup(ctx context.Context, productIDs []string) (map[string]*model.Product, error) {
	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get many products by item ids: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *catalogServiceImpl) invalidate(ctx context.Context, productID string) {
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		s.log.Warn("product cache invalidate failed", zap.String("product_id", productID), zap.Error(err))
	}
}
