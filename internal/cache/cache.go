package cache

import (
	"context"
	"errors"

	"storefront-backend/internal/model"
)

type ProductCache interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	GetList(ctx context.Context) ([]*model.Product, error)
	SetList(ctx context.Context, products []*model.Product) error
	Invalidate(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop always misses. Used when no redis address is configured.
type Noop struct{}

func (Noop) GetProduct(context.Context, string) (*model.Product, error) { return nil, ErrCacheMiss }
func (Noop) SetProduct(context.Context, *model.Product) error           { return nil }
func (Noop) GetList(context.Context) ([]*model.Product, error)          { return nil, ErrCacheMiss }
func (Noop) SetList(context.Context, []*model.Product) error            { return nil }
func (Noop) Invalidate(context.Context, string) error                   { return nil }
