package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storefront-backend/internal/model"

	"github.com/redis/go-redis/v9"
)

const listKey = "products:all"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 10 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	if err := r.get(ctx, productKey(productID), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product *model.Product) error {
	return r.set(ctx, productKey(product.ID), product)
}

func (r *RedisCache) GetList(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	if err := r.get(ctx, listKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisCache) SetList(ctx context.Context, products []*model.Product) error {
	return r.set(ctx, listKey, products)
}

// Invalidate drops the product entry and the cached list.
func (r *RedisCache) Invalidate(ctx context.Context, productID string) error {
	if err := r.client.Del(ctx, productKey(productID), listKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) get(ctx context.Context, key string, dst interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	jitter := time.Duration(rand.Intn(3)) * time.Minute
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func productKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}
