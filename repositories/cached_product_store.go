package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bazaar-api/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productListKeyPattern = "products_list_*"

type cachedPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

// CachedProductStore serves catalog pages from Redis. Any write drops every
// cached page, stock changes included, so listings never lag the cart
// workflow by more than one request.
type CachedProductStore struct {
	ProductStore
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedProductStore(next ProductStore, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedProductStore {
	return &CachedProductStore{ProductStore: next, client: client, ttl: ttl, log: log}
}

func productListKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func (s *CachedProductStore) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	key := productListKey(page, limit)

	if cached, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var p cachedPage
		if err := json.Unmarshal(cached, &p); err == nil {
			return p.Products, p.Total, nil
		}
	}

	products, total, err := s.ProductStore.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if data, err := json.Marshal(cachedPage{Products: products, Total: total}); err == nil {
		if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.log.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return products, total, nil
}

func (s *CachedProductStore) Create(ctx context.Context, product *models.Product) error {
	if err := s.ProductStore.Create(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedProductStore) Save(ctx context.Context, product *models.Product) error {
	if err := s.ProductStore.Save(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedProductStore) Delete(ctx context.Context, id int64) error {
	if err := s.ProductStore.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedProductStore) invalidate(ctx context.Context) {
	iter := s.client.Scan(ctx, 0, productListKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn("product cache invalidation failed", zap.Error(err))
	}
}
