package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/minimart/backend/internal/core/domain"
	"github.com/minimart/backend/internal/port"
)

const (
	productKeyPrefix = "product:"
	productCacheTTL  = 10 * time.Minute
)

// CatalogCache is a read-through Redis layer in front of a CatalogStore.
// Cache failures never surface to callers; reads fall back to the underlying
// store and writes invalidate best-effort.
type CatalogCache struct {
	client *redis.Client
	next   port.CatalogStore
	log    *zap.Logger
}

func NewCatalogCache(client *redis.Client, next port.CatalogStore, log *zap.Logger) *CatalogCache {
	return &CatalogCache{client: client, next: next, log: log}
}

func (c *CatalogCache) Get(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	key := productKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var entry domain.CatalogEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			return &entry, nil
		}
		// Corrupt payload; drop it and fall through to the store.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("catalog cache read failed", zap.String("product_id", id), zap.Error(err))
	}

	entry, err := c.next.Get(ctx, id)
	if err != nil || entry == nil {
		return entry, err
	}

	if data, err := json.Marshal(entry); err == nil {
		if err := c.client.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			c.log.Warn("catalog cache write failed", zap.String("product_id", id), zap.Error(err))
		}
	}

	return entry, nil
}

func (c *CatalogCache) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	return c.next.List(ctx)
}

func (c *CatalogCache) Insert(ctx context.Context, entry domain.CatalogEntry) (string, error) {
	return c.next.Insert(ctx, entry)
}

func (c *CatalogCache) Update(ctx context.Context, id string, patch domain.CatalogPatch) (bool, error) {
	matched, err := c.next.Update(ctx, id, patch)
	if err == nil && matched {
		c.invalidate(ctx, id)
	}
	return matched, err
}

func (c *CatalogCache) Delete(ctx context.Context, id string) (bool, error) {
	matched, err := c.next.Delete(ctx, id)
	if err == nil && matched {
		c.invalidate(ctx, id)
	}
	return matched, err
}

func (c *CatalogCache) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, productKeyPrefix+id).Err(); err != nil {
		c.log.Warn("catalog cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}
