package adapters

import (
	"context"
	"time"

	"github.com/outpost-tools/rostering-service/internal/database"
	"github.com/outpost-tools/rostering-service/internal/storage"
)

// CacheAdapter adapts database.RedisClient to storage.CacheInterface.
type CacheAdapter struct {
	redis *database.RedisClient
}

// NewCacheAdapter creates the cache adapter.
func NewCacheAdapter(redis *database.RedisClient) storage.CacheInterface {
	return &CacheAdapter{redis: redis}
}

// Get returns the value for key, or "" when the key is absent.
func (a *CacheAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.redis.Get(ctx, key)
}

// Set stores a value with a TTL.
func (a *CacheAdapter) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return a.redis.Set(ctx, key, value, ttl)
}

// Del removes a key.
func (a *CacheAdapter) Del(ctx context.Context, key string) error {
	return a.redis.Delete(ctx, key)
}

// Health checks Redis connectivity.
func (a *CacheAdapter) Health(ctx context.Context) error {
	return a.redis.Health(ctx)
}
