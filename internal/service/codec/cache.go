package codec

import (
	"context"
	"encoding/json"
	"time"

	redis_client "flexline/internal/redis"
	"flexline/internal/service/storage"

	"github.com/cockroachdb/errors"
)

// CacheKeyPrefix namespaces decoded polylines in Redis
const CacheKeyPrefix = "polyline"

// Cache keeps decoded polylines keyed by their encoded form.
type Cache interface {
	Get(ctx context.Context, encoded string) (Decoded, bool, error)
	Set(ctx context.Context, encoded string, d Decoded) error
}

// MemoryCache is a process local Cache.
type MemoryCache struct {
	storage *storage.MemoryStorage[string, Decoded]
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{storage: storage.NewMemoryStorage[string, Decoded](ttl, maxEntries)}
}

func (c *MemoryCache) Get(_ context.Context, encoded string) (Decoded, bool, error) {
	d, ok := c.storage.Get(encoded)
	return d, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, encoded string, d Decoded) error {
	c.storage.Set(encoded, d)
	return nil
}

// PurgeExpired lets the cache sweeper drop stale entries.
func (c *MemoryCache) PurgeExpired() int {
	return c.storage.PurgeExpired()
}

// RedisCache stores decoded polylines as JSON in the Redis client set up by
// redis.Init.
type RedisCache struct {
	ttl time.Duration
}

func NewRedisCache(ttl time.Duration) *RedisCache {
	return &RedisCache{ttl: ttl}
}

func redisKey(encoded string) string {
	return CacheKeyPrefix + ":" + encoded
}

func (c *RedisCache) Get(ctx context.Context, encoded string) (Decoded, bool, error) {
	var d Decoded

	jsonStr, err := redis_client.Get(ctx, redisKey(encoded))
	if errors.Is(err, redis_client.Nil) {
		return d, false, nil
	}
	if err != nil {
		return d, false, errors.Wrap(err, "redis get")
	}

	if err := json.Unmarshal([]byte(jsonStr), &d); err != nil {
		return d, false, errors.Wrap(err, "unmarshal cached polyline")
	}
	return d, true, nil
}

func (c *RedisCache) Set(ctx context.Context, encoded string, d Decoded) error {
	data, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "marshal polyline")
	}
	return errors.Wrap(redis_client.Set(ctx, redisKey(encoded), data, c.ttl), "redis set")
}
