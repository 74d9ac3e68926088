package address

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/UrielYanez/ms-users/internal/shared/telemetry"
)

// Cache stores postal-code lookups. Implementations are best-effort: a cache
// failure never fails the request.
type Cache interface {
	Get(ctx context.Context, cp string) (Info, bool)
	Set(ctx context.Context, cp string, info Info)
}

// RedisCache caches lookups in Redis keyed by postal code. Postal-code data
// changes rarely, so a long TTL is safe.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache constructs a RedisCache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func cacheKey(cp string) string {
	return "direccion:cp:" + cp
}

func (c *RedisCache) Get(ctx context.Context, cp string) (Info, bool) {
	raw, err := c.Client.Get(ctx, cacheKey(cp)).Bytes()
	if err != nil {
		if err != redis.Nil {
			telemetry.Warn("address.cache.get", map[string]any{"cp": cp, "error": err.Error()})
		}
		return Info{}, false
	}
	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return Info{}, false
	}
	return info, true
}

func (c *RedisCache) Set(ctx context.Context, cp string, info Info) {
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, cacheKey(cp), raw, c.TTL).Err(); err != nil {
		telemetry.Warn("address.cache.set", map[string]any{"cp": cp, "error": err.Error()})
	}
}
