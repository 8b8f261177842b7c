// Package cache offers an optional Redis-backed store for raw upstream
// response bodies, keyed by request URL. It only ever holds payload bytes;
// derived tables are recomputed on every run.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rinkside:payload:"

// RedisCache caches api-web payloads with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Get returns the cached body for key, if present. Redis errors degrade to
// a miss; the caller falls through to the network.
func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := rc.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", key, err)
		return nil, false
	}
	return body, true
}

// Set stores the body under key with the configured TTL. Failures are
// logged, not raised: caching is best-effort.
func (rc *RedisCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, keyPrefix+key, body, rc.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}
