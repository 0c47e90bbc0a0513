package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisLayer = "redis"

// RedisCache is a shared second level cache for deployments running more than one instance.
type RedisCache struct {
	redis   *redis.Client
	prefix  string
	TTL     time.Duration
	Timeout time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisCache{
		redis:   client,
		prefix:  "multiverse:pokeapi:",
		TTL:     ttl,
		Timeout: 2 * time.Second,
	}
}

func (c *RedisCache) Set(endpoint string, value any) error {
	slog.Debug("writing to redis cache", slog.String("endpoint", endpoint))
	data, err := json.Marshal(value)
	if err != nil {
		Errors.WithLabelValues(redisLayer, "set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	if err := c.redis.Set(ctx, c.prefix+endpoint, data, c.TTL).Err(); err != nil {
		Errors.WithLabelValues(redisLayer, "set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(endpoint string, value any) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	data, err := c.redis.Get(ctx, c.prefix+endpoint).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			Misses.WithLabelValues(redisLayer).Inc()
			slog.Debug("not found in redis cache", slog.String("endpoint", endpoint))
			return false, nil
		}
		Errors.WithLabelValues(redisLayer, "get").Inc()
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(data, value); err != nil {
		Errors.WithLabelValues(redisLayer, "get").Inc()
		return false, fmt.Errorf("unmarshal cache entry: %w", err)
	}
	Hits.WithLabelValues(redisLayer).Inc()
	slog.Debug("found in redis cache", slog.String("endpoint", endpoint))
	return true, nil
}
