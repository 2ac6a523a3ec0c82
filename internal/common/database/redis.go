// internal/common/database/redis.go
package database

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
)

// RedisClient is the one connection shared by the stream queue and the
// restaurant cache.
type RedisClient struct {
	client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{client: redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})}
}

// Ping reports a timeout or an unhealthy collaborator.
func (c *RedisClient) Ping(ctx context.Context) error {
	err := c.client.Ping(ctx).Err()
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewTimeoutError("redis", err)
	default:
		return errors.NewUnhealthyError("redis", err)
	}
}

// StreamQueue binds a reservation queue to the configured stream and
// consumer group.
func (c *RedisClient) StreamQueue(cfg config.QueueConfig) *StreamQueue {
	return NewStreamQueue(c.client, cfg.Stream, cfg.Group, cfg.Consumer)
}

// RestaurantCache puts a read-through cache with the given TTL in front of
// next.
func (c *RedisClient) RestaurantCache(next RestaurantSource, ttl time.Duration, log logger.Logger) *CachedRestaurantStore {
	return NewCachedRestaurantStore(next, c.client, ttl, log)
}

func (c *RedisClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
