// Package cache provides a Redis caching decorator for the stock catalog.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stockfolio/internal/logger"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
// It returns nil when addr is empty, which disables caching entirely.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Get().Warnf("Redis unavailable at %s, caching disabled: %v", addr, err)
		return nil
	}
	return rdb
}
