// Package redis provides the Redis connection helper and the login rate
// limiter built on top of it.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config carries the settings for the rate-limiting Redis instance.
type Config struct {
	Addr string
	DB   int
}

// Connect builds a Redis client and confirms the server answers before
// returning it. Rate limiting is optional, so callers treat a failure here
// as a warning rather than a fatal error.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
