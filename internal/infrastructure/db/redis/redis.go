package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config captures the settings for the mutation relay connection. An empty
// Addr disables the relay entirely and Connect is never called.
type Config struct {
	Addr string
	DB   int
}

// Connect builds a Redis client for the relay and verifies connectivity with
// a ping before it is handed to the relay loop.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		MinIdleConns: 1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
