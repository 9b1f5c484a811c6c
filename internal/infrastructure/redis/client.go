package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a new Redis client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Connect is NewClient retried with exponential backoff until maxElapsed
// passes. Invalid URLs fail immediately.
func Connect(ctx context.Context, redisURL string, maxElapsed time.Duration) (*redis.Client, error) {
	if _, err := redis.ParseURL(redisURL); err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxElapsed

	var client *redis.Client
	err := backoff.Retry(func() error {
		c, err := NewClient(ctx, redisURL)
		if err != nil {
			return err
		}
		client = c
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return client, nil
}
