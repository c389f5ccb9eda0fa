package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aniladanir/campaign-manager/internal/cache"
	"github.com/go-redis/redis/v8"
)

const (
	pingAttempts = 5
	pingInterval = 2 * time.Second
	keyPrefix    = "campaign-manager:"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to addr and waits for the instance to answer a ping.
// Keys are namespaced so the instance can be shared with other services.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rClient := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := ping(ctx, rClient); err != nil {
		_ = rClient.Close()
		return nil, err
	}

	return &RedisCache{
		client: rClient,
		prefix: keyPrefix,
	}, nil
}

func ping(ctx context.Context, rClient *redis.Client) error {
	retryTicker := time.NewTicker(pingInterval)
	defer retryTicker.Stop()

	var err error
	for attempt := range pingAttempts {
		if err = rClient.Ping(ctx).Err(); err == nil {
			return nil
		}
		if attempt == pingAttempts-1 {
			break
		}
		select {
		case <-retryTicker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("failed to ping redis instance: %w", err)
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Get returns cache.ErrMiss for absent or expired keys.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", key, cache.ErrMiss)
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return val, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
