package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis. Connection failures are retried with
// [RetryWithBackoff]; everything else fails immediately.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to the Redis server at url
// (for example "redis://localhost:6379/0") and pings it.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := NewRedisCacheFromClient(redis.NewClient(opts))
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache owns the
// client and closes it on Close.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", func() error {
		return c.client.Ping(ctx).Err()
	})
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)
	err := c.do(ctx, "get", func() error {
		v, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		data, found = v, err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, "set", func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, "del", func() error {
		return c.client.Del(ctx, key).Err()
	})
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) do(ctx context.Context, op string, fn func() error) error {
	err := RetryWithBackoff(ctx, func() error {
		err := fn()
		if transient(err) {
			return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
		}
		return err
	})
	if err == nil {
		return nil
	}
	var re *RetryableError
	if errors.As(err, &re) {
		err = re.Err
	}
	return fmt.Errorf("redis %s: %w", op, err)
}

func transient(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	return errors.As(err, &ne) || errors.Is(err, io.EOF)
}

var _ Cache = (*RedisCache)(nil)
