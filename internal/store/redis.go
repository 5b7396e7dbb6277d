package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// RedisProvider implements Provider for a Redis endpoint.
type RedisProvider struct {
	cfg Config
}

// NewRedisProvider creates a provider for the given endpoint.
func NewRedisProvider(cfg Config) *RedisProvider {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	return &RedisProvider{cfg: cfg}
}

// Acquire dials the endpoint and verifies it with a ping. The returned Conn
// is backed by a client restricted to a single underlying connection, since
// the handle is exclusively owned by one worker.
func (p *RedisProvider) Acquire(ctx context.Context) (Conn, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        p.cfg.Addr,
		Password:    p.cfg.Password,
		DB:          p.cfg.DB,
		DialTimeout: p.cfg.DialTimeout,
		PoolSize:    1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, &ConnectionError{Addr: p.cfg.Addr, Err: err}
	}

	return &redisConn{client: client}, nil
}

type redisConn struct {
	client    *redis.Client
	closeOnce sync.Once
	closeErr  error
}

func (c *redisConn) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *redisConn) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key %s: not found", key)
	}
	return val, err
}

func (c *redisConn) PipeSetGet(ctx context.Context, key, value string) (string, error) {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, value, 0)
	get := pipe.Get(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("key %s: not found", key)
		}
		return "", err
	}
	return get.Val(), nil
}

// Close releases the underlying transport. Safe to call more than once.
func (c *redisConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.client.Close()
	})
	return c.closeErr
}

// Admin is a separate handle for out-of-band store administration. The
// benchmark harness never touches it; the CLI uses it to clear the database
// between repetitions.
type Admin struct {
	client *redis.Client
}

// NewAdmin connects an administrative handle to the endpoint.
func NewAdmin(ctx context.Context, cfg Config) (*Admin, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, &ConnectionError{Addr: cfg.Addr, Err: err}
	}
	return &Admin{client: client}, nil
}

// Flush removes every key in the configured database.
func (a *Admin) Flush(ctx context.Context) error {
	if err := a.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flush db: %w", err)
	}
	return nil
}

func (a *Admin) Close() error {
	return a.client.Close()
}

// WaitForReady polls the endpoint until it answers a ping or the timeout
// elapses. Used during container startup before the benchmark begins.
func WaitForReady(cfg Config, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: time.Second,
		})
		err := client.Ping(context.Background()).Err()
		client.Close()
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("timeout waiting for redis at %s after %v", cfg.Addr, timeout)
}
