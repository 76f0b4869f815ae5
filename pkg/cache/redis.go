// Package cache wraps a Redis client behind a small JSON get/set surface.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

type Options struct {
	Address        string
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

type Option func(*Options)

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithPassword(pass string) Option {
	return func(o *Options) {
		o.Password = pass
	}
}

func WithDB(db int) Option {
	return func(o *Options) {
		o.DB = db
	}
}

// WithConnectTimeout bounds the total time spent retrying the initial ping.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ConnectTimeout = d
	}
}

// New connects to Redis and verifies the connection with a ping. Transient
// startup failures (Redis still booting alongside the service) are retried
// with exponential backoff until ConnectTimeout elapses.
func New(ctx context.Context, opts ...Option) (*Cache, error) {
	options := &Options{
		Address:        "localhost:6379",
		Password:       "",
		DB:             0,
		ConnectTimeout: 15 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = options.ConnectTimeout

	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(policy, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", options.Address, err)
	}

	return &Cache{client: client}, nil
}

// Get retrieves a key and unmarshals its JSON value into dest. A missing
// key surfaces as redis.Nil.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set marshals value to JSON and stores it under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
