package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/entitlements-cli/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "entitlements:cache:"
	clearBatchSize   = 100
)

// Cache stores responses in redis under a key prefix so that several
// processes share one cache.
type Cache struct {
	rdb       *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ ports.ResponseCache = (*Cache)(nil)

// New wraps rdb. A non-positive ttl stores entries without expiry.
func New(rdb *redis.Client, keyPrefix string, ttl time.Duration) *Cache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}

	return &Cache{rdb: rdb, keyPrefix: keyPrefix, ttl: ttl}
}

// Open connects to the redis server at rawURL and checks it answers.
func Open(ctx context.Context, rawURL, keyPrefix string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return New(rdb, keyPrefix, ttl), nil
}

func (c *Cache) key(k string) string { return c.keyPrefix + k }

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached response: %w", err)
	}

	return val, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("store cached response: %w", err)
	}

	return nil
}

// Clear deletes every key under the prefix.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.keyPrefix+"*", clearBatchSize).Iterator()

	batch := make([]string, 0, clearBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatchSize {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("clear cached responses: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cached responses: %w", err)
	}
	if len(batch) > 0 {
		if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("clear cached responses: %w", err)
		}
	}

	return nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
