// Package cache keeps shaped list pages in redis for a fixed TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Open connects to redis at addr, retrying the initial ping with exponential
// backoff until maxWait has elapsed.
func Open(ctx context.Context, addr string, maxWait time.Duration) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	ping := func() error { return rdb.Ping(ctx).Err() }
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Str("addr", addr).Msg("redis ping failed")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ListCache stores JSON encoded values under namespaced keys.
type ListCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewListCache(rdb *redis.Client, prefix string, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get decodes the value stored under key into dst. It reports false on a
// miss.
func (c *ListCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v under key for the cache TTL.
func (c *ListCache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

// Key derives a stable cache key from a resource name and its request
// parameters. Parameter order in the request does not matter.
func Key(resource string, values url.Values) string {
	h := sha256.Sum256([]byte(values.Encode()))
	return resource + ":" + hex.EncodeToString(h[:16])
}
