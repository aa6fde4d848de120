package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const (
	searchKeyPrefix  = "items:search:"
	searchVersionKey = searchKeyPrefix + "version"
)

// SearchCache keys entries by a generation counter. Invalidate bumps the
// counter, orphaning every older entry until its TTL expires.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// Get returns the entry key even on a miss; the caller hands it back to Set.
func (c *SearchCache) Get(ctx context.Context, text string) ([]*queries.ItemView, string, bool, error) {
	key, err := c.key(ctx, text)
	if err != nil {
		return nil, "", false, err
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, false, nil
	}
	if err != nil {
		return nil, key, false, errs.Wrap(err, "failed to read search cache")
	}

	var items []*queries.ItemView
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, key, false, errs.Wrap(err, "failed to decode search cache entry")
	}
	return items, key, true, nil
}

func (c *SearchCache) Set(ctx context.Context, key string, items []*queries.ItemView) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errs.Wrap(err, "failed to encode search cache entry")
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write search cache")
	}
	return nil
}

func (c *SearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, searchVersionKey).Err(); err != nil {
		return errs.Wrap(err, "failed to bump search cache version")
	}
	return nil
}

// Matching is case-insensitive, so the key is too.
func (c *SearchCache) key(ctx context.Context, text string) (string, error) {
	version, err := c.client.Get(ctx, searchVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", errs.Wrap(err, "failed to read search cache version")
	}
	return searchKeyPrefix + "v" + strconv.FormatInt(version, 10) + ":" + strings.ToLower(text), nil
}

// NoopSearchCache is used when no Redis address is configured.
type NoopSearchCache struct{}

func (NoopSearchCache) Get(context.Context, string) ([]*queries.ItemView, string, bool, error) {
	return nil, "", false, nil
}

func (NoopSearchCache) Set(context.Context, string, []*queries.ItemView) error {
	return nil
}

func (NoopSearchCache) Invalidate(context.Context) error {
	return nil
}
