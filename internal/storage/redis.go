package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"olx-scraper/internal/domain"
)

// SeenCache tracks listing URLs across runs with TTL keys, so repeated runs
// can skip listings already collected recently.
type SeenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSeenCache(addr string, ttl time.Duration) *SeenCache {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &SeenCache{client: rdb, ttl: ttl}
}

func (c *SeenCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// MarkSeen records the run's listing URLs with the configured TTL.
func (c *SeenCache) MarkSeen(ctx context.Context, rows []domain.Listing) error {
	if len(rows) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, r := range rows {
		pipe.Set(ctx, seenKey(r.URL), "1", c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// IsRecentlySeen checks whether a URL was recorded within the TTL.
func (c *SeenCache) IsRecentlySeen(ctx context.Context, url string) (bool, error) {
	val, err := c.client.Exists(ctx, seenKey(url)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

func seenKey(url string) string {
	return fmt.Sprintf("seen:%s", url)
}
