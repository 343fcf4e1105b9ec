package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"autoClaims/internal/domain"
)

type StatsCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewStatsCache(r *Redis, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: r.Client,
		key:    "claims:stats",
		ttl:    ttl,
	}
}

// Get returns nil, nil on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.ClaimStats, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.ClaimStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *StatsCache) Set(ctx context.Context, stats domain.ClaimStats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
