package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache is a small JSON cache for dashboard aggregates. A nil
// StatsCache is valid and caches nothing, so callers never need to guard.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Returns false on a
// miss or any Redis failure; cache errors must never fail the request.
func (c *StatsCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("stats cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("stats cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *StatsCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("stats cache encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("stats cache set %s: %v", key, err)
	}
}
