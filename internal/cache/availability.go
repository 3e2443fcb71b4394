package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DaySlots is the cached shape of the availability projection.
type DaySlots struct {
	Date  string `json:"date"`
	Hours []int  `json:"hours"`
}

// AvailabilityCache keeps the per-studio available-slot projection in Redis.
// A nil *AvailabilityCache is a valid no-op cache, so callers never need to
// branch on whether Redis is configured.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) *AvailabilityCache {
	if addr == "" {
		return nil
	}
	return &AvailabilityCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl:    ttl,
	}
}

func key(studioID int64) string {
	return fmt.Sprintf("availability:%d", studioID)
}

// Get returns the cached projection, or ok=false on miss, error, or nil cache.
func (c *AvailabilityCache) Get(ctx context.Context, studioID int64) ([]DaySlots, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(studioID)).Result()
	if err != nil {
		return nil, false
	}
	var out []DaySlots
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

// Set stores the projection. Failures are swallowed; the cache is advisory.
func (c *AvailabilityCache) Set(ctx context.Context, studioID int64, days []DaySlots) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key(studioID), raw, c.ttl).Err()
}

// Invalidate drops the studio's cached projection. Called after every
// booking, admin deletion, and availability edit.
func (c *AvailabilityCache) Invalidate(ctx context.Context, studioID int64) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, key(studioID)).Err()
}
