// Package cache provides the Redis-backed task-list snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result classifies the outcome of a snapshot lookup. Readers must
// treat Miss and Unavailable identically: fall through to the store.
type Result int

const (
	// Hit means the snapshot was present and decoded into dest.
	Hit Result = iota
	// Miss means the key was absent or expired.
	Miss
	// Unavailable means Redis could not be reached or the payload could
	// not be decoded.
	Unavailable
)

// String returns a short label for logging.
func (r Result) String() string {
	switch r {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	default:
		return "unavailable"
	}
}

// SnapshotCache stores a serialized copy of the full task list under a
// single fixed key with a fixed TTL. It is never authoritative: any
// write to the underlying set of tasks deletes the key.
type SnapshotCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks cache counters.
type Stats struct {
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Sets          uint64 `json:"sets"`
	Invalidations uint64 `json:"invalidations"`
	Errors        uint64 `json:"errors"`
}

// New creates a snapshot cache over the given client.
func New(client *redis.Client, key string, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		key:    key,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// Get reads the snapshot into dest and classifies the outcome.
// Connectivity and decode failures are reported as Unavailable, never
// as a request failure.
func (c *SnapshotCache) Get(ctx context.Context, dest any) Result {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return Miss
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return Unavailable
	}

	if err := json.Unmarshal(data, dest); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return Unavailable
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return Hit
}

// Set stores the snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Invalidate deletes the snapshot key so the next read repopulates from
// the authoritative store.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache invalidate error: %w", err)
	}

	atomic.AddUint64(&c.stats.Invalidations, 1)
	return nil
}

// GetStats returns a snapshot of the current counters.
func (c *SnapshotCache) GetStats() Stats {
	return Stats{
		Hits:          atomic.LoadUint64(&c.stats.Hits),
		Misses:        atomic.LoadUint64(&c.stats.Misses),
		Sets:          atomic.LoadUint64(&c.stats.Sets),
		Invalidations: atomic.LoadUint64(&c.stats.Invalidations),
		Errors:        atomic.LoadUint64(&c.stats.Errors),
	}
}

// ResetStats resets all counters.
func (c *SnapshotCache) ResetStats() {
	atomic.StoreUint64(&c.stats.Hits, 0)
	atomic.StoreUint64(&c.stats.Misses, 0)
	atomic.StoreUint64(&c.stats.Sets, 0)
	atomic.StoreUint64(&c.stats.Invalidations, 0)
	atomic.StoreUint64(&c.stats.Errors, 0)
}

// Ping checks if the Redis connection is healthy.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
