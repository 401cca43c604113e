package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/taskboard/config"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the fixed key the task-list snapshot lives under.
const SnapshotKey = "tasks"

// Module owns the Redis client lifecycle and exposes the snapshot
// cache.
type Module struct {
	cache  *SnapshotCache
	client *redis.Client
	addr   string
	db     int
	ttl    time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the cache module from the application
// configuration.
func NewModule(cfg *config.Config) *Module {
	return &Module{
		addr: cfg.RedisAddr(),
		db:   cfg.RedisDB,
		ttl:  cfg.CacheTTL,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Start creates the Redis client. An unreachable Redis is logged, not
// fatal: the cache is an optimization, never a correctness dependency.
func (m *Module) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.addr,
		DB:           m.db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache] Redis unreachable at %s, continuing without cache: %v", m.addr, err)
	} else {
		log.Printf("[cache] Connected to Redis at %s (key: %s, TTL: %s)", m.addr, SnapshotKey, m.ttl)
	}

	m.cache = New(m.client, SnapshotKey, m.ttl)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health reports the Redis connection state. An unreachable Redis
// degrades the cache but does not make the application unhealthy.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: true,
			Message: fmt.Sprintf("degraded: redis unreachable: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
			"ttl":  m.ttl.String(),
		},
	}
}

// GetCache returns the snapshot cache instance.
func (m *Module) GetCache() *SnapshotCache {
	return m.cache
}
