package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resto/backend/internal/application/alerting"
	"github.com/resto/backend/internal/domain/inventory"
)

const defaultSummaryKey = "alerts:dashboard_summary"

// RedisSummaryCache implements alerting.SummaryCache using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share the cached summary
type RedisSummaryCache struct {
	client *redis.Client
	key    string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSummaryCache creates a new Redis-backed summary cache
func NewRedisSummaryCache(cfg RedisConfig) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSummaryCache{
		client: client,
		key:    defaultSummaryKey,
	}, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components
func NewRedisSummaryCacheWithClient(client *redis.Client, key string) *RedisSummaryCache {
	if key == "" {
		key = defaultSummaryKey
	}
	return &RedisSummaryCache{
		client: client,
		key:    key,
	}
}

// GetSummary returns the cached summary, or nil on a miss
func (c *RedisSummaryCache) GetSummary(ctx context.Context) (*inventory.DashboardSummary, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var summary inventory.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, nil
}

// SetSummary stores the summary with the given TTL
func (c *RedisSummaryCache) SetSummary(ctx context.Context, summary *inventory.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, c.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// InvalidateSummary drops the cached summary
func (c *RedisSummaryCache) InvalidateSummary(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached summary: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSummaryCache implements alerting.SummaryCache
var _ alerting.SummaryCache = (*RedisSummaryCache)(nil)
