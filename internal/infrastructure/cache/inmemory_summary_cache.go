package cache

import (
	"context"
	"sync"
	"time"

	"github.com/resto/backend/internal/application/alerting"
	"github.com/resto/backend/internal/domain/inventory"
)

// InMemorySummaryCache implements alerting.SummaryCache using process memory.
// Suitable for single-instance deployments and tests
type InMemorySummaryCache struct {
	mu        sync.RWMutex
	summary   *inventory.DashboardSummary
	expiresAt time.Time
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache() *InMemorySummaryCache {
	return &InMemorySummaryCache{}
}

// GetSummary returns the cached summary, or nil when missing or expired
func (c *InMemorySummaryCache) GetSummary(_ context.Context) (*inventory.DashboardSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.summary == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}
	copied := *c.summary
	return &copied, nil
}

// SetSummary stores the summary with the given TTL
func (c *InMemorySummaryCache) SetSummary(_ context.Context, summary *inventory.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *summary
	c.summary = &copied
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// InvalidateSummary drops the cached summary
func (c *InMemorySummaryCache) InvalidateSummary(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = nil
	return nil
}

// Ensure InMemorySummaryCache implements alerting.SummaryCache
var _ alerting.SummaryCache = (*InMemorySummaryCache)(nil)
