package alerting

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/inventory"
)

// DefaultSummaryTTL is how long a cached dashboard summary stays fresh.
const DefaultSummaryTTL = 30 * time.Second

// SummaryCache caches the dashboard summary between stock changes.
// Implementations may be backed by Redis or process memory.
type SummaryCache interface {
	// GetSummary returns the cached summary, or nil on a miss
	GetSummary(ctx context.Context) (*inventory.DashboardSummary, error)
	// SetSummary stores the summary with the given TTL
	SetSummary(ctx context.Context, summary *inventory.DashboardSummary, ttl time.Duration) error
	// InvalidateSummary drops the cached summary
	InvalidateSummary(ctx context.Context) error
}

// AlertService classifies current stock into low and out-of-stock alerts and
// aggregates them into the dashboard summary.
type AlertService struct {
	productRepo inventory.ProductRepository
	cache       SummaryCache
	summaryTTL  time.Duration
	logger      *zap.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(productRepo inventory.ProductRepository, logger *zap.Logger) *AlertService {
	return &AlertService{
		productRepo: productRepo,
		summaryTTL:  DefaultSummaryTTL,
		logger:      logger,
	}
}

// WithCache enables summary caching
func (s *AlertService) WithCache(cache SummaryCache) *AlertService {
	s.cache = cache
	return s
}

// WithSummaryTTL overrides the summary cache TTL
func (s *AlertService) WithSummaryTTL(ttl time.Duration) *AlertService {
	if ttl > 0 {
		s.summaryTTL = ttl
	}
	return s
}

// GetLowStockAlerts returns an alert for every product whose quantity is
// positive but at or below its threshold, most severe first.
func (s *AlertService) GetLowStockAlerts(ctx context.Context) ([]inventory.StockAlert, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]inventory.StockAlert, 0)
	for i := range products {
		p := &products[i]
		if inventory.IsLowStock(p) {
			alerts = append(alerts, inventory.NewLowStockAlert(p))
		}
	}
	sortAlerts(alerts)
	return alerts, nil
}

// GetOutOfStockAlerts returns an alert for every product with exactly zero
// stock. Products driven negative through a bypassed deduction are
// bookkeeping errors, not sell-outs, and are excluded.
func (s *AlertService) GetOutOfStockAlerts(ctx context.Context) ([]inventory.StockAlert, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]inventory.StockAlert, 0)
	for i := range products {
		p := &products[i]
		if inventory.IsOutOfStock(p) {
			alerts = append(alerts, inventory.NewOutOfStockAlert(p))
		}
	}
	sortAlerts(alerts)
	return alerts, nil
}

// GetDashboardSummary returns the aggregate alert counts with a
// human-readable message, served from cache when fresh.
func (s *AlertService) GetDashboardSummary(ctx context.Context) (*inventory.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSummary(ctx)
		if err != nil {
			s.logger.Debug("summary cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	lowCount := 0
	outCount := 0
	for i := range products {
		p := &products[i]
		switch {
		case inventory.IsOutOfStock(p):
			outCount++
		case inventory.IsLowStock(p):
			lowCount++
		}
	}

	summary := &inventory.DashboardSummary{
		TotalProducts:   len(products),
		LowStockCount:   lowCount,
		OutOfStockCount: outCount,
		Message:         inventory.BuildDashboardMessage(lowCount, outCount),
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, summary, s.summaryTTL); err != nil {
			s.logger.Debug("summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// severityRank orders severities for display, most urgent first.
var severityRank = map[inventory.AlertSeverity]int{
	inventory.AlertSeverityCritical: 0,
	inventory.AlertSeverityHigh:     1,
	inventory.AlertSeverityMedium:   2,
}

func sortAlerts(alerts []inventory.StockAlert) {
	sort.Slice(alerts, func(i, j int) bool {
		if severityRank[alerts[i].Severity] != severityRank[alerts[j].Severity] {
			return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
		}
		return alerts[i].ProductName < alerts[j].ProductName
	})
}
