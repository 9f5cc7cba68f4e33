package alerting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// StockBelowThresholdHandler reacts to StockBelowThreshold events: it logs
// the condition, notifies the configured channel and invalidates the cached
// dashboard summary so the next read reflects the new stock level.
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
	cache    SummaryCache
}

// StockAlertNotifier is the interface for sending stock alerts.
// Implementations can support different channels (in-app, email, SMS, etc.)
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert inventory.StockAlert) error
}

// NewStockBelowThresholdHandler creates a new handler for stock below threshold events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// WithCache sets the summary cache to invalidate on stock changes
func (h *StockBelowThresholdHandler) WithCache(cache SummaryCache) *StockBelowThresholdHandler {
	h.cache = cache
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("product_id", thresholdEvent.ProductID.String()),
		zap.String("product_name", thresholdEvent.ProductName),
		zap.String("current_quantity", thresholdEvent.CurrentQuantity.String()),
		zap.Int("low_stock_threshold", thresholdEvent.LowStockThreshold),
	)

	if h.cache != nil {
		if err := h.cache.InvalidateSummary(ctx); err != nil {
			h.logger.Debug("summary cache invalidation failed", zap.Error(err))
		}
	}

	if h.notifier == nil {
		return nil
	}

	alert := buildAlert(thresholdEvent)
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		h.logger.Error("failed to send stock alert notification",
			zap.String("product_id", alert.ProductID.String()),
			zap.Error(err),
		)
		// Notification failure must not fail the event handling
		return nil
	}

	h.logger.Info("stock alert notification sent",
		zap.String("product_id", alert.ProductID.String()),
		zap.String("alert_type", string(alert.AlertType)),
	)
	return nil
}

// buildAlert reconstructs the alert from the event payload so the handler
// does not have to reload the product.
func buildAlert(event *inventory.StockBelowThresholdEvent) inventory.StockAlert {
	p := &inventory.Product{
		Name:              event.ProductName,
		UnitOfMeasure:     event.UnitOfMeasure,
		CurrentQuantity:   event.CurrentQuantity,
		LowStockThreshold: event.LowStockThreshold,
	}
	p.ID = event.ProductID

	if event.CurrentQuantity.IsZero() {
		return inventory.NewOutOfStockAlert(p)
	}
	return inventory.NewLowStockAlert(p)
}

// Ensure StockBelowThresholdHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier is a simple notifier that logs alerts.
// This is useful for development and testing
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert inventory.StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", string(alert.AlertType)),
		zap.String("severity", string(alert.Severity)),
		zap.String("product_id", alert.ProductID.String()),
		zap.String("product_name", alert.ProductName),
		zap.String("current_quantity", alert.CurrentQuantity.String()),
		zap.Int("low_stock_threshold", alert.LowStockThreshold),
	)
	return nil
}

// Ensure LoggingStockAlertNotifier implements StockAlertNotifier
var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
