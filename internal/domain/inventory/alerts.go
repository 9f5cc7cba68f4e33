package inventory

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AlertType classifies a stock alert
type AlertType string

const (
	// AlertTypeLowStock flags a product at or below its low-stock threshold
	AlertTypeLowStock AlertType = "low_stock"
	// AlertTypeOutOfStock flags a product with exactly zero quantity on hand
	AlertTypeOutOfStock AlertType = "out_of_stock"
)

// AlertSeverity grades how urgent a stock alert is
type AlertSeverity string

const (
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// StockAlert describes one product's stock condition for dashboards and
// restock prompts.
type StockAlert struct {
	ProductID         uuid.UUID       `json:"product_id" validate:"required"`
	ProductName       string          `json:"product_name" validate:"required"`
	UnitOfMeasure     string          `json:"unit_of_measure" validate:"required"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
	AlertType         AlertType       `json:"alert_type" validate:"required,oneof=low_stock out_of_stock"`
	Severity          AlertSeverity   `json:"severity" validate:"required,oneof=medium high critical"`
}

// DashboardSummary aggregates the current stock state for dashboards
type DashboardSummary struct {
	TotalProducts   int    `json:"total_products" validate:"gte=0"`
	LowStockCount   int    `json:"low_stock_count" validate:"gte=0"`
	OutOfStockCount int    `json:"out_of_stock_count" validate:"gte=0"`
	Message         string `json:"message" validate:"required"`
}

// IsLowStock reports whether the product is running low: some stock remains
// but no more than the configured threshold.
func IsLowStock(p *Product) bool {
	if !p.CurrentQuantity.GreaterThan(decimal.Zero) {
		return false
	}
	return p.CurrentQuantity.LessThanOrEqual(decimal.NewFromInt(int64(p.LowStockThreshold)))
}

// IsOutOfStock reports whether the product has exactly zero quantity on hand.
// A quantity driven negative by a bypassed availability check does not count
// as out of stock; callers that care about negative stock must check for it
// explicitly.
func IsOutOfStock(p *Product) bool {
	return p.CurrentQuantity.IsZero()
}

// LowStockSeverity grades a low-stock product by how far below its threshold
// it has fallen: critical at 20% of the threshold or less, high at 50% or
// less, medium otherwise.
func LowStockSeverity(p *Product) AlertSeverity {
	threshold := decimal.NewFromInt(int64(p.LowStockThreshold))
	if threshold.IsZero() {
		return AlertSeverityCritical
	}
	ratio := p.CurrentQuantity.Div(threshold)
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.2)):
		return AlertSeverityCritical
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.5)):
		return AlertSeverityHigh
	default:
		return AlertSeverityMedium
	}
}

// OutOfStockSeverity is always critical
func OutOfStockSeverity(_ *Product) AlertSeverity {
	return AlertSeverityCritical
}

// NewLowStockAlert builds the alert for a low-stock product
func NewLowStockAlert(p *Product) StockAlert {
	return StockAlert{
		ProductID:         p.ID,
		ProductName:       p.Name,
		UnitOfMeasure:     p.UnitOfMeasure,
		CurrentQuantity:   p.CurrentQuantity,
		LowStockThreshold: p.LowStockThreshold,
		AlertType:         AlertTypeLowStock,
		Severity:          LowStockSeverity(p),
	}
}

// NewOutOfStockAlert builds the alert for an out-of-stock product
func NewOutOfStockAlert(p *Product) StockAlert {
	return StockAlert{
		ProductID:         p.ID,
		ProductName:       p.Name,
		UnitOfMeasure:     p.UnitOfMeasure,
		CurrentQuantity:   p.CurrentQuantity,
		LowStockThreshold: p.LowStockThreshold,
		AlertType:         AlertTypeOutOfStock,
		Severity:          OutOfStockSeverity(p),
	}
}

// BuildDashboardMessage renders the human-readable stock summary with the
// correct singular/plural forms for each clause.
func BuildDashboardMessage(lowStockCount, outOfStockCount int) string {
	if lowStockCount == 0 && outOfStockCount == 0 {
		return "All products are adequately stocked"
	}

	outClause := ""
	if outOfStockCount > 0 {
		outClause = fmt.Sprintf("%d %s out of stock", outOfStockCount, pluralizeProduct(outOfStockCount))
	}
	lowClause := ""
	if lowStockCount > 0 {
		lowClause = fmt.Sprintf("%d %s running low", lowStockCount, pluralizeProduct(lowStockCount))
	}

	switch {
	case outClause != "" && lowClause != "":
		return outClause + ", " + lowClause
	case outClause != "":
		return outClause
	default:
		return lowClause
	}
}

func pluralizeProduct(count int) string {
	if count == 1 {
		return "product"
	}
	return "products"
}

var alertValidator = validator.New()

// ValidateAlert rejects malformed alert shapes: missing fields or enum values
// outside the known alert types and severities.
func ValidateAlert(alert *StockAlert) error {
	if alert == nil {
		return shared.NewDomainError("INVALID_ALERT", "Alert cannot be nil")
	}
	if err := alertValidator.Struct(alert); err != nil {
		return shared.NewDomainError("INVALID_ALERT", err.Error())
	}
	return nil
}

// ValidateSummary rejects malformed dashboard summary shapes
func ValidateSummary(summary *DashboardSummary) error {
	if summary == nil {
		return shared.NewDomainError("INVALID_SUMMARY", "Summary cannot be nil")
	}
	if err := alertValidator.Struct(summary); err != nil {
		return shared.NewDomainError("INVALID_SUMMARY", err.Error())
	}
	return nil
}
