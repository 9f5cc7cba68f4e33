package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the inventory domain
const (
	EventTypeStockDeducted       = "inventory.stock_deducted"
	EventTypeStockBelowThreshold = "inventory.stock_below_threshold"
)

// StockDeductedEvent is emitted after a deduction has been committed for a
// product.
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType ReferenceType   `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(p *Product, quantity decimal.Decimal, refType ReferenceType, refID string) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, p.ID, "Product"),
		ProductID:       p.ID,
		ProductName:     p.Name,
		Quantity:        quantity,
		ReferenceType:   refType,
		ReferenceID:     refID,
	}
}

// StockBelowThresholdEvent is emitted when a product's quantity lands at or
// below its low-stock threshold after a committed deduction.
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(p *Product) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, p.ID, "Product"),
		ProductID:         p.ID,
		ProductName:       p.Name,
		UnitOfMeasure:     p.UnitOfMeasure,
		CurrentQuantity:   p.CurrentQuantity,
		LowStockThreshold: p.LowStockThreshold,
	}
}
