package inventory

import (
	"time"

	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is applied when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 10

// Product represents an inventory-tracked item with a unit of measure and
// the quantity currently on hand.
//
// CurrentQuantity is the shared counter mutated by concurrent deductions.
// The engine never overwrites it from application memory: all changes go
// through ProductRepository.IncrementQuantity, a store-level increment that
// serializes concurrent deltas at the row level. Direct Save is reserved for
// administrative edits of the other fields.
type Product struct {
	shared.BaseEntity
	Name              string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	UnitOfMeasure     string           `gorm:"type:varchar(30);not null"`
	CurrentQuantity   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	LowStockThreshold int              `gorm:"not null;default:10"`
	CostPerUnit       *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validated fields
func NewProduct(name, unit string, initialQuantity decimal.Decimal, lowStockThreshold int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}
	if initialQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	if lowStockThreshold == 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}

	return &Product{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		UnitOfMeasure:     unit,
		CurrentQuantity:   initialQuantity,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

// WithCostPerUnit sets the optional cost per unit
func (p *Product) WithCostPerUnit(cost decimal.Decimal) *Product {
	if cost.IsNegative() {
		return p
	}
	p.CostPerUnit = &cost
	p.UpdatedAt = time.Now()
	return p
}

// HasStock returns true if there is any quantity on hand
func (p *Product) HasStock() bool {
	return p.CurrentQuantity.GreaterThan(decimal.Zero)
}

// CanFulfill returns true if the current quantity covers the requested quantity
func (p *Product) CanFulfill(quantity decimal.Decimal) bool {
	return p.CurrentQuantity.GreaterThanOrEqual(quantity)
}

// Shortage returns how much quantity is missing to cover the requested
// amount, or zero when the request can be fulfilled.
func (p *Product) Shortage(quantity decimal.Decimal) decimal.Decimal {
	if p.CanFulfill(quantity) {
		return decimal.Zero
	}
	return quantity.Sub(p.CurrentQuantity)
}
