package orderinv

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto/backend/internal/domain/inventory"
)

// OrderLine is one line of an order: a menu item and how many servings of it.
type OrderLine struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
}

// ProductRequirement is the total quantity of one product an order needs,
// aggregated across all order lines that consume it.
type ProductRequirement struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
}

// InsufficientItem describes one product whose stock cannot cover an order.
type InsufficientItem struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitOfMeasure    string          `json:"unit_of_measure"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	CurrentQuantity  decimal.Decimal `json:"current_quantity"`
	Shortage         decimal.Decimal `json:"shortage"`
}

// AvailabilityResult is the outcome of checking an order against current stock.
type AvailabilityResult struct {
	Available         bool                 `json:"available"`
	Requirements      []ProductRequirement `json:"requirements"`
	InsufficientItems []InsufficientItem   `json:"insufficient_items"`
}

// DeductOptions controls how a deduction is performed.
type DeductOptions struct {
	// SkipAvailabilityCheck deducts without verifying stock first, allowing
	// quantities to go negative. Used when the kitchen has already consumed
	// the ingredients and the books must follow reality.
	SkipAvailabilityCheck bool `json:"skip_availability_check"`
}

// DeductResult reports the outcome of a committed order deduction.
type DeductResult struct {
	OrderID       string               `json:"order_id"`
	Deductions    []ProductRequirement `json:"deductions"`
	LowStock      []uuid.UUID          `json:"low_stock_product_ids"`
	TransactionID []uuid.UUID          `json:"transaction_ids"`
}

// AdjustmentUpdate is one manual stock correction in a batch.
type AdjustmentUpdate struct {
	ProductID      uuid.UUID                 `json:"product_id" binding:"required"`
	QuantityChange decimal.Decimal           `json:"quantity_change" binding:"required"`
	Type           inventory.TransactionType `json:"type" binding:"required"`
	Notes          string                    `json:"notes"`
}

// AdjustmentResult reports one applied adjustment.
type AdjustmentResult struct {
	ProductID     uuid.UUID       `json:"product_id"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
	TransactionID uuid.UUID       `json:"transaction_id"`
}
