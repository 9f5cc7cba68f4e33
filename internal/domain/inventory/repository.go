package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence.
//
// Quantity changes from the engine go through IncrementQuantity /
// IncrementQuantityNonNegative so the store evaluates the increment
// expression itself; Save never writes CurrentQuantity computed in
// application memory on top of a stale read.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByName finds a product by its unique name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll returns all products ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// Save creates or updates a product (administrative edits only)
	Save(ctx context.Context, product *Product) error

	// IncrementQuantity applies a signed delta to the product's current
	// quantity as a single store-level increment expression.
	IncrementQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// IncrementQuantityNonNegative applies a signed delta like
	// IncrementQuantity, but fails with ErrInsufficientStock when the
	// resulting quantity would be negative. The check and the update are one
	// statement, so two concurrent deductions cannot both pass it.
	IncrementQuantityNonNegative(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}

// InventoryTransactionRepository defines the interface for ledger persistence.
// The ledger is append-only: there are no update or delete operations.
type InventoryTransactionRepository interface {
	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)

	// FindByProduct finds ledger entries for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryTransaction, error)

	// FindByReference finds ledger entries by reference document
	FindByReference(ctx context.Context, refType ReferenceType, refID string) ([]InventoryTransaction, error)

	// ExistsByReference reports whether any ledger entry exists for the
	// reference document. Used as the idempotency guard for order deductions.
	ExistsByReference(ctx context.Context, refType ReferenceType, refID string) (bool, error)

	// Create appends a new ledger entry
	Create(ctx context.Context, tx *InventoryTransaction) error

	// SumQuantityChangeByProduct sums all signed quantity changes for a
	// product, for ledger-to-stock reconciliation.
	SumQuantityChangeByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}
