package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypeSale records stock consumed by a fulfilled order
	TransactionTypeSale TransactionType = "sale"
	// TransactionTypeRestock records incoming stock from a delivery
	TransactionTypeRestock TransactionType = "restock"
	// TransactionTypeAdjustment records a manual stock correction
	TransactionTypeAdjustment TransactionType = "adjustment"
	// TransactionTypeWaste records spoiled or discarded stock
	TransactionTypeWaste TransactionType = "waste"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeRestock, TransactionTypeAdjustment, TransactionTypeWaste:
		return true
	}
	return false
}

// ReferenceType identifies the kind of document a ledger entry refers to
type ReferenceType string

const (
	// ReferenceTypeOrder links a ledger entry to a customer order
	ReferenceTypeOrder ReferenceType = "order"
	// ReferenceTypeManual marks a manual restock or adjustment
	ReferenceTypeManual ReferenceType = "manual"
	// ReferenceTypeRecipe links a ledger entry to a recipe-driven consumption
	ReferenceTypeRecipe ReferenceType = "recipe"
)

// String returns the string representation of ReferenceType
func (r ReferenceType) String() string {
	return string(r)
}

// IsValid returns true if the reference type is valid
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceTypeOrder, ReferenceTypeManual, ReferenceTypeRecipe:
		return true
	}
	return false
}

// InventoryTransaction is an immutable ledger entry explaining one quantity
// change to one product. Entries are append-only: once created they are never
// updated or deleted, so for any product the sum of all QuantityChange values
// since creation reconciles with its CurrentQuantity.
type InventoryTransaction struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_product"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index:idx_inv_tx_type"`
	// QuantityChange is signed: negative for outgoing stock, positive for incoming
	QuantityChange decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceType  ReferenceType   `gorm:"type:varchar(20);not null;index:idx_inv_tx_reference,priority:1"`
	ReferenceID    *string         `gorm:"type:varchar(50);index:idx_inv_tx_reference,priority:2"`
	Notes          string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a new ledger entry
func NewInventoryTransaction(
	productID uuid.UUID,
	txType TransactionType,
	quantityChange decimal.Decimal,
	referenceType ReferenceType,
	referenceID string,
) (*InventoryTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantityChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}
	if !referenceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE_TYPE", "Invalid reference type")
	}

	tx := &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		TransactionType: txType,
		QuantityChange:  quantityChange,
		ReferenceType:   referenceType,
	}
	if referenceID != "" {
		tx.ReferenceID = &referenceID
	}
	return tx, nil
}

// WithNotes sets the free-form notes for the entry
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// IsOutgoing returns true if the entry removes stock
func (t *InventoryTransaction) IsOutgoing() bool {
	return t.QuantityChange.IsNegative()
}

// IsIncoming returns true if the entry adds stock
func (t *InventoryTransaction) IsIncoming() bool {
	return t.QuantityChange.IsPositive()
}
