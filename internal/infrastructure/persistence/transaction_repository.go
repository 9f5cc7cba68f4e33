package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// GormInventoryTransactionRepository implements InventoryTransactionRepository
// using GORM. The ledger is append-only, so the repository exposes no update
// or delete operations.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var tx inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByProduct finds ledger entries for a product, newest first
func (r *GormInventoryTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByReference finds ledger entries by reference document
func (r *GormInventoryTransactionRepository) FindByReference(ctx context.Context, refType inventory.ReferenceType, refID string) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// ExistsByReference reports whether any ledger entry exists for the reference document
func (r *GormInventoryTransactionRepository) ExistsByReference(ctx context.Context, refType inventory.ReferenceType, refID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create appends a new ledger entry
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// SumQuantityChangeByProduct sums all signed quantity changes for a product
func (r *GormInventoryTransactionRepository) SumQuantityChangeByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity_change), 0)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Ensure GormInventoryTransactionRepository implements InventoryTransactionRepository
var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
