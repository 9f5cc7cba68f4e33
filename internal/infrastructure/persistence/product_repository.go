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

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Product, error) {
	if len(ids) == 0 {
		return []inventory.Product{}, nil
	}

	var products []inventory.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByName finds a product by its unique name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*inventory.Product, error) {
	var product inventory.Product
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll returns all products ordered by name
func (r *GormProductRepository) FindAll(ctx context.Context) ([]inventory.Product, error) {
	var products []inventory.Product
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// IncrementQuantity applies a signed delta as a store-level increment, so
// concurrent updates cannot lose writes.
func (r *GormProductRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Product{}).
		Where("id = ?", id).
		UpdateColumn("current_quantity", gorm.Expr("current_quantity + ?", delta))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementQuantityNonNegative applies a signed delta but refuses to cross
// zero. The guard lives in the WHERE clause of the update itself, so two
// concurrent deductions cannot both pass it.
func (r *GormProductRepository) IncrementQuantityNonNegative(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Product{}).
		Where("id = ? AND current_quantity + ? >= 0", id, delta).
		UpdateColumn("current_quantity", gorm.Expr("current_quantity + ?", delta))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing product from an insufficient one
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&inventory.Product{}, "id = ?", id).Error
}

// Count counts all products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Product{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
