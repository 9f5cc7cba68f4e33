package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resto/backend/internal/domain/menu"
	"github.com/resto/backend/internal/domain/shared"
)

// GormMenuItemRepository implements menu.Repository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ResolveRecipeID resolves a menu item to its recipe. Returns nil when the
// item has no associated recipe.
func (r *GormMenuItemRepository) ResolveRecipeID(ctx context.Context, menuItemID uuid.UUID) (*uuid.UUID, error) {
	item, err := r.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	return item.RecipeID, nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes a menu item
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&menu.MenuItem{}, "id = ?", id).Error
}

// Ensure GormMenuItemRepository implements menu.Repository
var _ menu.Repository = (*GormMenuItemRepository)(nil)
