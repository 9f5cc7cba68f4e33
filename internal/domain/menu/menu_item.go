package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable dish or drink on the menu. It may reference the
// recipe that produces it; items without a recipe carry no inventory impact.
type MenuItem struct {
	shared.BaseEntity
	Name     string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RecipeID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// NewMenuItem creates a new menu item
func NewMenuItem(name string, price decimal.Decimal) (*MenuItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &MenuItem{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
	}, nil
}

// WithRecipe links the menu item to the recipe that produces it
func (m *MenuItem) WithRecipe(recipeID uuid.UUID) *MenuItem {
	m.RecipeID = &recipeID
	return m
}

// HasRecipe returns true if the menu item is backed by a recipe
func (m *MenuItem) HasRecipe() bool {
	return m.RecipeID != nil
}

// Repository defines the interface for menu item persistence
type Repository interface {
	// FindByID finds a menu item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// ResolveRecipeID resolves a menu item to its recipe. Returns nil when
	// the item has no associated recipe.
	ResolveRecipeID(ctx context.Context, menuItemID uuid.UUID) (*uuid.UUID, error)

	// Save creates or updates a menu item
	Save(ctx context.Context, item *MenuItem) error

	// Delete deletes a menu item
	Delete(ctx context.Context, id uuid.UUID) error
}
