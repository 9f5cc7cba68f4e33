package recipe

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientRequirement is one tracked ingredient of a recipe joined with the
// current state of its linked product. This is the read model the requirement
// calculator works from.
type IngredientRequirement struct {
	ProductID          uuid.UUID
	ProductName        string
	UnitOfMeasure      string
	QuantityPerServing decimal.Decimal
	CurrentQuantity    decimal.Decimal
}

// Repository defines the interface for recipe persistence
type Repository interface {
	// FindByID finds a recipe with its ingredients
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// Exists reports whether a recipe exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// FindIngredientRequirements returns the tracked ingredients of a recipe
	// joined with their linked products' name, unit and current quantity.
	// Recipes whose ingredients have no product links yield an empty slice.
	FindIngredientRequirements(ctx context.Context, recipeID uuid.UUID) ([]IngredientRequirement, error)

	// Save creates or updates a recipe with its ingredients
	Save(ctx context.Context, r *Recipe) error

	// Delete deletes a recipe and its ingredients
	Delete(ctx context.Context, id uuid.UUID) error
}
