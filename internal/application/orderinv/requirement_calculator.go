package orderinv

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto/backend/internal/domain/menu"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
)

// RequirementCalculator computes how much of each tracked product an order or
// recipe consumes. Quantities for the same product are merged across order
// lines, so a result never lists a product twice.
type RequirementCalculator struct {
	menuRepo   menu.Repository
	recipeRepo recipe.Repository
}

// NewRequirementCalculator creates a new RequirementCalculator
func NewRequirementCalculator(menuRepo menu.Repository, recipeRepo recipe.Repository) *RequirementCalculator {
	return &RequirementCalculator{
		menuRepo:   menuRepo,
		recipeRepo: recipeRepo,
	}
}

// ComputeRecipeRequirement returns the product quantities needed to prepare
// the given number of servings of one recipe. Only ingredients linked to a
// product contribute; untracked ingredients are ignored.
func (c *RequirementCalculator) ComputeRecipeRequirement(ctx context.Context, recipeID uuid.UUID, servings int) ([]ProductRequirement, error) {
	if servings <= 0 {
		return nil, shared.NewDomainError("INVALID_SERVINGS", "Servings must be positive")
	}

	exists, err := c.recipeRepo.Exists(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	ingredients, err := c.recipeRepo.FindIngredientRequirements(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromInt(int64(servings))
	requirements := make([]ProductRequirement, 0, len(ingredients))
	for _, ing := range ingredients {
		requirements = append(requirements, ProductRequirement{
			ProductID:        ing.ProductID,
			ProductName:      ing.ProductName,
			UnitOfMeasure:    ing.UnitOfMeasure,
			RequiredQuantity: ing.QuantityPerServing.Mul(factor),
			CurrentQuantity:  ing.CurrentQuantity,
		})
	}
	sortRequirements(requirements)
	return requirements, nil
}

// ComputeOrderRequirement aggregates the product quantities an entire order
// consumes. Menu items without a recipe carry no inventory impact and are
// skipped; an unknown menu item is an error.
func (c *RequirementCalculator) ComputeOrderRequirement(ctx context.Context, lines []OrderLine) ([]ProductRequirement, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}

	merged := make(map[uuid.UUID]*ProductRequirement)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order line quantity must be positive")
		}

		recipeID, err := c.menuRepo.ResolveRecipeID(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if recipeID == nil {
			continue
		}

		ingredients, err := c.recipeRepo.FindIngredientRequirements(ctx, *recipeID)
		if err != nil {
			return nil, err
		}

		factor := decimal.NewFromInt(int64(line.Quantity))
		for _, ing := range ingredients {
			needed := ing.QuantityPerServing.Mul(factor)
			if existing, ok := merged[ing.ProductID]; ok {
				existing.RequiredQuantity = existing.RequiredQuantity.Add(needed)
				continue
			}
			merged[ing.ProductID] = &ProductRequirement{
				ProductID:        ing.ProductID,
				ProductName:      ing.ProductName,
				UnitOfMeasure:    ing.UnitOfMeasure,
				RequiredQuantity: needed,
				CurrentQuantity:  ing.CurrentQuantity,
			}
		}
	}

	requirements := make([]ProductRequirement, 0, len(merged))
	for _, req := range merged {
		requirements = append(requirements, *req)
	}
	sortRequirements(requirements)
	return requirements, nil
}

// sortRequirements orders requirements by product name, then ID, so results
// are stable across calls.
func sortRequirements(reqs []ProductRequirement) {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].ProductName != reqs[j].ProductName {
			return reqs[i].ProductName < reqs[j].ProductName
		}
		return reqs[i].ProductID.String() < reqs[j].ProductID.String()
	})
}
