package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
)

// GormRecipeRepository implements recipe.Repository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe with its ingredients
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Exists reports whether a recipe exists
func (r *GormRecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&recipe.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindIngredientRequirements returns the tracked ingredients of a recipe
// joined with their linked products. Ingredients without a product link are
// filtered in the query, not in application code.
func (r *GormRecipeRepository) FindIngredientRequirements(ctx context.Context, recipeID uuid.UUID) ([]recipe.IngredientRequirement, error) {
	var requirements []recipe.IngredientRequirement
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.product_id AS product_id, "+
			"products.name AS product_name, "+
			"products.unit_of_measure AS unit_of_measure, "+
			"recipe_ingredients.quantity_per_serving AS quantity_per_serving, "+
			"products.current_quantity AS current_quantity").
		Joins("JOIN products ON products.id = recipe_ingredients.product_id").
		Where("recipe_ingredients.recipe_id = ? AND recipe_ingredients.product_id IS NOT NULL", recipeID).
		Order("products.name ASC").
		Scan(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// Save creates or updates a recipe with its ingredients
func (r *GormRecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		// Replace the ingredient set rather than merging
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&recipe.Ingredient{}).Error; err != nil {
			return err
		}
		if len(rec.Ingredients) == 0 {
			return nil
		}
		for i := range rec.Ingredients {
			rec.Ingredients[i].RecipeID = rec.ID
		}
		return tx.Create(&rec.Ingredients).Error
	})
}

// Delete deletes a recipe and its ingredients
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&recipe.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe.Recipe{}, "id = ?", id).Error
	})
}

// Ensure GormRecipeRepository implements recipe.Repository
var _ recipe.Repository = (*GormRecipeRepository)(nil)
