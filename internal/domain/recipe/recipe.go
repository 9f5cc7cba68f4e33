package recipe

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Recipe is a named dish or drink with a list of ingredients.
type Recipe struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:varchar(1000)"`

	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// Ingredient is one line of a recipe. An ingredient may be linked to exactly
// one inventory product with a per-serving quantity coefficient; ingredients
// without a link are not inventory-tracked and are excluded from requirement
// calculation.
type Ingredient struct {
	shared.BaseEntity
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`

	// Product link; at most one link per (ingredient, product) pair
	ProductID          *uuid.UUID       `gorm:"type:uuid;index"`
	QuantityPerServing *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "recipe_ingredients"
}

// IsTracked returns true if the ingredient is linked to an inventory product
func (i *Ingredient) IsTracked() bool {
	return i.ProductID != nil && i.QuantityPerServing != nil
}

// LinkProduct associates the ingredient with an inventory product and its
// per-serving coefficient.
func (i *Ingredient) LinkProduct(productID uuid.UUID, quantityPerServing decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantityPerServing.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity per serving must be positive")
	}
	i.ProductID = &productID
	i.QuantityPerServing = &quantityPerServing
	return nil
}

// NewRecipe creates a new recipe
func NewRecipe(name, description string) (*Recipe, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	return &Recipe{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Ingredients: make([]Ingredient, 0),
	}, nil
}

// AddIngredient appends an untracked ingredient line to the recipe
func (r *Recipe) AddIngredient(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	r.Ingredients = append(r.Ingredients, Ingredient{
		BaseEntity: shared.NewBaseEntity(),
		RecipeID:   r.ID,
		Name:       name,
	})
	return nil
}

// AddTrackedIngredient appends an ingredient line linked to an inventory
// product with its per-serving coefficient.
func (r *Recipe) AddTrackedIngredient(name string, productID uuid.UUID, quantityPerServing decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	ing := Ingredient{
		BaseEntity: shared.NewBaseEntity(),
		RecipeID:   r.ID,
		Name:       name,
	}
	if err := ing.LinkProduct(productID, quantityPerServing); err != nil {
		return err
	}
	r.Ingredients = append(r.Ingredients, ing)
	return nil
}

// TrackedIngredients returns only the ingredients linked to a product
func (r *Recipe) TrackedIngredients() []Ingredient {
	tracked := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.IsTracked() {
			tracked = append(tracked, ing)
		}
	}
	return tracked
}
