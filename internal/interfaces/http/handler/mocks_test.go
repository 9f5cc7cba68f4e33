package handler

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/menu"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
)

// In-memory repository implementations backing handler tests

type memProductRepo struct {
	products  map[uuid.UUID]*inventory.Product
	returnErr error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*inventory.Product)}
}

func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if p, ok := m.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]inventory.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	result := make([]inventory.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *memProductRepo) FindByName(_ context.Context, name string) (*inventory.Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memProductRepo) FindAll(_ context.Context) ([]inventory.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	result := make([]inventory.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memProductRepo) Save(_ context.Context, product *inventory.Product) error {
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *memProductRepo) IncrementQuantity(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := m.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.CurrentQuantity = p.CurrentQuantity.Add(delta)
	return nil
}

func (m *memProductRepo) IncrementQuantityNonNegative(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := m.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	if p.CurrentQuantity.Add(delta).IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.CurrentQuantity = p.CurrentQuantity.Add(delta)
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

type memTransactionRepo struct {
	entries []inventory.InventoryTransaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{}
}

func (m *memTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			copied := m.entries[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memTransactionRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var result []inventory.InventoryTransaction
	for _, e := range m.entries {
		if e.ProductID == productID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *memTransactionRepo) FindByReference(_ context.Context, refType inventory.ReferenceType, refID string) ([]inventory.InventoryTransaction, error) {
	var result []inventory.InventoryTransaction
	for _, e := range m.entries {
		if e.ReferenceType == refType && e.ReferenceID != nil && *e.ReferenceID == refID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *memTransactionRepo) ExistsByReference(ctx context.Context, refType inventory.ReferenceType, refID string) (bool, error) {
	entries, err := m.FindByReference(ctx, refType, refID)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

func (m *memTransactionRepo) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	m.entries = append(m.entries, *tx)
	return nil
}

func (m *memTransactionRepo) SumQuantityChangeByProduct(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.ProductID == productID {
			sum = sum.Add(e.QuantityChange)
		}
	}
	return sum, nil
}

type memMenuRepo struct {
	items map[uuid.UUID]*menu.MenuItem
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{items: make(map[uuid.UUID]*menu.MenuItem)}
}

func (m *memMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memMenuRepo) ResolveRecipeID(ctx context.Context, menuItemID uuid.UUID) (*uuid.UUID, error) {
	item, err := m.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	return item.RecipeID, nil
}

func (m *memMenuRepo) Save(_ context.Context, item *menu.MenuItem) error {
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *memMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

type memRecipeRepo struct {
	recipes  map[uuid.UUID]*recipe.Recipe
	products *memProductRepo
}

func newMemRecipeRepo(products *memProductRepo) *memRecipeRepo {
	return &memRecipeRepo{
		recipes:  make(map[uuid.UUID]*recipe.Recipe),
		products: products,
	}
}

func (m *memRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	if r, ok := m.recipes[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memRecipeRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.recipes[id]
	return ok, nil
}

func (m *memRecipeRepo) FindIngredientRequirements(_ context.Context, recipeID uuid.UUID) ([]recipe.IngredientRequirement, error) {
	r, ok := m.recipes[recipeID]
	if !ok {
		return []recipe.IngredientRequirement{}, nil
	}
	var requirements []recipe.IngredientRequirement
	for _, ing := range r.TrackedIngredients() {
		product, ok := m.products.products[*ing.ProductID]
		if !ok {
			continue
		}
		requirements = append(requirements, recipe.IngredientRequirement{
			ProductID:          product.ID,
			ProductName:        product.Name,
			UnitOfMeasure:      product.UnitOfMeasure,
			QuantityPerServing: *ing.QuantityPerServing,
			CurrentQuantity:    product.CurrentQuantity,
		})
	}
	return requirements, nil
}

func (m *memRecipeRepo) Save(_ context.Context, r *recipe.Recipe) error {
	copied := *r
	m.recipes[r.ID] = &copied
	return nil
}

func (m *memRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.recipes, id)
	return nil
}

// Ensure mocks satisfy the repository interfaces
var (
	_ inventory.ProductRepository              = (*memProductRepo)(nil)
	_ inventory.InventoryTransactionRepository = (*memTransactionRepo)(nil)
	_ menu.Repository                          = (*memMenuRepo)(nil)
	_ recipe.Repository                        = (*memRecipeRepo)(nil)
)
