package orderinv

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/menu"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/domain/shared"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockMenuRepository is a mock implementation of menu.Repository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) ResolveRecipeID(ctx context.Context, menuItemID uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *MockMenuRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeRepository is a mock implementation of recipe.Repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) FindIngredientRequirements(ctx context.Context, recipeID uuid.UUID) ([]recipe.IngredientRequirement, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.IngredientRequirement), args.Error(1)
}

func (m *MockRecipeRepository) Save(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of inventory.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*inventory.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]inventory.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementQuantityNonNegative(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of inventory.InventoryTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByReference(ctx context.Context, refType inventory.ReferenceType, refID string) ([]inventory.InventoryTransaction, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ExistsByReference(ctx context.Context, refType inventory.ReferenceType, refID string) (bool, error) {
	args := m.Called(ctx, refType, refID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumQuantityChangeByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
