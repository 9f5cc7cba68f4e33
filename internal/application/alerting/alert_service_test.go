package alerting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/inventory"
)

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

// MockSummaryCache is a mock implementation of SummaryCache
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(ctx context.Context) (*inventory.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.DashboardSummary), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(ctx context.Context, summary *inventory.DashboardSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateSummary(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func makeProduct(t *testing.T, name, quantity string, threshold int) inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(name, "kg", decimal.Zero, threshold)
	require.NoError(t, err)
	p.CurrentQuantity = decimal.RequireFromString(quantity)
	return *p
}

func stockFixture(t *testing.T) []inventory.Product {
	t.Helper()
	return []inventory.Product{
		makeProduct(t, "Basil", "8", 10),    // low, medium
		makeProduct(t, "Cheese", "0", 10),   // out of stock
		makeProduct(t, "Flour", "50", 10),   // healthy
		makeProduct(t, "Olives", "2", 10),   // low, critical
		makeProduct(t, "Tomato", "-0.5", 10), // negative, excluded everywhere
	}
}

func TestGetLowStockAlerts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	repo.On("FindAll", ctx).Return(stockFixture(t), nil)

	service := NewAlertService(repo, zap.NewNop())
	alerts, err := service.GetLowStockAlerts(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	// Sorted most severe first
	assert.Equal(t, "Olives", alerts[0].ProductName)
	assert.Equal(t, inventory.AlertSeverityCritical, alerts[0].Severity)
	assert.Equal(t, "Basil", alerts[1].ProductName)
	assert.Equal(t, inventory.AlertSeverityMedium, alerts[1].Severity)
}

func TestGetOutOfStockAlerts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	repo.On("FindAll", ctx).Return(stockFixture(t), nil)

	service := NewAlertService(repo, zap.NewNop())
	alerts, err := service.GetOutOfStockAlerts(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Cheese", alerts[0].ProductName)
	assert.Equal(t, inventory.AlertSeverityCritical, alerts[0].Severity)
}

func TestGetDashboardSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("computes counts and message", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", ctx).Return(stockFixture(t), nil)

		service := NewAlertService(repo, zap.NewNop())
		summary, err := service.GetDashboardSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5, summary.TotalProducts)
		assert.Equal(t, 2, summary.LowStockCount)
		assert.Equal(t, 1, summary.OutOfStockCount)
		assert.Equal(t, "1 product out of stock, 2 products running low", summary.Message)
	})

	t.Run("serves cached summary without touching the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockSummaryCache)
		cached := &inventory.DashboardSummary{TotalProducts: 3, Message: "All products are adequately stocked"}
		cache.On("GetSummary", ctx).Return(cached, nil)

		service := NewAlertService(repo, zap.NewNop()).WithCache(cache)
		summary, err := service.GetDashboardSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, cached, summary)
		repo.AssertNotCalled(t, "FindAll")
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", ctx).Return(stockFixture(t), nil)
		cache := new(MockSummaryCache)
		cache.On("GetSummary", ctx).Return(nil, nil)
		cache.On("SetSummary", ctx, mock.Anything, DefaultSummaryTTL).Return(nil)

		service := NewAlertService(repo, zap.NewNop()).WithCache(cache)
		_, err := service.GetDashboardSummary(ctx)

		require.NoError(t, err)
		cache.AssertCalled(t, "SetSummary", ctx, mock.Anything, DefaultSummaryTTL)
	})

	t.Run("cache read failure falls back to the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", ctx).Return(stockFixture(t), nil)
		cache := new(MockSummaryCache)
		cache.On("GetSummary", ctx).Return(nil, errors.New("redis down"))
		cache.On("SetSummary", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		service := NewAlertService(repo, zap.NewNop()).WithCache(cache)
		summary, err := service.GetDashboardSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5, summary.TotalProducts)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", ctx).Return(nil, errors.New("db down"))

		service := NewAlertService(repo, zap.NewNop())
		_, err := service.GetDashboardSummary(ctx)

		assert.Error(t, err)
	})
}
