package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/resto/backend/internal/application/orderinv"
	"github.com/resto/backend/internal/domain/inventory"
)

// GormTransactionScope implements orderinv.TransactionScope using GORM
// transactions. All repository operations inside Execute run against the same
// database transaction and commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos orderinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) TransactionRepo() inventory.InventoryTransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements orderinv.TransactionScope
var _ orderinv.TransactionScope = (*GormTransactionScope)(nil)
