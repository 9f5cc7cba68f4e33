package orderinv

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories within
// a transaction. Both repositories share the same underlying database transaction,
// so a stock update and its ledger entry commit or roll back together.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() inventory.ProductRepository
	// TransactionRepo returns the ledger repository scoped to the current transaction
	TransactionRepo() inventory.InventoryTransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	productRepo     inventory.ProductRepository
	transactionRepo inventory.InventoryTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo inventory.ProductRepository,
	transactionRepo inventory.InventoryTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository {
	return s.productRepo
}

// TransactionRepo returns the ledger repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
