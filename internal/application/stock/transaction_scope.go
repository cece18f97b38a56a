package stock

import (
	"context"

	"github.com/wms/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the stock repositories.
// All repository operations inside Execute are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock snapshot repository scoped to the current transaction
	StockRepo() stock.StockRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() stock.LedgerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	stockRepo  stock.StockRepository
	ledgerRepo stock.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(stockRepo stock.StockRepository, ledgerRepo stock.LedgerRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock snapshot repository.
func (s *NoOpTransactionScope) StockRepo() stock.StockRepository {
	return s.stockRepo
}

// LedgerRepo returns the inventory ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() stock.LedgerRepository {
	return s.ledgerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
