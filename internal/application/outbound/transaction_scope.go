package outbound

import (
	"context"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories an
// outbound operation touches. When a function is executed within a
// transaction scope, all repository operations are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// OutboundRepo returns the outbound repository scoped to the current transaction
	OutboundRepo() outbound.OutboundRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// StockRepo returns the stock snapshot repository scoped to the current transaction
	StockRepo() stock.StockRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() stock.LedgerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	outboundRepo outbound.OutboundRepository
	productRepo  catalog.ProductRepository
	stockRepo    stock.StockRepository
	ledgerRepo   stock.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	outboundRepo outbound.OutboundRepository,
	productRepo catalog.ProductRepository,
	stockRepo stock.StockRepository,
	ledgerRepo stock.LedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		outboundRepo: outboundRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OutboundRepo returns the outbound repository.
func (s *NoOpTransactionScope) OutboundRepo() outbound.OutboundRepository {
	return s.outboundRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
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
