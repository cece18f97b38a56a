package inbound

import (
	"context"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories a
// receiving operation touches. All repository operations inside Execute are
// part of the same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction.
type TransactionalRepositories interface {
	// InboundRepo returns the inbound repository scoped to the current transaction
	InboundRepo() inbound.InboundRepository
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
	inboundRepo inbound.InboundRepository
	productRepo catalog.ProductRepository
	stockRepo   stock.StockRepository
	ledgerRepo  stock.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	inboundRepo inbound.InboundRepository,
	productRepo catalog.ProductRepository,
	stockRepo stock.StockRepository,
	ledgerRepo stock.LedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inboundRepo: inboundRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InboundRepo returns the inbound repository.
func (s *NoOpTransactionScope) InboundRepo() inbound.InboundRepository {
	return s.inboundRepo
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
