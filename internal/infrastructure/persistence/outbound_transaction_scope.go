package persistence

import (
	"context"

	appoutbound "github.com/wms/backend/internal/application/outbound"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/outbound"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormOutboundTransactionScope implements the outbound TransactionScope using
// GORM transactions. Confirmation and cancelation mutate the order, the stock
// snapshot, and the ledger together, so all three repositories share one
// transaction.
type GormOutboundTransactionScope struct {
	db *gorm.DB
}

// NewGormOutboundTransactionScope creates a new GormOutboundTransactionScope
func NewGormOutboundTransactionScope(db *gorm.DB) *GormOutboundTransactionScope {
	return &GormOutboundTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormOutboundTransactionScope) Execute(ctx context.Context, fn func(repos appoutbound.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOutboundTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormOutboundTransactionalRepositories provides repositories scoped to one transaction
type gormOutboundTransactionalRepositories struct {
	tx *gorm.DB
}

// OutboundRepo returns the outbound repository scoped to the current transaction
func (r *gormOutboundTransactionalRepositories) OutboundRepo() outbound.OutboundRepository {
	return NewGormOutboundRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormOutboundTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StockRepo returns the stock repository scoped to the current transaction
func (r *gormOutboundTransactionalRepositories) StockRepo() stock.StockRepository {
	return NewGormStockRepository(r.tx)
}

// LedgerRepo returns the ledger repository scoped to the current transaction
func (r *gormOutboundTransactionalRepositories) LedgerRepo() stock.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

var _ appoutbound.TransactionScope = (*GormOutboundTransactionScope)(nil)
var _ appoutbound.TransactionalRepositories = (*gormOutboundTransactionalRepositories)(nil)
