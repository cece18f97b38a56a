package persistence

import (
	"context"

	appinbound "github.com/wms/backend/internal/application/inbound"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inbound"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormInboundTransactionScope implements the inbound TransactionScope using
// GORM transactions. Committing a receipt updates the receipt, the stock
// snapshot, the catalog's last inbound price, and the ledger atomically.
type GormInboundTransactionScope struct {
	db *gorm.DB
}

// NewGormInboundTransactionScope creates a new GormInboundTransactionScope
func NewGormInboundTransactionScope(db *gorm.DB) *GormInboundTransactionScope {
	return &GormInboundTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormInboundTransactionScope) Execute(ctx context.Context, fn func(repos appinbound.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormInboundTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormInboundTransactionalRepositories provides repositories scoped to one transaction
type gormInboundTransactionalRepositories struct {
	tx *gorm.DB
}

// InboundRepo returns the inbound repository scoped to the current transaction
func (r *gormInboundTransactionalRepositories) InboundRepo() inbound.InboundRepository {
	return NewGormInboundRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormInboundTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StockRepo returns the stock repository scoped to the current transaction
func (r *gormInboundTransactionalRepositories) StockRepo() stock.StockRepository {
	return NewGormStockRepository(r.tx)
}

// LedgerRepo returns the ledger repository scoped to the current transaction
func (r *gormInboundTransactionalRepositories) LedgerRepo() stock.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

var _ appinbound.TransactionScope = (*GormInboundTransactionScope)(nil)
var _ appinbound.TransactionalRepositories = (*gormInboundTransactionalRepositories)(nil)
