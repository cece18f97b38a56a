package persistence

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM. The ledger is
// append-only: entries are created, never updated or deleted.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Create appends a single ledger entry
func (r *GormLedgerRepository) Create(ctx context.Context, entry *stock.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch appends multiple ledger entries
func (r *GormLedgerRepository) CreateBatch(ctx context.Context, entries []*stock.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

// FindBySKU returns the ledger entries for a SKU, newest first
func (r *GormLedgerRepository) FindBySKU(ctx context.Context, sku string, filter shared.Filter) ([]stock.LedgerEntry, error) {
	var entries []stock.LedgerEntry
	query := r.db.WithContext(ctx).Where("sku = ?", sku)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountBySKU counts the ledger entries for a SKU
func (r *GormLedgerRepository) CountBySKU(ctx context.Context, sku string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.LedgerEntry{}).
		Where("sku = ?", sku).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumBySKU returns the total quantity in and out journaled for a SKU
func (r *GormLedgerRepository) SumBySKU(ctx context.Context, sku string) (int64, int64, error) {
	var sums struct {
		QtyIn  int64
		QtyOut int64
	}
	if err := r.db.WithContext(ctx).
		Model(&stock.LedgerEntry{}).
		Select("COALESCE(SUM(qty_in), 0) AS qty_in, COALESCE(SUM(qty_out), 0) AS qty_out").
		Where("sku = ?", sku).
		Scan(&sums).Error; err != nil {
		return 0, 0, err
	}
	return sums.QtyIn, sums.QtyOut, nil
}

// Ensure GormLedgerRepository implements LedgerRepository
var _ stock.LedgerRepository = (*GormLedgerRepository)(nil)
