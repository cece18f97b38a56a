package persistence

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindBySKU finds the snapshot row for a SKU
func (r *GormStockRepository) FindBySKU(ctx context.Context, sku string) (*stock.StockCurrent, error) {
	var row stock.StockCurrent
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindBySKUForUpdate finds the snapshot row for a SKU with a row-level lock.
// Must be called inside a transaction.
func (r *GormStockRepository) FindBySKUForUpdate(ctx context.Context, sku string) (*stock.StockCurrent, error) {
	var row stock.StockCurrent
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sku = ?", sku).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindBySKUsForUpdate locks and returns the snapshot rows for the given SKUs.
// Rows are locked in SKU order so concurrent confirmations acquire locks in
// the same sequence. SKUs without a snapshot row are simply absent from the
// result. Must be called inside a transaction.
func (r *GormStockRepository) FindBySKUsForUpdate(ctx context.Context, skus []string) ([]stock.StockCurrent, error) {
	if len(skus) == 0 {
		return []stock.StockCurrent{}, nil
	}

	var rows []stock.StockCurrent
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sku IN ?", skus).
		Order("sku ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindAll finds all snapshot rows matching the filter
func (r *GormStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockCurrent, error) {
	var rows []stock.StockCurrent
	query := r.applyFilter(r.db.WithContext(ctx).Model(&stock.StockCurrent{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count counts snapshot rows matching the filter
func (r *GormStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&stock.StockCurrent{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a snapshot row
func (r *GormStockRepository) Save(ctx context.Context, row *stock.StockCurrent) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// applyFilter applies filter options to the query
func (r *GormStockRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockSortFields, "sku")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("sku ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "in_stock":
			if value == true {
				query = query.Where("qty_on_hand > 0")
			} else {
				query = query.Where("qty_on_hand = 0")
			}
		}
	}

	return query
}

// Ensure GormStockRepository implements StockRepository
var _ stock.StockRepository = (*GormStockRepository)(nil)
