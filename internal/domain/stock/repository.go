package stock

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// StockRepository defines the interface for stock snapshot persistence
type StockRepository interface {
	// FindBySKU finds the snapshot row for a SKU
	FindBySKU(ctx context.Context, sku string) (*StockCurrent, error)

	// FindBySKUForUpdate finds the snapshot row and locks it for the
	// duration of the surrounding transaction
	FindBySKUForUpdate(ctx context.Context, sku string) (*StockCurrent, error)

	// FindBySKUsForUpdate locks and returns snapshot rows for a SKU set,
	// ordered by SKU so concurrent transactions acquire locks in the same
	// order
	FindBySKUsForUpdate(ctx context.Context, skus []string) ([]StockCurrent, error)

	// FindAll finds snapshot rows matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockCurrent, error)

	// Count counts snapshot rows matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a snapshot row
	Save(ctx context.Context, stock *StockCurrent) error
}

// LedgerRepository defines the interface for the append-only inventory ledger
type LedgerRepository interface {
	// Create appends one ledger entry
	Create(ctx context.Context, entry *LedgerEntry) error

	// CreateBatch appends multiple ledger entries
	CreateBatch(ctx context.Context, entries []*LedgerEntry) error

	// FindBySKU finds ledger entries for a SKU, newest first
	FindBySKU(ctx context.Context, sku string, filter shared.Filter) ([]LedgerEntry, error)

	// CountBySKU counts ledger entries for a SKU
	CountBySKU(ctx context.Context, sku string) (int64, error)

	// SumBySKU sums credits and debits for a SKU
	SumBySKU(ctx context.Context, sku string) (qtyIn, qtyOut int64, err error)
}
