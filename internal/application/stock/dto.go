package stock

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/stock"
)

// StockResponse represents a stock snapshot row in API responses
type StockResponse struct {
	SKU           string          `json:"sku"`
	QtyOnHand     int             `json:"qty_on_hand"`
	QtyReserved   int             `json:"qty_reserved"`
	QtyPendingOut int             `json:"qty_pending_out"`
	LastUnitPrice decimal.Decimal `json:"last_unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ScanResponse pairs a barcode lookup with its stock snapshot. A product
// that has never been stocked reports a zero snapshot.
type ScanResponse struct {
	SKU         string        `json:"sku"`
	ProductName string        `json:"product_name"`
	Barcode     string        `json:"barcode"`
	IsBundle    bool          `json:"is_bundle"`
	Stock       StockResponse `json:"stock"`
}

// AdjustRequest carries a counted absolute quantity for one SKU
type AdjustRequest struct {
	FinalQty int    `json:"final_qty" binding:"min=0"`
	Memo     string `json:"memo"`
}

// AdjustResult reports an applied manual adjustment
type AdjustResult struct {
	SKU       string `json:"sku"`
	QtyBefore int    `json:"qty_before"`
	QtyAfter  int    `json:"qty_after"`
	Delta     int    `json:"delta"`
}

// LedgerEntryResponse represents one ledger movement in API responses
type LedgerEntryResponse struct {
	ID        uint            `json:"id"`
	SKU       string          `json:"sku"`
	EventType string          `json:"event_type"`
	RefType   string          `json:"ref_type"`
	RefID     uint            `json:"ref_id"`
	QtyIn     int             `json:"qty_in"`
	QtyOut    int             `json:"qty_out"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Memo      string          `json:"memo,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListFilter represents filter options for the stock listing
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// HistoryFilter represents pagination options for ledger history
type HistoryFilter struct {
	Page     int `form:"page" binding:"min=1"`
	PageSize int `form:"page_size" binding:"min=1,max=100"`
}

// ToStockResponse converts a domain snapshot to its API representation
func ToStockResponse(s *stock.StockCurrent) StockResponse {
	return StockResponse{
		SKU:           s.SKU,
		QtyOnHand:     s.QtyOnHand,
		QtyReserved:   s.QtyReserved,
		QtyPendingOut: s.QtyPendingOut,
		LastUnitPrice: s.LastUnitPrice,
		TotalValue:    s.TotalValue,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToLedgerEntryResponse converts a domain ledger entry to its API representation
func ToLedgerEntryResponse(e *stock.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:        e.ID,
		SKU:       e.SKU,
		EventType: e.EventType.String(),
		RefType:   e.RefType,
		RefID:     e.RefID,
		QtyIn:     e.QtyIn,
		QtyOut:    e.QtyOut,
		UnitPrice: e.UnitPrice,
		Memo:      e.Memo,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}
