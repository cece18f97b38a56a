package stock

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// StockCurrent is the per-SKU snapshot derived from the inventory ledger.
// Every mutation happens in the same transaction as the ledger entry backing
// it, so qty_on_hand always equals the ledger sum for the SKU.
type StockCurrent struct {
	shared.BaseEntity
	SKU           string          `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	QtyOnHand     int             `gorm:"column:qty_on_hand;not null;default:0" json:"qty_on_hand"`
	QtyReserved   int             `gorm:"column:qty_reserved;not null;default:0" json:"qty_reserved"`
	QtyPendingOut int             `gorm:"column:qty_pending_out;not null;default:0" json:"qty_pending_out"`
	LastUnitPrice decimal.Decimal `gorm:"column:last_unit_price;type:decimal(14,2)" json:"last_unit_price"`
	TotalValue    decimal.Decimal `gorm:"column:total_value;type:decimal(14,2)" json:"total_value"`
	UpdatedBy     string          `gorm:"column:updated_by;size:64" json:"updated_by"`
}

// TableName returns the table name for GORM
func (StockCurrent) TableName() string {
	return "stock_current"
}

// NewStockCurrent creates an empty snapshot row for a SKU
func NewStockCurrent(sku string) *StockCurrent {
	return &StockCurrent{
		SKU:           sku,
		LastUnitPrice: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
}

// Receive credits received units and refreshes the valuation
func (s *StockCurrent) Receive(qty int, unitPrice decimal.Decimal, operator string) {
	s.QtyOnHand += qty
	if unitPrice.IsPositive() {
		s.LastUnitPrice = unitPrice
	}
	s.UpdatedBy = operator
	s.revalue()
}

// Ship debits shipped units. The caller must hold a row lock; the
// sufficiency check here is the authoritative one.
func (s *StockCurrent) Ship(qty int, operator string) error {
	if s.QtyOnHand < qty {
		return shared.NewDomainError(shared.ErrInsufficientStock.Code,
			fmt.Sprintf("sku %s has %d on hand, %d required", s.SKU, s.QtyOnHand, qty))
	}
	s.QtyOnHand -= qty
	s.UpdatedBy = operator
	s.revalue()
	return nil
}

// Restock credits units returned by a canceled shipment
func (s *StockCurrent) Restock(qty int, operator string) {
	s.QtyOnHand += qty
	s.UpdatedBy = operator
	s.revalue()
}

// AdjustTo sets the on-hand quantity to an absolute counted value and
// returns the signed delta applied. Counts below the pending-out commitment
// are refused.
func (s *StockCurrent) AdjustTo(finalQty int, operator string) (delta int, err error) {
	if finalQty < 0 {
		return 0, shared.NewDomainError(shared.ErrInvalidInput.Code, "final quantity cannot be negative")
	}
	if finalQty < s.QtyPendingOut {
		return 0, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("sku %s has %d pending out; cannot adjust on-hand below that", s.SKU, s.QtyPendingOut))
	}
	delta = finalQty - s.QtyOnHand
	s.QtyOnHand = finalQty
	s.UpdatedBy = operator
	s.revalue()
	return delta, nil
}

func (s *StockCurrent) revalue() {
	s.TotalValue = s.LastUnitPrice.Mul(decimal.NewFromInt(int64(s.QtyOnHand))).Round(2)
}
